package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	accounttypes "github.com/Apurer/marketplace-api/internal/domains/accounts/application/types"
	"github.com/Apurer/marketplace-api/internal/domains/accounts/domain"
	"github.com/Apurer/marketplace-api/internal/domains/accounts/ports"
	"github.com/Apurer/marketplace-api/internal/shared/events"
)

// DefaultResetTokenTTL applies when an issue request carries no TTL.
const DefaultResetTokenTTL = time.Hour

// Service exposes accounts bounded context use cases.
type Service struct {
	accounts  ports.AccountRepository
	tokens    ports.TokenStore
	hasher    ports.PasswordHasher
	publisher events.Publisher
	now       func() time.Time
}

// Option configures optional collaborators of the service.
type Option func(*Service)

// WithPublisher publishes PasswordReset events.
func WithPublisher(p events.Publisher) Option {
	return func(s *Service) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithClock overrides the time source for deterministic testing.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(accounts ports.AccountRepository, tokens ports.TokenStore, hasher ports.PasswordHasher, opts ...Option) *Service {
	s := &Service{
		accounts:  accounts,
		tokens:    tokens,
		hasher:    hasher,
		publisher: events.NoopPublisher,
		now:       time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// ResetPassword validates the payload, consumes the token and replaces the account credential.
// The payload is checked first and the token is marked used only once the credential update
// succeeds, so a failed request never burns a valid token.
func (s *Service) ResetPassword(ctx context.Context, input accounttypes.ResetPasswordInput) error {
	if err := domain.ValidateNewPassword(input.NewPassword, input.ConfirmPassword); err != nil {
		return mapError(err)
	}
	raw := strings.TrimSpace(input.Token)
	if raw == "" {
		return mapError(errMissingToken)
	}
	hash, err := s.hasher.Hash(input.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	token, err := s.tokens.Consume(ctx, domain.HashToken(raw), now, func(ctx context.Context, token domain.ResetToken) error {
		return s.accounts.UpdatePassword(ctx, token.UserID, hash, now)
	})
	if err != nil {
		return mapError(err)
	}
	if err := s.tokens.RevokeForUser(ctx, token.UserID, now); err != nil {
		return fmt.Errorf("revoke outstanding tokens: %w", err)
	}
	if err := s.publisher.Publish(ctx, domain.NewPasswordReset(token.UserID, now)); err != nil {
		return fmt.Errorf("publish password reset: %w", err)
	}
	return nil
}

// IssueResetToken stores a new token for the account and returns its opaque value.
func (s *Service) IssueResetToken(ctx context.Context, input accounttypes.IssueResetTokenInput) (string, error) {
	if _, err := s.accounts.GetByID(ctx, input.AccountID); err != nil {
		return "", err
	}
	ttl := input.TTL
	if ttl <= 0 {
		ttl = DefaultResetTokenTTL
	}
	raw := strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
	token := domain.NewResetToken(raw, input.AccountID, s.now().Add(ttl))
	if err := s.tokens.Save(ctx, token); err != nil {
		return "", err
	}
	return raw, nil
}

// RegisterAccount stores an account with a hashed initial password. Used by seeding and tests.
func (s *Service) RegisterAccount(ctx context.Context, account *domain.Account, password string) (*domain.Account, error) {
	if account == nil {
		return nil, errors.New("account is nil")
	}
	if err := domain.ValidateNewPassword(password, nil); err != nil {
		return nil, mapError(err)
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	account.ChangePassword(hash, s.now())
	return s.accounts.Save(ctx, account)
}

var _ ports.Service = (*Service)(nil)
