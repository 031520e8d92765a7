package ports

import (
	"context"
	"errors"
	"time"

	"github.com/Apurer/marketplace-api/internal/domains/accounts/domain"
)

var (
	ErrTokenNotFound = errors.New("reset token not found")
	ErrTokenExpired  = errors.New("reset token expired")
	ErrTokenConsumed = errors.New("reset token already used")
)

// ApplyFunc performs the change a reset token authorises. It may be nil.
type ApplyFunc func(ctx context.Context, token domain.ResetToken) error

// TokenStore persists reset tokens by hash.
type TokenStore interface {
	Save(ctx context.Context, token domain.ResetToken) error
	// Consume checks the token is usable, runs apply and marks the token used at now only when
	// apply succeeds. A failing apply leaves the token valid. Exactly one concurrent caller succeeds.
	Consume(ctx context.Context, hash string, now time.Time, apply ApplyFunc) (*domain.ResetToken, error)
	// RevokeForUser consumes every outstanding token of the user.
	RevokeForUser(ctx context.Context, userID int64, now time.Time) error
	// PurgeExpired deletes tokens that expired or were consumed before cutoff.
	PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error)
}
