package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Apurer/marketplace-api/internal/domains/accounts/domain"
	"github.com/Apurer/marketplace-api/internal/domains/accounts/ports"
)

var _ ports.TokenStore = (*TokenStore)(nil)

// TokenStore is an in-memory reset token store.
type TokenStore struct {
	mu     sync.Mutex
	tokens map[string]domain.ResetToken
}

func NewTokenStore() *TokenStore {
	return &TokenStore{tokens: map[string]domain.ResetToken{}}
}

func (s *TokenStore) Save(_ context.Context, token domain.ResetToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token.Hash] = token
	return nil
}

func (s *TokenStore) Consume(ctx context.Context, hash string, now time.Time, apply ports.ApplyFunc) (*domain.ResetToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, ok := s.tokens[hash]
	if !ok {
		return nil, ports.ErrTokenNotFound
	}
	if token.Consumed() {
		return nil, ports.ErrTokenConsumed
	}
	if token.Expired(now) {
		return nil, ports.ErrTokenExpired
	}
	if apply != nil {
		if err := apply(ctx, token); err != nil {
			return nil, err
		}
	}
	consumedAt := now
	token.ConsumedAt = &consumedAt
	s.tokens[hash] = token
	out := token
	return &out, nil
}

func (s *TokenStore) RevokeForUser(_ context.Context, userID int64, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for hash, token := range s.tokens {
		if token.UserID != userID || token.Consumed() {
			continue
		}
		revokedAt := now
		token.ConsumedAt = &revokedAt
		s.tokens[hash] = token
	}
	return nil
}

func (s *TokenStore) PurgeExpired(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var purged int64
	for hash, token := range s.tokens {
		if token.Expired(cutoff) || (token.ConsumedAt != nil && token.ConsumedAt.Before(cutoff)) {
			delete(s.tokens, hash)
			purged++
		}
	}
	return purged, nil
}
