package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/marketplace-api/internal/domains/accounts/domain"
	"github.com/Apurer/marketplace-api/internal/domains/accounts/ports"
)

var _ ports.TokenStore = (*TokenStore)(nil)

// TokenStore persists password reset tokens in PostgreSQL.
type TokenStore struct {
	db *gorm.DB
}

// NewTokenStore wires a PostgreSQL-backed token store. Caller owns DB lifecycle.
func NewTokenStore(db *gorm.DB) *TokenStore {
	return &TokenStore{db: db}
}

type resetTokenRecord struct {
	TokenHash  string     `gorm:"primaryKey;column:token_hash;size:64"`
	UserID     int64      `gorm:"column:user_id;index"`
	ExpiresAt  time.Time  `gorm:"column:expires_at;index"`
	ConsumedAt *time.Time `gorm:"column:consumed_at;index"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
}

func (resetTokenRecord) TableName() string { return "password_reset_tokens" }

// Save upserts a token keyed by its hash.
func (s *TokenStore) Save(ctx context.Context, token domain.ResetToken) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	if token.Hash == "" {
		return errors.New("token hash is required")
	}
	rec := resetTokenRecord{
		TokenHash:  token.Hash,
		UserID:     token.UserID,
		ExpiresAt:  token.ExpiresAt,
		ConsumedAt: token.ConsumedAt,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token_hash"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_id", "expires_at", "consumed_at"}),
		}).
		Create(&rec).Error
}

// Consume locks the token row, runs apply and marks the token consumed in one transaction.
// The row lock is held while apply runs, so a concurrent reset with the same token waits and then
// sees it consumed. If apply fails the transaction rolls back and the token stays usable.
func (s *TokenStore) Consume(ctx context.Context, hash string, now time.Time, apply ports.ApplyFunc) (*domain.ResetToken, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var consumed *domain.ResetToken
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec resetTokenRecord
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&rec, "token_hash = ?", hash).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ports.ErrTokenNotFound
			}
			return err
		}
		token := rec.toDomain()
		if token.Consumed() {
			return ports.ErrTokenConsumed
		}
		if token.Expired(now) {
			return ports.ErrTokenExpired
		}
		if apply != nil {
			if err := apply(ctx, token); err != nil {
				return err
			}
		}
		if err := tx.Model(&resetTokenRecord{}).Where("token_hash = ?", hash).Update("consumed_at", now).Error; err != nil {
			return err
		}
		consumedAt := now
		token.ConsumedAt = &consumedAt
		consumed = &token
		return nil
	})
	if err != nil {
		return nil, err
	}
	return consumed, nil
}

// RevokeForUser marks every outstanding token of the user as consumed.
func (s *TokenStore) RevokeForUser(ctx context.Context, userID int64, now time.Time) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(&resetTokenRecord{}).
		Where("user_id = ? AND consumed_at IS NULL", userID).
		Update("consumed_at", now).Error
}

// PurgeExpired removes tokens that expired or were consumed before cutoff. Use for housekeeping or cron.
func (s *TokenStore) PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	if err := s.ensureDB(); err != nil {
		return 0, err
	}
	result := s.db.WithContext(ctx).
		Where("expires_at <= ? OR (consumed_at IS NOT NULL AND consumed_at < ?)", cutoff, cutoff).
		Delete(&resetTokenRecord{})
	return result.RowsAffected, result.Error
}

func (s *TokenStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres token store not configured")
	}
	return nil
}

func (r resetTokenRecord) toDomain() domain.ResetToken {
	return domain.ResetToken{
		Hash:       r.TokenHash,
		UserID:     r.UserID,
		ExpiresAt:  r.ExpiresAt.UTC(),
		ConsumedAt: r.ConsumedAt,
	}
}
