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

var _ ports.AccountRepository = (*AccountRepository)(nil)

// AccountRepository persists accounts in PostgreSQL using GORM.
type AccountRepository struct {
	db *gorm.DB
}

// NewAccountRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

type accountRecord struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (accountRecord) TableName() string { return "accounts" }

// Save upserts an account keyed by email.
func (r *AccountRepository) Save(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if account == nil {
		return nil, errors.New("account is nil")
	}
	record := accountRecord{
		ID:           account.ID,
		Email:        account.Email,
		PasswordHash: account.PasswordHash,
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "email"}},
			DoUpdates: clause.Assignments(map[string]any{
				"password_hash": record.PasswordHash,
				"updated_at":    gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	var stored accountRecord
	if err := r.db.WithContext(ctx).First(&stored, "email = ?", record.Email).Error; err != nil {
		return nil, err
	}
	return stored.toDomain(), nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record accountRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrAccountNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *AccountRepository) UpdatePassword(ctx context.Context, id int64, hash string, at time.Time) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&accountRecord{}).Where("id = ?", id).Updates(map[string]any{
		"password_hash": hash,
		"updated_at":    at,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres account repository not configured")
	}
	return nil
}

func (r accountRecord) toDomain() *domain.Account {
	return &domain.Account{
		ID:           r.ID,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		UpdatedAt:    r.UpdatedAt.UTC(),
	}
}
