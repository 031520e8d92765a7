package ports

import (
	"context"
	"errors"
	"time"

	"github.com/Apurer/marketplace-api/internal/domains/accounts/domain"
)

var ErrAccountNotFound = errors.New("account not found")

// AccountRepository loads and updates account credentials.
type AccountRepository interface {
	Save(ctx context.Context, account *domain.Account) (*domain.Account, error)
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	UpdatePassword(ctx context.Context, id int64, hash string, at time.Time) error
}
