package ports

import (
	"context"
	"errors"

	"github.com/Apurer/marketplace-api/internal/domains/payments/domain"
)

var ErrNotFound = errors.New("order not found")

// Repository persists orders. Append assigns the identifier and the public order reference.
type Repository interface {
	Append(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByOrderID(ctx context.Context, orderID string) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
}
