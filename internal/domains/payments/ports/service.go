package ports

import (
	"context"

	paymenttypes "github.com/Apurer/marketplace-api/internal/domains/payments/application/types"
	"github.com/Apurer/marketplace-api/internal/domains/payments/domain"
)

// Service exposes payments use cases to adapters.
type Service interface {
	ListAll(ctx context.Context) ([]*domain.Order, error)
	PlaceOrder(ctx context.Context, input paymenttypes.PlaceOrderInput) (*domain.Order, error)
	GetByOrderID(ctx context.Context, orderID string) (*domain.Order, error)
}
