package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/Apurer/marketplace-api/internal/domains/payments/domain"
	"github.com/Apurer/marketplace-api/internal/domains/payments/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order persistence adapter.
type Repository struct {
	mu     sync.RWMutex
	orders []*domain.Order
	nextID int64
}

func NewRepository() *Repository {
	return &Repository{nextID: 1}
}

func (r *Repository) Append(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("cannot append nil order")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := order.Clone()
	stored.AssignID(r.nextID)
	r.nextID++
	r.orders = append(r.orders, stored)
	return stored.Clone(), nil
}

func (r *Repository) GetByOrderID(_ context.Context, orderID string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, order := range r.orders {
		if order.OrderID == orderID {
			return order.Clone(), nil
		}
	}
	return nil, ports.ErrNotFound
}

func (r *Repository) List(_ context.Context) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		list = append(list, order.Clone())
	}
	return list, nil
}
