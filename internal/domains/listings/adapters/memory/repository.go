package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/Apurer/marketplace-api/internal/domains/listings/domain"
	"github.com/Apurer/marketplace-api/internal/domains/listings/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory listing store used for demos/tests.
type Repository struct {
	mu       sync.RWMutex
	listings []*domain.Listing
	nextID   int64
}

// NewRepository constructs an empty in-memory store whose first identifier is 1.
func NewRepository() *Repository {
	return &Repository{nextID: 1}
}

// List returns copies of every listing in insertion order.
func (r *Repository) List(_ context.Context) ([]*domain.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Listing, 0, len(r.listings))
	for _, l := range r.listings {
		out = append(out, l.Clone())
	}
	return out, nil
}

// Append assigns the next identifier under the write lock and stores a copy.
func (r *Repository) Append(_ context.Context, listing *domain.Listing) (*domain.Listing, error) {
	if listing == nil {
		return nil, errors.New("cannot append nil listing")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := listing.Clone()
	stored.ID = r.nextID
	r.nextID++
	r.listings = append(r.listings, stored)
	return stored.Clone(), nil
}
