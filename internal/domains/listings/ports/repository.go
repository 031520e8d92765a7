package ports

import (
	"context"

	"github.com/Apurer/marketplace-api/internal/domains/listings/domain"
)

// Repository is the listing store. Implementations own identifier assignment so concurrent
// appends never share an identifier.
type Repository interface {
	// List returns every listing in insertion order.
	List(ctx context.Context) ([]*domain.Listing, error)
	// Append assigns the next identifier to the listing, persists it and returns the stored copy.
	Append(ctx context.Context, listing *domain.Listing) (*domain.Listing, error)
}
