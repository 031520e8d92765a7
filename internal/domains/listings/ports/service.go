package ports

import (
	"context"

	listingtypes "github.com/Apurer/marketplace-api/internal/domains/listings/application/types"
	"github.com/Apurer/marketplace-api/internal/domains/listings/domain"
)

// Service defines the listings use cases exposed to adapters (inbound/driving port).
type Service interface {
	List(ctx context.Context) ([]*domain.Listing, error)
	CreateListing(ctx context.Context, input listingtypes.CreateListingInput) (*domain.Listing, error)
	StoreImages(ctx context.Context, uploads []listingtypes.ImageUpload) ([]string, error)
	PersistListing(ctx context.Context, input listingtypes.PersistListingInput) (*domain.Listing, error)
	OpenImage(ctx context.Context, name string) (*StoredImage, error)
	// DiscardImages deletes the stored files behind image URLs returned by StoreImages.
	DiscardImages(ctx context.Context, imageURLs []string) error
}
