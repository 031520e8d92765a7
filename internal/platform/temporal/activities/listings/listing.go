package listings

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	listingtypes "github.com/Apurer/marketplace-api/internal/domains/listings/application/types"
	"github.com/Apurer/marketplace-api/internal/domains/listings/domain"
	listingports "github.com/Apurer/marketplace-api/internal/domains/listings/ports"
)

const (
	// PersistListingActivityName appends a listing whose images are already stored.
	PersistListingActivityName = "listings.activities.PersistListing"
	// DiscardImagesActivityName removes stored images of a listing that could not be persisted.
	DiscardImagesActivityName = "listings.activities.DiscardImages"
)

// Activities groups activities that operate on the listings bounded context.
type Activities struct {
	service listingports.Service
}

// NewActivities wires the listings service into the Temporal activities bundle.
func NewActivities(service listingports.Service) *Activities {
	return &Activities{service: service}
}

// PersistListing stores a new listing and returns it with its assigned identifier.
func (a *Activities) PersistListing(ctx context.Context, input listingtypes.PersistListingInput) (*domain.Listing, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("listing persist activity not initialized")
		return nil, errors.New("listing persist activity not initialized")
	}
	logger.Info("PersistListing activity started", "images", len(input.ImageURLs))
	listing, err := a.service.PersistListing(ctx, input)
	if err != nil {
		logger.Error("PersistListing activity failed", "error", err)
		return nil, err
	}
	logger.Info("PersistListing activity completed", "listingId", listing.ID)
	return listing, nil
}

// DiscardImages deletes the stored files referenced by the given image URLs.
func (a *Activities) DiscardImages(ctx context.Context, imageURLs []string) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		return errors.New("listing discard activity not initialized")
	}
	if err := a.service.DiscardImages(ctx, imageURLs); err != nil {
		logger.Error("DiscardImages activity failed", "images", len(imageURLs), "error", err)
		return err
	}
	logger.Info("DiscardImages activity completed", "images", len(imageURLs))
	return nil
}
