package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	listingtypes "github.com/Apurer/marketplace-api/internal/domains/listings/application/types"
	"github.com/Apurer/marketplace-api/internal/domains/listings/domain"
	listingactivities "github.com/Apurer/marketplace-api/internal/platform/temporal/activities/listings"
)

// RunListingPersistenceSequence persists a listing and discards its stored images when persistence
// keeps failing after retries.
func RunListingPersistenceSequence(ctx workflow.Context, input listingtypes.PersistListingInput) (*domain.Listing, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("listing persistence sequence started", "images", len(input.ImageURLs))
	persistOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	discardOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    5 * time.Second,
			MaximumAttempts:    3,
		},
	}

	var listing domain.Listing
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, persistOptions), listingactivities.PersistListingActivityName, input).Get(ctx, &listing)
	if err != nil {
		logger.Error("listing persistence sequence failed", "error", err)
		if len(input.ImageURLs) > 0 {
			if discardErr := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, discardOptions), listingactivities.DiscardImagesActivityName, input.ImageURLs).Get(ctx, nil); discardErr != nil {
				logger.Error("listing persistence sequence discard failed", "error", discardErr)
			}
		}
		return nil, err
	}
	logger.Info("listing persistence sequence persisted", "listingId", listing.ID)
	return &listing, nil
}
