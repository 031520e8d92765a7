package listings

import (
	"go.temporal.io/sdk/workflow"

	listingtypes "github.com/Apurer/marketplace-api/internal/domains/listings/application/types"
	"github.com/Apurer/marketplace-api/internal/domains/listings/domain"
	"github.com/Apurer/marketplace-api/internal/platform/temporal/sequences"
)

const (
	// ListingCreationWorkflowName is the public identifier for registering the workflow.
	ListingCreationWorkflowName = "listings.workflows.Creation"
	// ListingCreationTaskQueue is the queue consumed by the worker processing listing workflows.
	ListingCreationTaskQueue = "LISTING_CREATION"
)

// ListingCreationWorkflowInput captures the payload required to persist a new listing.
type ListingCreationWorkflowInput struct {
	Command listingtypes.PersistListingInput
	TraceID string
}

// ListingCreationWorkflow orchestrates the activities needed to persist a listing.
func ListingCreationWorkflow(ctx workflow.Context, input ListingCreationWorkflowInput) (*domain.Listing, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("ListingCreationWorkflow started", withTraceID(input.TraceID, "images", len(input.Command.ImageURLs))...)
	listing, err := sequences.RunListingPersistenceSequence(ctx, input.Command)
	if err != nil {
		logger.Error("ListingCreationWorkflow failed", withTraceID(input.TraceID, "error", err)...)
		return nil, err
	}
	logger.Info("ListingCreationWorkflow completed", withTraceID(input.TraceID, "listingId", listing.ID)...)
	return listing, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
