package ports

import (
	"context"

	listingtypes "github.com/Apurer/marketplace-api/internal/domains/listings/application/types"
	"github.com/Apurer/marketplace-api/internal/domains/listings/domain"
)

// WorkflowOrchestrator exposes the listing creation flow, durable or inline.
type WorkflowOrchestrator interface {
	CreateListing(ctx context.Context, input listingtypes.CreateListingInput) (*domain.Listing, error)
}
