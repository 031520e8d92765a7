package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/sdk/client"

	listingtypes "github.com/Apurer/marketplace-api/internal/domains/listings/application/types"
	"github.com/Apurer/marketplace-api/internal/domains/listings/domain"
	"github.com/Apurer/marketplace-api/internal/domains/listings/ports"
	listingworkflows "github.com/Apurer/marketplace-api/internal/platform/temporal/workflows/listings"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalListingWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineListingWorkflows)(nil)
)

// DefaultListingCreationTimeout bounds a listing creation workflow, so a request never waits on a
// queue that no worker polls.
const DefaultListingCreationTimeout = 2 * time.Minute

// TemporalListingWorkflows stores attachments in-process, then persists the listing through a
// Temporal workflow. Image bytes never cross the workflow boundary.
type TemporalListingWorkflows struct {
	client    client.Client
	service   ports.Service
	taskQueue string
	timeout   time.Duration
}

// TemporalOption customises the Temporal orchestrator.
type TemporalOption func(*TemporalListingWorkflows)

// WithExecutionTimeout overrides DefaultListingCreationTimeout.
func WithExecutionTimeout(timeout time.Duration) TemporalOption {
	return func(o *TemporalListingWorkflows) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// NewTemporalListingWorkflows wires a Temporal client and the listings service into the orchestrator.
func NewTemporalListingWorkflows(c client.Client, service ports.Service, opts ...TemporalOption) *TemporalListingWorkflows {
	o := &TemporalListingWorkflows{
		client:    c,
		service:   service,
		taskQueue: listingworkflows.ListingCreationTaskQueue,
		timeout:   DefaultListingCreationTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// CreateListing validates and stores the images, then starts the persistence workflow and waits for it.
// Stored images are discarded when the workflow cannot be started or does not complete.
func (o *TemporalListingWorkflows) CreateListing(ctx context.Context, input listingtypes.CreateListingInput) (*domain.Listing, error) {
	if o == nil || o.client == nil || o.service == nil {
		return nil, errors.New("temporal listing workflows not configured")
	}
	urls, err := o.service.StoreImages(ctx, input.Images)
	if err != nil {
		return nil, err
	}
	traceID := workflowTraceID(ctx)
	options := client.StartWorkflowOptions{
		ID:                       buildListingCreationWorkflowID(traceID),
		TaskQueue:                o.taskQueue,
		WorkflowExecutionTimeout: o.timeout,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		listingworkflows.ListingCreationWorkflow,
		listingworkflows.ListingCreationWorkflowInput{
			Command: listingtypes.PersistListingInput{Fields: input.Fields, ImageURLs: urls},
			TraceID: traceID,
		},
	)
	if err != nil {
		return nil, o.discard(ctx, urls, fmt.Errorf("start listing creation workflow: %w", err))
	}
	var listing domain.Listing
	if err := run.Get(ctx, &listing); err != nil {
		return nil, o.discard(ctx, urls, fmt.Errorf("listing creation workflow: %w", err))
	}
	return &listing, nil
}

func (o *TemporalListingWorkflows) discard(ctx context.Context, urls []string, cause error) error {
	if len(urls) == 0 {
		return cause
	}
	if err := o.service.DiscardImages(context.WithoutCancel(ctx), urls); err != nil {
		return errors.Join(cause, fmt.Errorf("discard stored images: %w", err))
	}
	return cause
}

// InlineListingWorkflows executes the service directly without Temporal, useful for tests or dev fallbacks.
type InlineListingWorkflows struct {
	service ports.Service
}

// NewInlineListingWorkflows wraps the listings service for synchronous execution.
func NewInlineListingWorkflows(service ports.Service) *InlineListingWorkflows {
	return &InlineListingWorkflows{service: service}
}

// CreateListing delegates to the application service without durable orchestration.
func (o *InlineListingWorkflows) CreateListing(ctx context.Context, input listingtypes.CreateListingInput) (*domain.Listing, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline listing workflows not configured")
	}
	return o.service.CreateListing(ctx, input)
}

func buildListingCreationWorkflowID(traceID string) string {
	if traceID == "" {
		return fmt.Sprintf("listing-creation-%s", uuid.NewString())
	}
	return fmt.Sprintf("listing-creation-%s-%s", traceID, uuid.NewString()[:8])
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
