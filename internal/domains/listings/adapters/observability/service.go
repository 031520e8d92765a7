package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/marketplace-api/internal/domains/listings/application"
	listingtypes "github.com/Apurer/marketplace-api/internal/domains/listings/application/types"
	"github.com/Apurer/marketplace-api/internal/domains/listings/domain"
	"github.com/Apurer/marketplace-api/internal/domains/listings/ports"
)

const tracerName = "github.com/Apurer/marketplace-api/internal/domains/listings/adapters/observability/service"

// Service decorates a listings application port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// List returns every listing.
func (s *Service) List(ctx context.Context) ([]*domain.Listing, error) {
	ctx, span := s.startSpan(ctx, "Service.List")
	defer span.End()

	result, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list listings")
	}
	span.SetAttributes(attribute.Int("listing.result.count", len(result)))
	s.logInfo(ctx, "listed listings", slog.Int("count", len(result)))
	return result, nil
}

// CreateListing stores attachments and persists the listing.
func (s *Service) CreateListing(ctx context.Context, input listingtypes.CreateListingInput) (*domain.Listing, error) {
	ctx, span := s.startSpan(ctx, "Service.CreateListing",
		attribute.String("listing.type", input.Fields.Type),
		attribute.Int("listing.images.count", len(input.Images)),
	)
	defer span.End()

	s.logInfo(ctx, "creating listing", slog.String("type", input.Fields.Type), slog.Int("images", len(input.Images)))
	result, err := s.inner.CreateListing(ctx, input)
	if err != nil {
		s.metrics.recordRejected(ctx, err)
		return nil, s.handleError(ctx, span, err, "failed to create listing")
	}
	s.recordCreated(ctx, span, result)
	return result, nil
}

// StoreImages validates and writes attachments.
func (s *Service) StoreImages(ctx context.Context, uploads []listingtypes.ImageUpload) ([]string, error) {
	ctx, span := s.startSpan(ctx, "Service.StoreImages", attribute.Int("listing.images.count", len(uploads)))
	defer span.End()

	result, err := s.inner.StoreImages(ctx, uploads)
	if err != nil {
		s.metrics.recordRejected(ctx, err)
		return nil, s.handleError(ctx, span, err, "failed to store listing images", slog.Int("images", len(uploads)))
	}
	s.metrics.recordImages(ctx, len(result))
	s.logInfo(ctx, "stored listing images", slog.Int("count", len(result)))
	return result, nil
}

// PersistListing appends a listing whose images are already stored.
func (s *Service) PersistListing(ctx context.Context, input listingtypes.PersistListingInput) (*domain.Listing, error) {
	ctx, span := s.startSpan(ctx, "Service.PersistListing",
		attribute.String("listing.type", input.Fields.Type),
		attribute.Int("listing.images.count", len(input.ImageURLs)),
	)
	defer span.End()

	result, err := s.inner.PersistListing(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to persist listing")
	}
	s.recordCreated(ctx, span, result)
	return result, nil
}

// OpenImage loads a stored image.
func (s *Service) OpenImage(ctx context.Context, name string) (*ports.StoredImage, error) {
	ctx, span := s.startSpan(ctx, "Service.OpenImage", attribute.String("asset.name", name))
	defer span.End()

	result, err := s.inner.OpenImage(ctx, name)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to open listing image", slog.String("name", name))
	}
	return result, nil
}

// DiscardImages removes stored images of a listing that was not created.
func (s *Service) DiscardImages(ctx context.Context, imageURLs []string) error {
	ctx, span := s.startSpan(ctx, "Service.DiscardImages", attribute.Int("images.count", len(imageURLs)))
	defer span.End()

	if err := s.inner.DiscardImages(ctx, imageURLs); err != nil {
		return s.handleError(ctx, span, err, "failed to discard listing images", slog.Int("images", len(imageURLs)))
	}
	return nil
}

func (s *Service) recordCreated(ctx context.Context, span trace.Span, listing *domain.Listing) {
	if listing == nil {
		return
	}
	span.SetAttributes(attribute.Int64("listing.id", listing.ID))
	s.metrics.recordCreated(ctx, listing.Type)
	s.logInfo(ctx, "listing created", slog.Int64("listing.id", listing.ID), slog.Int("images", len(listing.Images)))
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	listingsCreated  metric.Int64Counter
	listingsRejected metric.Int64Counter
	imagesStored     metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("listings.service.created", metric.WithDescription("Number of listings created"))
	rejected, _ := m.Int64Counter("listings.service.rejected", metric.WithDescription("Number of listing requests rejected"))
	images, _ := m.Int64Counter("listings.service.images_stored", metric.WithDescription("Number of listing images stored"))
	return serviceMetrics{
		listingsCreated:  created,
		listingsRejected: rejected,
		imagesStored:     images,
	}
}

func (m serviceMetrics) recordCreated(ctx context.Context, listingType string) {
	addCounter(ctx, m.listingsCreated, 1, attribute.String("listing.type", listingType))
}

func (m serviceMetrics) recordRejected(ctx context.Context, err error) {
	reason := "error"
	if errors.Is(err, application.ErrValidation) {
		reason = "validation"
	}
	addCounter(ctx, m.listingsRejected, 1, attribute.String("reason", reason))
}

func (m serviceMetrics) recordImages(ctx context.Context, count int) {
	addCounter(ctx, m.imagesStored, int64(count))
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
