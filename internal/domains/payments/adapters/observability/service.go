package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	paymenttypes "github.com/Apurer/marketplace-api/internal/domains/payments/application/types"
	"github.com/Apurer/marketplace-api/internal/domains/payments/domain"
	"github.com/Apurer/marketplace-api/internal/domains/payments/ports"
)

const tracerName = "github.com/Apurer/marketplace-api/internal/domains/payments/adapters/observability/service"

// Service decorates the payments port with tracing, logging, and metrics.
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

// ListAll returns every order for the admin view.
func (s *Service) ListAll(ctx context.Context) ([]*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.ListAll")
	defer span.End()

	result, err := s.inner.ListAll(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("order.result.count", len(result)))
	s.logInfo(ctx, "listed orders", slog.Int("count", len(result)))
	return result, nil
}

// PlaceOrder records a new order.
func (s *Service) PlaceOrder(ctx context.Context, input paymenttypes.PlaceOrderInput) (*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.PlaceOrder",
		attribute.String("order.payment_method", input.PaymentMethod),
		attribute.Int("order.items.count", len(input.Items)),
	)
	defer span.End()

	result, err := s.inner.PlaceOrder(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to place order")
	}
	span.SetAttributes(attribute.String("order.id", result.OrderID))
	s.metrics.recordPlaced(ctx, result)
	s.logInfo(ctx, "order placed", slog.String("order.id", result.OrderID), slog.String("status", string(result.Status)))
	return result, nil
}

// GetByOrderID loads a single order.
func (s *Service) GetByOrderID(ctx context.Context, orderID string) (*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.GetByOrderID", attribute.String("order.id", orderID))
	defer span.End()

	result, err := s.inner.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.String("order.id", orderID))
	}
	return result, nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	ordersPlaced metric.Int64Counter
	orderTotal   metric.Float64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	placed, _ := m.Int64Counter("payments.service.orders_placed", metric.WithDescription("Number of orders placed"))
	total, _ := m.Float64Counter("payments.service.order_total", metric.WithDescription("Sum of placed order totals"))
	return serviceMetrics{ordersPlaced: placed, orderTotal: total}
}

func (m serviceMetrics) recordPlaced(ctx context.Context, order *domain.Order) {
	attrs := metric.WithAttributes(
		attribute.String("order.payment_method", order.PaymentMethod),
		attribute.String("order.status", string(order.Status)),
	)
	if m.ordersPlaced != nil {
		m.ordersPlaced.Add(ctx, 1, attrs)
	}
	if m.orderTotal != nil {
		m.orderTotal.Add(ctx, order.Total.InexactFloat64(), attrs)
	}
}

var _ ports.Service = (*Service)(nil)
