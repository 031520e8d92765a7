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

	"github.com/Apurer/marketplace-api/internal/domains/accounts/application"
	accounttypes "github.com/Apurer/marketplace-api/internal/domains/accounts/application/types"
	"github.com/Apurer/marketplace-api/internal/domains/accounts/ports"
)

const tracerName = "github.com/Apurer/marketplace-api/internal/domains/accounts/adapters/observability/service"

// Service decorates the accounts port with tracing, logging, and metrics. Tokens and passwords are
// never recorded.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:  inner,
		tracer: nooptrace.NewTracerProvider().Tracer(tracerName),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
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
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

func (s *Service) ResetPassword(ctx context.Context, input accounttypes.ResetPasswordInput) error {
	ctx, span := s.tracer.Start(ctx, "Service.ResetPassword",
		trace.WithAttributes(attribute.Bool("reset.confirm_supplied", input.ConfirmPassword != nil)))
	defer span.End()

	err := s.inner.ResetPassword(ctx, input)
	outcome := outcomeOf(err)
	s.metrics.recordReset(ctx, outcome)
	span.SetAttributes(attribute.String("reset.outcome", outcome))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		level := slog.LevelWarn
		if outcome == "error" {
			level = slog.LevelError
		}
		s.logger.LogAttrs(ctx, level, "password reset rejected", slog.String("outcome", outcome), slog.String("error", err.Error()))
		return err
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "password reset completed")
	return nil
}

func (s *Service) IssueResetToken(ctx context.Context, input accounttypes.IssueResetTokenInput) (string, error) {
	ctx, span := s.tracer.Start(ctx, "Service.IssueResetToken",
		trace.WithAttributes(attribute.Int64("account.id", input.AccountID)))
	defer span.End()

	token, err := s.inner.IssueResetToken(ctx, input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to issue reset token", slog.Int64("account.id", input.AccountID), slog.String("error", err.Error()))
		return "", err
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "reset token issued", slog.Int64("account.id", input.AccountID))
	return token, nil
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, application.ErrValidation):
		return "invalid_payload"
	case errors.Is(err, application.ErrInvalidToken):
		return "invalid_token"
	default:
		return "error"
	}
}

type serviceMetrics struct {
	resets metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	resets, _ := m.Int64Counter("accounts.service.password_resets", metric.WithDescription("Password reset attempts by outcome"))
	return serviceMetrics{resets: resets}
}

func (m serviceMetrics) recordReset(ctx context.Context, outcome string) {
	if m.resets == nil {
		return
	}
	m.resets.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

var _ ports.Service = (*Service)(nil)
