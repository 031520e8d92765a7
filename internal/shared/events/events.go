// Package events holds the domain event contract shared by the bounded contexts.
package events

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// Event is implemented by every domain event published outside its bounded context.
type Event interface {
	EventName() string
	OccurredAt() time.Time
}

// Base provides common event metadata.
type Base struct {
	Timestamp time.Time `json:"occurredAt"`
}

// OccurredAt returns when the event occurred.
func (e Base) OccurredAt() time.Time {
	return e.Timestamp
}

// Publisher pushes domain events to interested consumers.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NoopPublisher drops every event. Used when no broker is configured.
var NoopPublisher Publisher = noopPublisher{}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, Event) error { return nil }

// BestEffort wraps a publisher so delivery failures are logged instead of returned.
func BestEffort(inner Publisher, logger *slog.Logger) Publisher {
	if inner == nil {
		return NoopPublisher
	}
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return bestEffort{inner: inner, logger: logger}
}

type bestEffort struct {
	inner  Publisher
	logger *slog.Logger
}

func (p bestEffort) Publish(ctx context.Context, event Event) error {
	if err := p.inner.Publish(ctx, event); err != nil {
		p.logger.WarnContext(ctx, "event publish failed",
			slog.String("event", event.EventName()),
			slog.String("error", err.Error()))
	}
	return nil
}
