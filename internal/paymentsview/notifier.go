package paymentsview

import (
	"context"
	"log/slog"
)

// Notifier surfaces user-facing messages.
type Notifier interface {
	Error(ctx context.Context, message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, message string)

func (f NotifierFunc) Error(ctx context.Context, message string) { f(ctx, message) }

// LogNotifier writes notifications to a structured logger.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Error(ctx context.Context, message string) {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.ErrorContext(ctx, message, slog.String("component", "payments-view"))
}
