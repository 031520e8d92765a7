package events

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingEvent struct{ Base }

func (pingEvent) EventName() string { return "test.ping" }

type failingPublisher struct{ calls int }

func (f *failingPublisher) Publish(context.Context, Event) error {
	f.calls++
	return errors.New("broker down")
}

func TestBestEffortSwallowsAndLogs(t *testing.T) {
	var buf bytes.Buffer
	inner := &failingPublisher{}
	pub := BestEffort(inner, slog.New(slog.NewJSONHandler(&buf, nil)))

	require.NoError(t, pub.Publish(context.Background(), pingEvent{Base{Timestamp: time.Now()}}))
	assert.Equal(t, 1, inner.calls)
	assert.Contains(t, buf.String(), "test.ping")
	assert.Contains(t, buf.String(), "broker down")
}

func TestBestEffortNilInner(t *testing.T) {
	assert.Equal(t, NoopPublisher, BestEffort(nil, nil))
}
