package telemetry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/embark/internal/core/ports"
)

var _ sdktrace.SpanProcessor = (*StageTimer)(nil)

// StageTimer is a span processor that logs how long each span took.
type StageTimer struct {
	logger    ports.Logger
	mu        sync.Mutex
	durations map[string]time.Duration
}

// NewStageTimer returns a StageTimer logging at debug level.
func NewStageTimer(logger ports.Logger) *StageTimer {
	return &StageTimer{
		logger:    logger,
		durations: make(map[string]time.Duration),
	}
}

// OnStart is called when a span starts.
func (t *StageTimer) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd records the span duration.
func (t *StageTimer) OnEnd(s sdktrace.ReadOnlySpan) {
	if !s.SpanContext().IsValid() {
		return
	}

	elapsed := s.EndTime().Sub(s.StartTime())

	t.mu.Lock()
	t.durations[s.Name()] += elapsed
	t.mu.Unlock()

	status := "finished"
	if s.Status().Code == codes.Error {
		status = "failed"
	}
	t.logger.Debug(fmt.Sprintf("%s %s in %s", s.Name(), status, elapsed.Round(time.Millisecond)))
}

// Durations returns the accumulated time per span name.
func (t *StageTimer) Durations() map[string]time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(map[string]time.Duration, len(t.durations))
	for k, v := range t.durations {
		out[k] = v
	}
	return out
}

// ForceFlush does nothing.
func (t *StageTimer) ForceFlush(context.Context) error {
	return nil
}

// Shutdown does nothing.
func (t *StageTimer) Shutdown(context.Context) error {
	return nil
}
