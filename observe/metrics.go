package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Resolution outcomes recorded on the resolve counter.
const (
	OutcomeMemoryHit = "memory_hit"
	OutcomeStoreHit  = "store_hit"
	OutcomeResolved  = "resolved"
	OutcomeFallback  = "fallback"
	OutcomeSoftServe = "soft_serve"
)

// Metrics records resolution and fetch metrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must honor cancellation/deadlines and return quickly.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordResolve records one completed resolution with its outcome.
	RecordResolve(ctx context.Context, meta Meta, duration time.Duration, outcome string)

	// RecordFetch records one cascade fetch attempt.
	RecordFetch(ctx context.Context, meta Meta, duration time.Duration, err error)
}

// metricsImpl is the concrete implementation of Metrics.
type metricsImpl struct {
	meter           metric.Meter
	resolveCount    metric.Int64Counter
	resolveDuration metric.Float64Histogram
	fetchCount      metric.Int64Counter
	fetchErrors     metric.Int64Counter
	fetchDuration   metric.Float64Histogram
}

// newMetrics creates a new Metrics instance with the given meter.
func newMetrics(meter metric.Meter) (*metricsImpl, error) {
	resolveCount, err := meter.Int64Counter(
		"icon.resolve.total",
		metric.WithDescription("Total number of icon resolutions"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	resolveDuration, err := meter.Float64Histogram(
		"icon.resolve.duration_ms",
		metric.WithDescription("Icon resolution duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	fetchCount, err := meter.Int64Counter(
		"icon.fetch.total",
		metric.WithDescription("Total number of cascade fetch attempts"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, err
	}

	fetchErrors, err := meter.Int64Counter(
		"icon.fetch.errors",
		metric.WithDescription("Total number of failed cascade fetch attempts"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	fetchDuration, err := meter.Float64Histogram(
		"icon.fetch.duration_ms",
		metric.WithDescription("Cascade fetch attempt duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		meter:           meter,
		resolveCount:    resolveCount,
		resolveDuration: resolveDuration,
		fetchCount:      fetchCount,
		fetchErrors:     fetchErrors,
		fetchDuration:   fetchDuration,
	}, nil
}

// RecordResolve records metrics for one completed resolution.
func (m *metricsImpl) RecordResolve(ctx context.Context, meta Meta, duration time.Duration, outcome string) {
	opt := metric.WithAttributes(
		attribute.String("icon.outcome", outcome),
	)

	m.resolveCount.Add(ctx, 1, opt)
	m.resolveDuration.Record(ctx, float64(duration.Milliseconds()), opt)
}

// RecordFetch records metrics for one cascade fetch attempt.
func (m *metricsImpl) RecordFetch(ctx context.Context, meta Meta, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("icon.source", meta.Source),
	}
	if meta.Tier != "" {
		attrs = append(attrs, attribute.String("icon.tier", meta.Tier))
	}
	opt := metric.WithAttributes(attrs...)

	m.fetchCount.Add(ctx, 1, opt)
	if err != nil {
		m.fetchErrors.Add(ctx, 1, opt)
	}
	m.fetchDuration.Record(ctx, float64(duration.Milliseconds()), opt)
}

// noopMetrics is a metrics implementation that does nothing.
type noopMetrics struct{}

func (m *noopMetrics) RecordResolve(ctx context.Context, meta Meta, duration time.Duration, outcome string) {
}

func (m *noopMetrics) RecordFetch(ctx context.Context, meta Meta, duration time.Duration, err error) {
}
