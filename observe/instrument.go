package observe

import (
	"context"
	"time"
)

// OpFunc is the signature for instrumented operations. The returned outcome
// labels the resolve counter; fetch attempts report errors instead.
type OpFunc func(ctx context.Context) (outcome string, err error)

// Instrument wraps resolution operations with tracing, metrics and logging.
//
// Contract:
//   - Concurrency: methods are safe for concurrent use.
//   - Context: propagates context through tracing spans.
//   - Errors: errors from the wrapped function are recorded and propagated
//     unchanged.
type Instrument struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewInstrument creates a new Instrument with the given observability
// components.
func NewInstrument(tracer Tracer, metrics Metrics, logger Logger) *Instrument {
	return &Instrument{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// FromObserver creates an Instrument from an Observer.
func FromObserver(obs Observer) (*Instrument, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}

	metrics, err := newMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewInstrument(newTracer(obs.Tracer()), metrics, obs.Logger()), nil
}

// NewNopInstrument creates an Instrument that discards all telemetry.
func NewNopInstrument() *Instrument {
	return NewInstrument(newNoopTracer(), &noopMetrics{}, &nopLogger{})
}

// Logger returns the underlying logger, scoped helpers included.
func (in *Instrument) Logger() Logger {
	return in.logger
}

// Resolve runs fn inside a resolve span and records the resolve metric with
// the outcome fn reports.
func (in *Instrument) Resolve(ctx context.Context, meta Meta, fn OpFunc) (string, error) {
	ctx, span := in.tracer.StartSpan(ctx, meta)
	start := time.Now()

	outcome, err := fn(ctx)

	duration := time.Since(start)
	in.tracer.EndSpan(span, err)
	in.metrics.RecordResolve(ctx, meta, duration, outcome)

	log := in.logger.WithDomain(meta.Domain)
	fields := []Field{
		{Key: "outcome", Value: outcome},
		{Key: "duration_ms", Value: float64(duration.Milliseconds())},
	}
	if err != nil {
		fields = append(fields, Field{Key: "error", Value: err.Error()})
		log.Error(ctx, "icon resolution failed", fields...)
	} else {
		log.Debug(ctx, "icon resolution completed", fields...)
	}

	return outcome, err
}

// Fetch runs fn inside a fetch span and records the fetch counters. A
// failed attempt is normal cascade traffic, so it logs at debug.
func (in *Instrument) Fetch(ctx context.Context, meta Meta, fn func(ctx context.Context) error) error {
	ctx, span := in.tracer.StartSpan(ctx, meta)
	start := time.Now()

	err := fn(ctx)

	duration := time.Since(start)
	in.tracer.EndSpan(span, err)
	in.metrics.RecordFetch(ctx, meta, duration, err)

	fields := []Field{
		{Key: "source", Value: meta.Source},
		{Key: "tier", Value: meta.Tier},
		{Key: "duration_ms", Value: float64(duration.Milliseconds())},
	}
	if err != nil {
		fields = append(fields, Field{Key: "error", Value: err.Error()})
	}
	in.logger.WithDomain(meta.Domain).Debug(ctx, "cascade fetch attempt", fields...)

	return err
}
