package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Meta contains metadata about one resolution operation for telemetry.
type Meta struct {
	Op     string // Operation: resolve|fetch|upgrade|sweep (required)
	Domain string // Normalized domain being resolved (required for resolve/fetch)
	Source string // Cascade source name (fetch only)
	Tier   string // Cascade tier: primary|secondary (fetch only)
}

// SpanName returns the deterministic span name for this operation.
// Format: icon.<op>
func (m Meta) SpanName() string {
	if m.Op == "" {
		return "icon.resolve"
	}
	return "icon." + m.Op
}

// Tracer wraps OpenTelemetry tracing with resolution-specific span
// management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: StartSpan must honor cancellation/deadlines.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	// StartSpan starts a new span for a resolution operation.
	StartSpan(ctx context.Context, meta Meta) (context.Context, trace.Span)

	// EndSpan ends the span, recording any error.
	EndSpan(span trace.Span, err error)
}

// tracerImpl is the concrete implementation of Tracer.
type tracerImpl struct {
	tracer trace.Tracer
}

// newTracer creates a new Tracer wrapping the given OpenTelemetry tracer.
func newTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

// StartSpan starts a new span with resolution metadata as attributes.
func (t *tracerImpl) StartSpan(ctx context.Context, meta Meta) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("icon.domain", meta.Domain),
		attribute.Bool("icon.error", false), // Updated in EndSpan if error
	}

	if meta.Source != "" {
		attrs = append(attrs, attribute.String("icon.source", meta.Source))
	}
	if meta.Tier != "" {
		attrs = append(attrs, attribute.String("icon.tier", meta.Tier))
	}

	ctx, span := t.tracer.Start(ctx, meta.SpanName(),
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)

	return ctx, span
}

// EndSpan ends the span and records the error status if present.
func (t *tracerImpl) EndSpan(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.Bool("icon.error", true))
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// noopTracer is a tracer that does nothing.
type noopTracer struct {
	noop trace.Tracer
}

// newNoopTracer creates a no-op tracer.
func newNoopTracer() Tracer {
	return &noopTracer{
		noop: tracenoop.NewTracerProvider().Tracer("noop"),
	}
}

func (t *noopTracer) StartSpan(ctx context.Context, meta Meta) (context.Context, trace.Span) {
	return t.noop.Start(ctx, meta.SpanName())
}

func (t *noopTracer) EndSpan(span trace.Span, err error) {
	span.End()
}
