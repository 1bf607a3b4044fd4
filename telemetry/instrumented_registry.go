// Package telemetry provides OpenTelemetry decorators around the
// measure registry and view data engine, instrumenting their own
// operations (registration calls, Add throughput, snapshot latency).
// This is self-instrumentation of the core, distinct from the recording
// front-end and exporters that stay out of scope — grounded on the
// teacher's pkg/middleware otel_tracing.go/otel_metrics.go decorator
// pair, here combined into a single decorator per wrapped type since
// the wrapped surface is small enough not to need separable middleware.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/HailongWen/gostats/measure"
	"github.com/HailongWen/gostats/telemetry/attrs"
)

// InstrumentedRegistry wraps a *measure.Registry with spans and metrics
// around every registration and lookup call.
type InstrumentedRegistry struct {
	next   *measure.Registry
	tracer trace.Tracer

	calls     metric.Int64Counter
	durations metric.Float64Histogram
}

// NewInstrumentedRegistry constructs a decorator around next using meter
// for metrics and tracer for spans.
func NewInstrumentedRegistry(next *measure.Registry, tracer trace.Tracer, meter metric.Meter) (*InstrumentedRegistry, error) {
	calls, err := meter.Int64Counter("gostats.measure.calls")
	if err != nil {
		return nil, fmt.Errorf("create counter: %w", err)
	}

	durations, err := meter.Float64Histogram("gostats.measure.duration.ms")
	if err != nil {
		return nil, fmt.Errorf("create histogram: %w", err)
	}

	return &InstrumentedRegistry{next: next, tracer: tracer, calls: calls, durations: durations}, nil
}

// RegisterDouble wraps Registry.RegisterDouble.
func (r *InstrumentedRegistry) RegisterDouble(ctx context.Context, name, unit, description string) measure.Handle {
	ctx, span := r.startSpan(ctx, "measure.RegisterDouble", attribute.String(attrs.AttrMeasureName, name))
	defer span.End()

	start := time.Now()
	h := r.next.RegisterDouble(name, unit, description)
	r.rec(ctx, "RegisterDouble", start, attribute.String(attrs.AttrMeasureType, measure.Double.String()))

	return h
}

// RegisterInt wraps Registry.RegisterInt.
func (r *InstrumentedRegistry) RegisterInt(ctx context.Context, name, unit, description string) measure.Handle {
	ctx, span := r.startSpan(ctx, "measure.RegisterInt", attribute.String(attrs.AttrMeasureName, name))
	defer span.End()

	start := time.Now()
	h := r.next.RegisterInt(name, unit, description)
	r.rec(ctx, "RegisterInt", start, attribute.String(attrs.AttrMeasureType, measure.Int64.String()))

	return h
}

// DescriptorByName wraps Registry.DescriptorByName.
func (r *InstrumentedRegistry) DescriptorByName(ctx context.Context, name string) (measure.Descriptor, error) {
	ctx, span := r.startSpan(ctx, "measure.DescriptorByName", attribute.String(attrs.AttrMeasureName, name))
	defer span.End()

	start := time.Now()

	d, err := r.next.DescriptorByName(name)
	if err != nil {
		span.RecordError(err)
	}

	r.rec(ctx, "DescriptorByName", start)

	return d, err
}

// DoubleByName wraps Registry.DoubleByName.
func (r *InstrumentedRegistry) DoubleByName(ctx context.Context, name string) measure.Handle {
	ctx, span := r.startSpan(ctx, "measure.DoubleByName", attribute.String(attrs.AttrMeasureName, name))
	defer span.End()

	start := time.Now()
	h := r.next.DoubleByName(name)
	r.rec(ctx, "DoubleByName", start)

	return h
}

// IntByName wraps Registry.IntByName.
func (r *InstrumentedRegistry) IntByName(ctx context.Context, name string) measure.Handle {
	ctx, span := r.startSpan(ctx, "measure.IntByName", attribute.String(attrs.AttrMeasureName, name))
	defer span.End()

	start := time.Now()
	h := r.next.IntByName(name)
	r.rec(ctx, "IntByName", start)

	return h
}

func (r *InstrumentedRegistry) startSpan(ctx context.Context, name string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := r.tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
	if len(attributes) > 0 {
		span.SetAttributes(attributes...)
	}

	return ctx, span
}

func (r *InstrumentedRegistry) rec(ctx context.Context, method string, start time.Time, extra ...attribute.KeyValue) {
	base := append([]attribute.KeyValue{attribute.String("method", method)}, extra...)

	r.calls.Add(ctx, 1, metric.WithAttributes(base...))
	r.durations.Record(ctx, float64(time.Since(start).Microseconds())/1000, metric.WithAttributes(base...))
}
