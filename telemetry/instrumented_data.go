package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/HailongWen/gostats/telemetry/attrs"
	"github.com/HailongWen/gostats/view"
)

// InstrumentedData wraps a *view.Data with spans and metrics around Add
// and the snapshot/copy conversions, so operators can see recording
// throughput and export latency without touching the recording
// front-end. The wrapped Data is not made internally synchronized by
// this decorator — it only observes calls the caller already serializes,
// per the no-locking contract view.Data documents.
type InstrumentedData struct {
	next   *view.Data
	tracer trace.Tracer

	calls     metric.Int64Counter
	durations metric.Float64Histogram
}

// NewInstrumentedData constructs a decorator around next.
func NewInstrumentedData(next *view.Data, tracer trace.Tracer, meter metric.Meter) (*InstrumentedData, error) {
	calls, err := meter.Int64Counter("gostats.view.calls")
	if err != nil {
		return nil, fmt.Errorf("create counter: %w", err)
	}

	durations, err := meter.Float64Histogram("gostats.view.duration.ms")
	if err != nil {
		return nil, fmt.Errorf("create histogram: %w", err)
	}

	return &InstrumentedData{next: next, tracer: tracer, calls: calls, durations: durations}, nil
}

// Add wraps Data.Add.
func (d *InstrumentedData) Add(ctx context.Context, value float64, tagValues []string, now time.Time) {
	ctx, span := d.startSpan(ctx, "view.Add",
		attribute.Int(attrs.AttrTagArity, len(tagValues)),
		attribute.String(attrs.AttrAggregationKind, d.next.Aggregation.Kind.String()),
	)
	defer span.End()

	start := time.Now()
	d.next.Add(value, tagValues, now)
	d.rec(ctx, "Add", start)
}

// Snapshot wraps the package-level view.Snapshot, exporting the wrapped
// Data at now.
func (d *InstrumentedData) Snapshot(ctx context.Context, now time.Time) (*view.Data, error) {
	ctx, span := d.startSpan(ctx, "view.Snapshot")
	defer span.End()

	start := time.Now()

	out, err := view.Snapshot(d.next, now)
	if err != nil {
		span.RecordError(err)
	} else {
		span.SetAttributes(attribute.Int(attrs.AttrRowCount, rowCount(out)))
	}

	d.rec(ctx, "Snapshot", start)

	return out, err
}

// Copy wraps the package-level view.Copy of the wrapped Data.
func (d *InstrumentedData) Copy(ctx context.Context) (*view.Data, error) {
	ctx, span := d.startSpan(ctx, "view.Copy")
	defer span.End()

	start := time.Now()

	out, err := view.Copy(d.next)
	if err != nil {
		span.RecordError(err)
	} else {
		span.SetAttributes(attribute.Int(attrs.AttrRowCount, rowCount(out)))
	}

	d.rec(ctx, "Copy", start)

	return out, err
}

func rowCount(d *view.Data) int {
	switch d.Type {
	case view.DoubleDataType:
		return len(d.DoubleData())
	case view.IntDataType:
		return len(d.IntData())
	case view.DistributionDataType:
		return len(d.DistributionData())
	default:
		return len(d.IntervalData())
	}
}

func (d *InstrumentedData) startSpan(ctx context.Context, name string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := d.tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
	if len(attributes) > 0 {
		span.SetAttributes(attributes...)
	}

	return ctx, span
}

func (d *InstrumentedData) rec(ctx context.Context, method string, start time.Time, extra ...attribute.KeyValue) {
	base := append([]attribute.KeyValue{attribute.String("method", method)}, extra...)

	d.calls.Add(ctx, 1, metric.WithAttributes(base...))
	d.durations.Record(ctx, float64(time.Since(start).Microseconds())/1000, metric.WithAttributes(base...))
}
