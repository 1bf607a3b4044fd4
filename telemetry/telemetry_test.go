package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/longbridgeapp/assert"
	"go.opentelemetry.io/otel"

	"github.com/HailongWen/gostats/measure"
	"github.com/HailongWen/gostats/view"
)

func TestInstrumentedRegistry_RegisterAndLookup(t *testing.T) {
	tracer := otel.GetTracerProvider().Tracer("test")
	meter := otel.GetMeterProvider().Meter("test")

	r, err := NewInstrumentedRegistry(measure.NewRegistry(), tracer, meter)
	assert.Nil(t, err)

	ctx := context.Background()

	h := r.RegisterDouble(ctx, "latency", "ms", "")
	assert.True(t, measure.IDValid(h))

	got := r.DoubleByName(ctx, "latency")
	assert.Equal(t, h, got)
}

func TestInstrumentedData_AddAndSnapshot(t *testing.T) {
	tracer := otel.GetTracerProvider().Tracer("test")
	meter := otel.GetMeterProvider().Meter("test")

	now := time.Unix(0, 0)
	raw := view.New(now, view.Descriptor{Aggregation: view.SumAggregation(), Window: view.IntervalWindow(time.Minute)})

	d, err := NewInstrumentedData(raw, tracer, meter)
	assert.Nil(t, err)

	ctx := context.Background()
	d.Add(ctx, 3, []string{"A"}, now)

	snap, err := d.Snapshot(ctx, now)
	assert.Nil(t, err)
	assert.Equal(t, 3.0, snap.DoubleData()[view.NewTagKey([]string{"A"})])
}
