// Package view implements the aggregation engine that accumulates
// recorded measurements into per-tag-combination rows and exports them
// as point-in-time snapshots. The engine itself performs no locking: a
// Data value must be externally synchronized by its caller if Add and
// the read accessors (or Snapshot/Copy) can run concurrently.
package view

import (
	"time"

	"github.com/hyp3rd/ewrap"

	"github.com/HailongWen/gostats/errors"
)

// DataType discriminates which of Data's four row maps is active.
type DataType int

const (
	// DoubleDataType backs a Cumulative Sum view: map[TagKey]float64.
	DoubleDataType DataType = iota
	// IntDataType backs a Cumulative Count view: map[TagKey]int64.
	IntDataType
	// DistributionDataType backs a Cumulative Distribution view.
	DistributionDataType
	// IntervalDataType backs any Interval-window view, regardless of
	// aggregation kind.
	IntervalDataType
)

// Data is the tagged union a view's rows live in. Exactly one of its
// four row maps is populated, selected once at construction from the
// view's (Window, Aggregation) pair and never changed afterward.
type Data struct {
	Aggregation Aggregation
	Window      AggregationWindow
	StartTime   time.Time
	EndTime     time.Time
	Type        DataType

	doubleData       *shardedMap[float64]
	intData          *shardedMap[int64]
	distributionData *shardedMap[*Distribution]
	intervalData     *shardedMap[*intervalStatsObject]
}

// New returns an empty Data ready to Add recordings into, started at
// startTime and shaped by descriptor.
func New(startTime time.Time, descriptor Descriptor) *Data {
	d := &Data{
		Aggregation: descriptor.Aggregation,
		Window:      descriptor.Window,
		StartTime:   startTime,
		EndTime:     startTime,
	}

	switch {
	case descriptor.Window.Kind == IntervalKind:
		d.Type = IntervalDataType
		d.intervalData = newShardedMap[*intervalStatsObject]()
	case descriptor.Aggregation.Kind == SumKind:
		d.Type = DoubleDataType
		d.doubleData = newShardedMap[float64]()
	case descriptor.Aggregation.Kind == CountKind:
		d.Type = IntDataType
		d.intData = newShardedMap[int64]()
	default:
		d.Type = DistributionDataType
		d.distributionData = newShardedMap[*Distribution]()
	}

	return d
}

// Add records value under the row identified by tagValues, as observed
// at now. now advances EndTime to the latest timestamp seen for every
// Data; beyond that it only matters for Interval-window rows, whose
// sub-buckets decay by timestamp, and Cumulative rows ignore it.
func (d *Data) Add(value float64, tagValues []string, now time.Time) {
	if now.After(d.EndTime) {
		d.EndTime = now
	}

	key := NewTagKey(tagValues)

	switch d.Type {
	case DoubleDataType:
		cur, _ := d.doubleData.Get(key)
		d.doubleData.Set(key, cur+value)
	case IntDataType:
		cur, _ := d.intData.Get(key)
		d.intData.Set(key, cur+1)
	case DistributionDataType:
		dist, ok := d.distributionData.Get(key)
		if !ok {
			dist = newDistribution(d.Aggregation.Buckets)
			d.distributionData.Set(key, dist)
		}

		dist.Add(value)
	case IntervalDataType:
		d.addInterval(key, value, now)
	}
}

func (d *Data) addInterval(key TagKey, value float64, now time.Time) {
	obj, ok := d.intervalData.Get(key)
	if !ok {
		obj = newIntervalStatsObject(
			intervalRingSize(d.Aggregation),
			d.Window.Duration,
			d.Aggregation.Buckets,
			d.Aggregation.Kind == DistributionKind,
		)
		d.intervalData.Set(key, obj)
	}

	switch d.Aggregation.Kind {
	case SumKind:
		*obj.MutableCurrentBucket(now) += value
	case CountKind:
		*obj.MutableCurrentBucket(now)++
	case DistributionKind:
		obj.AddToDistribution(value, d.Aggregation.Buckets.BucketForValue(value), now)
	}
}

// intervalRingSize picks the number of sub-buckets an Interval row's
// window is divided into: NumBuckets()+distributionRingSlack for a
// Distribution aggregation, and distributionRingSlack alone for Sum and
// Count.
func intervalRingSize(agg Aggregation) int {
	n := 0
	if agg.Kind == DistributionKind {
		n = agg.Buckets.NumBuckets()
	}

	return n + distributionRingSlack
}

// Snapshot exports other, an Interval-window Data, into a new Cumulative
// Data covering [start_time, now], where start_time is the later of
// other's own start and now minus its window duration. Snapshot fails
// with a PreconditionViolation if other is not an Interval-window Data.
func Snapshot(other *Data, now time.Time) (*Data, error) {
	if other.Window.Kind != IntervalKind {
		errors.Diagnostic("view: Snapshot called on a non-interval Data (window kind %v)", other.Window.Kind)

		return nil, ewrap.Wrap(errors.ErrPrecondition, "snapshot requires an interval-window view")
	}

	start := other.StartTime
	if cutoff := now.Add(-other.Window.Duration); cutoff.After(start) {
		start = cutoff
	}

	out := &Data{
		Aggregation: other.Aggregation,
		Window:      CumulativeWindow(),
		StartTime:   start,
		EndTime:     now,
	}

	switch other.Aggregation.Kind {
	case SumKind, CountKind:
		out.Type = DoubleDataType
		out.doubleData = newShardedMap[float64]()

		for key, obj := range other.intervalData.Snapshot() {
			out.doubleData.Set(key, obj.SumInto(now))
		}
	case DistributionKind:
		out.Type = DistributionDataType
		out.distributionData = newShardedMap[*Distribution]()

		for key, obj := range other.intervalData.Snapshot() {
			out.distributionData.Set(key, obj.DistributionInto(now))
		}
	}

	return out, nil
}

// Copy returns an independent copy of cumulative. Copy fails with a
// PreconditionViolation if cumulative is an Interval-window Data: a ring
// of live sub-buckets has no well-defined copy.
func Copy(cumulative *Data) (*Data, error) {
	if cumulative.Window.Kind != CumulativeKind {
		errors.Diagnostic("view: Copy called on a non-cumulative Data (window kind %v)", cumulative.Window.Kind)

		return nil, ewrap.Wrap(errors.ErrPrecondition, "copy requires a cumulative view")
	}

	out := &Data{
		Aggregation: cumulative.Aggregation,
		Window:      cumulative.Window,
		StartTime:   cumulative.StartTime,
		EndTime:     cumulative.EndTime,
		Type:        cumulative.Type,
	}

	switch cumulative.Type {
	case DoubleDataType:
		out.doubleData = newShardedMap[float64]()
		for key, v := range cumulative.doubleData.Snapshot() {
			out.doubleData.Set(key, v)
		}
	case IntDataType:
		out.intData = newShardedMap[int64]()
		for key, v := range cumulative.intData.Snapshot() {
			out.intData.Set(key, v)
		}
	case DistributionDataType:
		out.distributionData = newShardedMap[*Distribution]()
		for key, v := range cumulative.distributionData.Snapshot() {
			out.distributionData.Set(key, v.clone())
		}
	}

	return out, nil
}

// DoubleData returns the active row map for a Cumulative Sum Data, or
// nil if d.Type is not DoubleDataType.
func (d *Data) DoubleData() map[TagKey]float64 {
	if d.doubleData == nil {
		return nil
	}

	return d.doubleData.Snapshot()
}

// IntData returns the active row map for a Cumulative Count Data, or nil
// if d.Type is not IntDataType.
func (d *Data) IntData() map[TagKey]int64 {
	if d.intData == nil {
		return nil
	}

	return d.intData.Snapshot()
}

// DistributionData returns the active row map for a Cumulative
// Distribution Data, or nil if d.Type is not DistributionDataType.
func (d *Data) DistributionData() map[TagKey]*Distribution {
	if d.distributionData == nil {
		return nil
	}

	return d.distributionData.Snapshot()
}

// IntervalData returns the active row map for an Interval-window Data,
// or nil if d.Type is not IntervalDataType.
func (d *Data) IntervalData() map[TagKey]*intervalStatsObject {
	if d.intervalData == nil {
		return nil
	}

	return d.intervalData.Snapshot()
}
