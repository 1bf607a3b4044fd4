package view

import (
	"sort"
	"time"
)

// AggregationKind selects how a view reduces recorded values into a
// single data point per row.
type AggregationKind int

const (
	// SumKind accumulates recorded values by addition.
	SumKind AggregationKind = iota
	// CountKind counts recordings, ignoring their values.
	CountKind
	// DistributionKind accumulates recorded values into a histogram with
	// running mean and variance, per BucketBoundaries.
	DistributionKind
)

// String returns a human-readable name for the kind.
func (k AggregationKind) String() string {
	switch k {
	case SumKind:
		return "Sum"
	case CountKind:
		return "Count"
	case DistributionKind:
		return "Distribution"
	default:
		return "Unknown"
	}
}

// Aggregation pairs an AggregationKind with the bucket boundaries it
// needs (only meaningful for DistributionKind).
type Aggregation struct {
	Kind    AggregationKind
	Buckets BucketBoundaries
}

// SumAggregation returns a Sum aggregation.
func SumAggregation() Aggregation { return Aggregation{Kind: SumKind} }

// CountAggregation returns a Count aggregation.
func CountAggregation() Aggregation { return Aggregation{Kind: CountKind} }

// DistributionAggregation returns a Distribution aggregation bucketed by b.
func DistributionAggregation(b BucketBoundaries) Aggregation {
	return Aggregation{Kind: DistributionKind, Buckets: b}
}

// WindowKind selects whether a view retains all history (Cumulative) or
// only a trailing slice of it (Interval).
type WindowKind int

const (
	// CumulativeKind retains every recorded value since the view was created.
	CumulativeKind WindowKind = iota
	// IntervalKind retains only the trailing Duration of recorded values.
	IntervalKind
)

// AggregationWindow selects a WindowKind and, for IntervalKind, the
// trailing duration it retains.
type AggregationWindow struct {
	Kind     WindowKind
	Duration time.Duration
}

// CumulativeWindow returns a Cumulative window.
func CumulativeWindow() AggregationWindow { return AggregationWindow{Kind: CumulativeKind} }

// IntervalWindow returns an Interval window retaining the trailing d.
func IntervalWindow(d time.Duration) AggregationWindow {
	return AggregationWindow{Kind: IntervalKind, Duration: d}
}

// Descriptor is the minimal description of a view's shape that Data
// needs to select and operate on its storage: the aggregation it reduces
// values with and the window it retains them over. The full view
// descriptor — adding the measure it observes and the tag keys it
// groups by — lives with the recording front end, outside this package.
type Descriptor struct {
	Aggregation Aggregation
	Window      AggregationWindow
}

// BucketBoundaries is an immutable, sorted set of histogram bucket edges.
// len(bounds)+1 buckets result: values less than bounds[0] fall in bucket
// 0, values in [bounds[i-1], bounds[i]) fall in bucket i, and values at
// least bounds[len(bounds)-1] fall in the last bucket.
type BucketBoundaries struct {
	bounds []float64
}

// NewBucketBoundaries copies and sorts bounds into a BucketBoundaries.
func NewBucketBoundaries(bounds []float64) BucketBoundaries {
	cp := make([]float64, len(bounds))
	copy(cp, bounds)
	sort.Float64s(cp)

	return BucketBoundaries{bounds: cp}
}

// NumBuckets returns the number of histogram buckets these boundaries
// divide the real line into.
func (b BucketBoundaries) NumBuckets() int {
	return len(b.bounds) + 1
}

// BucketForValue returns the index of the bucket v falls into.
func (b BucketBoundaries) BucketForValue(v float64) int {
	for i, bound := range b.bounds {
		if v < bound {
			return i
		}
	}

	return len(b.bounds)
}
