package view

import "time"

// intervalSubBucket holds one time-sliced accumulator: a running sum for
// Sum/Count aggregations, or a Distribution for Distribution aggregations.
type intervalSubBucket struct {
	sum  float64
	dist *Distribution
}

// intervalStatsObject is the ring of time-sliced sub-buckets an Interval
// view's row decays through. It is sized num_buckets+5 sub-buckets for a
// Distribution aggregation (the "+5" slack keeps per-read decay
// granularity under roughly a fifth of the window), or a handful of
// sub-buckets for Sum/Count, spanning the aggregation window's duration.
// Sub-buckets are addressed by an epoch (the sub-bucket's index along an
// infinite timeline, not a physical ring slot) and pruned lazily as writes
// advance past them, so a row's memory stays bounded to the sub-buckets
// that were inside the trailing window at its latest write. Reads
// (SumInto, DistributionInto) do not prune.
type intervalStatsObject struct {
	distribution bool
	buckets      BucketBoundaries
	duration     time.Duration
	width        time.Duration
	subBuckets   map[int64]*intervalSubBucket
}

const distributionRingSlack = 5

// newIntervalStatsObject constructs the ring for a row's first recording.
// size is the number of sub-buckets the window is divided into.
func newIntervalStatsObject(size int, duration time.Duration, buckets BucketBoundaries, distribution bool) *intervalStatsObject {
	if size < 1 {
		size = 1
	}

	return &intervalStatsObject{
		distribution: distribution,
		buckets:      buckets,
		duration:     duration,
		width:        duration / time.Duration(size),
		subBuckets:   make(map[int64]*intervalSubBucket),
	}
}

func (o *intervalStatsObject) epoch(t time.Time) int64 {
	return floorDiv(t.UnixNano(), int64(o.width))
}

// prune drops sub-buckets that have fully exited the trailing window as
// of now, bounding the ring's memory to roughly the sub-bucket count it
// was constructed with.
func (o *intervalStatsObject) prune(now time.Time) {
	low := o.epoch(now.Add(-o.duration))

	for e := range o.subBuckets {
		if e < low {
			delete(o.subBuckets, e)
		}
	}
}

func (o *intervalStatsObject) current(now time.Time) *intervalSubBucket {
	o.prune(now)

	e := o.epoch(now)

	sb, ok := o.subBuckets[e]
	if !ok {
		sb = &intervalSubBucket{}
		if o.distribution {
			sb.dist = newDistribution(o.buckets)
		}

		o.subBuckets[e] = sb
	}

	return sb
}

// MutableCurrentBucket returns the writable sum accumulator for now,
// creating and lazily advancing the ring as needed. Only valid for
// Sum/Count rows.
func (o *intervalStatsObject) MutableCurrentBucket(now time.Time) *float64 {
	return &o.current(now).sum
}

// AddToDistribution records value, classified into bucketIndex, into the
// sub-bucket for now. Only valid for Distribution rows.
func (o *intervalStatsObject) AddToDistribution(value float64, bucketIndex int, now time.Time) {
	o.current(now).dist.addAtBucket(value, bucketIndex)
}

// SumInto returns the sum of every sub-bucket still inside the trailing
// window ending at now.
func (o *intervalStatsObject) SumInto(now time.Time) float64 {
	low := o.epoch(now.Add(-o.duration))
	high := o.epoch(now)

	var sum float64

	for e, sb := range o.subBuckets {
		if e >= low && e <= high {
			sum += sb.sum
		}
	}

	return sum
}

// DistributionInto merges every sub-bucket still inside the trailing
// window ending at now into a single Distribution.
func (o *intervalStatsObject) DistributionInto(now time.Time) *Distribution {
	low := o.epoch(now.Add(-o.duration))
	high := o.epoch(now)

	out := newDistribution(o.buckets)

	for e, sb := range o.subBuckets {
		if e >= low && e <= high && sb.dist != nil {
			out.mergeFrom(sb.dist)
		}
	}

	return out
}

// floorDiv is integer division that rounds toward negative infinity,
// unlike Go's built-in / which truncates toward zero. Epoch arithmetic
// needs floor semantics so that times before the window's anchor resolve
// to the correct (negative) epoch rather than being rounded up toward it.
func floorDiv(a, b int64) int64 {
	q := a / b
	r := a % b

	if r != 0 && (r < 0) != (b < 0) {
		q--
	}

	return q
}
