package view

import "math"

// Distribution is a running histogram with online mean and variance,
// updated one value at a time by Welford's algorithm.
type Distribution struct {
	buckets                BucketBoundaries
	count                  int64
	mean                   float64
	sumOfSquaredDeviation  float64
	min, max               float64
	bucketCounts           []int64
}

// newDistribution returns an empty Distribution bucketed by b.
func newDistribution(b BucketBoundaries) *Distribution {
	return &Distribution{
		buckets:      b,
		min:          math.Inf(1),
		max:          math.Inf(-1),
		bucketCounts: make([]int64, b.NumBuckets()),
	}
}

// Add records value, classifying it into its bucket via buckets.
func (d *Distribution) Add(value float64) {
	d.addAtBucket(value, d.buckets.BucketForValue(value))
}

// addAtBucket records value into a precomputed bucket index, skipping the
// boundary search. Used by intervalStatsObject, which already knows the
// bucket a value belongs in before delegating to the sub-bucket's
// Distribution.
func (d *Distribution) addAtBucket(value float64, bucketIndex int) {
	if value < d.min {
		d.min = value
	}

	if value > d.max {
		d.max = value
	}

	d.count++
	d.bucketCounts[bucketIndex]++

	if d.count == 1 {
		d.mean = value

		return
	}

	oldMean := d.mean
	d.mean += (value - d.mean) / float64(d.count)
	d.sumOfSquaredDeviation += (value - oldMean) * (value - d.mean)
}

// mergeFrom folds other into d using the parallel-variance combination
// formula, so that merging sub-bucket histograms produces the same mean
// and variance as if every sample had been added to a single
// Distribution directly.
func (d *Distribution) mergeFrom(other *Distribution) {
	if other.count == 0 {
		return
	}

	if d.count == 0 {
		d.count = other.count
		d.mean = other.mean
		d.sumOfSquaredDeviation = other.sumOfSquaredDeviation
		d.min = other.min
		d.max = other.max

		for i, c := range other.bucketCounts {
			d.bucketCounts[i] += c
		}

		return
	}

	n1, n2 := float64(d.count), float64(other.count)
	total := n1 + n2
	delta := other.mean - d.mean

	d.mean += delta * n2 / total
	d.sumOfSquaredDeviation += other.sumOfSquaredDeviation + delta*delta*n1*n2/total
	d.count += other.count

	if other.min < d.min {
		d.min = other.min
	}

	if other.max > d.max {
		d.max = other.max
	}

	for i, c := range other.bucketCounts {
		d.bucketCounts[i] += c
	}
}

// Count returns the number of values recorded.
func (d *Distribution) Count() int64 { return d.count }

// Mean returns the running mean of recorded values, or 0 if none have
// been recorded.
func (d *Distribution) Mean() float64 { return d.mean }

// SumOfSquaredDeviation returns Welford's running sum of squared
// deviations from the mean, from which variance is sum/(count-1).
func (d *Distribution) SumOfSquaredDeviation() float64 { return d.sumOfSquaredDeviation }

// Min returns the smallest recorded value, or +Inf if none have been
// recorded.
func (d *Distribution) Min() float64 { return d.min }

// Max returns the largest recorded value, or -Inf if none have been
// recorded.
func (d *Distribution) Max() float64 { return d.max }

// BucketCounts returns the per-bucket recorded counts, indexed per
// BucketBoundaries.BucketForValue.
func (d *Distribution) BucketCounts() []int64 { return d.bucketCounts }

// clone returns an independent copy of d.
func (d *Distribution) clone() *Distribution {
	cp := *d
	cp.bucketCounts = make([]int64, len(d.bucketCounts))
	copy(cp.bucketCounts, d.bucketCounts)

	return &cp
}
