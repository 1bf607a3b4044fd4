package view

import (
	"testing"
	"time"

	"github.com/longbridgeapp/assert"
)

var epoch = time.Unix(0, 0)

func TestData_SumCumulative(t *testing.T) {
	d := New(epoch, Descriptor{Aggregation: SumAggregation(), Window: CumulativeWindow()})

	d.Add(1, []string{"A"}, epoch)
	d.Add(3, []string{"A"}, epoch)
	d.Add(2, []string{"B"}, epoch)

	assert.Equal(t, 4.0, d.DoubleData()[NewTagKey([]string{"A"})])
	assert.Equal(t, 2.0, d.DoubleData()[NewTagKey([]string{"B"})])
}

func TestData_CountCumulative(t *testing.T) {
	d := New(epoch, Descriptor{Aggregation: CountAggregation(), Window: CumulativeWindow()})

	d.Add(1, []string{"A"}, epoch)
	d.Add(99, []string{"A"}, epoch)
	d.Add(1, []string{"B"}, epoch)

	assert.Equal(t, int64(2), d.IntData()[NewTagKey([]string{"A"})])
	assert.Equal(t, int64(1), d.IntData()[NewTagKey([]string{"B"})])
}

func TestData_DistributionCumulative(t *testing.T) {
	bounds := NewBucketBoundaries([]float64{10})
	d := New(epoch, Descriptor{Aggregation: DistributionAggregation(bounds), Window: CumulativeWindow()})

	d.Add(5, []string{"A"}, epoch)
	d.Add(15, []string{"A"}, epoch)
	d.Add(10, []string{"A"}, epoch)

	dist := d.DistributionData()[NewTagKey([]string{"A"})]
	assert.Equal(t, int64(3), dist.Count())
	assert.Equal(t, 10.0, dist.Mean())
	assert.Equal(t, 50.0, dist.SumOfSquaredDeviation())
	assert.Equal(t, 5.0, dist.Min())
	assert.Equal(t, 15.0, dist.Max())
	assert.Equal(t, []int64{1, 2}, dist.BucketCounts())
}

func TestData_SnapshotOfCumulativeFails(t *testing.T) {
	d := New(epoch, Descriptor{Aggregation: SumAggregation(), Window: CumulativeWindow()})

	_, err := Snapshot(d, epoch)
	assert.NotNil(t, err)
}

func TestData_CopyOfIntervalFails(t *testing.T) {
	d := New(epoch, Descriptor{Aggregation: SumAggregation(), Window: IntervalWindow(time.Minute)})

	_, err := Copy(d)
	assert.NotNil(t, err)
}

func TestData_SnapshotToSum(t *testing.T) {
	d := New(epoch, Descriptor{Aggregation: SumAggregation(), Window: IntervalWindow(time.Minute)})

	d.Add(1, []string{"A"}, epoch)
	d.Add(3, []string{"A"}, epoch)
	d.Add(2, []string{"B"}, epoch)

	half := epoch.Add(30 * time.Second)
	d.Add(2, []string{"A"}, half)

	snap1, err := Snapshot(d, half)
	assert.Nil(t, err)
	assert.Equal(t, 6.0, snap1.DoubleData()[NewTagKey([]string{"A"})])
	assert.Equal(t, 2.0, snap1.DoubleData()[NewTagKey([]string{"B"})])

	full := epoch.Add(90 * time.Second)
	snap2, err := Snapshot(d, full)
	assert.Nil(t, err)
	assert.Equal(t, 2.0, snap2.DoubleData()[NewTagKey([]string{"A"})])
	assert.Equal(t, 0.0, snap2.DoubleData()[NewTagKey([]string{"B"})])
}

func TestData_SnapshotToCount(t *testing.T) {
	d := New(epoch, Descriptor{Aggregation: CountAggregation(), Window: IntervalWindow(time.Minute)})

	d.Add(1, []string{"A"}, epoch)
	d.Add(1, []string{"A"}, epoch)
	d.Add(1, []string{"B"}, epoch)

	half := epoch.Add(30 * time.Second)
	d.Add(1, []string{"A"}, half)

	snap1, err := Snapshot(d, half)
	assert.Nil(t, err)
	assert.Equal(t, 3.0, snap1.DoubleData()[NewTagKey([]string{"A"})])
	assert.Equal(t, 1.0, snap1.DoubleData()[NewTagKey([]string{"B"})])

	full := epoch.Add(90 * time.Second)
	snap2, err := Snapshot(d, full)
	assert.Nil(t, err)
	assert.Equal(t, 1.0, snap2.DoubleData()[NewTagKey([]string{"A"})])
	assert.Equal(t, 0.0, snap2.DoubleData()[NewTagKey([]string{"B"})])
}

func TestData_SnapshotToDistribution(t *testing.T) {
	bounds := NewBucketBoundaries([]float64{10})
	d := New(epoch, Descriptor{Aggregation: DistributionAggregation(bounds), Window: IntervalWindow(time.Minute)})

	d.Add(5, []string{"A"}, epoch)
	d.Add(15, []string{"A"}, epoch)
	d.Add(0, []string{"B"}, epoch)

	half := epoch.Add(30 * time.Second)
	d.Add(10, []string{"A"}, half)

	snap1, err := Snapshot(d, half)
	assert.Nil(t, err)

	a1 := snap1.DistributionData()[NewTagKey([]string{"A"})]
	assert.Equal(t, int64(3), a1.Count())
	assert.Equal(t, 10.0, a1.Mean())
	assert.Equal(t, 50.0, a1.SumOfSquaredDeviation())
	assert.Equal(t, 5.0, a1.Min())
	assert.Equal(t, 15.0, a1.Max())
	assert.Equal(t, []int64{1, 2}, a1.BucketCounts())

	b1 := snap1.DistributionData()[NewTagKey([]string{"B"})]
	assert.Equal(t, int64(1), b1.Count())

	full := epoch.Add(90 * time.Second)
	snap2, err := Snapshot(d, full)
	assert.Nil(t, err)

	a2 := snap2.DistributionData()[NewTagKey([]string{"A"})]
	assert.Equal(t, int64(1), a2.Count())
	assert.Equal(t, 10.0, a2.Mean())
	assert.Equal(t, 0.0, a2.SumOfSquaredDeviation())
	assert.Equal(t, 10.0, a2.Min())
	assert.Equal(t, 10.0, a2.Max())
	assert.Equal(t, []int64{0, 1}, a2.BucketCounts())

	b2 := snap2.DistributionData()[NewTagKey([]string{"B"})]
	assert.Equal(t, int64(0), b2.Count())
	assert.Equal(t, []int64{0, 0}, b2.BucketCounts())
}

func TestData_RowPersistsAfterDecayingToZero(t *testing.T) {
	d := New(epoch, Descriptor{Aggregation: SumAggregation(), Window: IntervalWindow(time.Minute)})

	d.Add(5, []string{"A"}, epoch)

	full := epoch.Add(90 * time.Second)
	_, ok := d.IntervalData()[NewTagKey([]string{"A"})]
	assert.True(t, ok)

	snap, err := Snapshot(d, full)
	assert.Nil(t, err)

	_, ok = snap.DoubleData()[NewTagKey([]string{"A"})]
	assert.True(t, ok)
	assert.Equal(t, 0.0, snap.DoubleData()[NewTagKey([]string{"A"})])
}

func TestData_WrongAccessorReturnsNil(t *testing.T) {
	d := New(epoch, Descriptor{Aggregation: SumAggregation(), Window: CumulativeWindow()})

	assert.Nil(t, d.IntData())
	assert.Nil(t, d.DistributionData())
	assert.Nil(t, d.IntervalData())
}
