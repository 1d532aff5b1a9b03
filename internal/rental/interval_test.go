package rental

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     time.Time
		want                           bool
	}{
		{"disjoint", day(1), day(3), day(5), day(8), false},
		{"back to back, a before b", day(1), day(5), day(5), day(8), false},
		{"back to back, b before a", day(5), day(8), day(1), day(5), false},
		{"one day shared", day(1), day(6), day(5), day(8), true},
		{"contained", day(3), day(4), day(1), day(8), true},
		{"containing", day(1), day(8), day(3), day(4), true},
		{"identical", day(1), day(8), day(1), day(8), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd))
			// Overlap is symmetric.
			require.Equal(t, tc.want, Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd))
		})
	}
}

func TestContains(t *testing.T) {
	start, end := day(1), day(8)

	require.True(t, Contains(start, end, start), "start is inside")
	require.True(t, Contains(start, end, day(4)))
	require.False(t, Contains(start, end, end), "end is outside")
	require.False(t, Contains(start, end, day(9)))
	require.False(t, Contains(start, end, day(1).Add(-time.Second)))
}

func TestWeekBuckets(t *testing.T) {
	start := day(2)
	buckets := WeekBuckets(start, 4)

	require.Len(t, buckets, 4)
	require.Equal(t, start, buckets[0].Start)
	require.Equal(t, start.AddDate(0, 0, 28), buckets[3].End)

	for i, b := range buckets {
		require.Equal(t, b.Start.AddDate(0, 0, 7), b.End, "bucket %d is 7 days wide", i)
		if i > 0 {
			require.Equal(t, buckets[i-1].End, b.Start, "bucket %d starts where %d ends", i, i-1)
		}
	}
}

func TestWeekBucketsAdjacentDoNotOverlap(t *testing.T) {
	buckets := WeekBuckets(day(1), 2)

	// Half-open buckets: the shared instant belongs to the second bucket only.
	require.False(t, Overlaps(buckets[0].Start, buckets[0].End, buckets[1].Start, buckets[1].End))
	require.False(t, Contains(buckets[0].Start, buckets[0].End, buckets[1].Start))
	require.True(t, Contains(buckets[1].Start, buckets[1].End, buckets[1].Start))
}

func TestWeekBucketLabel(t *testing.T) {
	b := WeekBucket{Start: day(2), End: day(9)}
	require.Equal(t, "Mar 02 - Mar 08", b.Label())
}
