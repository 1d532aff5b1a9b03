package rental

import "time"

// WeekDays is the width of one availability grid bucket.
const WeekDays = 7

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. A booking ending exactly when another starts does
// not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// Contains reports whether instant t lies inside the half-open interval
// [start, end).
func Contains(start, end, t time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

// WeekBucket is one 7-day half-open column of the availability grid.
type WeekBucket struct {
	Start time.Time
	End   time.Time
}

// WeekBuckets partitions [start, start + weeks*7d) into consecutive 7-day
// half-open buckets.
func WeekBuckets(start time.Time, weeks int) []WeekBucket {
	buckets := make([]WeekBucket, 0, weeks)
	for k := 0; k < weeks; k++ {
		bStart := start.AddDate(0, 0, k*WeekDays)
		bEnd := start.AddDate(0, 0, (k+1)*WeekDays)
		buckets = append(buckets, WeekBucket{Start: bStart, End: bEnd})
	}
	return buckets
}

// Label renders the bucket for grid column headers, e.g. "Jan 02 - Jan 08".
// The end day shown is the last day inside the half-open interval.
func (b WeekBucket) Label() string {
	last := b.End.AddDate(0, 0, -1)
	return b.Start.Format("Jan 02") + " - " + last.Format("Jan 02")
}
