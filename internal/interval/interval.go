// Package interval maps raw sample timestamps onto fixed-width time
// buckets. Bucket arithmetic must stay byte-for-byte compatible with the
// upstream API's own windowing so that re-fetched pages land in the same
// buckets as the originals.
package interval

// Kind names a bucket granularity.
type Kind string

const (
	FiveMin Kind = "5min"
	Hour    Kind = "hour"
	Day     Kind = "day"
	Week    Kind = "week"
	Month   Kind = "month"
	Quarter Kind = "quarter"
	Year    Kind = "year"
)

// Interval lengths in seconds. Month, quarter and year are fixed-width
// (30/90/365 days), not calendar-accurate; upstream buckets the same way.
const (
	SecondsFiveMin = 300
	SecondsHour    = 3600
	SecondsDay     = 86400
	SecondsWeek    = 604800
	SecondsMonth   = 2592000
	SecondsQuarter = 7776000
	SecondsYear    = 31536000
)

// Seconds returns the bucket length for an interval name.
// Unknown names default to hour.
func Seconds(interval string) int64 {
	switch Kind(interval) {
	case FiveMin:
		return SecondsFiveMin
	case Hour:
		return SecondsHour
	case Day:
		return SecondsDay
	case Week:
		return SecondsWeek
	case Month:
		return SecondsMonth
	case Quarter:
		return SecondsQuarter
	case Year:
		return SecondsYear
	default:
		return SecondsHour
	}
}

// Valid reports whether interval is a known granularity name.
func Valid(interval string) bool {
	switch Kind(interval) {
	case FiveMin, Hour, Day, Week, Month, Quarter, Year:
		return true
	}
	return false
}

// Bucket maps a sample's end time onto its aligned bucket for the given
// length in seconds. A sample whose end time equals a bucket boundary
// belongs to the bucket it closes: end times 3599 and 3600 both land in
// [0,3600) on hourly buckets, 3601 lands in [3600,7200).
func Bucket(endTime, seconds int64) (start, end int64) {
	k := endTime + 1 - floorMod(endTime-1, seconds)
	start = k - floorMod(k, seconds)
	return start, start + seconds
}

// BucketStart returns only the aligned start of the bucket containing endTime.
func BucketStart(endTime, seconds int64) int64 {
	start, _ := Bucket(endTime, seconds)
	return start
}

// floorMod is a modulus that is non-negative for positive divisors,
// unlike Go's % for negative operands.
func floorMod(a, b int64) int64 {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
