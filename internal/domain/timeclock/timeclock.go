package timeclock

import (
	"math"
	"time"
)

// HoursBetween returns the elapsed hours between check-in and check-out,
// rounded to two decimals. Zero or negative results mean the range is
// invalid and must be rejected by the caller before any wage math runs.
func HoursBetween(checkIn, checkOut time.Time) float64 {
	hours := checkOut.Sub(checkIn).Hours()
	return math.Round(hours*100) / 100
}

// DaysFromHours derives the day count a fixed-wage shift is paid for: any
// worked shift counts as at least one day, and every started 24-hour block
// adds another. This is a coarse proxy for multi-day shifts, not a calendar
// day count, and is kept deliberately (a 24h00 shift is one day, 24h01 is
// two).
func DaysFromHours(hours float64) int {
	days := int(math.Ceil(hours / 24))
	if days < 1 {
		return 1
	}
	return days
}
