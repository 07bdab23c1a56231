package domain

import "time"

// DateRange is an inclusive window of calendar days. Both endpoints are
// day-granular: callers normalize them to UTC midnight before comparison.
// A range where Start == End is a valid single-day window.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Days returns the number of calendar days the range spans, inclusive.
// A single-day range returns 1. Negative for an inverted range.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// Contains reports whether day (already day-granular) falls inside the range.
func (r DateRange) Contains(day time.Time) bool {
	return !day.Before(r.Start) && !day.After(r.End)
}
