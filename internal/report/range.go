// Package report implements the pure computation behind project reports:
// date-window calculation, project-bounds validation, and the aggregation of
// work-log updates into a per-day, per-member, per-slot grid.
//
// Nothing in this package performs I/O. All functions operate on
// already-fetched in-memory values, so they are safe to call repeatedly and
// trivial to test.
package report

import (
	"fmt"
	"time"

	"github.com/sitecrew/sitelog/internal/domain"
)

// weeklySpanDays is the number of days after the start date in a weekly
// window: a weekly report always covers exactly 7 days inclusive.
const weeklySpanDays = 6

// Day truncates t to day granularity in UTC: the time-of-day is discarded
// and the calendar date is re-anchored at UTC midnight. All range arithmetic
// in this package goes through Day so that comparisons never drift across a
// local-timezone midnight.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayKey formats a day-granular time as its "2006-01-02" map key.
func DayKey(t time.Time) string {
	return Day(t).Format("2006-01-02")
}

// ComputeDaily returns the single-day window covering date.
func ComputeDaily(date time.Time) domain.DateRange {
	d := Day(date)
	return domain.DateRange{Start: d, End: d}
}

// ComputeWeekly returns the 7-day inclusive window starting at startDate.
func ComputeWeekly(startDate time.Time) domain.DateRange {
	start := Day(startDate)
	return domain.DateRange{Start: start, End: start.AddDate(0, 0, weeklySpanDays)}
}

// RepairWeeklyEnd clamps a user-edited weekly end date back into the 7-day
// window. If candidateEnd lies more than 6 whole days after startDate it is
// silently replaced by startDate + 6 days; otherwise it passes through
// unchanged (so repairing an already-valid end is the identity).
func RepairWeeklyEnd(startDate, candidateEnd time.Time) time.Time {
	start := Day(startDate)
	end := Day(candidateEnd)
	if limit := start.AddDate(0, 0, weeklySpanDays); end.After(limit) {
		return limit
	}
	return end
}

// EnumerateDays returns every calendar day in r, newest first, end and start
// inclusive. Days with no recorded activity are the caller's gap-filling
// problem; this function only guarantees a complete, duplicate-free walk.
// An inverted range (end before start) fails with domain.ErrValidation.
func EnumerateDays(r domain.DateRange) ([]time.Time, error) {
	start := Day(r.Start)
	end := Day(r.End)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date is before start date", domain.ErrValidation)
	}

	days := make([]time.Time, 0, domain.DateRange{Start: start, End: end}.Days())
	for d := end; !d.Before(start); d = d.AddDate(0, 0, -1) {
		days = append(days, d)
	}
	return days, nil
}
