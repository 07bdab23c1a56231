package report

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sitecrew/sitelog/internal/domain"
)

// maxRangeDays is a sanity bound on the aggregation window. The grid is a
// full |days| × |members| cross product, so a runaway range would allocate
// unbounded memory before any update is even looked at.
const maxRangeDays = 366

// ErrRangeTooLarge is returned by Aggregate when the window exceeds
// maxRangeDays. No partial result accompanies it.
var ErrRangeTooLarge = errors.New("date range too large")

// DaySlots holds the morning and evening entries of one member on one day.
// A nil slot means no update was filed, never a missing map key, so callers
// need no existence checks beyond the two fields.
type DaySlots struct {
	Morning *domain.Update `json:"morning"`
	Evening *domain.Update `json:"evening"`
}

// Grid is the aggregated report: day key ("2006-01-02") → member id → slots.
type Grid map[string]map[uuid.UUID]*DaySlots

// Aggregate builds the report grid for the given window and roster.
//
// Every day in the range appears as a key, and under it every roster member,
// even when no updates exist at all; the output always has exactly
// |days| × |members| leaf records. Two silences are deliberate policy, not
// bugs: updates whose author is not on the roster are dropped (the member
// may have left the team after filing), and when two updates collide on the
// same (day, member, slot) the one supplied later in the input wins.
func Aggregate(updates []domain.Update, members []domain.Member, r domain.DateRange) (Grid, error) {
	days, err := EnumerateDays(r)
	if err != nil {
		return nil, err
	}
	if len(days) > maxRangeDays {
		return nil, fmt.Errorf("%w: %d days exceeds the %d-day limit", ErrRangeTooLarge, len(days), maxRangeDays)
	}

	grid := make(Grid, len(days))
	for _, day := range days {
		row := make(map[uuid.UUID]*DaySlots, len(members))
		for _, m := range members {
			row[m.ID] = &DaySlots{}
		}
		grid[DayKey(day)] = row
	}

	for i := range updates {
		u := updates[i]
		row, ok := grid[DayKey(u.Date)]
		if !ok {
			continue // outside the window
		}
		slots, ok := row[u.Author.ID()]
		if !ok {
			continue // author no longer on the roster
		}
		switch u.Slot {
		case domain.SlotMorning:
			slots.Morning = &u
		case domain.SlotEvening:
			slots.Evening = &u
		}
	}

	return grid, nil
}
