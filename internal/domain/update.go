package domain

import (
	"time"

	"github.com/google/uuid"
)

// Slot divides a work day into two reporting halves.
type Slot string

const (
	SlotMorning Slot = "morning"
	SlotEvening Slot = "evening"
)

// slotBoundaryHour is the local hour before which an update counts as a
// morning entry. 13:00 and later is evening.
const slotBoundaryHour = 13

// SlotForTime derives the slot from the wall clock at the moment of capture.
// The hour is read in t's own location, not UTC: a worker filing at 09:00
// local time files a morning entry no matter what the UTC hour is. Changing
// this to UTC would rewrite the meaning of history already recorded.
func SlotForTime(t time.Time) Slot {
	if t.Hour() < slotBoundaryHour {
		return SlotMorning
	}
	return SlotEvening
}

// Document is a media attachment on an update, typically a site photo.
// Latitude/Longitude are set when the capturing device provided a fix.
type Document struct {
	ID          uuid.UUID `json:"id"`
	StorageKey  string    `json:"storage_key"`
	ContentType string    `json:"content_type,omitempty"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Update is a single work-log entry filed by a member against a project.
//
// Date is the logical work day the entry reports on, normalized to UTC
// midnight; RecordedAt is the instant it was captured. The two differ on
// purpose: Slot derives from RecordedAt's local hour, while report grouping
// keys on Date. Slot is fixed at creation and never changes afterward.
type Update struct {
	ID          uuid.UUID  `json:"id"`
	ProjectID   uuid.UUID  `json:"project_id"`
	Author      MemberRef  `json:"-"`
	Date        time.Time  `json:"date"`
	Slot        Slot       `json:"slot"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status,omitempty"`
	RecordedAt  time.Time  `json:"recorded_at"`
	Documents   []Document `json:"documents,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
