// Package domain contains the core data types for the sitelog application.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler, report).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProjectStatus is the lifecycle state of a construction project.
type ProjectStatus string

const (
	StatusPlanning   ProjectStatus = "planning"
	StatusInProgress ProjectStatus = "in_progress"
	StatusOnHold     ProjectStatus = "on_hold"
	StatusCompleted  ProjectStatus = "completed"
	StatusCancelled  ProjectStatus = "cancelled"
)

// Valid reports whether s is one of the known lifecycle states.
func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusPlanning, StatusInProgress, StatusOnHold, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether s is an end state that accepts no further transitions.
func (s ProjectStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
//
//	planning → in_progress
//	in_progress ⇄ on_hold
//	in_progress → completed
//	any non-terminal state → cancelled
func (s ProjectStatus) CanTransitionTo(next ProjectStatus) bool {
	if !s.Valid() || !next.Valid() || s.Terminal() || s == next {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	switch s {
	case StatusPlanning:
		return next == StatusInProgress
	case StatusInProgress:
		return next == StatusOnHold || next == StatusCompleted
	case StatusOnHold:
		return next == StatusInProgress
	}
	return false
}

// Project represents a single construction project.
// A project is the top-level aggregate; work-log updates and requests belong
// to a project, and its roster is the member list of its assigned team.
// Only projects in StatusInProgress accept new work-log updates.
type Project struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Status      ProjectStatus `json:"status"`
	StartDate   time.Time     `json:"start_date"`
	EndDate     *time.Time    `json:"end_date,omitempty"` // nil when no deadline is set
	TeamID      *uuid.UUID    `json:"team_id,omitempty"`  // nil until a team is assigned
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
