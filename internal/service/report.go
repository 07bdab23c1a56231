package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sitecrew/sitelog/internal/domain"
	"github.com/sitecrew/sitelog/internal/repo"
	"github.com/sitecrew/sitelog/internal/report"
)

// ReportMode selects the report window shape.
type ReportMode string

const (
	ModeDaily  ReportMode = "daily"
	ModeWeekly ReportMode = "weekly"
)

// ProjectReport is the assembled report for one project and window.
//
// FieldErrors carries the advisory bounds validation. When it is non-empty
// the Grid is nil and Days is empty: the window was computed (and repaired,
// for weekly mode) but not aggregated.
type ProjectReport struct {
	Project     domain.Project     `json:"project"`
	Range       domain.DateRange   `json:"range"`
	Days        []string           `json:"days,omitempty"` // newest first
	Members     []domain.Member    `json:"members,omitempty"`
	Grid        report.Grid        `json:"grid,omitempty"`
	FieldErrors domain.FieldErrors `json:"field_errors,omitempty"`
}

// ReportService orchestrates report generation: window computation, bounds
// validation, roster and update fetches, and the final aggregation.
type ReportService struct {
	projects repo.ProjectRepo
	updates  repo.UpdateRepo
	teams    repo.TeamRepo
}

// NewReportService constructs a ReportService backed by the provided repos.
func NewReportService(projects repo.ProjectRepo, updates repo.UpdateRepo, teams repo.TeamRepo) *ReportService {
	return &ReportService{projects: projects, updates: updates, teams: teams}
}

// Generate builds the report for a project.
//
// mode=daily uses start as the single report day. mode=weekly opens a 7-day
// window at start; when the caller also supplies an edited end date it is
// silently repaired back into the window rather than rejected. Bounds
// violations against the project lifecycle come back in FieldErrors without
// an error (validation is advisory, and the caller decides how to surface
// it), but an out-of-bounds window is never aggregated.
func (s *ReportService) Generate(ctx context.Context, projectID uuid.UUID, mode ReportMode, start time.Time, end *time.Time) (ProjectReport, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return ProjectReport{}, fmt.Errorf("service.ReportService.Generate: %w", err)
	}

	var window domain.DateRange
	switch mode {
	case ModeDaily:
		window = report.ComputeDaily(start)
	case ModeWeekly:
		window = report.ComputeWeekly(start)
		if end != nil {
			window.End = report.RepairWeeklyEnd(start, *end)
		}
	default:
		return ProjectReport{}, fmt.Errorf("%w: unknown report mode %q", domain.ErrValidation, mode)
	}

	result := ProjectReport{Project: project, Range: window}

	if ferrs := report.ValidateRange(window, project); ferrs.Any() {
		result.FieldErrors = ferrs
		return result, nil
	}

	members := []domain.Member{}
	if project.TeamID != nil {
		members, err = s.teams.ListMembers(ctx, *project.TeamID)
		if err != nil {
			return ProjectReport{}, fmt.Errorf("service.ReportService.Generate: roster: %w", err)
		}
	}

	updates, err := s.updates.ListByProjectBetween(ctx, projectID, window)
	if err != nil {
		return ProjectReport{}, fmt.Errorf("service.ReportService.Generate: updates: %w", err)
	}

	grid, err := report.Aggregate(updates, members, window)
	if err != nil {
		return ProjectReport{}, fmt.Errorf("service.ReportService.Generate: %w", err)
	}

	days, err := report.EnumerateDays(window)
	if err != nil {
		return ProjectReport{}, fmt.Errorf("service.ReportService.Generate: %w", err)
	}
	keys := make([]string, len(days))
	for i, d := range days {
		keys[i] = report.DayKey(d)
	}

	result.Days = keys
	result.Members = members
	result.Grid = grid
	return result, nil
}
