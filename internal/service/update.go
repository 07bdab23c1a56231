package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sitecrew/sitelog/internal/domain"
	"github.com/sitecrew/sitelog/internal/repo"
	"github.com/sitecrew/sitelog/internal/report"
)

// UpdateService implements business logic for work-log updates.
// Creating an update touches three repos: the project (must be in progress),
// the team roster (the author must be on it), and the updates themselves.
type UpdateService struct {
	updates  repo.UpdateRepo
	projects repo.ProjectRepo
	teams    repo.TeamRepo
}

// NewUpdateService constructs an UpdateService backed by the provided repos.
func NewUpdateService(updates repo.UpdateRepo, projects repo.ProjectRepo, teams repo.TeamRepo) *UpdateService {
	return &UpdateService{updates: updates, projects: projects, teams: teams}
}

// Create validates and persists a new work-log update.
//
// The slot is derived here, once, from the local wall clock of RecordedAt
// (before 13:00 → morning) and is immutable afterward; the logical work day
// is the UTC calendar day of RecordedAt unless the caller supplied an
// explicit Date. Only projects in progress accept updates.
func (s *UpdateService) Create(ctx context.Context, update domain.Update) (domain.Update, error) {
	if strings.TrimSpace(update.Description) == "" {
		return domain.Update{}, fmt.Errorf("%w: description is required", domain.ErrValidation)
	}

	project, err := s.projects.GetByID(ctx, update.ProjectID)
	if err != nil {
		return domain.Update{}, fmt.Errorf("service.UpdateService.Create: %w", err)
	}
	if project.Status != domain.StatusInProgress {
		return domain.Update{}, fmt.Errorf("%w: project is %s, only in-progress projects accept updates", domain.ErrValidation, project.Status)
	}
	if project.TeamID == nil {
		return domain.Update{}, fmt.Errorf("%w: project has no team assigned", domain.ErrValidation)
	}

	member, err := s.memberOnRoster(ctx, *project.TeamID, update.Author.ID())
	if err != nil {
		return domain.Update{}, err
	}

	if update.RecordedAt.IsZero() {
		update.RecordedAt = time.Now()
	}
	if update.Date.IsZero() {
		update.Date = report.Day(update.RecordedAt)
	} else {
		update.Date = report.Day(update.Date)
	}
	update.Slot = domain.SlotForTime(update.RecordedAt)

	result, err := s.updates.Create(ctx, update)
	if err != nil {
		return domain.Update{}, fmt.Errorf("service.UpdateService.Create: %w", err)
	}
	result.Author = domain.ResolvedMember(member)
	return result, nil
}

// GetByID returns a single update by ID.
func (s *UpdateService) GetByID(ctx context.Context, id uuid.UUID) (domain.Update, error) {
	result, err := s.updates.GetByID(ctx, id)
	if err != nil {
		return domain.Update{}, fmt.Errorf("service.UpdateService.GetByID: %w", err)
	}
	return result, nil
}

// ListByProject returns a project's updates inside the inclusive day window,
// oldest first, with author references resolved against the current roster
// where possible. Updates by departed members keep their unresolved
// reference: still attributed, just not expandable.
// Always returns a non-nil slice so callers can safely range over it.
func (s *UpdateService) ListByProject(ctx context.Context, projectID uuid.UUID, r domain.DateRange) ([]domain.Update, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("service.UpdateService.ListByProject: %w", err)
	}

	updates, err := s.updates.ListByProjectBetween(ctx, projectID, r)
	if err != nil {
		return nil, fmt.Errorf("service.UpdateService.ListByProject: %w", err)
	}
	if updates == nil {
		updates = []domain.Update{}
	}

	if project.TeamID != nil {
		members, err := s.teams.ListMembers(ctx, *project.TeamID)
		if err != nil {
			return nil, fmt.Errorf("service.UpdateService.ListByProject: %w", err)
		}
		byID := make(map[uuid.UUID]domain.Member, len(members))
		for _, m := range members {
			byID[m.ID] = m
		}
		for i := range updates {
			if m, ok := byID[updates[i].Author.ID()]; ok {
				updates[i].Author = domain.ResolvedMember(m)
			}
		}
	}

	return updates, nil
}

// Delete removes an update by ID.
func (s *UpdateService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.updates.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.UpdateService.Delete: %w", err)
	}
	return nil
}

// memberOnRoster returns the member record if memberID is on the team's
// roster, or domain.ErrValidation if not.
func (s *UpdateService) memberOnRoster(ctx context.Context, teamID, memberID uuid.UUID) (domain.Member, error) {
	members, err := s.teams.ListMembers(ctx, teamID)
	if err != nil {
		return domain.Member{}, fmt.Errorf("service.UpdateService: roster: %w", err)
	}
	for _, m := range members {
		if m.ID == memberID {
			return m, nil
		}
	}
	return domain.Member{}, fmt.Errorf("%w: author is not on the project team", domain.ErrValidation)
}
