// Package service contains the business logic for the sitelog API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/sitecrew/sitelog/internal/domain"
	"github.com/sitecrew/sitelog/internal/filter"
	"github.com/sitecrew/sitelog/internal/repo"
)

// ProjectService implements business logic for Project operations, including
// the lifecycle state machine and client-style list narrowing.
type ProjectService struct {
	repo    repo.ProjectRepo
	narrowf *filter.Engine[domain.Project]
}

// NewProjectService constructs a ProjectService backed by the provided ProjectRepo.
func NewProjectService(r repo.ProjectRepo) *ProjectService {
	// One filter engine per service instance, not a package global: list
	// narrowing is per-screen state, never shared.
	narrow := filter.NewEngine(
		map[string]filter.Extractor[domain.Project]{
			"status": func(p domain.Project) string { return string(p.Status) },
		},
		func(p domain.Project) string { return p.Name },
		func(p domain.Project) string { return p.Description },
	)
	return &ProjectService{repo: r, narrowf: narrow}
}

// Create validates and persists a new project. New projects always start in
// the planning state regardless of what the caller supplies.
func (s *ProjectService) Create(ctx context.Context, project domain.Project) (domain.Project, error) {
	if err := validateProject(project); err != nil {
		return domain.Project{}, err
	}
	project.Status = domain.StatusPlanning

	result, err := s.repo.Create(ctx, project)
	if err != nil {
		return domain.Project{}, fmt.Errorf("service.ProjectService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single project by ID.
func (s *ProjectService) GetByID(ctx context.Context, id uuid.UUID) (domain.Project, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Project{}, fmt.Errorf("service.ProjectService.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of projects, narrowed by the given criteria,
// plus the page meta. Narrowing happens after the fetch, over the page in
// hand, the same post-fetch behavior every list screen shares.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ProjectService) ListPaged(ctx context.Context, params domain.PaginationParams, criteria filter.Criteria) ([]domain.Project, domain.PageMeta, error) {
	projects, total, err := s.repo.ListPaged(ctx, params)
	if err != nil {
		return nil, domain.PageMeta{}, fmt.Errorf("service.ProjectService.ListPaged: %w", err)
	}

	projects = s.narrowf.Apply(projects, criteria)
	if projects == nil {
		projects = []domain.Project{}
	}
	return projects, domain.NewPageMeta(params, total), nil
}

// Update validates and updates the mutable fields of an existing project.
// Lifecycle moves go through Transition, not here.
func (s *ProjectService) Update(ctx context.Context, project domain.Project) (domain.Project, error) {
	if err := validateProject(project); err != nil {
		return domain.Project{}, err
	}
	result, err := s.repo.Update(ctx, project)
	if err != nil {
		return domain.Project{}, fmt.Errorf("service.ProjectService.Update: %w", err)
	}
	return result, nil
}

// Transition moves a project to the next lifecycle state, enforcing the
// state machine: planning → in_progress ⇄ on_hold → completed, with
// cancellation allowed from any non-terminal state.
// Returns domain.ErrValidation when the move is not allowed.
func (s *ProjectService) Transition(ctx context.Context, id uuid.UUID, next domain.ProjectStatus) (domain.Project, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Project{}, fmt.Errorf("service.ProjectService.Transition: %w", err)
	}

	if !next.Valid() {
		return domain.Project{}, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, next)
	}
	if !current.Status.CanTransitionTo(next) {
		return domain.Project{}, fmt.Errorf("%w: cannot move from %s to %s", domain.ErrValidation, current.Status, next)
	}

	result, err := s.repo.SetStatus(ctx, id, next)
	if err != nil {
		return domain.Project{}, fmt.Errorf("service.ProjectService.Transition: %w", err)
	}
	return result, nil
}

// Delete removes a project by ID.
func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.ProjectService.Delete: %w", err)
	}
	return nil
}

// validateProject enforces business rules common to both Create and Update.
//   - Name must be non-empty (whitespace-only names are rejected).
//   - EndDate, if set, must not be before StartDate.
func validateProject(project domain.Project) error {
	if strings.TrimSpace(project.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if project.StartDate.IsZero() {
		return fmt.Errorf("%w: start_date is required", domain.ErrValidation)
	}
	if project.EndDate != nil && project.EndDate.Before(project.StartDate) {
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}
	return nil
}
