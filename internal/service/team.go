package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/sitecrew/sitelog/internal/domain"
	"github.com/sitecrew/sitelog/internal/repo"
)

// TeamService implements business logic for Team and roster operations.
// It holds the project repo as well, because a project's roster is resolved
// through its assigned team.
type TeamService struct {
	teams    repo.TeamRepo
	projects repo.ProjectRepo
}

// NewTeamService constructs a TeamService backed by the provided repos.
func NewTeamService(teams repo.TeamRepo, projects repo.ProjectRepo) *TeamService {
	return &TeamService{teams: teams, projects: projects}
}

// Create validates and persists a new team.
func (s *TeamService) Create(ctx context.Context, team domain.Team) (domain.Team, error) {
	if strings.TrimSpace(team.Name) == "" {
		return domain.Team{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	result, err := s.teams.Create(ctx, team)
	if err != nil {
		return domain.Team{}, fmt.Errorf("service.TeamService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single team by ID.
func (s *TeamService) GetByID(ctx context.Context, id uuid.UUID) (domain.Team, error) {
	result, err := s.teams.GetByID(ctx, id)
	if err != nil {
		return domain.Team{}, fmt.Errorf("service.TeamService.GetByID: %w", err)
	}
	return result, nil
}

// List returns all teams.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TeamService) List(ctx context.Context) ([]domain.Team, error) {
	teams, err := s.teams.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TeamService.List: %w", err)
	}
	if teams == nil {
		return []domain.Team{}, nil
	}
	return teams, nil
}

// Update validates and renames an existing team.
func (s *TeamService) Update(ctx context.Context, team domain.Team) (domain.Team, error) {
	if strings.TrimSpace(team.Name) == "" {
		return domain.Team{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	result, err := s.teams.Update(ctx, team)
	if err != nil {
		return domain.Team{}, fmt.Errorf("service.TeamService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a team by ID.
func (s *TeamService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.teams.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TeamService.Delete: %w", err)
	}
	return nil
}

// AddMember validates the member, verifies the team exists, then persists.
func (s *TeamService) AddMember(ctx context.Context, member domain.Member) (domain.Member, error) {
	if strings.TrimSpace(member.Name) == "" {
		return domain.Member{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if _, err := s.teams.GetByID(ctx, member.TeamID); err != nil {
		return domain.Member{}, fmt.Errorf("service.TeamService.AddMember: %w", err)
	}
	result, err := s.teams.AddMember(ctx, member)
	if err != nil {
		return domain.Member{}, fmt.Errorf("service.TeamService.AddMember: %w", err)
	}
	return result, nil
}

// RemoveMember removes a member from a team.
// Historical updates filed by the member stay attributed to them; they simply
// stop appearing in roster-scoped reports.
func (s *TeamService) RemoveMember(ctx context.Context, teamID, memberID uuid.UUID) error {
	if err := s.teams.RemoveMember(ctx, teamID, memberID); err != nil {
		return fmt.Errorf("service.TeamService.RemoveMember: %w", err)
	}
	return nil
}

// ListMembers returns the roster of a team.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TeamService) ListMembers(ctx context.Context, teamID uuid.UUID) ([]domain.Member, error) {
	members, err := s.teams.ListMembers(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("service.TeamService.ListMembers: %w", err)
	}
	if members == nil {
		return []domain.Member{}, nil
	}
	return members, nil
}

// RosterForProject returns the member list of the project's assigned team.
// A project with no team has an empty roster, which is not an error.
func (s *TeamService) RosterForProject(ctx context.Context, projectID uuid.UUID) ([]domain.Member, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("service.TeamService.RosterForProject: %w", err)
	}
	if project.TeamID == nil {
		return []domain.Member{}, nil
	}
	return s.ListMembers(ctx, *project.TeamID)
}
