package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/sitecrew/sitelog/internal/domain"
)

// TeamRepo defines the persistence operations for Teams and their members.
type TeamRepo interface {
	// Create inserts a new team and returns the persisted record.
	Create(ctx context.Context, team domain.Team) (domain.Team, error)

	// GetByID retrieves a single team by its UUID primary key.
	// Returns domain.ErrNotFound if no team with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Team, error)

	// List returns all teams ordered by name.
	List(ctx context.Context) ([]domain.Team, error)

	// Update renames an existing team and returns the updated record.
	Update(ctx context.Context, team domain.Team) (domain.Team, error)

	// Delete removes a team by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// AddMember inserts a member on the team's roster.
	AddMember(ctx context.Context, member domain.Member) (domain.Member, error)

	// RemoveMember removes a member from a team by member ID.
	// Returns domain.ErrNotFound if the member is not on the team.
	RemoveMember(ctx context.Context, teamID, memberID uuid.UUID) error

	// ListMembers returns the roster of a team ordered by name.
	ListMembers(ctx context.Context, teamID uuid.UUID) ([]domain.Member, error)
}

// pgTeamRepo is the Postgres implementation of TeamRepo.
type pgTeamRepo struct {
	db db
}

// NewTeamRepo constructs a TeamRepo backed by the provided db connection.
func NewTeamRepo(db db) TeamRepo {
	return &pgTeamRepo{db: db}
}

// Create inserts a new team row and returns the full persisted record.
func (r *pgTeamRepo) Create(ctx context.Context, team domain.Team) (domain.Team, error) {
	const q = `
		INSERT INTO teams (name)
		VALUES (@name)
		RETURNING id, name, created_at, updated_at`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": team.Name})
	result, err := scanTeam(row)
	if err != nil {
		return domain.Team{}, fmt.Errorf("repo.TeamRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a team by primary key.
func (r *pgTeamRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Team, error) {
	const q = `SELECT id, name, created_at, updated_at FROM teams WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTeam(row)
	if err != nil {
		return domain.Team{}, fmt.Errorf("repo.TeamRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns all teams ordered by name.
func (r *pgTeamRepo) List(ctx context.Context) ([]domain.Team, error) {
	const q = `SELECT id, name, created_at, updated_at FROM teams ORDER BY name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TeamRepo.List: %w", err)
	}
	defer rows.Close()

	var teams []domain.Team
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TeamRepo.List: scan: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TeamRepo.List: rows: %w", err)
	}

	return teams, nil
}

// Update renames a team and returns the updated record.
func (r *pgTeamRepo) Update(ctx context.Context, team domain.Team) (domain.Team, error) {
	const q = `
		UPDATE teams
		SET name = @name, updated_at = now()
		WHERE id = @id
		RETURNING id, name, created_at, updated_at`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": team.ID, "name": team.Name})
	result, err := scanTeam(row)
	if err != nil {
		return domain.Team{}, fmt.Errorf("repo.TeamRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a team by primary key.
func (r *pgTeamRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM teams WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TeamRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TeamRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// AddMember inserts a roster member row.
func (r *pgTeamRepo) AddMember(ctx context.Context, member domain.Member) (domain.Member, error) {
	const q = `
		INSERT INTO members (team_id, name, role)
		VALUES (@team_id, @name, @role)
		RETURNING id, team_id, name, role, created_at`

	args := pgx.NamedArgs{
		"team_id": member.TeamID,
		"name":    member.Name,
		"role":    member.Role,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanMember(row)
	if err != nil {
		return domain.Member{}, fmt.Errorf("repo.TeamRepo.AddMember: %w", err)
	}
	return result, nil
}

// RemoveMember deletes a member row scoped to the given team.
func (r *pgTeamRepo) RemoveMember(ctx context.Context, teamID, memberID uuid.UUID) error {
	const q = `DELETE FROM members WHERE id = @id AND team_id = @team_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": memberID, "team_id": teamID})
	if err != nil {
		return fmt.Errorf("repo.TeamRepo.RemoveMember: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TeamRepo.RemoveMember: %w", domain.ErrNotFound)
	}
	return nil
}

// ListMembers returns the team roster ordered by name.
func (r *pgTeamRepo) ListMembers(ctx context.Context, teamID uuid.UUID) ([]domain.Member, error) {
	const q = `
		SELECT id, team_id, name, role, created_at
		FROM members
		WHERE team_id = @team_id
		ORDER BY name`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"team_id": teamID})
	if err != nil {
		return nil, fmt.Errorf("repo.TeamRepo.ListMembers: %w", err)
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TeamRepo.ListMembers: scan: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TeamRepo.ListMembers: rows: %w", err)
	}

	return members, nil
}

// scanTeam maps a single database row into a domain.Team.
func scanTeam(s scanner) (domain.Team, error) {
	var (
		t  domain.Team
		id pgtype.UUID
	)

	err := s.Scan(&id, &t.Name, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Team{}, domain.ErrNotFound
		}
		return domain.Team{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	return t, nil
}

// scanMember maps a single database row into a domain.Member.
func scanMember(s scanner) (domain.Member, error) {
	var (
		m      domain.Member
		id     pgtype.UUID
		teamID pgtype.UUID
	)

	err := s.Scan(&id, &teamID, &m.Name, &m.Role, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Member{}, domain.ErrNotFound
		}
		return domain.Member{}, err
	}

	m.ID = uuid.UUID(id.Bytes)
	m.TeamID = uuid.UUID(teamID.Bytes)
	return m, nil
}
