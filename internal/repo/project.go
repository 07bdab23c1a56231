// Package repo contains all database access logic for the sitelog API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/sitecrew/sitelog/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers in this package to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// ProjectRepo defines the persistence operations for Projects.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type ProjectRepo interface {
	// Create inserts a new project and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, project domain.Project) (domain.Project, error)

	// GetByID retrieves a single project by its UUID primary key.
	// Returns domain.ErrNotFound if no project with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Project, error)

	// ListPaged returns one page of projects ordered by start_date descending,
	// along with the total row count for pagination.
	ListPaged(ctx context.Context, params domain.PaginationParams) ([]domain.Project, int, error)

	// Update overwrites the mutable fields of an existing project and returns
	// the updated record. Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, project domain.Project) (domain.Project, error)

	// SetStatus moves a project to the given lifecycle state.
	// Transition legality is the service's concern, not the repo's.
	SetStatus(ctx context.Context, id uuid.UUID, status domain.ProjectStatus) (domain.Project, error)

	// Delete removes a project by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgProjectRepo is the Postgres implementation of ProjectRepo.
type pgProjectRepo struct {
	db db
}

// NewProjectRepo constructs a ProjectRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewProjectRepo(db db) ProjectRepo {
	return &pgProjectRepo{db: db}
}

const projectColumns = "id, name, description, status, start_date, end_date, team_id, created_at, updated_at"

// Create inserts a new project row and returns the full persisted record.
func (r *pgProjectRepo) Create(ctx context.Context, project domain.Project) (domain.Project, error) {
	const q = `
		INSERT INTO projects (name, description, status, start_date, end_date, team_id)
		VALUES (@name, @description, @status, @start_date, @end_date, @team_id)
		RETURNING ` + projectColumns

	args := pgx.NamedArgs{
		"name":        project.Name,
		"description": project.Description,
		"status":      project.Status,
		"start_date":  project.StartDate,
		"end_date":    project.EndDate, // nil becomes NULL
		"team_id":     project.TeamID,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanProject(row)
	if err != nil {
		return domain.Project{}, fmt.Errorf("repo.ProjectRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a project by primary key.
func (r *pgProjectRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Project, error) {
	const q = `SELECT ` + projectColumns + ` FROM projects WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanProject(row)
	if err != nil {
		return domain.Project{}, fmt.Errorf("repo.ProjectRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of projects (most recent start_date first) and
// the total count across all pages.
func (r *pgProjectRepo) ListPaged(ctx context.Context, params domain.PaginationParams) ([]domain.Project, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM projects`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.ProjectRepo.ListPaged: count: %w", err)
	}

	const q = `
		SELECT ` + projectColumns + `
		FROM projects
		ORDER BY start_date DESC, id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": params.Limit, "offset": params.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ProjectRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.ProjectRepo.ListPaged: scan: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.ProjectRepo.ListPaged: rows: %w", err)
	}

	return projects, total, nil
}

// Update overwrites the mutable fields of a project and returns the updated record.
// Status is not touched here; lifecycle moves go through SetStatus.
func (r *pgProjectRepo) Update(ctx context.Context, project domain.Project) (domain.Project, error) {
	const q = `
		UPDATE projects
		SET name        = @name,
		    description = @description,
		    start_date  = @start_date,
		    end_date    = @end_date,
		    team_id     = @team_id,
		    updated_at  = now()
		WHERE id = @id
		RETURNING ` + projectColumns

	args := pgx.NamedArgs{
		"id":          project.ID,
		"name":        project.Name,
		"description": project.Description,
		"start_date":  project.StartDate,
		"end_date":    project.EndDate,
		"team_id":     project.TeamID,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanProject(row)
	if err != nil {
		return domain.Project{}, fmt.Errorf("repo.ProjectRepo.Update: %w", err)
	}
	return result, nil
}

// SetStatus updates only the lifecycle column and returns the updated record.
func (r *pgProjectRepo) SetStatus(ctx context.Context, id uuid.UUID, status domain.ProjectStatus) (domain.Project, error) {
	const q = `
		UPDATE projects
		SET status = @status, updated_at = now()
		WHERE id = @id
		RETURNING ` + projectColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "status": status})
	result, err := scanProject(row)
	if err != nil {
		return domain.Project{}, fmt.Errorf("repo.ProjectRepo.SetStatus: %w", err)
	}
	return result, nil
}

// Delete removes a project by primary key.
func (r *pgProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM projects WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ProjectRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ProjectRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanProject maps a single database row into a domain.Project.
// It handles the UUID and nullable end_date/team_id conversions.
func scanProject(s scanner) (domain.Project, error) {
	var (
		p      domain.Project
		id     pgtype.UUID
		start  pgtype.Date
		end    pgtype.Date
		teamID pgtype.UUID
	)

	err := s.Scan(&id, &p.Name, &p.Description, &p.Status, &start, &end, &teamID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Project{}, domain.ErrNotFound
		}
		return domain.Project{}, err
	}

	p.ID = uuid.UUID(id.Bytes)
	p.StartDate = start.Time
	if end.Valid {
		ed := end.Time
		p.EndDate = &ed
	}
	if teamID.Valid {
		tid := uuid.UUID(teamID.Bytes)
		p.TeamID = &tid
	}

	return p, nil
}
