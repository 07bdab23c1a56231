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

// RequestRepo defines the persistence operations for site requests.
type RequestRepo interface {
	// Create inserts a new request and returns the persisted record.
	Create(ctx context.Context, req domain.Request) (domain.Request, error)

	// GetByID retrieves a single request by its UUID primary key.
	// Returns domain.ErrNotFound if no request with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Request, error)

	// ListPaged returns one page of requests ordered by creation time
	// descending, with the total count.
	ListPaged(ctx context.Context, params domain.PaginationParams) ([]domain.Request, int, error)

	// SetStatus moves a request to the given review state.
	SetStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus) (domain.Request, error)

	// Delete removes a request by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgRequestRepo is the Postgres implementation of RequestRepo.
type pgRequestRepo struct {
	db db
}

// NewRequestRepo constructs a RequestRepo backed by the provided db connection.
func NewRequestRepo(db db) RequestRepo {
	return &pgRequestRepo{db: db}
}

const requestColumns = "id, project_id, requester_id, type, status, description, created_at, updated_at"

// Create inserts a new request row and returns the full persisted record.
func (r *pgRequestRepo) Create(ctx context.Context, req domain.Request) (domain.Request, error) {
	const q = `
		INSERT INTO requests (project_id, requester_id, type, status, description)
		VALUES (@project_id, @requester_id, @type, @status, @description)
		RETURNING ` + requestColumns

	args := pgx.NamedArgs{
		"project_id":   req.ProjectID,
		"requester_id": req.RequesterID,
		"type":         req.Type,
		"status":       req.Status,
		"description":  req.Description,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanRequest(row)
	if err != nil {
		return domain.Request{}, fmt.Errorf("repo.RequestRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a request by primary key.
func (r *pgRequestRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Request, error) {
	const q = `SELECT ` + requestColumns + ` FROM requests WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanRequest(row)
	if err != nil {
		return domain.Request{}, fmt.Errorf("repo.RequestRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of requests (newest first) and the total count.
func (r *pgRequestRepo) ListPaged(ctx context.Context, params domain.PaginationParams) ([]domain.Request, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM requests`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.RequestRepo.ListPaged: count: %w", err)
	}

	const q = `
		SELECT ` + requestColumns + `
		FROM requests
		ORDER BY created_at DESC, id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": params.Limit, "offset": params.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.RequestRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	var requests []domain.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.RequestRepo.ListPaged: scan: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.RequestRepo.ListPaged: rows: %w", err)
	}

	return requests, total, nil
}

// SetStatus updates only the review state and returns the updated record.
func (r *pgRequestRepo) SetStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus) (domain.Request, error) {
	const q = `
		UPDATE requests
		SET status = @status, updated_at = now()
		WHERE id = @id
		RETURNING ` + requestColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "status": status})
	result, err := scanRequest(row)
	if err != nil {
		return domain.Request{}, fmt.Errorf("repo.RequestRepo.SetStatus: %w", err)
	}
	return result, nil
}

// Delete removes a request by primary key.
func (r *pgRequestRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM requests WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.RequestRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.RequestRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanRequest maps a single database row into a domain.Request.
func scanRequest(s scanner) (domain.Request, error) {
	var (
		req         domain.Request
		id          pgtype.UUID
		projectID   pgtype.UUID
		requesterID pgtype.UUID
	)

	err := s.Scan(&id, &projectID, &requesterID, &req.Type, &req.Status, &req.Description, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Request{}, domain.ErrNotFound
		}
		return domain.Request{}, err
	}

	req.ID = uuid.UUID(id.Bytes)
	req.ProjectID = uuid.UUID(projectID.Bytes)
	req.RequesterID = uuid.UUID(requesterID.Bytes)
	return req, nil
}
