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

// UpdateRepo defines the persistence operations for work-log updates and
// their attached documents.
type UpdateRepo interface {
	// Create inserts an update together with its documents and returns the
	// persisted record. Documents are inserted in input order.
	Create(ctx context.Context, update domain.Update) (domain.Update, error)

	// GetByID retrieves a single update (documents included) by primary key.
	// Returns domain.ErrNotFound if no update with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Update, error)

	// ListByProjectBetween returns all updates of a project whose logical
	// work day falls inside [start, end] inclusive, oldest first, with
	// documents attached.
	ListByProjectBetween(ctx context.Context, projectID uuid.UUID, r domain.DateRange) ([]domain.Update, error)

	// Delete removes an update (documents cascade) by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgUpdateRepo is the Postgres implementation of UpdateRepo.
type pgUpdateRepo struct {
	db db
}

// NewUpdateRepo constructs an UpdateRepo backed by the provided db connection.
func NewUpdateRepo(db db) UpdateRepo {
	return &pgUpdateRepo{db: db}
}

const updateColumns = "id, project_id, member_id, work_date, slot, description, status, recorded_at, created_at"

// Create inserts the update row, then one row per document.
// Callers that need atomicity pass a pgx.Tx as the repo's db.
func (r *pgUpdateRepo) Create(ctx context.Context, update domain.Update) (domain.Update, error) {
	const q = `
		INSERT INTO updates (project_id, member_id, work_date, slot, description, status, recorded_at)
		VALUES (@project_id, @member_id, @work_date, @slot, @description, @status, @recorded_at)
		RETURNING ` + updateColumns

	args := pgx.NamedArgs{
		"project_id":  update.ProjectID,
		"member_id":   update.Author.ID(),
		"work_date":   update.Date,
		"slot":        update.Slot,
		"description": update.Description,
		"status":      update.Status,
		"recorded_at": update.RecordedAt,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanUpdate(row)
	if err != nil {
		return domain.Update{}, fmt.Errorf("repo.UpdateRepo.Create: %w", err)
	}

	for _, doc := range update.Documents {
		inserted, err := r.insertDocument(ctx, result.ID, doc)
		if err != nil {
			return domain.Update{}, fmt.Errorf("repo.UpdateRepo.Create: document: %w", err)
		}
		result.Documents = append(result.Documents, inserted)
	}

	return result, nil
}

// GetByID retrieves an update and its documents.
func (r *pgUpdateRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Update, error) {
	const q = `SELECT ` + updateColumns + ` FROM updates WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanUpdate(row)
	if err != nil {
		return domain.Update{}, fmt.Errorf("repo.UpdateRepo.GetByID: %w", err)
	}

	docs, err := r.listDocuments(ctx, []uuid.UUID{result.ID})
	if err != nil {
		return domain.Update{}, fmt.Errorf("repo.UpdateRepo.GetByID: %w", err)
	}
	result.Documents = docs[result.ID]

	return result, nil
}

// ListByProjectBetween returns a project's updates inside the inclusive day
// window, oldest first so that later rows win any (member, day, slot)
// conflict downstream.
func (r *pgUpdateRepo) ListByProjectBetween(ctx context.Context, projectID uuid.UUID, dr domain.DateRange) ([]domain.Update, error) {
	const q = `
		SELECT ` + updateColumns + `
		FROM updates
		WHERE project_id = @project_id
		  AND work_date >= @start
		  AND work_date <= @end
		ORDER BY recorded_at, id`

	args := pgx.NamedArgs{"project_id": projectID, "start": dr.Start, "end": dr.End}

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.UpdateRepo.ListByProjectBetween: %w", err)
	}
	defer rows.Close()

	var (
		updates []domain.Update
		ids     []uuid.UUID
	)
	for rows.Next() {
		u, err := scanUpdate(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.UpdateRepo.ListByProjectBetween: scan: %w", err)
		}
		updates = append(updates, u)
		ids = append(ids, u.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.UpdateRepo.ListByProjectBetween: rows: %w", err)
	}

	if len(updates) == 0 {
		return updates, nil
	}

	docs, err := r.listDocuments(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("repo.UpdateRepo.ListByProjectBetween: %w", err)
	}
	for i := range updates {
		updates[i].Documents = docs[updates[i].ID]
	}

	return updates, nil
}

// Delete removes an update by primary key. Document rows cascade in the schema.
func (r *pgUpdateRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM updates WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.UpdateRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.UpdateRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// insertDocument inserts one attachment row for an update.
func (r *pgUpdateRepo) insertDocument(ctx context.Context, updateID uuid.UUID, doc domain.Document) (domain.Document, error) {
	const q = `
		INSERT INTO update_documents (update_id, storage_key, content_type, latitude, longitude)
		VALUES (@update_id, @storage_key, @content_type, @latitude, @longitude)
		RETURNING id, storage_key, content_type, latitude, longitude, created_at`

	args := pgx.NamedArgs{
		"update_id":    updateID,
		"storage_key":  doc.StorageKey,
		"content_type": doc.ContentType,
		"latitude":     doc.Latitude,
		"longitude":    doc.Longitude,
	}

	row := r.db.QueryRow(ctx, q, args)
	return scanDocument(row)
}

// listDocuments fetches the documents of all the given updates in one query,
// grouped by update id, preserving insertion order within each update.
func (r *pgUpdateRepo) listDocuments(ctx context.Context, updateIDs []uuid.UUID) (map[uuid.UUID][]domain.Document, error) {
	const q = `
		SELECT update_id, id, storage_key, content_type, latitude, longitude, created_at
		FROM update_documents
		WHERE update_id = ANY(@ids)
		ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"ids": updateIDs})
	if err != nil {
		return nil, fmt.Errorf("documents: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]domain.Document)
	for rows.Next() {
		var (
			updateID pgtype.UUID
			id       pgtype.UUID
			doc      domain.Document
			lat      pgtype.Float8
			lon      pgtype.Float8
		)
		if err := rows.Scan(&updateID, &id, &doc.StorageKey, &doc.ContentType, &lat, &lon, &doc.CreatedAt); err != nil {
			return nil, fmt.Errorf("documents: scan: %w", err)
		}
		doc.ID = uuid.UUID(id.Bytes)
		if lat.Valid {
			v := lat.Float64
			doc.Latitude = &v
		}
		if lon.Valid {
			v := lon.Float64
			doc.Longitude = &v
		}
		uid := uuid.UUID(updateID.Bytes)
		out[uid] = append(out[uid], doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("documents: rows: %w", err)
	}

	return out, nil
}

// scanUpdate maps a single database row into a domain.Update.
// The author comes back as an unresolved reference; the service layer
// resolves it against the roster when it has one at hand.
func scanUpdate(s scanner) (domain.Update, error) {
	var (
		u         domain.Update
		id        pgtype.UUID
		projectID pgtype.UUID
		memberID  pgtype.UUID
		workDate  pgtype.Date
	)

	err := s.Scan(&id, &projectID, &memberID, &workDate, &u.Slot, &u.Description, &u.Status, &u.RecordedAt, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Update{}, domain.ErrNotFound
		}
		return domain.Update{}, err
	}

	u.ID = uuid.UUID(id.Bytes)
	u.ProjectID = uuid.UUID(projectID.Bytes)
	u.Author = domain.UnresolvedMember(uuid.UUID(memberID.Bytes))
	u.Date = workDate.Time
	return u, nil
}

// scanDocument maps a single database row into a domain.Document.
func scanDocument(s scanner) (domain.Document, error) {
	var (
		d   domain.Document
		id  pgtype.UUID
		lat pgtype.Float8
		lon pgtype.Float8
	)

	err := s.Scan(&id, &d.StorageKey, &d.ContentType, &lat, &lon, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Document{}, domain.ErrNotFound
		}
		return domain.Document{}, err
	}

	d.ID = uuid.UUID(id.Bytes)
	if lat.Valid {
		v := lat.Float64
		d.Latitude = &v
	}
	if lon.Valid {
		v := lon.Float64
		d.Longitude = &v
	}
	return d, nil
}
