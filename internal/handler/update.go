package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/sitecrew/sitelog/internal/domain"
	"github.com/sitecrew/sitelog/internal/report"
)

// DocumentBody is one attached photo in an update create body.
type DocumentBody struct {
	StorageKey  string   `json:"storage_key"`
	ContentType string   `json:"content_type,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
}

// UpdateCreateBody is the JSON body for POST /projects/{projectID}/updates.
// Slot is absent on purpose: it is derived server-side from recorded_at and
// cannot be chosen by the client.
type UpdateCreateBody struct {
	MemberID    string              `json:"member_id"`
	Date        *openapi_types.Date `json:"date,omitempty"` // defaults to recorded_at's UTC day
	Description string              `json:"description"`
	Status      string              `json:"status,omitempty"`
	RecordedAt  *time.Time          `json:"recorded_at,omitempty"` // defaults to now
	Documents   []DocumentBody      `json:"documents,omitempty"`
}

// UpdateResponse is the JSON shape of a work-log update.
type UpdateResponse struct {
	ID          string             `json:"id"`
	ProjectID   string             `json:"project_id"`
	MemberID    string             `json:"member_id"`
	MemberName  string             `json:"member_name,omitempty"` // present when the author resolved against the roster
	Date        openapi_types.Date `json:"date"`
	Slot        domain.Slot        `json:"slot"`
	Description string             `json:"description,omitempty"`
	Status      string             `json:"status,omitempty"`
	RecordedAt  time.Time          `json:"recorded_at"`
	Documents   []domain.Document  `json:"documents,omitempty"`
}

// CreateUpdate handles POST /projects/{projectID}/updates.
func (s *Server) CreateUpdate(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathUUID(r, "projectID")
	if !ok {
		writeError(w, domain.ErrNotFound)
		return
	}

	var body UpdateCreateBody
	if err := decodeJSON(r, &body); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("request body is required"))
		return
	}

	memberID, err := uuid.Parse(body.MemberID)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("member_id must be a valid UUID"))
		return
	}

	update := domain.Update{
		ProjectID:   projectID,
		Author:      domain.UnresolvedMember(memberID),
		Description: body.Description,
		Status:      body.Status,
	}
	if body.Date != nil {
		update.Date = body.Date.Time
	}
	if body.RecordedAt != nil {
		update.RecordedAt = *body.RecordedAt
	}
	for _, doc := range body.Documents {
		update.Documents = append(update.Documents, domain.Document{
			StorageKey:  doc.StorageKey,
			ContentType: doc.ContentType,
			Latitude:    doc.Latitude,
			Longitude:   doc.Longitude,
		})
	}

	created, err := s.updates.Create(r.Context(), update)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, updateToResponse(created))
}

// ListUpdates handles GET /projects/{projectID}/updates.
// Requires ?start= and ?end= (YYYY-MM-DD), an inclusive day window.
func (s *Server) ListUpdates(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathUUID(r, "projectID")
	if !ok {
		writeError(w, domain.ErrNotFound)
		return
	}

	window, errMsg := queryDateRange(r)
	if errMsg != "" {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(errMsg))
		return
	}

	updates, err := s.updates.ListByProject(r.Context(), projectID, window)
	if err != nil {
		writeError(w, err)
		return
	}

	data := make([]UpdateResponse, len(updates))
	for i, u := range updates {
		data[i] = updateToResponse(u)
	}
	writeJSON(w, http.StatusOK, data)
}

// GetUpdate handles GET /updates/{updateID}.
func (s *Server) GetUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "updateID")
	if !ok {
		writeError(w, domain.ErrNotFound)
		return
	}

	update, err := s.updates.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updateToResponse(update))
}

// DeleteUpdate handles DELETE /updates/{updateID}.
func (s *Server) DeleteUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "updateID")
	if !ok {
		writeError(w, domain.ErrNotFound)
		return
	}

	if err := s.updates.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// queryDateRange parses the required ?start= and ?end= query parameters into
// an inclusive day window. Returns a non-empty message on bad input.
func queryDateRange(r *http.Request) (domain.DateRange, string) {
	const layout = "2006-01-02"
	q := r.URL.Query()

	start, err := time.Parse(layout, q.Get("start"))
	if err != nil {
		return domain.DateRange{}, "start must be a YYYY-MM-DD date"
	}
	end, err := time.Parse(layout, q.Get("end"))
	if err != nil {
		return domain.DateRange{}, "end must be a YYYY-MM-DD date"
	}
	return domain.DateRange{Start: report.Day(start), End: report.Day(end)}, ""
}

// updateToResponse converts a domain.Update into its wire shape.
func updateToResponse(u domain.Update) UpdateResponse {
	resp := UpdateResponse{
		ID:          u.ID.String(),
		ProjectID:   u.ProjectID.String(),
		MemberID:    u.Author.ID().String(),
		Date:        openapi_types.Date{Time: u.Date},
		Slot:        u.Slot,
		Description: u.Description,
		Status:      u.Status,
		RecordedAt:  u.RecordedAt,
		Documents:   u.Documents,
	}
	if m, ok := u.Author.Member(); ok {
		resp.MemberName = m.Name
	}
	return resp
}
