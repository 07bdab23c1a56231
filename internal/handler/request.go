package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/sitecrew/sitelog/internal/domain"
	"github.com/sitecrew/sitelog/internal/middleware"
)

// RequestCreateBody is the JSON body for POST /requests.
// The requester is the authenticated user; it is never taken from the body.
type RequestCreateBody struct {
	ProjectID   string             `json:"project_id"`
	Type        domain.RequestType `json:"type"`
	Description string             `json:"description"`
}

// RequestResponse is the JSON shape of a site request.
type RequestResponse struct {
	ID          string               `json:"id"`
	ProjectID   string               `json:"project_id"`
	RequesterID string               `json:"requester_id"`
	Type        domain.RequestType   `json:"type"`
	Status      domain.RequestStatus `json:"status"`
	Description string               `json:"description,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}

// CreateRequest handles POST /requests.
func (s *Server) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var body RequestCreateBody
	if err := decodeJSON(r, &body); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("request body is required"))
		return
	}

	projectID, err := uuid.Parse(body.ProjectID)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("project_id must be a valid UUID"))
		return
	}

	requesterID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}

	created, err := s.requests.Create(r.Context(), domain.Request{
		ProjectID:   projectID,
		RequesterID: requesterID,
		Type:        body.Type,
		Description: body.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, requestToResponse(created))
}

// ListRequests handles GET /requests.
// Supports ?page=, ?limit=, ?status=, ?type=, ?project_id= and ?query= narrowing.
func (s *Server) ListRequests(w http.ResponseWriter, r *http.Request) {
	params := queryPagination(r)
	criteria := queryCriteria(r, "status", "type", "project_id")

	requests, meta, err := s.requests.ListPaged(r.Context(), params, criteria)
	if err != nil {
		writeError(w, err)
		return
	}

	data := make([]RequestResponse, len(requests))
	for i, req := range requests {
		data[i] = requestToResponse(req)
	}
	writeJSON(w, http.StatusOK, ListResponse[RequestResponse]{Data: data, Pagination: meta})
}

// GetRequest handles GET /requests/{requestID}.
func (s *Server) GetRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "requestID")
	if !ok {
		writeError(w, domain.ErrNotFound)
		return
	}

	req, err := s.requests.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requestToResponse(req))
}

// ReviewRequest handles POST /requests/{requestID}/review.
// Body: {"verdict": "approved"} or {"verdict": "rejected"}.
func (s *Server) ReviewRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "requestID")
	if !ok {
		writeError(w, domain.ErrNotFound)
		return
	}

	var body struct {
		Verdict domain.RequestStatus `json:"verdict"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("request body is required"))
		return
	}

	reviewed, err := s.requests.Review(r.Context(), id, body.Verdict)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requestToResponse(reviewed))
}

// DeleteRequest handles DELETE /requests/{requestID}.
func (s *Server) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "requestID")
	if !ok {
		writeError(w, domain.ErrNotFound)
		return
	}

	if err := s.requests.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// requestToResponse converts a domain.Request into its wire shape.
func requestToResponse(req domain.Request) RequestResponse {
	return RequestResponse{
		ID:          req.ID.String(),
		ProjectID:   req.ProjectID.String(),
		RequesterID: req.RequesterID.String(),
		Type:        req.Type,
		Status:      req.Status,
		Description: req.Description,
		CreatedAt:   req.CreatedAt,
	}
}
