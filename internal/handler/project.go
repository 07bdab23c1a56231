package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/sitecrew/sitelog/internal/domain"
)

// ProjectRequest is the JSON body for creating or updating a project.
// Dates travel as "2006-01-02" strings via openapi_types.Date.
type ProjectRequest struct {
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	StartDate   openapi_types.Date  `json:"start_date"`
	EndDate     *openapi_types.Date `json:"end_date,omitempty"`
	TeamID      *string             `json:"team_id,omitempty"`
}

// ProjectResponse is the JSON shape of a project.
type ProjectResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	Status      domain.ProjectStatus `json:"status"`
	StartDate   openapi_types.Date   `json:"start_date"`
	EndDate     *openapi_types.Date  `json:"end_date,omitempty"`
	TeamID      *string              `json:"team_id,omitempty"`
}

// ListResponse is the generic paginated list envelope.
type ListResponse[T any] struct {
	Data       []T             `json:"data"`
	Pagination domain.PageMeta `json:"pagination"`
}

// CreateProject handles POST /projects.
func (s *Server) CreateProject(w http.ResponseWriter, r *http.Request) {
	project, err := requestToProject(r)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	created, err := s.projects.Create(r.Context(), project)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, projectToResponse(created))
}

// ListProjects handles GET /projects.
// Supports ?page= and ?limit= plus ?status= and free-text ?query= narrowing.
func (s *Server) ListProjects(w http.ResponseWriter, r *http.Request) {
	params := queryPagination(r)
	criteria := queryCriteria(r, "status")

	projects, meta, err := s.projects.ListPaged(r.Context(), params, criteria)
	if err != nil {
		writeError(w, err)
		return
	}

	data := make([]ProjectResponse, len(projects))
	for i, p := range projects {
		data[i] = projectToResponse(p)
	}
	writeJSON(w, http.StatusOK, ListResponse[ProjectResponse]{Data: data, Pagination: meta})
}

// GetProject handles GET /projects/{projectID}.
func (s *Server) GetProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "projectID")
	if !ok {
		writeError(w, domain.ErrNotFound)
		return
	}

	project, err := s.projects.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projectToResponse(project))
}

// UpdateProject handles PUT /projects/{projectID}.
func (s *Server) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "projectID")
	if !ok {
		writeError(w, domain.ErrNotFound)
		return
	}

	project, err := requestToProject(r)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}
	project.ID = id

	updated, err := s.projects.Update(r.Context(), project)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projectToResponse(updated))
}

// TransitionProject handles POST /projects/{projectID}/status.
// Body: {"status": "in_progress"}.
func (s *Server) TransitionProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "projectID")
	if !ok {
		writeError(w, domain.ErrNotFound)
		return
	}

	var body struct {
		Status domain.ProjectStatus `json:"status"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("request body is required"))
		return
	}

	project, err := s.projects.Transition(r.Context(), id, body.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projectToResponse(project))
}

// DeleteProject handles DELETE /projects/{projectID}.
func (s *Server) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "projectID")
	if !ok {
		writeError(w, domain.ErrNotFound)
		return
	}

	if err := s.projects.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

// requestToProject decodes and converts a ProjectRequest body into a
// domain.Project. Returns an error if the body is missing or malformed.
func requestToProject(r *http.Request) (domain.Project, error) {
	var body ProjectRequest
	if err := decodeJSON(r, &body); err != nil {
		return domain.Project{}, errors.New("request body is required")
	}

	p := domain.Project{
		Name:        body.Name,
		Description: body.Description,
		StartDate:   body.StartDate.Time,
	}
	if body.EndDate != nil {
		ed := body.EndDate.Time
		p.EndDate = &ed
	}
	if body.TeamID != nil {
		tid, err := uuid.Parse(*body.TeamID)
		if err != nil {
			return domain.Project{}, errors.New("team_id must be a valid UUID")
		}
		p.TeamID = &tid
	}
	return p, nil
}

// projectToResponse converts a domain.Project into its wire shape.
func projectToResponse(p domain.Project) ProjectResponse {
	resp := ProjectResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		StartDate:   openapi_types.Date{Time: p.StartDate},
	}
	if p.EndDate != nil {
		ed := openapi_types.Date{Time: *p.EndDate}
		resp.EndDate = &ed
	}
	if p.TeamID != nil {
		tid := p.TeamID.String()
		resp.TeamID = &tid
	}
	return resp
}
