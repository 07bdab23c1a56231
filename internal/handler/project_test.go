package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitecrew/sitelog/internal/domain"
	"github.com/sitecrew/sitelog/internal/filter"
	"github.com/sitecrew/sitelog/internal/handler"
)

func projectFixture() domain.Project {
	end := time.Date(2024, 9, 30, 0, 0, 0, 0, time.UTC)
	return domain.Project{
		ID:        uuid.New(),
		Name:      "Harbour bridge repaint",
		Status:    domain.StatusPlanning,
		StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   &end,
	}
}

// ---- POST /projects --------------------------------------------------------

func TestCreateProject_201(t *testing.T) {
	fixture := projectFixture()
	svc := &mockProjectServicer{
		create: func(_ context.Context, p domain.Project) (domain.Project, error) {
			assert.Equal(t, "Harbour bridge repaint", p.Name)
			return fixture, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"name":       "Harbour bridge repaint",
		"start_date": "2024-03-01",
		"end_date":   "2024-09-30",
	})
	rec := httptest.NewRecorder()
	newRouter(serverDeps{projects: svc}).ServeHTTP(rec, authedRequest(t, http.MethodPost, "/projects", body))

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp handler.ProjectResponse
	decodeResponse(t, rec, &resp)
	assert.Equal(t, fixture.ID.String(), resp.ID)
	assert.Equal(t, domain.StatusPlanning, resp.Status)
}

func TestCreateProject_422_ValidationError(t *testing.T) {
	svc := &mockProjectServicer{
		create: func(_ context.Context, _ domain.Project) (domain.Project, error) {
			return domain.Project{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
		},
	}

	body := jsonBody(t, map[string]any{"name": "", "start_date": "2024-03-01"})
	rec := httptest.NewRecorder()
	newRouter(serverDeps{projects: svc}).ServeHTTP(rec, authedRequest(t, http.MethodPost, "/projects", body))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp handler.ErrorResponse
	decodeResponse(t, rec, &resp)
	assert.Equal(t, "validation_error", resp.Error.Code)
	assert.Equal(t, "name is required", resp.Error.Message)
}

func TestCreateProject_422_BadTeamID(t *testing.T) {
	body := jsonBody(t, map[string]any{
		"name":       "Depot extension",
		"start_date": "2024-03-01",
		"team_id":    "not-a-uuid",
	})
	rec := httptest.NewRecorder()
	newRouter(serverDeps{}).ServeHTTP(rec, authedRequest(t, http.MethodPost, "/projects", body))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCreateProject_401_WithoutToken(t *testing.T) {
	body := jsonBody(t, map[string]any{"name": "x", "start_date": "2024-03-01"})
	req := httptest.NewRequest(http.MethodPost, "/projects", body)
	rec := httptest.NewRecorder()

	newRouter(serverDeps{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ---- GET /projects ---------------------------------------------------------

func TestListProjects_200_WithPaginationAndCriteria(t *testing.T) {
	fixture := projectFixture()
	svc := &mockProjectServicer{
		listPaged: func(_ context.Context, params domain.PaginationParams, criteria filter.Criteria) ([]domain.Project, domain.PageMeta, error) {
			assert.Equal(t, 2, params.Page)
			assert.Equal(t, 10, params.Limit)
			assert.Equal(t, "planning", criteria["status"])
			assert.Equal(t, "bridge", criteria[filter.Query])
			return []domain.Project{fixture}, domain.NewPageMeta(params, 11), nil
		},
	}

	rec := httptest.NewRecorder()
	newRouter(serverDeps{projects: svc}).ServeHTTP(rec,
		authedRequest(t, http.MethodGet, "/projects?page=2&limit=10&status=planning&query=bridge", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp handler.ListResponse[handler.ProjectResponse]
	decodeResponse(t, rec, &resp)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, 11, resp.Pagination.Total)
	assert.Equal(t, 2, resp.Pagination.TotalPages)
}

// ---- GET /projects/{projectID} ---------------------------------------------

func TestGetProject_404(t *testing.T) {
	svc := &mockProjectServicer{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Project, error) {
			return domain.Project{}, domain.ErrNotFound
		},
	}

	rec := httptest.NewRecorder()
	newRouter(serverDeps{projects: svc}).ServeHTTP(rec,
		authedRequest(t, http.MethodGet, "/projects/"+uuid.NewString(), nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetProject_404_MalformedID(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(serverDeps{}).ServeHTTP(rec,
		authedRequest(t, http.MethodGet, "/projects/not-a-uuid", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ---- POST /projects/{projectID}/status -------------------------------------

func TestTransitionProject_200(t *testing.T) {
	fixture := projectFixture()
	fixture.Status = domain.StatusInProgress
	svc := &mockProjectServicer{
		transition: func(_ context.Context, id uuid.UUID, next domain.ProjectStatus) (domain.Project, error) {
			assert.Equal(t, fixture.ID, id)
			assert.Equal(t, domain.StatusInProgress, next)
			return fixture, nil
		},
	}

	body := jsonBody(t, map[string]any{"status": "in_progress"})
	rec := httptest.NewRecorder()
	newRouter(serverDeps{projects: svc}).ServeHTTP(rec,
		authedRequest(t, http.MethodPost, "/projects/"+fixture.ID.String()+"/status", body))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp handler.ProjectResponse
	decodeResponse(t, rec, &resp)
	assert.Equal(t, domain.StatusInProgress, resp.Status)
}

func TestTransitionProject_422_IllegalMove(t *testing.T) {
	svc := &mockProjectServicer{
		transition: func(_ context.Context, _ uuid.UUID, _ domain.ProjectStatus) (domain.Project, error) {
			return domain.Project{}, fmt.Errorf("%w: cannot move from planning to completed", domain.ErrValidation)
		},
	}

	body := jsonBody(t, map[string]any{"status": "completed"})
	rec := httptest.NewRecorder()
	newRouter(serverDeps{projects: svc}).ServeHTTP(rec,
		authedRequest(t, http.MethodPost, "/projects/"+uuid.NewString()+"/status", body))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

// ---- DELETE /projects/{projectID} ------------------------------------------

func TestDeleteProject_204(t *testing.T) {
	svc := &mockProjectServicer{
		delete: func(_ context.Context, _ uuid.UUID) error { return nil },
	}

	rec := httptest.NewRecorder()
	newRouter(serverDeps{projects: svc}).ServeHTTP(rec,
		authedRequest(t, http.MethodDelete, "/projects/"+uuid.NewString(), nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
