// Package handler implements the HTTP handlers for the sitelog API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (project.go, report.go, etc.) but all share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sitecrew/sitelog/internal/domain"
	"github.com/sitecrew/sitelog/internal/filter"
	"github.com/sitecrew/sitelog/internal/service"
)

// ProjectServicer defines the business operations the project handler
// depends on. Defining the interface here (in the consumer package) follows
// the Go convention: "accept interfaces, return concrete types". It lets
// handler tests inject a mock without touching the database or service layer.
type ProjectServicer interface {
	Create(ctx context.Context, project domain.Project) (domain.Project, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Project, error)
	ListPaged(ctx context.Context, params domain.PaginationParams, criteria filter.Criteria) ([]domain.Project, domain.PageMeta, error)
	Update(ctx context.Context, project domain.Project) (domain.Project, error)
	Transition(ctx context.Context, id uuid.UUID, next domain.ProjectStatus) (domain.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TeamServicer defines the business operations the team handler depends on.
type TeamServicer interface {
	Create(ctx context.Context, team domain.Team) (domain.Team, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Team, error)
	List(ctx context.Context) ([]domain.Team, error)
	Update(ctx context.Context, team domain.Team) (domain.Team, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddMember(ctx context.Context, member domain.Member) (domain.Member, error)
	RemoveMember(ctx context.Context, teamID, memberID uuid.UUID) error
	ListMembers(ctx context.Context, teamID uuid.UUID) ([]domain.Member, error)
}

// UserServicer defines the business operations the user/auth handlers depend on.
type UserServicer interface {
	Register(ctx context.Context, email, name, password string, role domain.UserRole) (domain.User, error)
	Login(ctx context.Context, email, password string) (domain.User, string, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	ListPaged(ctx context.Context, params domain.PaginationParams, criteria filter.Criteria) ([]domain.User, domain.PageMeta, error)
	Update(ctx context.Context, user domain.User) (domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// RequestServicer defines the business operations the request handler depends on.
type RequestServicer interface {
	Create(ctx context.Context, req domain.Request) (domain.Request, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Request, error)
	ListPaged(ctx context.Context, params domain.PaginationParams, criteria filter.Criteria) ([]domain.Request, domain.PageMeta, error)
	Review(ctx context.Context, id uuid.UUID, verdict domain.RequestStatus) (domain.Request, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UpdateServicer defines the business operations the work-log handler depends on.
type UpdateServicer interface {
	Create(ctx context.Context, update domain.Update) (domain.Update, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Update, error)
	ListByProject(ctx context.Context, projectID uuid.UUID, r domain.DateRange) ([]domain.Update, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ReportServicer defines the report generation operation.
type ReportServicer interface {
	Generate(ctx context.Context, projectID uuid.UUID, mode service.ReportMode, start time.Time, end *time.Time) (service.ProjectReport, error)
}

// MediaServicer defines the presigned-upload operations.
type MediaServicer interface {
	PresignPut(ctx context.Context, contentType string) (string, string, error)
	PresignGet(ctx context.Context, key string) (string, error)
}

// Server holds every handler dependency. Methods live in domain-specific
// files but all operate on this struct. media may be nil when S3 is not
// configured; the media routes then answer 503.
type Server struct {
	projects ProjectServicer
	teams    TeamServicer
	users    UserServicer
	requests RequestServicer
	updates  UpdateServicer
	reports  ReportServicer
	media    MediaServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(
	projects ProjectServicer,
	teams TeamServicer,
	users UserServicer,
	requests RequestServicer,
	updates UpdateServicer,
	reports ReportServicer,
	media MediaServicer,
) *Server {
	return &Server{
		projects: projects,
		teams:    teams,
		users:    users,
		requests: requests,
		updates:  updates,
		reports:  reports,
		media:    media,
	}
}

// PublicRoutes registers the endpoints reachable without a bearer token.
func (s *Server) PublicRoutes(r chi.Router) {
	r.Get("/healthz", s.GetHealth)
	r.Post("/auth/register", s.Register)
	r.Post("/auth/login", s.Login)
}

// ProtectedRoutes registers everything behind the auth middleware.
func (s *Server) ProtectedRoutes(r chi.Router) {
	r.Route("/projects", func(r chi.Router) {
		r.Post("/", s.CreateProject)
		r.Get("/", s.ListProjects)
		r.Get("/{projectID}", s.GetProject)
		r.Put("/{projectID}", s.UpdateProject)
		r.Post("/{projectID}/status", s.TransitionProject)
		r.Delete("/{projectID}", s.DeleteProject)
		r.Get("/{projectID}/report", s.GetProjectReport)
		r.Post("/{projectID}/updates", s.CreateUpdate)
		r.Get("/{projectID}/updates", s.ListUpdates)
	})

	r.Route("/teams", func(r chi.Router) {
		r.Post("/", s.CreateTeam)
		r.Get("/", s.ListTeams)
		r.Get("/{teamID}", s.GetTeam)
		r.Put("/{teamID}", s.UpdateTeam)
		r.Delete("/{teamID}", s.DeleteTeam)
		r.Post("/{teamID}/members", s.AddMember)
		r.Get("/{teamID}/members", s.ListMembers)
		r.Delete("/{teamID}/members/{memberID}", s.RemoveMember)
	})

	r.Route("/users", func(r chi.Router) {
		r.Get("/", s.ListUsers)
		r.Get("/{userID}", s.GetUser)
		r.Put("/{userID}", s.UpdateUser)
		r.Delete("/{userID}", s.DeleteUser)
	})

	r.Route("/requests", func(r chi.Router) {
		r.Post("/", s.CreateRequest)
		r.Get("/", s.ListRequests)
		r.Get("/{requestID}", s.GetRequest)
		r.Post("/{requestID}/review", s.ReviewRequest)
		r.Delete("/{requestID}", s.DeleteRequest)
	})

	r.Route("/media", func(r chi.Router) {
		r.Post("/presign", s.PresignUpload)
		r.Get("/presign", s.PresignDownload)
	})

	r.Delete("/updates/{updateID}", s.DeleteUpdate)
	r.Get("/updates/{updateID}", s.GetUpdate)
}

// GetHealth handles GET /healthz.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- shared helpers ---------------------------------------------------------

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON decodes the request body into v, rejecting unknown fields so
// client typos fail loudly instead of silently dropping data.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// pathUUID parses the named chi URL parameter as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	return id, err == nil
}

// queryPagination builds PaginationParams from the ?page= and ?limit= query
// parameters (defaults: page=1, limit=20, max=100).
func queryPagination(r *http.Request) domain.PaginationParams {
	var page, limit *int
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		page = &v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		limit = &v
	}
	return domain.NewPaginationParams(page, limit)
}

// queryCriteria collects the named query parameters plus the free-text
// "query" parameter into filter criteria. Absent parameters are omitted so
// they stay no-ops.
func queryCriteria(r *http.Request, keys ...string) filter.Criteria {
	c := filter.Criteria{}
	q := r.URL.Query()
	for _, key := range append(keys, filter.Query) {
		if v := q.Get(key); v != "" {
			c[key] = v
		}
	}
	return c
}
