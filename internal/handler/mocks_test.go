package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/sitecrew/sitelog/internal/auth"
	"github.com/sitecrew/sitelog/internal/domain"
	"github.com/sitecrew/sitelog/internal/filter"
	"github.com/sitecrew/sitelog/internal/handler"
	"github.com/sitecrew/sitelog/internal/middleware"
	"github.com/sitecrew/sitelog/internal/service"
)

// Test doubles for the servicer interfaces, one per handler file. Each method
// is a function field; set only the ones your test needs.

type mockProjectServicer struct {
	create     func(ctx context.Context, project domain.Project) (domain.Project, error)
	getByID    func(ctx context.Context, id uuid.UUID) (domain.Project, error)
	listPaged  func(ctx context.Context, params domain.PaginationParams, criteria filter.Criteria) ([]domain.Project, domain.PageMeta, error)
	update     func(ctx context.Context, project domain.Project) (domain.Project, error)
	transition func(ctx context.Context, id uuid.UUID, next domain.ProjectStatus) (domain.Project, error)
	delete     func(ctx context.Context, id uuid.UUID) error
}

func (m *mockProjectServicer) Create(ctx context.Context, p domain.Project) (domain.Project, error) {
	return m.create(ctx, p)
}
func (m *mockProjectServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Project, error) {
	return m.getByID(ctx, id)
}
func (m *mockProjectServicer) ListPaged(ctx context.Context, params domain.PaginationParams, criteria filter.Criteria) ([]domain.Project, domain.PageMeta, error) {
	return m.listPaged(ctx, params, criteria)
}
func (m *mockProjectServicer) Update(ctx context.Context, p domain.Project) (domain.Project, error) {
	return m.update(ctx, p)
}
func (m *mockProjectServicer) Transition(ctx context.Context, id uuid.UUID, next domain.ProjectStatus) (domain.Project, error) {
	return m.transition(ctx, id, next)
}
func (m *mockProjectServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ handler.ProjectServicer = (*mockProjectServicer)(nil)

type mockTeamServicer struct {
	create       func(ctx context.Context, team domain.Team) (domain.Team, error)
	getByID      func(ctx context.Context, id uuid.UUID) (domain.Team, error)
	list         func(ctx context.Context) ([]domain.Team, error)
	update       func(ctx context.Context, team domain.Team) (domain.Team, error)
	delete       func(ctx context.Context, id uuid.UUID) error
	addMember    func(ctx context.Context, member domain.Member) (domain.Member, error)
	removeMember func(ctx context.Context, teamID, memberID uuid.UUID) error
	listMembers  func(ctx context.Context, teamID uuid.UUID) ([]domain.Member, error)
}

func (m *mockTeamServicer) Create(ctx context.Context, team domain.Team) (domain.Team, error) {
	return m.create(ctx, team)
}
func (m *mockTeamServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Team, error) {
	return m.getByID(ctx, id)
}
func (m *mockTeamServicer) List(ctx context.Context) ([]domain.Team, error) {
	return m.list(ctx)
}
func (m *mockTeamServicer) Update(ctx context.Context, team domain.Team) (domain.Team, error) {
	return m.update(ctx, team)
}
func (m *mockTeamServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockTeamServicer) AddMember(ctx context.Context, member domain.Member) (domain.Member, error) {
	return m.addMember(ctx, member)
}
func (m *mockTeamServicer) RemoveMember(ctx context.Context, teamID, memberID uuid.UUID) error {
	return m.removeMember(ctx, teamID, memberID)
}
func (m *mockTeamServicer) ListMembers(ctx context.Context, teamID uuid.UUID) ([]domain.Member, error) {
	return m.listMembers(ctx, teamID)
}

var _ handler.TeamServicer = (*mockTeamServicer)(nil)

type mockUserServicer struct {
	register  func(ctx context.Context, email, name, password string, role domain.UserRole) (domain.User, error)
	login     func(ctx context.Context, email, password string) (domain.User, string, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.User, error)
	listPaged func(ctx context.Context, params domain.PaginationParams, criteria filter.Criteria) ([]domain.User, domain.PageMeta, error)
	update    func(ctx context.Context, user domain.User) (domain.User, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockUserServicer) Register(ctx context.Context, email, name, password string, role domain.UserRole) (domain.User, error) {
	return m.register(ctx, email, name, password, role)
}
func (m *mockUserServicer) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	return m.login(ctx, email, password)
}
func (m *mockUserServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}
func (m *mockUserServicer) ListPaged(ctx context.Context, params domain.PaginationParams, criteria filter.Criteria) ([]domain.User, domain.PageMeta, error) {
	return m.listPaged(ctx, params, criteria)
}
func (m *mockUserServicer) Update(ctx context.Context, u domain.User) (domain.User, error) {
	return m.update(ctx, u)
}
func (m *mockUserServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ handler.UserServicer = (*mockUserServicer)(nil)

type mockRequestServicer struct {
	create    func(ctx context.Context, req domain.Request) (domain.Request, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Request, error)
	listPaged func(ctx context.Context, params domain.PaginationParams, criteria filter.Criteria) ([]domain.Request, domain.PageMeta, error)
	review    func(ctx context.Context, id uuid.UUID, verdict domain.RequestStatus) (domain.Request, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockRequestServicer) Create(ctx context.Context, req domain.Request) (domain.Request, error) {
	return m.create(ctx, req)
}
func (m *mockRequestServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Request, error) {
	return m.getByID(ctx, id)
}
func (m *mockRequestServicer) ListPaged(ctx context.Context, params domain.PaginationParams, criteria filter.Criteria) ([]domain.Request, domain.PageMeta, error) {
	return m.listPaged(ctx, params, criteria)
}
func (m *mockRequestServicer) Review(ctx context.Context, id uuid.UUID, verdict domain.RequestStatus) (domain.Request, error) {
	return m.review(ctx, id, verdict)
}
func (m *mockRequestServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ handler.RequestServicer = (*mockRequestServicer)(nil)

type mockUpdateServicer struct {
	create        func(ctx context.Context, update domain.Update) (domain.Update, error)
	getByID       func(ctx context.Context, id uuid.UUID) (domain.Update, error)
	listByProject func(ctx context.Context, projectID uuid.UUID, r domain.DateRange) ([]domain.Update, error)
	delete        func(ctx context.Context, id uuid.UUID) error
}

func (m *mockUpdateServicer) Create(ctx context.Context, u domain.Update) (domain.Update, error) {
	return m.create(ctx, u)
}
func (m *mockUpdateServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Update, error) {
	return m.getByID(ctx, id)
}
func (m *mockUpdateServicer) ListByProject(ctx context.Context, projectID uuid.UUID, r domain.DateRange) ([]domain.Update, error) {
	return m.listByProject(ctx, projectID, r)
}
func (m *mockUpdateServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ handler.UpdateServicer = (*mockUpdateServicer)(nil)

type mockReportServicer struct {
	generate func(ctx context.Context, projectID uuid.UUID, mode service.ReportMode, start time.Time, end *time.Time) (service.ProjectReport, error)
}

func (m *mockReportServicer) Generate(ctx context.Context, projectID uuid.UUID, mode service.ReportMode, start time.Time, end *time.Time) (service.ProjectReport, error) {
	return m.generate(ctx, projectID, mode, start, end)
}

var _ handler.ReportServicer = (*mockReportServicer)(nil)

type mockMediaServicer struct {
	presignPut func(ctx context.Context, contentType string) (string, string, error)
	presignGet func(ctx context.Context, key string) (string, error)
}

func (m *mockMediaServicer) PresignPut(ctx context.Context, contentType string) (string, string, error) {
	return m.presignPut(ctx, contentType)
}
func (m *mockMediaServicer) PresignGet(ctx context.Context, key string) (string, error) {
	return m.presignGet(ctx, key)
}

var _ handler.MediaServicer = (*mockMediaServicer)(nil)

// ---- helpers ---------------------------------------------------------------

var handlerSecret = []byte("handler-test-secret")

// testUserID is the authenticated caller every authed test request runs as.
var testUserID = uuid.New()

// serverDeps bundles the seven Server dependencies so each test fills in only
// what it needs; nil members are fine as long as the route under test never
// touches them.
type serverDeps struct {
	projects handler.ProjectServicer
	teams    handler.TeamServicer
	users    handler.UserServicer
	requests handler.RequestServicer
	updates  handler.UpdateServicer
	reports  handler.ReportServicer
	media    handler.MediaServicer
}

// newRouter mirrors main.go's wiring: public routes open, everything else
// behind the bearer-token middleware.
func newRouter(d serverDeps) http.Handler {
	srv := handler.NewServer(d.projects, d.teams, d.users, d.requests, d.updates, d.reports, d.media)
	r := chi.NewRouter()
	r.Group(srv.PublicRoutes)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAuthHandler(handlerSecret))
		srv.ProtectedRoutes(r)
	})
	return r
}

// authedRequest builds a request carrying a valid bearer token for testUserID.
func authedRequest(t *testing.T, method, target string, body *bytes.Buffer) *http.Request {
	t.Helper()

	token, err := auth.GenerateToken(domain.User{ID: testUserID, Role: domain.RoleWorker}, handlerSecret, time.Hour)
	require.NoError(t, err)

	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
}
