package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/sitecrew/sitelog/internal/domain"
	"github.com/sitecrew/sitelog/internal/repo"
)

// Hand-written test doubles for the repo interfaces. Each method is a
// function field: set only the ones your test needs, an unset method panics
// and points straight at the unexpected call. They are shared across the
// service test files, so they live here rather than in any one of them.

type mockProjectRepo struct {
	create    func(ctx context.Context, project domain.Project) (domain.Project, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Project, error)
	listPaged func(ctx context.Context, params domain.PaginationParams) ([]domain.Project, int, error)
	update    func(ctx context.Context, project domain.Project) (domain.Project, error)
	setStatus func(ctx context.Context, id uuid.UUID, status domain.ProjectStatus) (domain.Project, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockProjectRepo) Create(ctx context.Context, project domain.Project) (domain.Project, error) {
	return m.create(ctx, project)
}
func (m *mockProjectRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Project, error) {
	return m.getByID(ctx, id)
}
func (m *mockProjectRepo) ListPaged(ctx context.Context, params domain.PaginationParams) ([]domain.Project, int, error) {
	return m.listPaged(ctx, params)
}
func (m *mockProjectRepo) Update(ctx context.Context, project domain.Project) (domain.Project, error) {
	return m.update(ctx, project)
}
func (m *mockProjectRepo) SetStatus(ctx context.Context, id uuid.UUID, status domain.ProjectStatus) (domain.Project, error) {
	return m.setStatus(ctx, id, status)
}
func (m *mockProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.ProjectRepo = (*mockProjectRepo)(nil)

type mockTeamRepo struct {
	create       func(ctx context.Context, team domain.Team) (domain.Team, error)
	getByID      func(ctx context.Context, id uuid.UUID) (domain.Team, error)
	list         func(ctx context.Context) ([]domain.Team, error)
	update       func(ctx context.Context, team domain.Team) (domain.Team, error)
	delete       func(ctx context.Context, id uuid.UUID) error
	addMember    func(ctx context.Context, member domain.Member) (domain.Member, error)
	removeMember func(ctx context.Context, teamID, memberID uuid.UUID) error
	listMembers  func(ctx context.Context, teamID uuid.UUID) ([]domain.Member, error)
}

func (m *mockTeamRepo) Create(ctx context.Context, team domain.Team) (domain.Team, error) {
	return m.create(ctx, team)
}
func (m *mockTeamRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Team, error) {
	return m.getByID(ctx, id)
}
func (m *mockTeamRepo) List(ctx context.Context) ([]domain.Team, error) {
	return m.list(ctx)
}
func (m *mockTeamRepo) Update(ctx context.Context, team domain.Team) (domain.Team, error) {
	return m.update(ctx, team)
}
func (m *mockTeamRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockTeamRepo) AddMember(ctx context.Context, member domain.Member) (domain.Member, error) {
	return m.addMember(ctx, member)
}
func (m *mockTeamRepo) RemoveMember(ctx context.Context, teamID, memberID uuid.UUID) error {
	return m.removeMember(ctx, teamID, memberID)
}
func (m *mockTeamRepo) ListMembers(ctx context.Context, teamID uuid.UUID) ([]domain.Member, error) {
	return m.listMembers(ctx, teamID)
}

var _ repo.TeamRepo = (*mockTeamRepo)(nil)

type mockUserRepo struct {
	create     func(ctx context.Context, user domain.User) (domain.User, error)
	getByID    func(ctx context.Context, id uuid.UUID) (domain.User, error)
	getByEmail func(ctx context.Context, email string) (domain.User, error)
	listPaged  func(ctx context.Context, params domain.PaginationParams) ([]domain.User, int, error)
	update     func(ctx context.Context, user domain.User) (domain.User, error)
	delete     func(ctx context.Context, id uuid.UUID) error
}

func (m *mockUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	return m.create(ctx, user)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return m.getByEmail(ctx, email)
}
func (m *mockUserRepo) ListPaged(ctx context.Context, params domain.PaginationParams) ([]domain.User, int, error) {
	return m.listPaged(ctx, params)
}
func (m *mockUserRepo) Update(ctx context.Context, user domain.User) (domain.User, error) {
	return m.update(ctx, user)
}
func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.UserRepo = (*mockUserRepo)(nil)

type mockRequestRepo struct {
	create    func(ctx context.Context, req domain.Request) (domain.Request, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Request, error)
	listPaged func(ctx context.Context, params domain.PaginationParams) ([]domain.Request, int, error)
	setStatus func(ctx context.Context, id uuid.UUID, status domain.RequestStatus) (domain.Request, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockRequestRepo) Create(ctx context.Context, req domain.Request) (domain.Request, error) {
	return m.create(ctx, req)
}
func (m *mockRequestRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Request, error) {
	return m.getByID(ctx, id)
}
func (m *mockRequestRepo) ListPaged(ctx context.Context, params domain.PaginationParams) ([]domain.Request, int, error) {
	return m.listPaged(ctx, params)
}
func (m *mockRequestRepo) SetStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus) (domain.Request, error) {
	return m.setStatus(ctx, id, status)
}
func (m *mockRequestRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.RequestRepo = (*mockRequestRepo)(nil)

type mockUpdateRepo struct {
	create               func(ctx context.Context, update domain.Update) (domain.Update, error)
	getByID              func(ctx context.Context, id uuid.UUID) (domain.Update, error)
	listByProjectBetween func(ctx context.Context, projectID uuid.UUID, r domain.DateRange) ([]domain.Update, error)
	delete               func(ctx context.Context, id uuid.UUID) error
}

func (m *mockUpdateRepo) Create(ctx context.Context, update domain.Update) (domain.Update, error) {
	return m.create(ctx, update)
}
func (m *mockUpdateRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Update, error) {
	return m.getByID(ctx, id)
}
func (m *mockUpdateRepo) ListByProjectBetween(ctx context.Context, projectID uuid.UUID, r domain.DateRange) ([]domain.Update, error) {
	return m.listByProjectBetween(ctx, projectID, r)
}
func (m *mockUpdateRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.UpdateRepo = (*mockUpdateRepo)(nil)
