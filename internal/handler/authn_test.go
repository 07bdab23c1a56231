package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitecrew/sitelog/internal/domain"
	"github.com/sitecrew/sitelog/internal/handler"
)

func userFixture() domain.User {
	return domain.User{
		ID:    uuid.New(),
		Email: "ana@example.com",
		Name:  "Ana",
		Role:  domain.RoleWorker,
	}
}

// ---- POST /auth/register ---------------------------------------------------

func TestRegister_201(t *testing.T) {
	fixture := userFixture()
	svc := &mockUserServicer{
		register: func(_ context.Context, email, name, password string, role domain.UserRole) (domain.User, error) {
			assert.Equal(t, "ana@example.com", email)
			assert.Equal(t, "secret-password", password)
			assert.Equal(t, domain.RoleWorker, role, "role defaults to worker when absent")
			return fixture, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"email":    "ana@example.com",
		"name":     "Ana",
		"password": "secret-password",
	})
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	rec := httptest.NewRecorder()

	newRouter(serverDeps{users: svc}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp handler.UserResponse
	decodeResponse(t, rec, &resp)
	assert.Equal(t, fixture.ID.String(), resp.ID)
	assert.Equal(t, "ana@example.com", resp.Email)
}

func TestRegister_409_DuplicateEmail(t *testing.T) {
	svc := &mockUserServicer{
		register: func(_ context.Context, _, _, _ string, _ domain.UserRole) (domain.User, error) {
			return domain.User{}, fmt.Errorf("%w: email already registered", domain.ErrConflict)
		},
	}

	body := jsonBody(t, map[string]any{"email": "taken@example.com", "name": "Ana", "password": "secret-password"})
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	rec := httptest.NewRecorder()

	newRouter(serverDeps{users: svc}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

// The password hash must never appear in any serialized user.
func TestRegister_ResponseOmitsPasswordHash(t *testing.T) {
	fixture := userFixture()
	fixture.PasswordHash = "$2a$10$something"
	svc := &mockUserServicer{
		register: func(_ context.Context, _, _, _ string, _ domain.UserRole) (domain.User, error) {
			return fixture, nil
		},
	}

	body := jsonBody(t, map[string]any{"email": "ana@example.com", "name": "Ana", "password": "secret-password"})
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	rec := httptest.NewRecorder()

	newRouter(serverDeps{users: svc}).ServeHTTP(rec, req)

	assert.NotContains(t, rec.Body.String(), "$2a$10$")
}

// ---- POST /auth/login ------------------------------------------------------

func TestLogin_200_ReturnsTokenAndUser(t *testing.T) {
	fixture := userFixture()
	svc := &mockUserServicer{
		login: func(_ context.Context, email, password string) (domain.User, string, error) {
			assert.Equal(t, "ana@example.com", email)
			assert.Equal(t, "secret-password", password)
			return fixture, "signed.jwt.token", nil
		},
	}

	body := jsonBody(t, map[string]any{"email": "ana@example.com", "password": "secret-password"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	rec := httptest.NewRecorder()

	newRouter(serverDeps{users: svc}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp handler.AuthResponse
	decodeResponse(t, rec, &resp)
	assert.Equal(t, "signed.jwt.token", resp.Token)
	assert.Equal(t, fixture.ID.String(), resp.User.ID)
}

func TestLogin_401_BadCredentials(t *testing.T) {
	svc := &mockUserServicer{
		login: func(_ context.Context, _, _ string) (domain.User, string, error) {
			return domain.User{}, "", domain.ErrUnauthorized
		},
	}

	body := jsonBody(t, map[string]any{"email": "ana@example.com", "password": "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	rec := httptest.NewRecorder()

	newRouter(serverDeps{users: svc}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp handler.ErrorResponse
	decodeResponse(t, rec, &resp)
	assert.Equal(t, "unauthorized", resp.Error.Code)
}

func TestLogin_422_MissingBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	rec := httptest.NewRecorder()

	newRouter(serverDeps{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

// ---- GET /healthz ----------------------------------------------------------

func TestGetHealth_200(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	newRouter(serverDeps{}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	decodeResponse(t, rec, &body)
	assert.Equal(t, "ok", body["status"])
}
