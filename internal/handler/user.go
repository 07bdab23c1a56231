package handler

import (
	"net/http"
	"time"

	"github.com/sitecrew/sitelog/internal/domain"
)

// UserResponse is the JSON shape of an account. The password hash never
// appears on the wire.
type UserResponse struct {
	ID        string          `json:"id"`
	Email     string          `json:"email"`
	Name      string          `json:"name"`
	Role      domain.UserRole `json:"role"`
	CreatedAt time.Time       `json:"created_at"`
}

// UserUpdateRequest is the JSON body for PUT /users/{userID}.
type UserUpdateRequest struct {
	Name string          `json:"name"`
	Role domain.UserRole `json:"role"`
}

// ListUsers handles GET /users.
// Supports ?page=, ?limit=, ?role= and free-text ?query= narrowing.
func (s *Server) ListUsers(w http.ResponseWriter, r *http.Request) {
	params := queryPagination(r)
	criteria := queryCriteria(r, "role")

	users, meta, err := s.users.ListPaged(r.Context(), params, criteria)
	if err != nil {
		writeError(w, err)
		return
	}

	data := make([]UserResponse, len(users))
	for i, u := range users {
		data[i] = userToResponse(u)
	}
	writeJSON(w, http.StatusOK, ListResponse[UserResponse]{Data: data, Pagination: meta})
}

// GetUser handles GET /users/{userID}.
func (s *Server) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "userID")
	if !ok {
		writeError(w, domain.ErrNotFound)
		return
	}

	user, err := s.users.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, userToResponse(user))
}

// UpdateUser handles PUT /users/{userID}.
func (s *Server) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "userID")
	if !ok {
		writeError(w, domain.ErrNotFound)
		return
	}

	var body UserUpdateRequest
	if err := decodeJSON(r, &body); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("request body is required"))
		return
	}

	updated, err := s.users.Update(r.Context(), domain.User{ID: id, Name: body.Name, Role: body.Role})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, userToResponse(updated))
}

// DeleteUser handles DELETE /users/{userID}.
func (s *Server) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "userID")
	if !ok {
		writeError(w, domain.ErrNotFound)
		return
	}

	if err := s.users.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// userToResponse converts a domain.User into its wire shape.
func userToResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
