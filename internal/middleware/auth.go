package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/sitecrew/sitelog/internal/auth"
)

// ctxKey is unexported so no other package can forge context values.
type ctxKey int

const (
	userIDKey ctxKey = iota
	userRoleKey
)

// NewAuthHandler returns a middleware that requires a valid "Bearer" token
// signed with secret. On success the user id and role from the claims are
// placed in the request context for handlers to read via UserID / UserRole;
// on failure the request is rejected with a 401 JSON body and never reaches
// the next handler.
func NewAuthHandler(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				unauthorized(w, "missing bearer token")
				return
			}

			claims, err := auth.ParseToken(token, secret)
			if err != nil {
				unauthorized(w, "invalid or expired token")
				return
			}

			uid, err := uuid.Parse(claims.UserID)
			if err != nil {
				unauthorized(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, uid)
			ctx = context.WithValue(ctx, userRoleKey, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated user's id from the request context.
// The second return is false on unauthenticated requests (routes mounted
// outside the auth middleware).
func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// UserRole returns the authenticated user's role from the request context.
func UserRole(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(userRoleKey).(string)
	return role, ok
}

// unauthorized writes the same JSON error shape handlers use, so clients see
// one error format regardless of which layer rejected them.
func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": "unauthorized", "message": message},
	})
}
