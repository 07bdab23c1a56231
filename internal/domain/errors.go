package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrUnauthorized is returned when credentials are missing, wrong, or the
// bearer token fails verification.
// Handlers should map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")

// ErrConflict is returned when a create would violate a uniqueness rule,
// such as registering an email address that is already taken.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// FieldErrors maps an input field name (e.g. "start_date") to a
// human-readable message. It is the advisory result of report range
// validation: a non-empty map annotates fields without blocking the caller,
// who decides whether to proceed.
type FieldErrors map[string]string

// Any reports whether at least one field carries an error.
func (e FieldErrors) Any() bool {
	return len(e) > 0
}
