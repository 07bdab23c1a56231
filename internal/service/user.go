package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sitecrew/sitelog/internal/auth"
	"github.com/sitecrew/sitelog/internal/domain"
	"github.com/sitecrew/sitelog/internal/filter"
	"github.com/sitecrew/sitelog/internal/repo"
)

// minPasswordLen is the minimum accepted password length at registration.
const minPasswordLen = 8

// UserService implements account management and authentication.
type UserService struct {
	repo     repo.UserRepo
	secret   []byte
	tokenTTL time.Duration
	narrowf  *filter.Engine[domain.User]
}

// NewUserService constructs a UserService. secret signs bearer tokens;
// tokenTTL bounds their lifetime.
func NewUserService(r repo.UserRepo, secret []byte, tokenTTL time.Duration) *UserService {
	narrow := filter.NewEngine(
		map[string]filter.Extractor[domain.User]{
			"role": func(u domain.User) string { return string(u.Role) },
		},
		func(u domain.User) string { return u.Name },
		func(u domain.User) string { return u.Email },
	)
	return &UserService{repo: r, secret: secret, tokenTTL: tokenTTL, narrowf: narrow}
}

// Register validates the input, hashes the password with bcrypt, and
// persists the account. Returns domain.ErrConflict if the email is taken.
func (s *UserService) Register(ctx context.Context, email, name, password string, role domain.UserRole) (domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return domain.User{}, fmt.Errorf("%w: a valid email is required", domain.ErrValidation)
	}
	if strings.TrimSpace(name) == "" {
		return domain.User{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if len(password) < minPasswordLen {
		return domain.User{}, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLen)
	}
	if !role.Valid() {
		return domain.User{}, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Register: hash: %w", err)
	}

	user := domain.User{Email: email, Name: name, Role: role, PasswordHash: string(hash)}
	result, err := s.repo.Create(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Register: %w", err)
	}
	return result, nil
}

// Login checks the credentials and returns the user plus a signed bearer token.
// Wrong email and wrong password both come back as domain.ErrUnauthorized;
// the response never reveals which half was wrong.
func (s *UserService) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.UserService.Login: %w", domain.ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, "", fmt.Errorf("service.UserService.Login: %w", domain.ErrUnauthorized)
	}

	token, err := auth.GenerateToken(user, s.secret, s.tokenTTL)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.UserService.Login: %w", err)
	}
	return user, token, nil
}

// GetByID returns a single user by ID.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of users, narrowed by the given criteria, plus
// the page meta. Always returns a non-nil slice.
func (s *UserService) ListPaged(ctx context.Context, params domain.PaginationParams, criteria filter.Criteria) ([]domain.User, domain.PageMeta, error) {
	users, total, err := s.repo.ListPaged(ctx, params)
	if err != nil {
		return nil, domain.PageMeta{}, fmt.Errorf("service.UserService.ListPaged: %w", err)
	}

	users = s.narrowf.Apply(users, criteria)
	if users == nil {
		users = []domain.User{}
	}
	return users, domain.NewPageMeta(params, total), nil
}

// Update validates and updates name and role of an existing user.
func (s *UserService) Update(ctx context.Context, user domain.User) (domain.User, error) {
	if strings.TrimSpace(user.Name) == "" {
		return domain.User{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if !user.Role.Valid() {
		return domain.User{}, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, user.Role)
	}
	result, err := s.repo.Update(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a user by ID.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.UserService.Delete: %w", err)
	}
	return nil
}
