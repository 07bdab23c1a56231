package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/sitecrew/sitelog/internal/domain"
	"github.com/sitecrew/sitelog/internal/filter"
	"github.com/sitecrew/sitelog/internal/repo"
)

// RequestService implements business logic for site requests.
// It holds the project repo because a request must target an existing project.
type RequestService struct {
	requests repo.RequestRepo
	projects repo.ProjectRepo
	narrowf  *filter.Engine[domain.Request]
}

// NewRequestService constructs a RequestService backed by the provided repos.
func NewRequestService(requests repo.RequestRepo, projects repo.ProjectRepo) *RequestService {
	narrow := filter.NewEngine(
		map[string]filter.Extractor[domain.Request]{
			"status":     func(r domain.Request) string { return string(r.Status) },
			"type":       func(r domain.Request) string { return string(r.Type) },
			"project_id": func(r domain.Request) string { return r.ProjectID.String() },
		},
		func(r domain.Request) string { return r.Description },
	)
	return &RequestService{requests: requests, projects: projects, narrowf: narrow}
}

// Create validates the request, verifies the target project exists, then
// persists it in the pending state.
func (s *RequestService) Create(ctx context.Context, req domain.Request) (domain.Request, error) {
	if !req.Type.Valid() {
		return domain.Request{}, fmt.Errorf("%w: unknown request type %q", domain.ErrValidation, req.Type)
	}
	if strings.TrimSpace(req.Description) == "" {
		return domain.Request{}, fmt.Errorf("%w: description is required", domain.ErrValidation)
	}
	if _, err := s.projects.GetByID(ctx, req.ProjectID); err != nil {
		return domain.Request{}, fmt.Errorf("service.RequestService.Create: %w", err)
	}

	req.Status = domain.RequestPending
	result, err := s.requests.Create(ctx, req)
	if err != nil {
		return domain.Request{}, fmt.Errorf("service.RequestService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single request by ID.
func (s *RequestService) GetByID(ctx context.Context, id uuid.UUID) (domain.Request, error) {
	result, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return domain.Request{}, fmt.Errorf("service.RequestService.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of requests, narrowed by the given criteria,
// plus the page meta. Always returns a non-nil slice.
func (s *RequestService) ListPaged(ctx context.Context, params domain.PaginationParams, criteria filter.Criteria) ([]domain.Request, domain.PageMeta, error) {
	requests, total, err := s.requests.ListPaged(ctx, params)
	if err != nil {
		return nil, domain.PageMeta{}, fmt.Errorf("service.RequestService.ListPaged: %w", err)
	}

	requests = s.narrowf.Apply(requests, criteria)
	if requests == nil {
		requests = []domain.Request{}
	}
	return requests, domain.NewPageMeta(params, total), nil
}

// Review approves or rejects a pending request. A request is reviewed at
// most once; re-reviewing fails with domain.ErrValidation.
func (s *RequestService) Review(ctx context.Context, id uuid.UUID, verdict domain.RequestStatus) (domain.Request, error) {
	if verdict != domain.RequestApproved && verdict != domain.RequestRejected {
		return domain.Request{}, fmt.Errorf("%w: verdict must be approved or rejected", domain.ErrValidation)
	}

	current, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return domain.Request{}, fmt.Errorf("service.RequestService.Review: %w", err)
	}
	if current.Status != domain.RequestPending {
		return domain.Request{}, fmt.Errorf("%w: request already %s", domain.ErrValidation, current.Status)
	}

	result, err := s.requests.SetStatus(ctx, id, verdict)
	if err != nil {
		return domain.Request{}, fmt.Errorf("service.RequestService.Review: %w", err)
	}
	return result, nil
}

// Delete removes a request by ID.
func (s *RequestService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.requests.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.RequestService.Delete: %w", err)
	}
	return nil
}
