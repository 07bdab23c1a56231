package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sitecrew/sitelog/internal/domain"
)

func intPtr(v int) *int { return &v }

func TestNewPaginationParams(t *testing.T) {
	tests := []struct {
		name      string
		page      *int
		limit     *int
		wantPage  int
		wantLimit int
	}{
		{"nil inputs use defaults", nil, nil, 1, 20},
		{"explicit values pass through", intPtr(3), intPtr(50), 3, 50},
		{"zero page falls back", intPtr(0), nil, 1, 20},
		{"negative page falls back", intPtr(-2), nil, 1, 20},
		{"limit capped at 100", nil, intPtr(500), 1, 100},
		{"zero limit falls back", nil, intPtr(0), 1, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := domain.NewPaginationParams(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantLimit, p.Limit)
		})
	}
}

func TestPaginationParams_Offset(t *testing.T) {
	assert.Equal(t, 0, domain.PaginationParams{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, domain.PaginationParams{Page: 3, Limit: 20}.Offset())
}

func TestNewPageMeta(t *testing.T) {
	tests := []struct {
		name      string
		params    domain.PaginationParams
		total     int
		wantPages int
	}{
		{"exact multiple", domain.PaginationParams{Page: 1, Limit: 20}, 40, 2},
		{"partial last page rounds up", domain.PaginationParams{Page: 1, Limit: 20}, 41, 3},
		{"empty result still has one page", domain.PaginationParams{Page: 1, Limit: 20}, 0, 1},
		{"single item", domain.PaginationParams{Page: 1, Limit: 20}, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := domain.NewPageMeta(tt.params, tt.total)
			assert.Equal(t, tt.wantPages, meta.TotalPages)
			assert.Equal(t, tt.total, meta.Total)
		})
	}
}

func TestPageState_NextClampsAtLastPage(t *testing.T) {
	s := domain.NewPageState(20)
	s.SetFromMeta(domain.PageMeta{Page: 1, Limit: 20, Total: 45, TotalPages: 3})

	assert.True(t, s.Next(), "1 to 2 changes the page")
	assert.True(t, s.Next(), "2 to 3 changes the page")
	assert.False(t, s.Next(), "already on the last page, nothing to fetch")
	assert.Equal(t, 3, s.Page())
}

func TestPageState_PrevClampsAtFirstPage(t *testing.T) {
	s := domain.NewPageState(20)
	s.SetFromMeta(domain.PageMeta{Page: 2, Limit: 20, Total: 45, TotalPages: 3})

	assert.True(t, s.Prev())
	assert.False(t, s.Prev(), "already on page 1, nothing to fetch")
	assert.Equal(t, 1, s.Page())
}

func TestPageState_GoTo(t *testing.T) {
	s := domain.NewPageState(10)
	s.SetFromMeta(domain.PageMeta{Page: 1, Limit: 10, Total: 95, TotalPages: 10})

	tests := []struct {
		name        string
		target      int
		wantChanged bool
		wantPage    int
	}{
		{"jump within range", 7, true, 7},
		{"same page is a no-op", 7, false, 7},
		{"past the end clamps to last", 99, true, 10},
		{"below one clamps to first", -5, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantChanged, s.GoTo(tt.target))
			assert.Equal(t, tt.wantPage, s.Page())
		})
	}
}

// A shrinking result set must pull the current page back into range.
func TestPageState_SetFromMeta_ClampsStalePage(t *testing.T) {
	s := domain.NewPageState(20)
	s.SetFromMeta(domain.PageMeta{Page: 5, Limit: 20, Total: 100, TotalPages: 5})
	assert.Equal(t, 5, s.Page())

	// Items were deleted; the server now reports fewer pages.
	s.SetFromMeta(domain.PageMeta{Page: 5, Limit: 20, Total: 42, TotalPages: 3})

	assert.Equal(t, 3, s.Page())
	assert.Equal(t, 3, s.TotalPages())
	assert.Equal(t, 42, s.Total())
}

func TestPageState_SetFromMeta_FloorsBadMeta(t *testing.T) {
	s := domain.NewPageState(20)

	s.SetFromMeta(domain.PageMeta{Page: 0, Limit: 20, Total: 0, TotalPages: 0})

	assert.Equal(t, 1, s.Page())
	assert.Equal(t, 1, s.TotalPages())
}

func TestNewPageState_FloorsLimit(t *testing.T) {
	s := domain.NewPageState(0)
	assert.Equal(t, 1, s.Limit())
	assert.Equal(t, 1, s.Page())
}
