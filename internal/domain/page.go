package domain

// PaginationParams carries page/limit values from the HTTP layer to the repo layer.
// Page is 1-indexed. Limit is capped at 100 by NewPaginationParams.
type PaginationParams struct {
	// Page is the current page number, starting at 1.
	Page int
	// Limit is the maximum number of items to return.
	Limit int
}

// NewPaginationParams builds a PaginationParams from optional HTTP query params.
// Nil pointers fall back to sane defaults (page=1, limit=20).
// The limit is capped at 100 to prevent runaway queries.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: 20}
	if page != nil && *page >= 1 {
		p.Page = *page
	}
	if limit != nil && *limit >= 1 {
		p.Limit = *limit
		if p.Limit > 100 {
			p.Limit = 100
		}
	}
	return p
}

// Offset returns the zero-based row offset for a SQL OFFSET clause.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PageMeta is the pagination block of a list response.
type PageMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPageMeta computes the meta block for a page over total items.
// TotalPages is at least 1 so that an empty result set still has one
// (empty) page and navigation clamping has a floor to work against.
func NewPageMeta(p PaginationParams, total int) PageMeta {
	pages := (total + p.Limit - 1) / p.Limit
	if pages < 1 {
		pages = 1
	}
	return PageMeta{Page: p.Page, Limit: p.Limit, Total: total, TotalPages: pages}
}

// PageState is the per-screen pagination bookkeeping: which page is showing,
// how many pages the server reports, and the fixed page size. One PageState
// is instantiated per list screen and is not shared state.
//
// Page is the only field mutated locally (optimistically, before the
// re-fetch); everything else is replaced wholesale by SetFromMeta when the
// next server response arrives.
type PageState struct {
	page       int
	limit      int
	total      int
	totalPages int
}

// NewPageState returns a PageState on page 1 with the given fixed limit.
// The limit is not user-adjustable; each screen picks one at construction.
func NewPageState(limit int) *PageState {
	if limit < 1 {
		limit = 1
	}
	return &PageState{page: 1, limit: limit, totalPages: 1}
}

// Page returns the current 1-indexed page.
func (s *PageState) Page() int { return s.page }

// Limit returns the fixed page size.
func (s *PageState) Limit() int { return s.limit }

// Total returns the last-known total item count.
func (s *PageState) Total() int { return s.total }

// TotalPages returns the last-known page count (always at least 1).
func (s *PageState) TotalPages() int { return s.totalPages }

// Next advances to the following page, clamped to the last page.
// It reports whether the page actually changed, the caller's re-fetch trigger.
func (s *PageState) Next() bool {
	return s.GoTo(s.page + 1)
}

// Prev moves to the preceding page, clamped to page 1.
// It reports whether the page actually changed.
func (s *PageState) Prev() bool {
	return s.GoTo(s.page - 1)
}

// GoTo jumps to page n, clamped to [1, TotalPages].
// It reports whether the page actually changed.
func (s *PageState) GoTo(n int) bool {
	if n < 1 {
		n = 1
	}
	if n > s.totalPages {
		n = s.totalPages
	}
	if n == s.page {
		return false
	}
	s.page = n
	return true
}

// SetFromMeta replaces all fields atomically from the latest server response.
// The server's view wins over any optimistic local page value.
func (s *PageState) SetFromMeta(m PageMeta) {
	s.page = m.Page
	s.limit = m.Limit
	s.total = m.Total
	s.totalPages = m.TotalPages
	if s.totalPages < 1 {
		s.totalPages = 1
	}
	if s.page < 1 {
		s.page = 1
	}
	if s.page > s.totalPages {
		s.page = s.totalPages
	}
}
