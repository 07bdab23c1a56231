// Package filter provides a small, reusable in-memory filter over fetched
// record lists. Every list screen (projects, users, teams, requests) narrows
// its already-fetched page with the same engine instead of five near-copies
// of the same loop; each screen differs only in the extractors it registers.
package filter

import "strings"

// Criteria maps a criterion key (e.g. "status", "type", "project_id") to the
// value it must match. The reserved key "query" carries the free-text search
// term. Absent or empty values are no-ops. Criteria lives only for the
// duration of one page view; it is never persisted.
type Criteria map[string]string

// Query is the reserved criterion key for free-text search.
const Query = "query"

// Extractor pulls the string a criterion is matched against out of a record.
type Extractor[T any] func(T) string

// Engine filters records of one entity type. Keyed criteria are matched with
// case-insensitive equality against their registered extractor; the free-text
// query matches when ANY of the query extractors contains the term as a
// case-insensitive substring. All present criteria are AND-combined.
type Engine[T any] struct {
	fields      map[string]Extractor[T]
	queryFields []Extractor[T]
}

// NewEngine builds an Engine from per-criterion extractors plus the ordered
// list of fields the free-text query searches. Criteria keys with no
// registered extractor are ignored at Apply time, matching everything: an
// unknown filter narrows nothing rather than emptying the list.
func NewEngine[T any](fields map[string]Extractor[T], queryFields ...Extractor[T]) *Engine[T] {
	return &Engine[T]{fields: fields, queryFields: queryFields}
}

// Apply returns the records matching every present criterion, in input order.
// The input slice is never mutated. With no active criteria the input is
// returned unchanged, so filtering is the identity in that case and
// idempotent in general: re-applying the same criteria to its own output
// yields the same list.
func (e *Engine[T]) Apply(records []T, c Criteria) []T {
	if !active(c) {
		return records
	}

	out := make([]T, 0, len(records))
	for _, rec := range records {
		if e.matches(rec, c) {
			out = append(out, rec)
		}
	}
	return out
}

// matches reports whether rec satisfies every present criterion.
func (e *Engine[T]) matches(rec T, c Criteria) bool {
	for key, want := range c {
		if want == "" {
			continue
		}
		if key == Query {
			if !e.matchesQuery(rec, want) {
				return false
			}
			continue
		}
		extract, ok := e.fields[key]
		if !ok {
			continue
		}
		if !strings.EqualFold(extract(rec), want) {
			return false
		}
	}
	return true
}

// matchesQuery reports whether any query field contains term, case-insensitively.
func (e *Engine[T]) matchesQuery(rec T, term string) bool {
	needle := strings.ToLower(term)
	for _, extract := range e.queryFields {
		if strings.Contains(strings.ToLower(extract(rec)), needle) {
			return true
		}
	}
	return false
}

// active reports whether c carries at least one non-empty criterion.
func active(c Criteria) bool {
	for _, v := range c {
		if v != "" {
			return true
		}
	}
	return false
}
