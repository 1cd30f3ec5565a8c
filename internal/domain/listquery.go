package domain

import (
	"context"
	"strings"
	"time"
)

// Page is one slice of a filtered result.
type Page[T any] struct {
	Rows            []T `json:"rows"`
	Page            int `json:"page"`
	PageSize        int `json:"page_size"`
	TotalPages      int `json:"total_pages"`
	FilteredCount   int `json:"filtered_count"`
	UnfilteredCount int `json:"unfiltered_count"`
}

// ListQuery is the fetch, derive, filter, paginate pipeline. The stage
// order is fixed: filters see derived fields, and pagination sees only
// filtered rows.
type ListQuery[R any, D any] struct {
	// Fetch returns the candidate rows, already narrowed by whatever the
	// store could evaluate, plus a separate unfiltered count.
	Fetch func(ctx context.Context) ([]R, int, error)
	// Derive attaches computed fields to the whole candidate set at once.
	Derive func(ctx context.Context, rows []R) ([]D, error)
	// Filters run after Derive; a row is kept when every filter passes.
	Filters []func(D) bool
}

// Run executes the pipeline for one page.
func (q ListQuery[R, D]) Run(ctx context.Context, p Pagination) (Page[D], error) {
	rows, unfiltered, err := q.Fetch(ctx)
	if err != nil {
		return Page[D]{}, err
	}

	derived, err := q.Derive(ctx, rows)
	if err != nil {
		return Page[D]{}, err
	}

	kept := make([]D, 0, len(derived))
	for _, row := range derived {
		if keep(row, q.Filters) {
			kept = append(kept, row)
		}
	}

	page := Paginate(kept, p)
	page.UnfilteredCount = unfiltered
	return page, nil
}

func keep[D any](row D, filters []func(D) bool) bool {
	for _, f := range filters {
		if f != nil && !f(row) {
			return false
		}
	}
	return true
}

// Paginate slices rows for p. TotalPages is ceil(len(rows)/PageSize);
// a page past the end is empty.
func Paginate[T any](rows []T, p Pagination) Page[T] {
	p = p.Normalize(DefaultPageSize)
	n := len(rows)
	pages := n / p.PageSize
	if n%p.PageSize != 0 {
		pages++
	}
	out := Page[T]{
		Rows:          []T{},
		Page:          p.Page,
		PageSize:      p.PageSize,
		TotalPages:    pages,
		FilteredCount: n,
	}
	// Page-1 < pages bounds start by len(rows), so the product cannot overflow.
	if p.Page-1 >= pages {
		return out
	}
	start := (p.Page - 1) * p.PageSize
	end := min(start+p.PageSize, n)
	out.Rows = append(out.Rows, rows[start:end]...)
	return out
}

// MatchesText reports whether every word of query occurs, case-insensitive,
// in at least one of fields. An empty query matches everything.
func MatchesText(query string, fields ...string) bool {
	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		return true
	}
	hay := strings.ToLower(strings.Join(fields, " "))
	for _, w := range words {
		if !strings.Contains(hay, w) {
			return false
		}
	}
	return true
}

// WithinDateRange reports whether t falls on or between the calendar days
// of from and to. Nil bounds are open.
func WithinDateRange(t time.Time, from, to *time.Time) bool {
	day := truncateDay(t)
	if from != nil && day.Before(truncateDay(from.In(t.Location()))) {
		return false
	}
	if to != nil && day.After(truncateDay(to.In(t.Location()))) {
		return false
	}
	return true
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
