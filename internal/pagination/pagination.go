// Package pagination tracks page and page-size state for list views.
package pagination

import "github.com/brunopinheiroeu/artori-sub001/internal/app/models/dto"

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// State holds 1-based paging state. The zero value is not usable; call New.
type State struct {
	page     int
	pageSize int
}

// New starts at page 1 with the given size (clamped to [1, MaxPageSize];
// non-positive means the default).
func New(pageSize int) *State {
	return &State{page: DefaultPage, pageSize: clampSize(pageSize)}
}

func clampSize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// Page returns the current 1-based page.
func (s *State) Page() int {
	return s.page
}

// PageSize returns the current page size.
func (s *State) PageSize() int {
	return s.pageSize
}

// Skip returns the number of leading records before the current page,
// always (page-1) x pageSize.
func (s *State) Skip() int {
	return (s.page - 1) * s.pageSize
}

// SetPage moves to page n (clamped to >= 1). Page size is untouched.
func (s *State) SetPage(n int) {
	if n < 1 {
		n = DefaultPage
	}
	s.page = n
}

// SetPageSize changes the page size and snaps back to page 1; keeping a
// possibly out-of-range page across a resize is not allowed.
func (s *State) SetPageSize(n int) {
	s.pageSize = clampSize(n)
	s.page = DefaultPage
}

// Reset returns to page 1, preserving the page size.
func (s *State) Reset() {
	s.page = DefaultPage
}

// Params renders the state as list-endpoint query parameters.
func (s *State) Params() dto.ListParams {
	return dto.ListParams{Page: s.page, PageSize: s.pageSize}
}
