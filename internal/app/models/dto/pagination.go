package dto

import (
	"net/url"
	"strconv"
)

// PaginationInfo is the paging envelope attached to every list response.
type PaginationInfo struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	PageSize    int   `json:"page_size"`
	TotalItems  int64 `json:"total_items"`
}

// ListParams are the query parameters shared by all paginated list
// endpoints. Zero values are omitted from the query string.
type ListParams struct {
	Page     int
	PageSize int
	Search   string
	// Role filters admin user lists.
	Role string
	// Status filters by active/inactive where the resource supports it.
	Status string
	// SortBy and SortDir request server-side ordering.
	SortBy  string
	SortDir string
}

// Query encodes the params as URL query values.
func (p ListParams) Query() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(p.PageSize))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Role != "" {
		q.Set("role", p.Role)
	}
	if p.Status != "" {
		q.Set("status", p.Status)
	}
	if p.SortBy != "" {
		q.Set("sort_by", p.SortBy)
		dir := p.SortDir
		if dir == "" {
			dir = "asc"
		}
		q.Set("sort_dir", dir)
	}
	return q
}
