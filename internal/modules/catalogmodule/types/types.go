// Package types holds the query and paging shapes shared by every catalog module
package types

import "context"

// Sort directions accepted by ListQuery
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// FilterAll disables a status, source or category filter
const FilterAll = "all"

// ListQuery is the UI-level filter for a catalog list. Enum filters carry UI
// values; each repository translates them to storage codes.
type ListQuery struct {
	Search        string `form:"search"`
	Status        string `form:"status"`
	Source        string `form:"source"`
	Category      string `form:"category"`
	SortBy        string `form:"sortBy"`
	SortDirection string `form:"sortDirection"`
	Page          int    `form:"page"`
	PageSize      int    `form:"pageSize"`
}

// Paging limits applied by Normalize
type Paging struct {
	DefaultPageSize int
	MaxPageSize     int
}

// DefaultPaging matches the list endpoint defaults
var DefaultPaging = Paging{DefaultPageSize: 12, MaxPageSize: 100}

// Normalize clamps page and page size and folds the sort direction to asc or desc
func (q ListQuery) Normalize(p Paging) ListQuery {
	if p.DefaultPageSize < 1 {
		p.DefaultPageSize = DefaultPaging.DefaultPageSize
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = p.DefaultPageSize
	}
	if p.MaxPageSize > 0 && q.PageSize > p.MaxPageSize {
		q.PageSize = p.MaxPageSize
	}
	if q.SortDirection != SortAsc {
		q.SortDirection = SortDesc
	}
	return q
}

// Offset returns the row offset of the query's page
func (q ListQuery) Offset() int {
	if q.Page < 1 {
		return 0
	}
	return (q.Page - 1) * q.PageSize
}

// Page is one page of a filtered list. Total counts every matching row.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

// NewPage builds a page and derives the page count from total
func NewPage[T any](items []T, total int64, page, pageSize int) *Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return &Page[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// Repository is the persistence contract of one media type. E is the UI
// entity and P its patch input. FindByID and Update return nil, nil when the
// id does not exist.
type Repository[E any, P any] interface {
	Create(ctx context.Context, input P) (*E, error)
	FindByID(ctx context.Context, id string) (*E, error)
	Update(ctx context.Context, id string, input P) (*E, error)
	Delete(ctx context.Context, id string) (bool, error)
	FindFiltered(ctx context.Context, q ListQuery) (*Page[E], error)
}
