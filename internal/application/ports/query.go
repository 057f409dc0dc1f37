package ports

import "strings"

// Paging defaults for list endpoints.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ListQuery is the common paging and search input of list use cases.
type ListQuery struct {
	Page     int
	PageSize int
	Search   string
}

// Normalize clamps page to >= 1 and page size to [1, MaxPageSize], and trims the search term.
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	q.Search = strings.TrimSpace(q.Search)
	return q
}

// Offset is the number of rows to skip for the query's page.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// Distinct drops repeated ids, keeping first occurrences in order.
func Distinct[T comparable](ids []T) []T {
	seen := make(map[T]bool, len(ids))
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
