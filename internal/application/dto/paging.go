package dto

import "fmt"

// PagedResult is one page of a list endpoint.
type PagedResult[T any] struct {
	Items           []T  `json:"items"`
	TotalCount      int  `json:"totalCount"`
	Page            int  `json:"page"`
	PageSize        int  `json:"pageSize"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// NewPagedResult computes page metadata. pageSize must be positive.
func NewPagedResult[T any](items []T, totalCount, page, pageSize int) PagedResult[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if pageSize > 0 {
		totalPages = (totalCount + pageSize - 1) / pageSize
	}
	return PagedResult[T]{
		Items:           items,
		TotalCount:      totalCount,
		Page:            page,
		PageSize:        pageSize,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}

// BulkDeleteResult reports how many of the requested ids existed and were deleted.
// DeletedIDs feeds the audit trail and is not serialized.
type BulkDeleteResult struct {
	DeletedCount int      `json:"deletedCount"`
	DeletedIDs   []string `json:"-"`
}

// NewBulkDeleteResult builds the result from the ids a repository removed.
func NewBulkDeleteResult[T fmt.Stringer](deleted []T) *BulkDeleteResult {
	ids := make([]string, 0, len(deleted))
	for _, id := range deleted {
		ids = append(ids, id.String())
	}
	return &BulkDeleteResult{DeletedCount: len(ids), DeletedIDs: ids}
}
