package shared

import (
	"fmt"
	"math"
)

// Pagination contains metadata for paginated listings.
type Pagination struct {
	Page       int
	PerPage    int
	Total      int
	TotalPages int
}

// NewPagination computes pagination metadata.
func NewPagination(page, perPage, total int) Pagination {
	if perPage <= 0 {
		perPage = 10
	}
	if page <= 0 {
		page = 1
	}
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	return Pagination{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

// Offset returns the row offset for the current page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// PrevURL returns the absolute URL of the previous page, or nil on the first page.
func (p Pagination) PrevURL(base string) *string {
	if p.Page <= 1 {
		return nil
	}
	u := fmt.Sprintf("%s?page=%d", base, p.Page-1)
	return &u
}

// NextURL returns the absolute URL of the next page, or nil on the last page.
func (p Pagination) NextURL(base string) *string {
	if p.Page >= p.TotalPages {
		return nil
	}
	u := fmt.Sprintf("%s?page=%d", base, p.Page+1)
	return &u
}
