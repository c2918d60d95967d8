package domain

import (
	"fmt"
	"slices"
)

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

// Page sizes offered by each in-memory list.
var (
	BookingPageSizes  = []int{5, 10, 20, 50}
	CustomerPageSizes = []int{10, 25, 50}
	ReportPageSizes   = []int{10, 25, 50}
)

// DefaultPageSize is used when the client does not ask for a size.
const DefaultPageSize = 10

// PageRequest is a requested window over an in-memory row list.
// Page is not clamped here because the total is unknown until filtering ran.
type PageRequest struct {
	Page int
	Size int
}

// NewPageRequest validates optional page/size query values against the
// sizes a list offers. A size outside allowed is an ErrValidation.
func NewPageRequest(page, size *int, allowed []int) (PageRequest, error) {
	req := PageRequest{Page: 1, Size: DefaultPageSize}
	if page != nil {
		req.Page = *page
	}
	if size != nil {
		if !slices.Contains(allowed, *size) {
			return PageRequest{}, fmt.Errorf("%w: page size must be one of %v", ErrValidation, allowed)
		}
		req.Size = *size
	}
	return req, nil
}

// Page is one window of a filtered row list.
type Page[T any] struct {
	Rows        []T
	TotalCount  int
	TotalPages  int
	CurrentPage int
	PageSize    int
}

// Paginate slices rows to the requested window. The page index is clamped to
// [1, max(1, ceil(total/size))], so an empty list still reports one page.
func Paginate[T any](rows []T, req PageRequest) Page[T] {
	size := req.Size
	if size < 1 {
		size = DefaultPageSize
	}
	total := len(rows)
	totalPages := max(1, (total+size-1)/size)
	current := min(max(req.Page, 1), totalPages)

	start := min((current-1)*size, total)
	end := min(start+size, total)

	out := make([]T, end-start)
	copy(out, rows[start:end])
	return Page[T]{
		Rows:        out,
		TotalCount:  total,
		TotalPages:  totalPages,
		CurrentPage: current,
		PageSize:    size,
	}
}
