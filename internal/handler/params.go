package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/frontdesk/internal/domain"
)

// query binds the optional form-style query parameters of one request.
// The first binding failure is kept and reported by err.
type query struct {
	r     *http.Request
	first error
}

func newQuery(r *http.Request) *query {
	return &query{r: r}
}

func (q *query) bind(name string, dest any) {
	if q.first != nil {
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, name, q.r.URL.Query(), dest); err != nil {
		q.first = fmt.Errorf("invalid %s parameter: %w", name, err)
	}
}

func (q *query) str(name string) string {
	var v *string
	q.bind(name, &v)
	if v == nil {
		return ""
	}
	return *v
}

func (q *query) intPtr(name string) *int {
	var v *int
	q.bind(name, &v)
	return v
}

func (q *query) boolean(name string) bool {
	var v *bool
	q.bind(name, &v)
	return v != nil && *v
}

// day binds a "2006-01-02" date and returns it in the same form, or "".
func (q *query) day(name string) string {
	var v *openapi_types.Date
	q.bind(name, &v)
	if v == nil {
		return ""
	}
	return v.Format(openapi_types.DateFormat)
}

func (q *query) dateRange() domain.DateRange {
	return domain.DateRange{Start: q.day("start"), End: q.day("end")}
}

func (q *query) err() error {
	return q.first
}

// bookingIDParam binds the {id} path parameter.
func bookingIDParam(r *http.Request) (int64, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return 0, fmt.Errorf("invalid id parameter: %w", err)
	}
	return id, nil
}

// optionalDate converts a "2006-01-02" string into an openapi_types.Date.
// Empty or malformed input gives nil, which is omitted from JSON.
func optionalDate(s string) *openapi_types.Date {
	t, err := time.Parse(openapi_types.DateFormat, s)
	if err != nil {
		return nil
	}
	return &openapi_types.Date{Time: t}
}

// timeDate converts a calendar date stored as time.Time; the zero time is nil.
func timeDate(t time.Time) *openapi_types.Date {
	if t.IsZero() {
		return nil
	}
	return &openapi_types.Date{Time: t}
}

// Pagination is the response metadata of an in-memory filtered list.
type Pagination struct {
	TotalCount  int `json:"totalCount"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
}

func paginationOf[T any](p domain.Page[T]) Pagination {
	return Pagination{
		TotalCount:  p.TotalCount,
		TotalPages:  p.TotalPages,
		CurrentPage: p.CurrentPage,
		PageSize:    p.PageSize,
	}
}

// warningsOrEmpty keeps "warnings" a JSON array even when nothing went wrong.
func warningsOrEmpty(w []string) []string {
	if w == nil {
		return []string{}
	}
	return w
}
