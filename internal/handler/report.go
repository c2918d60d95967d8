package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/frontdesk/internal/domain"
)

// registryCSVHeaders are the R.R.4 column titles, written as the first row
// of every CSV export.
var registryCSVHeaders = []string{
	"Check-in Date", "Room No.", "Full Name", "Nationality",
	"ID/Passport No.", "Current Address", "Check-out Date", "Remarks",
}

// RegistryRow is one row of the guest registry report.
type RegistryRow struct {
	CheckInDate    string `json:"checkInDate"`
	RoomNumber     string `json:"roomNumber"`
	FullName       string `json:"fullName"`
	Nationality    string `json:"nationality"`
	IDNumber       string `json:"idNumber"`
	CurrentAddress string `json:"currentAddress"`
	CheckOutDate   string `json:"checkOutDate"`
	Remarks        string `json:"remarks"`
}

// DateRange is the range a report was computed for.
type DateRange struct {
	Start *openapi_types.Date `json:"start,omitempty"`
	End   *openapi_types.Date `json:"end,omitempty"`
}

// RegistryReportResponse is the JSON body of GET /reports/registry.
type RegistryReportResponse struct {
	Data       []RegistryRow `json:"data"`
	Range      DateRange     `json:"range"`
	Pagination Pagination    `json:"pagination"`
	Warnings   []string      `json:"warnings"`
}

// ReportExport is one entry of the export audit trail.
type ReportExport struct {
	ID          uuid.UUID           `json:"id"`
	GeneratedBy string              `json:"generatedBy"`
	RangeStart  *openapi_types.Date `json:"rangeStart,omitempty"`
	RangeEnd    *openapi_types.Date `json:"rangeEnd,omitempty"`
	Search      string              `json:"search"`
	Format      string              `json:"format"`
	RowCount    int                 `json:"rowCount"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// PagePagination is the metadata of a database-backed page.
type PagePagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// ReportExportListResponse is the body of GET /reports/exports.
type ReportExportListResponse struct {
	Data       []ReportExport `json:"data"`
	Pagination PagePagination `json:"pagination"`
}

// GetRegistryReport handles GET /reports/registry.
// Supports ?search=, ?start=, ?end=, ?page=, ?limit=, ?refresh=true and
// ?format=csv. Without a range the current Monday..Sunday week is used.
func (s *Server) GetRegistryReport(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	search := q.str("search")
	dates := q.dateRange()
	format := q.str("format")
	page, limit := q.intPtr("page"), q.intPtr("limit")
	refresh := q.boolean("refresh")
	if err := q.err(); err != nil {
		requestError(w, err.Error())
		return
	}

	switch format {
	case "", "json":
	case "csv":
		s.exportRegistryCSV(w, r, domain.RegistryQuery{Search: search, Range: dates})
		return
	default:
		requestError(w, fmt.Sprintf("unsupported format %q", format))
		return
	}

	if !s.allow(w, r, domain.ModuleTM30Verification, domain.ActionView) {
		return
	}
	pageReq, err := domain.NewPageRequest(page, limit, domain.ReportPageSizes)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	report, err := s.reports.Registry(r.Context(), domain.RegistryQuery{
		Search: search,
		Range:  dates,
		Page:   pageReq,
	}, refresh)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data := make([]RegistryRow, len(report.Page.Rows))
	for i, row := range report.Page.Rows {
		data[i] = RegistryRow(row)
	}
	writeJSON(w, http.StatusOK, RegistryReportResponse{
		Data:       data,
		Range:      DateRange{Start: optionalDate(report.Range.Start), End: optionalDate(report.Range.End)},
		Pagination: paginationOf(report.Page),
		Warnings:   warningsOrEmpty(report.Warnings),
	})
}

// exportRegistryCSV writes the full filtered report as a CSV attachment.
// The audit id is returned in X-Export-Id.
func (s *Server) exportRegistryCSV(w http.ResponseWriter, r *http.Request, q domain.RegistryQuery) {
	if !s.allow(w, r, domain.ModuleTM30Verification, domain.ActionExport) {
		return
	}
	export, err := s.reports.Export(r.Context(), q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	body := buildRegistryCSV(export.Rows)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", csvFilename(export.Audit)))
	w.Header().Set("Content-Length", strconv.Itoa(body.Len()))
	w.Header().Set("X-Export-Id", export.Audit.ID.String())
	w.WriteHeader(http.StatusOK)
	_, _ = body.WriteTo(w)
}

// buildRegistryCSV encodes report rows as CSV behind a header row.
func buildRegistryCSV(rows []domain.RegistryRow) *bytes.Buffer {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(registryCSVHeaders)
	for _, row := range rows {
		//nolint:errcheck
		cw.Write([]string{
			row.CheckInDate,
			row.RoomNumber,
			row.FullName,
			row.Nationality,
			row.IDNumber,
			row.CurrentAddress,
			row.CheckOutDate,
			row.Remarks,
		})
	}
	cw.Flush()
	return &buf
}

// csvFilename names a download after its range, e.g. "rr4_2024-04-29_2024-05-05.csv".
func csvFilename(e domain.ReportExport) string {
	if e.RangeStart.IsZero() || e.RangeEnd.IsZero() {
		return "rr4_all.csv"
	}
	return fmt.Sprintf("rr4_%s_%s.csv", e.RangeStart.Format(openapi_types.DateFormat), e.RangeEnd.Format(openapi_types.DateFormat))
}

// ListReportExports handles GET /reports/exports.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListReportExports(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r, domain.ModuleTM30Verification, domain.ActionView) {
		return
	}
	q := newQuery(r)
	page, limit := q.intPtr("page"), q.intPtr("limit")
	if err := q.err(); err != nil {
		requestError(w, err.Error())
		return
	}
	params := domain.NewPaginationParams(page, limit)

	exports, total, err := s.reports.ListExports(r.Context(), params)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data := make([]ReportExport, len(exports))
	for i, e := range exports {
		data[i] = ReportExport{
			ID:          e.ID,
			GeneratedBy: e.GeneratedBy,
			RangeStart:  timeDate(e.RangeStart),
			RangeEnd:    timeDate(e.RangeEnd),
			Search:      e.Search,
			Format:      e.Format,
			RowCount:    e.RowCount,
			CreatedAt:   e.CreatedAt,
		}
	}
	writeJSON(w, http.StatusOK, ReportExportListResponse{
		Data:       data,
		Pagination: PagePagination{Page: params.Page, Limit: params.Limit, Total: total},
	})
}
