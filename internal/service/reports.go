package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/pkordes/frontdesk/internal/domain"
	"github.com/pkordes/frontdesk/internal/reconcile"
	"github.com/pkordes/frontdesk/internal/repo"
)

// ExportFormatCSV is the only export format currently produced.
const ExportFormatCSV = "csv"

// RegistryReport is one page of the R.R.4 report together with the date
// range it was computed for.
type RegistryReport struct {
	Page     domain.Page[domain.RegistryRow]
	Range    domain.DateRange
	Warnings []string
}

// RegistryExport is a full, unpaged report ready for encoding, plus the
// audit record written for it.
type RegistryExport struct {
	Rows  []domain.RegistryRow
	Audit domain.ReportExport
}

// ReportService builds the government guest registry report and keeps the
// audit trail of its exports.
type ReportService struct {
	feed    Snapshotter
	exports repo.ReportExportRepo
	loc     *time.Location
	now     func() time.Time
	log     *slog.Logger
}

// NewReportService constructs a ReportService. now defaults to time.Now and
// log to slog.Default.
func NewReportService(feed Snapshotter, exports repo.ReportExportRepo, loc *time.Location, now func() time.Time, log *slog.Logger) *ReportService {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = slog.Default()
	}
	return &ReportService{feed: feed, exports: exports, loc: loc, now: now, log: log}
}

// withDefaultRange fills in the current Monday..Sunday week when the caller
// gave no range at all.
func (s *ReportService) withDefaultRange(q domain.RegistryQuery) domain.RegistryQuery {
	if !q.Range.Active() {
		q.Range = reconcile.WeekRange(s.now(), s.loc)
	}
	return q
}

func (s *ReportService) rows(ctx context.Context, refresh bool) ([]domain.RegistryRow, []string, error) {
	snap, err := s.feed.Snapshot(ctx, refresh)
	if err != nil {
		return nil, nil, err
	}
	return reconcile.RegistryReport(snap.Registry, snap.Bookings, s.loc), snap.Warnings, nil
}

// Registry returns one page of the report.
func (s *ReportService) Registry(ctx context.Context, q domain.RegistryQuery, refresh bool) (RegistryReport, error) {
	q = s.withDefaultRange(q)
	rows, warnings, err := s.rows(ctx, refresh)
	if err != nil {
		return RegistryReport{}, fmt.Errorf("service.ReportService.Registry: %w", err)
	}
	return RegistryReport{
		Page:     reconcile.FilterRegistry(rows, q),
		Range:    q.Range,
		Warnings: warnings,
	}, nil
}

// Export returns every row matching q and records the export. An export is
// refused while the guest registry is unavailable, since it would silently
// produce an empty report.
func (s *ReportService) Export(ctx context.Context, q domain.RegistryQuery) (RegistryExport, error) {
	q = s.withDefaultRange(q)
	rows, warnings, err := s.rows(ctx, true)
	if err != nil {
		return RegistryExport{}, fmt.Errorf("service.ReportService.Export: %w", err)
	}
	if slices.Contains(warnings, WarnRegistryUnavailable) {
		return RegistryExport{}, fmt.Errorf("service.ReportService.Export: %s: %w", WarnRegistryUnavailable, domain.ErrUpstream)
	}
	rows = reconcile.FilterRegistryRows(rows, q)

	sess := domain.SessionFromContext(ctx)
	generatedBy := sess.Username
	if generatedBy == "" {
		generatedBy = sess.AdminID
	}
	audit := domain.ReportExport{
		GeneratedBy: generatedBy,
		Search:      q.Search,
		Format:      ExportFormatCSV,
		RowCount:    len(rows),
	}
	if reconcile.ValidRange(q.Range) {
		audit.RangeStart, _ = time.Parse(reconcile.DayLayout, q.Range.Start)
		audit.RangeEnd, _ = time.Parse(reconcile.DayLayout, q.Range.End)
	}

	saved, err := s.exports.Create(ctx, audit)
	if err != nil {
		return RegistryExport{}, fmt.Errorf("service.ReportService.Export: record audit: %w", err)
	}
	s.log.InfoContext(ctx, "registry report exported",
		"export_id", saved.ID,
		"generated_by", saved.GeneratedBy,
		"rows", saved.RowCount,
	)
	return RegistryExport{Rows: rows, Audit: saved}, nil
}

// ListExports returns one page of the export audit trail, newest first.
func (s *ReportService) ListExports(ctx context.Context, p domain.PaginationParams) ([]domain.ReportExport, int, error) {
	exports, total, err := s.exports.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ReportService.ListExports: %w", err)
	}
	return exports, total, nil
}
