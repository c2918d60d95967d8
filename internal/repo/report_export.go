package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/frontdesk/internal/domain"
)

// ReportExportRepo persists the audit trail of registry report exports.
type ReportExportRepo interface {
	// Create inserts an export record and returns it with the DB-generated
	// id and created_at populated.
	Create(ctx context.Context, e domain.ReportExport) (domain.ReportExport, error)

	// ListPaged returns one page of exports, newest first, and the total
	// number of exports.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.ReportExport, int, error)
}

type pgReportExportRepo struct {
	db db
}

// NewReportExportRepo constructs a ReportExportRepo backed by db.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx.
func NewReportExportRepo(db db) ReportExportRepo {
	return &pgReportExportRepo{db: db}
}

const reportExportColumns = `id, generated_by, range_start, range_end, search, format, row_count, created_at`

func (r *pgReportExportRepo) Create(ctx context.Context, e domain.ReportExport) (domain.ReportExport, error) {
	const q = `
		INSERT INTO report_exports (generated_by, range_start, range_end, search, format, row_count)
		VALUES (@generated_by, @range_start, @range_end, @search, @format, @row_count)
		RETURNING ` + reportExportColumns

	args := pgx.NamedArgs{
		"generated_by": e.GeneratedBy,
		"range_start":  optionalDate(e.RangeStart),
		"range_end":    optionalDate(e.RangeEnd),
		"search":       e.Search,
		"format":       e.Format,
		"row_count":    e.RowCount,
	}

	out, err := scanReportExport(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.ReportExport{}, fmt.Errorf("repo.ReportExportRepo.Create: %w", err)
	}
	return out, nil
}

func (r *pgReportExportRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.ReportExport, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM report_exports`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.ReportExportRepo.ListPaged: count: %w", err)
	}

	q := `
		SELECT ` + reportExportColumns + `
		FROM report_exports
		ORDER BY created_at DESC, id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ReportExportRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	out := []domain.ReportExport{}
	for rows.Next() {
		e, err := scanReportExport(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.ReportExportRepo.ListPaged: scan: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.ReportExportRepo.ListPaged: rows: %w", err)
	}
	return out, total, nil
}

func scanReportExport(s scanner) (domain.ReportExport, error) {
	var (
		e     domain.ReportExport
		id    pgtype.UUID
		start pgtype.Date
		end   pgtype.Date
	)
	err := s.Scan(&id, &e.GeneratedBy, &start, &end, &e.Search, &e.Format, &e.RowCount, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ReportExport{}, domain.ErrNotFound
		}
		return domain.ReportExport{}, err
	}
	e.ID = uuid.UUID(id.Bytes)
	if start.Valid {
		e.RangeStart = start.Time
	}
	if end.Valid {
		e.RangeEnd = end.Time
	}
	return e, nil
}

// optionalDate maps the zero time to SQL NULL.
func optionalDate(t time.Time) pgtype.Date {
	return pgtype.Date{Time: t, Valid: !t.IsZero()}
}
