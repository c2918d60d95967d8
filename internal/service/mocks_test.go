package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/frontdesk/internal/domain"
	"github.com/pkordes/frontdesk/internal/reconcile"
	"github.com/pkordes/frontdesk/internal/repo"
	"github.com/pkordes/frontdesk/internal/service"
)

// Hand-written test doubles. Each method is a function field; set only the
// ones a test needs.

type mockSource struct {
	listBookings func(ctx context.Context) ([]domain.Record, error)
	listGuests   func(ctx context.Context) ([]domain.Record, error)
}

func (m *mockSource) ListBookings(ctx context.Context) ([]domain.Record, error) {
	return m.listBookings(ctx)
}
func (m *mockSource) ListGuests(ctx context.Context) ([]domain.Record, error) {
	return m.listGuests(ctx)
}

type mockSnapshotter struct {
	snapshot   func(ctx context.Context, force bool) (service.Snapshot, error)
	invalidate func(ctx context.Context) error
}

func (m *mockSnapshotter) Snapshot(ctx context.Context, force bool) (service.Snapshot, error) {
	return m.snapshot(ctx, force)
}
func (m *mockSnapshotter) Invalidate(ctx context.Context) error {
	return m.invalidate(ctx)
}

type mockBookingUpstream struct {
	listBookingGuests func(ctx context.Context, id int64) ([]domain.Record, error)
	deleteBooking     func(ctx context.Context, id int64) error
}

func (m *mockBookingUpstream) ListBookingGuests(ctx context.Context, id int64) ([]domain.Record, error) {
	return m.listBookingGuests(ctx, id)
}
func (m *mockBookingUpstream) DeleteBooking(ctx context.Context, id int64) error {
	return m.deleteBooking(ctx, id)
}

type mockRooms struct {
	listRooms func(ctx context.Context) ([]domain.Record, error)
}

func (m *mockRooms) ListRooms(ctx context.Context) ([]domain.Record, error) {
	return m.listRooms(ctx)
}

type mockDirectory struct {
	listAdmins func(ctx context.Context) ([]domain.Record, error)
	listRoles  func(ctx context.Context) ([]domain.Record, error)
}

func (m *mockDirectory) ListAdmins(ctx context.Context) ([]domain.Record, error) {
	return m.listAdmins(ctx)
}
func (m *mockDirectory) ListRoles(ctx context.Context) ([]domain.Record, error) {
	return m.listRoles(ctx)
}

type mockExportRepo struct {
	create    func(ctx context.Context, e domain.ReportExport) (domain.ReportExport, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.ReportExport, int, error)
}

func (m *mockExportRepo) Create(ctx context.Context, e domain.ReportExport) (domain.ReportExport, error) {
	return m.create(ctx, e)
}
func (m *mockExportRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.ReportExport, int, error) {
	return m.listPaged(ctx, p)
}

// compile-time checks: the mocks must satisfy the interfaces they stand in for.
var (
	_ service.BookingSource   = (*mockSource)(nil)
	_ service.Snapshotter     = (*mockSnapshotter)(nil)
	_ service.BookingUpstream = (*mockBookingUpstream)(nil)
	_ service.RoomSource      = (*mockRooms)(nil)
	_ service.DirectorySource = (*mockDirectory)(nil)
	_ repo.ReportExportRepo   = (*mockExportRepo)(nil)
)

// ---- helpers ---------------------------------------------------------------

func records(t *testing.T, js string) []domain.Record {
	t.Helper()
	out, err := reconcile.DecodeRecords([]byte(js))
	require.NoError(t, err)
	return out
}

// fixedFeed serves the same snapshot on every call.
func fixedFeed(t *testing.T, bookings, guests string, warnings ...string) *mockSnapshotter {
	t.Helper()
	g := records(t, guests)
	snap := service.Snapshot{
		Bookings: records(t, bookings),
		Guests:   g,
		Registry: reconcile.NewRegistry(g),
		Warnings: append([]string{}, warnings...),
	}
	return &mockSnapshotter{
		snapshot:   func(context.Context, bool) (service.Snapshot, error) { return snap, nil },
		invalidate: func(context.Context) error { return nil },
	}
}
