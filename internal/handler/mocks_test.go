package handler_test

import (
	"context"
	"net/http"

	"github.com/pkordes/frontdesk/internal/domain"
	"github.com/pkordes/frontdesk/internal/handler"
	"github.com/pkordes/frontdesk/internal/middleware"
	"github.com/pkordes/frontdesk/internal/service"
)

// Test doubles for the handler's service interfaces.
// Set only the method fields your test needs.

type mockBookings struct {
	list   func(ctx context.Context, q domain.BookingQuery, refresh bool) (service.BookingList, error)
	stats  func(ctx context.Context) (domain.BookingStats, []string, error)
	detail func(ctx context.Context, id int64, person int) (domain.DetailView, error)
	delete func(ctx context.Context, id int64) error
}

func (m *mockBookings) List(ctx context.Context, q domain.BookingQuery, refresh bool) (service.BookingList, error) {
	return m.list(ctx, q, refresh)
}
func (m *mockBookings) Stats(ctx context.Context) (domain.BookingStats, []string, error) {
	return m.stats(ctx)
}
func (m *mockBookings) Detail(ctx context.Context, id int64, person int) (domain.DetailView, error) {
	return m.detail(ctx, id, person)
}
func (m *mockBookings) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}

type mockDashboard struct {
	get func(ctx context.Context, date string, refresh bool) (service.DashboardView, error)
}

func (m *mockDashboard) Get(ctx context.Context, date string, refresh bool) (service.DashboardView, error) {
	return m.get(ctx, date, refresh)
}

type mockCustomers struct {
	list func(ctx context.Context, q domain.CustomerQuery, refresh bool) (service.CustomerList, error)
}

func (m *mockCustomers) List(ctx context.Context, q domain.CustomerQuery, refresh bool) (service.CustomerList, error) {
	return m.list(ctx, q, refresh)
}

type mockReports struct {
	registry    func(ctx context.Context, q domain.RegistryQuery, refresh bool) (service.RegistryReport, error)
	export      func(ctx context.Context, q domain.RegistryQuery) (service.RegistryExport, error)
	listExports func(ctx context.Context, p domain.PaginationParams) ([]domain.ReportExport, int, error)
}

func (m *mockReports) Registry(ctx context.Context, q domain.RegistryQuery, refresh bool) (service.RegistryReport, error) {
	return m.registry(ctx, q, refresh)
}
func (m *mockReports) Export(ctx context.Context, q domain.RegistryQuery) (service.RegistryExport, error) {
	return m.export(ctx, q)
}
func (m *mockReports) ListExports(ctx context.Context, p domain.PaginationParams) ([]domain.ReportExport, int, error) {
	return m.listExports(ctx, p)
}

// mockAccess resolves any non-empty session to user and checks user.Permissions.
type mockAccess struct {
	user domain.User
}

func (m *mockAccess) CurrentUser(ctx context.Context) (domain.User, error) {
	s := domain.SessionFromContext(ctx)
	if s.AdminID == "" && s.Username == "" {
		return domain.User{}, domain.ErrForbidden
	}
	return m.user, nil
}
func (m *mockAccess) Require(ctx context.Context, module, action string) error {
	u, err := m.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if !u.Permissions.Can(module, action) {
		return domain.ErrForbidden
	}
	return nil
}

// compile-time checks: the mocks must satisfy the handler interfaces.
var (
	_ handler.BookingServicer   = (*mockBookings)(nil)
	_ handler.DashboardServicer = (*mockDashboard)(nil)
	_ handler.CustomerServicer  = (*mockCustomers)(nil)
	_ handler.ReportServicer    = (*mockReports)(nil)
	_ handler.AccessServicer    = (*mockAccess)(nil)
)

// ---- helpers ---------------------------------------------------------------

// everything grants every permission the API checks.
func everything() domain.Permissions {
	return domain.Permissions{
		domain.ModuleBookingManagement: {domain.ActionView: true, domain.ActionDelete: true},
		domain.ModuleCustomerList:      {domain.ActionView: true},
		domain.ModuleTM30Verification:  {domain.ActionView: true, domain.ActionExport: true},
	}
}

// newHTTPHandler wires a Server with the given services behind the session
// middleware, mirroring how main.go wires it. A nil Access grants everything.
func newHTTPHandler(svcs handler.Services) http.Handler {
	if svcs.Access == nil {
		svcs.Access = &mockAccess{user: domain.User{ID: "1", Name: "Desk", Role: domain.RoleManager, Permissions: everything()}}
	}
	return middleware.NewSessionHandler()(handler.NewServer(svcs, nil).Routes())
}

// authed adds the session headers of admin 1 to req.
func authed(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer tok")
	req.Header.Set(middleware.AdminIDHeader, "1")
	return req
}
