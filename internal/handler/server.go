// Package handler implements the HTTP handlers for the front-desk API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, booking.go, etc.) but all share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/frontdesk/internal/domain"
	"github.com/pkordes/frontdesk/internal/service"
)

// BookingServicer defines the booking operations the handlers depend on.
// Defining the interface here, in the consumer package, lets handler tests
// inject a mock without touching the hotel backend.
type BookingServicer interface {
	List(ctx context.Context, q domain.BookingQuery, refresh bool) (service.BookingList, error)
	Stats(ctx context.Context) (domain.BookingStats, []string, error)
	Detail(ctx context.Context, id int64, person int) (domain.DetailView, error)
	Delete(ctx context.Context, id int64) error
}

// DashboardServicer builds the front-desk overview.
type DashboardServicer interface {
	Get(ctx context.Context, date string, refresh bool) (service.DashboardView, error)
}

// CustomerServicer lists the guest registry.
type CustomerServicer interface {
	List(ctx context.Context, q domain.CustomerQuery, refresh bool) (service.CustomerList, error)
}

// ReportServicer builds, exports and audits the guest registry report.
type ReportServicer interface {
	Registry(ctx context.Context, q domain.RegistryQuery, refresh bool) (service.RegistryReport, error)
	Export(ctx context.Context, q domain.RegistryQuery) (service.RegistryExport, error)
	ListExports(ctx context.Context, p domain.PaginationParams) ([]domain.ReportExport, int, error)
}

// AccessServicer resolves the current admin and checks permissions.
type AccessServicer interface {
	CurrentUser(ctx context.Context) (domain.User, error)
	Require(ctx context.Context, module, action string) error
}

// Services bundles the Server's dependencies. Metrics is optional; when set
// it is served at /metrics.
type Services struct {
	Bookings  BookingServicer
	Dashboard DashboardServicer
	Customers CustomerServicer
	Reports   ReportServicer
	Access    AccessServicer
	Metrics   http.Handler
}

// Server serves every API endpoint.
type Server struct {
	bookings  BookingServicer
	dashboard DashboardServicer
	customers CustomerServicer
	reports   ReportServicer
	access    AccessServicer
	metrics   http.Handler
	log       *slog.Logger
}

// NewServer constructs the Server with all its dependencies. log may be nil.
func NewServer(svcs Services, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		bookings:  svcs.Bookings,
		dashboard: svcs.Dashboard,
		customers: svcs.Customers,
		reports:   svcs.Reports,
		access:    svcs.Access,
		metrics:   svcs.Metrics,
		log:       log,
	}
}

// Routes registers every endpoint on a new chi router. Cross-cutting
// middleware (request id, logging, CORS, session) is applied by the caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Get("/me", s.GetMe)
	r.Get("/dashboard", s.GetDashboard)

	r.Route("/bookings", func(r chi.Router) {
		r.Get("/", s.ListBookings)
		r.Get("/stats", s.GetBookingStats)
		r.Get("/{id}", s.GetBooking)
		r.Delete("/{id}", s.DeleteBooking)
	})

	r.Get("/customers", s.ListCustomers)

	r.Route("/reports", func(r chi.Router) {
		r.Get("/registry", s.GetRegistryReport)
		r.Get("/exports", s.ListReportExports)
	})
	return r
}

// allow writes the error response and returns false unless the current
// admin may perform action on module.
func (s *Server) allow(w http.ResponseWriter, r *http.Request, module, action string) bool {
	if err := s.access.Require(r.Context(), module, action); err != nil {
		s.writeError(w, r, err)
		return false
	}
	return true
}
