package handler

import (
	"errors"
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/frontdesk/internal/domain"
	"github.com/pkordes/frontdesk/internal/reconcile"
)

// BookingRow is one row of the booking list.
type BookingRow struct {
	Key          string              `json:"key"`
	BookingID    domain.BookingID    `json:"bookingId"`
	CustomerID   string              `json:"customerId,omitempty"`
	FullName     string              `json:"fullName"`
	Email        string              `json:"email,omitempty"`
	RoomNumbers  string              `json:"roomNumbers"`
	Status       string              `json:"status"`
	Badge        string              `json:"badge"`
	CheckInDate  *openapi_types.Date `json:"checkInDate,omitempty"`
	CheckOutDate *openapi_types.Date `json:"checkOutDate,omitempty"`
	Adults       int                 `json:"adults"`
	Children     int                 `json:"children"`
	GuestCount   int                 `json:"guestCount"`
	GuestList    []domain.GuestRef   `json:"guestList"`
}

// BookingListResponse is the body of GET /bookings.
type BookingListResponse struct {
	Data       []BookingRow `json:"data"`
	Pagination Pagination   `json:"pagination"`
	Warnings   []string     `json:"warnings"`
}

// BookingStatsResponse is the body of GET /bookings/stats.
type BookingStatsResponse struct {
	Total     int      `json:"total"`
	Confirmed int      `json:"confirmed"`
	CheckedIn int      `json:"checkedIn"`
	Warnings  []string `json:"warnings"`
}

// Person is one selectable person of a booking detail.
type Person struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
}

// BookingDetailResponse is the body of GET /bookings/{id}.
type BookingDetailResponse struct {
	BookingID    domain.BookingID    `json:"bookingId"`
	Status       string              `json:"status"`
	Badge        string              `json:"badge"`
	CheckedIn    bool                `json:"checkedIn"`
	CheckInDate  *openapi_types.Date `json:"checkInDate,omitempty"`
	CheckOutDate *openapi_types.Date `json:"checkOutDate,omitempty"`
	Rooms        string              `json:"rooms"`
	People       []Person            `json:"people"`
	ActiveIndex  int                 `json:"activeIndex"`
	Active       domain.GuestRef     `json:"active"`
}

// ListBookings handles GET /bookings.
// Supports ?search=, ?status=, ?start=, ?end=, ?sort=, ?page=, ?limit= and
// ?refresh=true. Pending bookings are never listed.
func (s *Server) ListBookings(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r, domain.ModuleBookingManagement, domain.ActionView) {
		return
	}

	q := newQuery(r)
	search := q.str("search")
	status := q.str("status")
	dates := q.dateRange()
	sortParam := q.str("sort")
	page, limit := q.intPtr("page"), q.intPtr("limit")
	refresh := q.boolean("refresh")
	if err := q.err(); err != nil {
		requestError(w, err.Error())
		return
	}

	filter, err := reconcile.ParseStatusFilter(status)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	order, err := reconcile.ParseSortOrder(sortParam)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	pageReq, err := domain.NewPageRequest(page, limit, domain.BookingPageSizes)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	list, err := s.bookings.List(r.Context(), domain.BookingQuery{
		Search: search,
		Status: filter,
		Range:  dates,
		Sort:   order,
		Page:   pageReq,
	}, refresh)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data := make([]BookingRow, len(list.Page.Rows))
	for i, row := range list.Page.Rows {
		data[i] = bookingRowToResponse(row)
	}
	writeJSON(w, http.StatusOK, BookingListResponse{
		Data:       data,
		Pagination: paginationOf(list.Page),
		Warnings:   warningsOrEmpty(list.Warnings),
	})
}

// GetBookingStats handles GET /bookings/stats.
func (s *Server) GetBookingStats(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r, domain.ModuleBookingManagement, domain.ActionView) {
		return
	}
	stats, warnings, err := s.bookings.Stats(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, BookingStatsResponse{
		Total:     stats.Total,
		Confirmed: stats.Confirmed,
		CheckedIn: stats.CheckedIn,
		Warnings:  warningsOrEmpty(warnings),
	})
}

// GetBooking handles GET /bookings/{id}. ?person= selects the active person.
func (s *Server) GetBooking(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r, domain.ModuleBookingManagement, domain.ActionView) {
		return
	}
	id, err := bookingIDParam(r)
	if err != nil {
		requestError(w, err.Error())
		return
	}
	q := newQuery(r)
	person := q.intPtr("person")
	if err := q.err(); err != nil {
		requestError(w, err.Error())
		return
	}
	index := 0
	if person != nil {
		index = *person
	}

	d, err := s.bookings.Detail(r.Context(), id, index)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeErrorBody(w, http.StatusNotFound, codeNotFound, "booking not found")
			return
		}
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detailToResponse(d))
}

// DeleteBooking handles DELETE /bookings/{id}.
func (s *Server) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r, domain.ModuleBookingManagement, domain.ActionDelete) {
		return
	}
	id, err := bookingIDParam(r)
	if err != nil {
		requestError(w, err.Error())
		return
	}

	if err := s.bookings.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeErrorBody(w, http.StatusNotFound, codeNotFound, "booking not found")
			return
		}
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

func bookingRowToResponse(r domain.FlatRow) BookingRow {
	guests := r.GuestList
	if guests == nil {
		guests = []domain.GuestRef{}
	}
	return BookingRow{
		Key:          r.Key,
		BookingID:    r.BookingID,
		CustomerID:   r.CustomerID,
		FullName:     r.FullName,
		Email:        r.Email,
		RoomNumbers:  r.RoomNumbers,
		Status:       string(r.Status),
		Badge:        string(r.Badge),
		CheckInDate:  optionalDate(r.CheckInDate),
		CheckOutDate: optionalDate(r.CheckOutDate),
		Adults:       r.Adults,
		Children:     r.Children,
		GuestCount:   r.GuestCount,
		GuestList:    guests,
	}
}

func detailToResponse(d domain.DetailView) BookingDetailResponse {
	people := make([]Person, len(d.People))
	for i, p := range d.People {
		people[i] = Person{Index: p.Index, Name: p.Name, Role: p.Role, Email: p.Email}
	}
	return BookingDetailResponse{
		BookingID:    d.BookingID,
		Status:       string(d.Status),
		Badge:        string(d.Badge),
		CheckedIn:    d.CheckedIn,
		CheckInDate:  optionalDate(d.CheckInDate),
		CheckOutDate: optionalDate(d.CheckOutDate),
		Rooms:        d.Rooms,
		People:       people,
		ActiveIndex:  d.ActiveIndex,
		Active:       d.Active,
	}
}
