package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/frontdesk/internal/domain"
	"github.com/pkordes/frontdesk/internal/reconcile"
)

// DashboardKPIs are the headline counters of the dashboard.
type DashboardKPIs struct {
	TotalRooms           int `json:"totalRooms"`
	AvailableRooms       int `json:"availableRooms"`
	TodaysCheckIns       int `json:"todaysCheckIns"`
	TodaysCheckOuts      int `json:"todaysCheckOuts"`
	MissingRegistrations int `json:"missingRegistrations"`
}

// DashboardBooking is one booking in a dashboard widget.
type DashboardBooking struct {
	Key          string              `json:"key"`
	BookingID    int64               `json:"bookingId"`
	GuestName    string              `json:"guestName"`
	RoomNumbers  string              `json:"roomNumbers"`
	Status       string              `json:"status"`
	Badge        string              `json:"badge"`
	CheckInDate  *openapi_types.Date `json:"checkInDate,omitempty"`
	CheckOutDate *openapi_types.Date `json:"checkOutDate,omitempty"`
}

// DashboardResponse is the body of GET /dashboard.
type DashboardResponse struct {
	Date               openapi_types.Date `json:"date"`
	KPIs               DashboardKPIs      `json:"kpis"`
	RecentCheckIns     []DashboardBooking `json:"recentCheckIns"`
	TodaysCheckIns     []DashboardBooking `json:"todaysCheckIns"`
	TodaysCheckOuts    []DashboardBooking `json:"todaysCheckOuts"`
	CurrentlyCheckedIn []DashboardBooking `json:"currentlyCheckedIn"`
	Warnings           []string           `json:"warnings"`
}

// GetDashboard handles GET /dashboard. ?date= overrides "today" in the
// hotel's time zone. Any admin known to the hotel backend may read it.
func (s *Server) GetDashboard(w http.ResponseWriter, r *http.Request) {
	if _, err := s.access.CurrentUser(r.Context()); err != nil {
		s.writeError(w, r, err)
		return
	}

	q := newQuery(r)
	date := q.day("date")
	refresh := q.boolean("refresh")
	if err := q.err(); err != nil {
		requestError(w, err.Error())
		return
	}

	view, err := s.dashboard.Get(r.Context(), date, refresh)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	d := view.Dashboard

	resp := DashboardResponse{
		KPIs: DashboardKPIs{
			TotalRooms:           d.TotalRooms,
			AvailableRooms:       d.AvailableRooms,
			TodaysCheckIns:       len(d.TodaysCheckIns),
			TodaysCheckOuts:      len(d.TodaysCheckOuts),
			MissingRegistrations: d.MissingRegistered,
		},
		RecentCheckIns:     groupedToResponse(d.RecentCheckIns),
		TodaysCheckIns:     groupedToResponse(d.TodaysCheckIns),
		TodaysCheckOuts:    groupedToResponse(d.TodaysCheckOuts),
		CurrentlyCheckedIn: groupedToResponse(d.CurrentlyCheckedIn),
		Warnings:           warningsOrEmpty(view.Warnings),
	}
	if day := optionalDate(d.Date); day != nil {
		resp.Date = *day
	}
	writeJSON(w, http.StatusOK, resp)
}

func groupedToResponse(rows []domain.GroupedRow) []DashboardBooking {
	out := make([]DashboardBooking, len(rows))
	for i, g := range rows {
		out[i] = DashboardBooking{
			Key:          g.Key,
			BookingID:    g.BookingID,
			GuestName:    g.Booking.MainGuestName,
			RoomNumbers:  g.RoomNumbers,
			Status:       string(g.Status),
			Badge:        string(reconcile.StatusBadge(g.Status)),
			CheckInDate:  optionalDate(g.Booking.CheckInDate),
			CheckOutDate: optionalDate(g.Booking.CheckOutDate),
		}
	}
	return out
}
