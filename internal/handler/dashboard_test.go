package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/frontdesk/internal/domain"
	"github.com/pkordes/frontdesk/internal/handler"
	"github.com/pkordes/frontdesk/internal/service"
)

func TestGetDashboard_200(t *testing.T) {
	var gotDate string
	svc := &mockDashboard{get: func(_ context.Context, date string, _ bool) (service.DashboardView, error) {
		gotDate = date
		checkedIn := domain.GroupedRow{
			Key:         "booking-1",
			BookingID:   1,
			RoomNumbers: "101",
			Status:      domain.StatusCheckedIn,
			Booking:     domain.NormalizedBooking{MainGuestName: "Ann", CheckInDate: "2024-04-28", CheckOutDate: "2024-05-01"},
		}
		return service.DashboardView{
			Dashboard: domain.Dashboard{
				Date:               "2024-05-01",
				TotalRooms:         4,
				AvailableRooms:     2,
				MissingRegistered:  3,
				RecentCheckIns:     []domain.GroupedRow{checkedIn},
				TodaysCheckIns:     []domain.GroupedRow{},
				TodaysCheckOuts:    []domain.GroupedRow{checkedIn},
				CurrentlyCheckedIn: []domain.GroupedRow{checkedIn},
			},
			Warnings: []string{service.WarnRoomsUnavailable},
		}, nil
	}}

	rec := serve(newHTTPHandler(handler.Services{Dashboard: svc}), authed(httptest.NewRequest(http.MethodGet, "/dashboard?date=2024-05-01", nil)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2024-05-01", gotDate)

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "2024-05-01", body["date"])
	kpis := body["kpis"].(map[string]any)
	assert.EqualValues(t, 4, kpis["totalRooms"])
	assert.EqualValues(t, 2, kpis["availableRooms"])
	assert.EqualValues(t, 0, kpis["todaysCheckIns"])
	assert.EqualValues(t, 1, kpis["todaysCheckOuts"])
	assert.EqualValues(t, 3, kpis["missingRegistrations"])

	recent := body["recentCheckIns"].([]any)
	require.Len(t, recent, 1)
	row := recent[0].(map[string]any)
	assert.Equal(t, "Ann", row["guestName"])
	assert.Equal(t, "green", row["badge"])
	assert.Equal(t, "2024-04-28", row["checkInDate"])
	assert.Equal(t, []any{}, body["todaysCheckIns"])
	assert.Equal(t, []any{service.WarnRoomsUnavailable}, body["warnings"])
}

func TestGetDashboard_DefaultsToToday(t *testing.T) {
	gotDate := "unset"
	svc := &mockDashboard{get: func(_ context.Context, date string, _ bool) (service.DashboardView, error) {
		gotDate = date
		return service.DashboardView{Dashboard: domain.Dashboard{Date: "2024-05-01"}}, nil
	}}

	rec := serve(newHTTPHandler(handler.Services{Dashboard: svc}), authed(httptest.NewRequest(http.MethodGet, "/dashboard", nil)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "", gotDate, "the service picks today in the hotel's zone")
}

func TestGetDashboard_BadDate422(t *testing.T) {
	rec := serve(newHTTPHandler(handler.Services{Dashboard: &mockDashboard{}}), authed(httptest.NewRequest(http.MethodGet, "/dashboard?date=May+1", nil)))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestGetDashboard_RequiresKnownAdmin(t *testing.T) {
	rec := serve(newHTTPHandler(handler.Services{Dashboard: &mockDashboard{}}), httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetDashboard_Upstream502(t *testing.T) {
	svc := &mockDashboard{get: func(context.Context, string, bool) (service.DashboardView, error) {
		return service.DashboardView{}, context.DeadlineExceeded
	}}

	rec := serve(newHTTPHandler(handler.Services{Dashboard: svc}), authed(httptest.NewRequest(http.MethodGet, "/dashboard", nil)))

	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, handler.ErrorDetail{Code: "upstream_error", Message: "hotel backend unavailable"}, decodeError(t, rec))
}
