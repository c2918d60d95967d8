package reconcile_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/frontdesk/internal/domain"
	"github.com/pkordes/frontdesk/internal/reconcile"
)

func TestGroupByBooking_FlattenAndGroupScenario(t *testing.T) {
	raw := records(t, `[
		{"id": 1, "status": "checked-in", "rooms": [{"roomCode": "101"}], "guests": {"adults": 2, "children": 0}},
		{"id": 1, "status": "checked-in", "rooms": [{"roomCode": "102"}]}
	]`)

	rows := reconcile.GroupByBooking(reconcile.Normalize(raw, nil, reconcile.DashboardOptions(bangkok)), nil)

	require.Len(t, rows, 1)
	assert.Equal(t, int64(1), rows[0].BookingID)
	assert.Equal(t, "101, 102", rows[0].RoomNumbers)
	assert.Equal(t, domain.StatusCheckedIn, rows[0].Status)
}

func TestGroupByBooking_DedupInvariant(t *testing.T) {
	// N raw entries sharing one id, with overlapping rooms.
	for n := 1; n <= 6; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			var bookings []domain.NormalizedBooking
			var want []string
			for i := 0; i < n; i++ {
				rooms := []string{fmt.Sprintf("R%d", i), fmt.Sprintf("R%d", i+1)}
				for _, r := range rooms {
					if !containsString(want, r) {
						want = append(want, r)
					}
				}
				bookings = append(bookings, domain.NormalizedBooking{
					ID:          domain.NewBookingID(42),
					Status:      domain.StatusConfirmed,
					RoomNumbers: rooms,
				})
			}

			rows := reconcile.GroupByBooking(bookings, nil)

			require.Len(t, rows, 1)
			assert.Equal(t, joinComma(want), rows[0].RoomNumbers)
		})
	}
}

func TestGroupByBooking_SkipsMissingIDsAndPredicate(t *testing.T) {
	bookings := []domain.NormalizedBooking{
		{ID: domain.BookingID{}, Status: domain.StatusCheckedIn, RoomNumbers: []string{"1"}},
		{ID: domain.NewBookingID(3), Status: domain.StatusConfirmed},
		{ID: domain.NewBookingID(2), Status: domain.StatusCheckedIn, RoomNumbers: []string{"5"}},
		{ID: domain.NewBookingID(3), Status: domain.StatusCheckedIn, RoomNumbers: []string{"7"}},
	}

	all := reconcile.GroupByBooking(bookings, nil)
	require.Len(t, all, 2)
	assert.Equal(t, int64(3), all[0].BookingID, "first occurrence keeps its position")
	assert.Equal(t, "7", all[0].RoomNumbers)
	assert.Equal(t, domain.StatusCheckedIn, all[0].Status, "latest status wins")
	assert.Equal(t, domain.StatusConfirmed, all[0].Booking.Status, "Booking is the first occurrence")

	checkedIn := reconcile.GroupByBooking(bookings, func(b domain.NormalizedBooking) bool {
		return b.Status == domain.StatusCheckedIn
	})
	require.Len(t, checkedIn, 2)
	assert.Equal(t, int64(2), checkedIn[0].BookingID)
	assert.Equal(t, "booking-2", checkedIn[0].Key)
}

func TestGroupByBooking_NoRoomsRendersPlaceholder(t *testing.T) {
	rows := reconcile.GroupByBooking([]domain.NormalizedBooking{{ID: domain.NewBookingID(1)}}, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, reconcile.Placeholder, rows[0].RoomNumbers)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func joinComma(list []string) string {
	out := ""
	for i, v := range list {
		if i > 0 {
			out += ", "
		}
		out += v
	}
	return out
}
