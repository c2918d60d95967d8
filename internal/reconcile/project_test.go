package reconcile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/frontdesk/internal/domain"
	"github.com/pkordes/frontdesk/internal/reconcile"
)

func TestStatusBadge(t *testing.T) {
	assert.Equal(t, domain.BadgeBlue, reconcile.StatusBadge(domain.StatusConfirmed))
	assert.Equal(t, domain.BadgeGreen, reconcile.StatusBadge(domain.StatusCheckedIn))
	assert.Equal(t, domain.BadgeAmber, reconcile.StatusBadge(domain.StatusPending))
	assert.Equal(t, domain.BadgeGray, reconcile.StatusBadge(domain.StatusCheckedOut))
	assert.Equal(t, domain.BadgeRed, reconcile.StatusBadge(domain.StatusCancelled))
}

func TestFlatRows(t *testing.T) {
	rows := reconcile.FlatRows([]domain.NormalizedBooking{
		{ID: domain.NewBookingID(1), Key: "booking-1", Status: domain.StatusCheckedIn, RoomNumbers: []string{"101", "102"}, Adults: 2, Children: 1},
		{Key: "booking-991", Status: domain.StatusConfirmed},
	})

	require.Len(t, rows, 2)
	assert.Equal(t, "101, 102", rows[0].RoomNumbers)
	assert.Equal(t, 3, rows[0].GuestCount)
	assert.Equal(t, domain.BadgeGreen, rows[0].Badge)
	assert.Equal(t, reconcile.NoRooms, rows[1].RoomNumbers)
	assert.False(t, rows[1].BookingID.Valid())
}

func TestDetail_ActivePersonSelection(t *testing.T) {
	b := domain.NormalizedBooking{
		ID:          domain.NewBookingID(4),
		Status:      domain.StatusConfirmed,
		RoomNumbers: []string{"101"},
		GuestList: []domain.GuestRef{
			{Name: "Booker", Role: domain.GuestRoleMainBooker, Email: "b@example.com"},
			{Name: "Friend", Role: domain.GuestRoleGuest, Email: "f@example.com"},
		},
	}

	d := reconcile.Detail(b, 0)
	assert.Equal(t, 0, d.ActiveIndex)
	assert.Equal(t, "Booker", d.Active.Name)
	assert.Len(t, d.People, 2)
	assert.Equal(t, "101", d.Rooms)

	d = reconcile.Detail(b, 1)
	assert.Equal(t, "Friend", d.Active.Name)

	for _, idx := range []int{-1, 2, 99} {
		d = reconcile.Detail(b, idx)
		assert.Equal(t, 0, d.ActiveIndex, "index %d falls back to 0", idx)
		assert.Equal(t, "Booker", d.Active.Name)
	}
}

func TestDetail_EmptyGuestList(t *testing.T) {
	d := reconcile.Detail(domain.NormalizedBooking{Status: domain.StatusPending}, 3)
	assert.Equal(t, reconcile.Placeholder, d.Active.Name)
	assert.Equal(t, reconcile.Placeholder, d.Rooms)
	assert.Empty(t, d.People)
}

func TestListStats_ExcludesPending(t *testing.T) {
	stats := reconcile.ListStats([]domain.FlatRow{
		{Status: domain.StatusConfirmed},
		{Status: domain.StatusConfirmed},
		{Status: domain.StatusCheckedIn},
		{Status: domain.StatusPending},
		{Status: domain.StatusCancelled},
	})
	assert.Equal(t, domain.BookingStats{Total: 4, Confirmed: 2, CheckedIn: 1}, stats)
}
