package reconcile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/frontdesk/internal/domain"
	"github.com/pkordes/frontdesk/internal/reconcile"
)

const sampleBookings = `[
	{
		"id": 1,
		"status": "checked-in",
		"checkInDate": "2024-05-01",
		"checkOutDate": "2024-05-03",
		"customer": {"id": 5, "fullName": "Somchai Jaidee", "email": "somchai@example.com"},
		"rooms": [{"room": {"roomCode": "101"}}],
		"guests": {"adults": 2, "children": 1},
		"guestList": [{"name": "Inline Only"}]
	},
	{
		"id": 2,
		"status": "Confirmed",
		"check_in": "2024-05-04T15:00:00Z",
		"customer_name": "Ann Lee",
		"email": "ann@example.com",
		"rooms": [{"roomNumber": "202"}, {"roomNumber": "202"}, {"roomNumber": "203"}],
		"accompanying_guests": "[{\"fullName\":\"Bob\"}]"
	},
	{
		"status": "pending",
		"customer": {"fullName": "No Id"}
	}
]`

const sampleRegistry = `[
	{"id": 100, "bookingId": 1, "fullName": "Registered Main", "isMainGuest": true, "nationality": "TH"},
	{"id": 101, "bookingId": 1, "fullName": "Registered Second"}
]`

func TestNormalize_Idempotent(t *testing.T) {
	raw := records(t, sampleBookings)
	reg := reconcile.NewRegistry(records(t, sampleRegistry))
	opts := reconcile.ListOptions(bangkok)

	first := reconcile.Normalize(raw, reg, opts)
	second := reconcile.Normalize(raw, reg, opts)

	assert.Equal(t, first, second)
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	raw := records(t, sampleBookings)
	before := records(t, sampleBookings)

	reconcile.Normalize(raw, nil, reconcile.ListOptions(bangkok))

	assert.Equal(t, before, raw)
}

func TestNormalize_ProjectsFields(t *testing.T) {
	raw := records(t, sampleBookings)
	got := reconcile.Normalize(raw, nil, reconcile.ListOptions(bangkok))
	require.Len(t, got, 3)

	b := got[1]
	id, ok := b.ID.Get()
	require.True(t, ok)
	assert.Equal(t, int64(2), id)
	assert.Equal(t, "booking-2", b.Key)
	assert.Equal(t, domain.StatusConfirmed, b.Status)
	assert.False(t, b.CheckedIn)
	assert.Equal(t, "2024-05-04", b.CheckInDate)
	assert.Equal(t, "", b.CheckOutDate)
	assert.Equal(t, []string{"202", "203"}, b.RoomNumbers)
	assert.Equal(t, "Ann Lee", b.MainGuestName)
	assert.Equal(t, "ann@example.com", b.MainGuestEmail)
	require.Len(t, b.GuestList, 2)
	assert.Equal(t, "Ann Lee", b.GuestList[0].Name)
	assert.Equal(t, "Bob", b.GuestList[1].Name)
}

func TestNormalize_MissingIDGetsDisplayKeyOnly(t *testing.T) {
	got := reconcile.Normalize(records(t, sampleBookings), nil, reconcile.ListOptions(bangkok))

	noID := got[2]
	assert.False(t, noID.ID.Valid(), "a missing id must never look like a real one")
	assert.Equal(t, "booking-992", noID.Key)
	assert.Equal(t, "No Id", noID.MainGuestName)
}

func TestNormalize_NonPositiveIDsAreMissing(t *testing.T) {
	raw := records(t, `[{"id": 0}, {"id": -4}, {"id": "abc"}, {"id": 1.5}, {"id": 9223372036854775808}, {"id": 1e19}, {"bookingId": "17"}]`)
	got := reconcile.Normalize(raw, nil, reconcile.ListOptions(bangkok))
	require.Len(t, got, 7)
	for _, b := range got[:6] {
		assert.False(t, b.ID.Valid(), "key %s", b.Key)
	}
	id, ok := got[6].ID.Get()
	assert.True(t, ok)
	assert.Equal(t, int64(17), id)
}

func TestNormalize_RegistryReplacesGuestListAfterCheckIn(t *testing.T) {
	raw := records(t, sampleBookings)
	reg := reconcile.NewRegistry(records(t, sampleRegistry))

	got := reconcile.Normalize(raw, reg, reconcile.ListOptions(bangkok))

	b := got[0]
	assert.True(t, b.CheckedIn)
	assert.Equal(t, "Registered Main", b.MainGuestName)
	require.Len(t, b.GuestList, 2)
	assert.Equal(t, "Registered Main", b.GuestList[0].Name)
	assert.Equal(t, domain.GuestRoleMainGuest, b.GuestList[0].Role)
	assert.Equal(t, "Registered Second", b.GuestList[1].Name)
	for _, g := range b.GuestList {
		assert.NotEqual(t, "Inline Only", g.Name)
	}
}

func TestNormalize_CheckedInWithoutRegistryFallsBack(t *testing.T) {
	got := reconcile.Normalize(records(t, sampleBookings), nil, reconcile.ListOptions(bangkok))

	b := got[0]
	assert.Equal(t, "Somchai Jaidee", b.MainGuestName)
	require.Len(t, b.GuestList, 2)
	assert.Equal(t, domain.GuestRoleMainBooker, b.GuestList[0].Role)
	assert.Equal(t, "Inline Only", b.GuestList[1].Name)
}

func TestNormalize_MergesDuplicateIDs(t *testing.T) {
	raw := records(t, `[
		{"id": 9, "status": "Confirmed", "rooms": [{"roomCode": "301"}, {"roomCode": "302"}]},
		{"id": 8, "status": "Confirmed"},
		{"id": 9, "status": "checked-in", "rooms": [{"roomCode": "302"}, {"roomCode": "303"}]}
	]`)

	got := reconcile.Normalize(raw, nil, reconcile.ListOptions(bangkok))

	require.Len(t, got, 2)
	nine := got[0]
	assert.Equal(t, []string{"301", "302", "303"}, nine.RoomNumbers)
	// Status is last-write-wins. The hotel backend is expected to keep status
	// consistent across entries of one booking; this pins what happens if
	// it does not.
	assert.Equal(t, domain.StatusCheckedIn, nine.Status)
	assert.True(t, nine.CheckedIn)
}

func TestFlatten_KeepsOneRowPerRecord(t *testing.T) {
	raw := records(t, `[{"id": 1}, {"id": 1}, {}]`)
	got := reconcile.Flatten(raw, nil, reconcile.DashboardOptions(bangkok))
	require.Len(t, got, 3)
	assert.Equal(t, domain.StatusPending, got[2].Status, "dashboard default for a missing status")
}
