package reconcile_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/frontdesk/internal/domain"
	"github.com/pkordes/frontdesk/internal/reconcile"
)

func TestClassifyStatus(t *testing.T) {
	cases := []struct {
		in   any
		want domain.BookingStatus
	}{
		{"checked-in", domain.StatusCheckedIn},
		{"Checked In", domain.StatusCheckedIn},
		{"CHECKED_OUT", domain.StatusCheckedOut},
		{"checkedout", domain.StatusCheckedOut},
		{"confirm", domain.StatusConfirmed},
		{" Confirmed ", domain.StatusConfirmed},
		{"PENDING", domain.StatusPending},
		{"canceled", domain.StatusCancelled},
		{"cancelled", domain.StatusCancelled},
		{domain.StatusCheckedIn, domain.StatusCheckedIn},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, reconcile.ClassifyStatus(tc.in, reconcile.ListDefaultStatus), "input %v", tc.in)
	}
}

// The booking list and the dashboard disagree on how to show a status
// nobody recognizes: the list says Confirmed, the dashboard says Pending.
// Both behaviours are kept on purpose. If they are ever unified, this test
// is the one to change.
func TestClassifyStatus_UnknownDefaultsDifferPerScreen(t *testing.T) {
	for _, in := range []any{"on-hold", "", nil, 42, []any{"x"}} {
		assert.Equal(t, domain.StatusConfirmed, reconcile.ClassifyStatus(in, reconcile.ListDefaultStatus), "list, input %v", in)
		assert.Equal(t, domain.StatusPending, reconcile.ClassifyStatus(in, reconcile.DashboardDefaultStatus), "dashboard, input %v", in)
	}
}

func TestClassifyStatus_InvalidFallbackIsReplaced(t *testing.T) {
	got := reconcile.ClassifyStatus("weird", domain.BookingStatus("Weird"))
	assert.Equal(t, reconcile.ListDefaultStatus, got)
}

func TestClassifyStatus_AlwaysCanonical(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	alphabet := []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ -_เช็คอิน")
	for i := 0; i < 2000; i++ {
		n := r.Intn(16)
		s := make([]rune, n)
		for j := range s {
			s[j] = alphabet[r.Intn(len(alphabet))]
		}
		got := reconcile.ClassifyStatus(string(s), reconcile.ListDefaultStatus)
		assert.True(t, got.Valid(), "input %q produced %q", string(s), got)
	}
}

func TestIsCheckedInOrLater(t *testing.T) {
	cases := []struct {
		name string
		rec  domain.Record
		want bool
	}{
		{"checked-in status", domain.Record{"status": "checked-in"}, true},
		{"checked-out status", domain.Record{"bookingStatus": "Checked-Out"}, true},
		{"nested booking status", domain.Record{"booking": map[string]any{"status": "CheckedIn"}}, true},
		{"checkinCompleted flag", domain.Record{"status": "Confirmed", "checkinCompleted": true}, true},
		{"checkinCompleted string is not a flag", domain.Record{"checkinCompleted": "true"}, false},
		{"checkinCompleted false", domain.Record{"checkinCompleted": false}, false},
		{"checkedInAt timestamp", domain.Record{"checkedInAt": "2024-05-01T10:00:00Z"}, true},
		{"blank checkedInAt", domain.Record{"checkedInAt": "  "}, false},
		{"confirmed", domain.Record{"status": "Confirmed"}, false},
		{"empty", domain.Record{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, reconcile.IsCheckedInOrLater(tc.rec))
		})
	}
}
