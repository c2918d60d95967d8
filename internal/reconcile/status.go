package reconcile

import (
	"strings"
	"unicode"

	"github.com/pkordes/frontdesk/internal/domain"
)

// Unrecognized statuses fall back differently depending on the screen: the
// booking list shows them as Confirmed, the dashboard as Pending. Both
// screens have always behaved this way, so both defaults are kept.
const (
	ListDefaultStatus      = domain.StatusConfirmed
	DashboardDefaultStatus = domain.StatusPending
)

var statusTable = map[string]domain.BookingStatus{
	"confirmed":  domain.StatusConfirmed,
	"confirm":    domain.StatusConfirmed,
	"pending":    domain.StatusPending,
	"checkedin":  domain.StatusCheckedIn,
	"checkedout": domain.StatusCheckedOut,
	"cancelled":  domain.StatusCancelled,
	"canceled":   domain.StatusCancelled,
}

// statusKey lowercases s and strips whitespace, hyphens and underscores.
func statusKey(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' || r == '_' {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
}

// ClassifyStatus maps an arbitrary status value onto the closed status set.
// The result is always one of domain.AllStatuses: an invalid fallback is
// replaced by ListDefaultStatus.
func ClassifyStatus(v any, fallback domain.BookingStatus) domain.BookingStatus {
	if !fallback.Valid() {
		fallback = ListDefaultStatus
	}

	var raw string
	switch x := v.(type) {
	case domain.BookingStatus:
		raw = string(x)
	default:
		s, ok := stringify(v)
		if !ok {
			return fallback
		}
		raw = s
	}

	if st, ok := statusTable[statusKey(raw)]; ok {
		return st
	}
	if st := domain.BookingStatus(raw); st.Valid() {
		return st
	}
	return fallback
}

// recordStatus classifies the status stored on a raw booking record.
func recordStatus(r domain.Record, fallback domain.BookingStatus) domain.BookingStatus {
	s, ok := Status.Lookup(r)
	if !ok {
		return ClassifyStatus(nil, fallback)
	}
	return ClassifyStatus(s, fallback)
}

// IsCheckedInOrLater reports whether a booking has reached check-in. Any one
// of three signals is enough: a Checked-In/Checked-Out status, an explicit
// checkinCompleted flag, or a checkedInAt timestamp.
func IsCheckedInOrLater(r domain.Record) bool {
	for _, src := range []Field{Status, field("nested booking status", path("booking", "status"))} {
		if s, ok := src.Lookup(r); ok {
			switch statusKey(s) {
			case "checkedin", "checkedout":
				return true
			}
		}
	}
	if v, ok := lookupPath(r, "checkinCompleted"); ok && v == true {
		return true
	}
	_, ok := CheckedInAt.Lookup(r)
	return ok
}
