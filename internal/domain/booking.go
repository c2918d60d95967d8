// Package domain contains the core data types for the front-desk service.
// This package has zero external dependencies and is imported by every other
// internal package (reconcile, upstream, repo, service, handler).
package domain

import "strconv"

// Record is a single loosely-typed object decoded from the hotel backend.
// Field names vary between snake_case, camelCase and PascalCase, so records
// are never bound to a fixed schema; reconcile.Field resolves values from them.
type Record map[string]any

// BookingStatus is the closed set of statuses that may reach a client.
type BookingStatus string

const (
	StatusConfirmed  BookingStatus = "Confirmed"
	StatusPending    BookingStatus = "Pending"
	StatusCheckedIn  BookingStatus = "Checked-In"
	StatusCheckedOut BookingStatus = "Checked-Out"
	StatusCancelled  BookingStatus = "Cancelled"
)

// AllStatuses lists every canonical status in display order.
var AllStatuses = []BookingStatus{
	StatusConfirmed,
	StatusPending,
	StatusCheckedIn,
	StatusCheckedOut,
	StatusCancelled,
}

// Valid reports whether s is one of the five canonical statuses.
func (s BookingStatus) Valid() bool {
	for _, c := range AllStatuses {
		if s == c {
			return true
		}
	}
	return false
}

// BookingID is a booking identifier that may be absent.
// The zero value means "no real id": such a booking can be displayed but
// must never be sent back to the hotel backend.
type BookingID struct {
	value int64
	valid bool
}

// NewBookingID wraps a real, server-issued booking id.
func NewBookingID(v int64) BookingID {
	return BookingID{value: v, valid: true}
}

// Get returns the id and whether it is real.
func (id BookingID) Get() (int64, bool) {
	return id.value, id.valid
}

// Valid reports whether the id came from the server.
func (id BookingID) Valid() bool {
	return id.valid
}

// String returns the decimal id, or "" when the id is absent.
func (id BookingID) String() string {
	if !id.valid {
		return ""
	}
	return strconv.FormatInt(id.value, 10)
}

// MarshalJSON renders a real id as a number and a missing id as null.
func (id BookingID) MarshalJSON() ([]byte, error) {
	if !id.valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(id.value, 10)), nil
}

// DisplayKey returns a stable table key for a booking row.
// Bookings without a real id get "booking-99<index>" where index is the
// position in the fetched list; the key is for rendering only.
func DisplayKey(id BookingID, index int) string {
	if v, ok := id.Get(); ok {
		return "booking-" + strconv.FormatInt(v, 10)
	}
	return "booking-99" + strconv.Itoa(index)
}

// GuestRef is one entry of a booking's displayed guest list.
type GuestRef struct {
	Name        string `json:"name"`
	Role        string `json:"role"`
	Email       string `json:"email,omitempty"`
	Nationality string `json:"nationality,omitempty"`
	IDNumber    string `json:"idNumber,omitempty"`
}

// Guest roles used in GuestRef.Role.
const (
	GuestRoleMainBooker = "Main Booker"
	GuestRoleMainGuest  = "Main Guest"
	GuestRoleGuest      = "Guest"
)

// GuestRegistryEntry is one individual recorded by the hotel backend during
// check-in. IsMainGuest is nil when the backend did not say either way.
type GuestRegistryEntry struct {
	ID             string
	BookingID      BookingID
	Name           string
	Email          string
	IsMainGuest    *bool
	Nationality    string
	IDType         string
	IDNumber       string
	Gender         string
	CurrentAddress string
	CreatedAt      string
}

// NormalizedBooking is the reconciled view of one booking, recomputed from
// scratch on every fetch cycle.
type NormalizedBooking struct {
	ID             BookingID
	Key            string
	CustomerID     string
	Status         BookingStatus
	CheckedIn      bool   // checked-in-or-later; selects the guest list source
	CheckInDate    string // "2006-01-02" or ""
	CheckOutDate   string // "2006-01-02" or ""
	RoomNumbers    []string
	MainGuestName  string
	MainGuestEmail string
	Adults         int
	Children       int
	GuestList      []GuestRef
}
