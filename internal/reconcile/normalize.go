package reconcile

import (
	"math"
	"slices"
	"strconv"
	"time"

	"github.com/pkordes/frontdesk/internal/domain"
)

// Options controls how raw bookings are normalized for one screen.
type Options struct {
	// DefaultStatus is used for status values the classifier does not know.
	DefaultStatus domain.BookingStatus
	// Location is the hotel's time zone; date-only values are computed in it.
	Location *time.Location
}

// ListOptions normalizes for the booking list.
func ListOptions(loc *time.Location) Options {
	return Options{DefaultStatus: ListDefaultStatus, Location: loc}
}

// DashboardOptions normalizes for the dashboard widgets.
func DashboardOptions(loc *time.Location) Options {
	return Options{DefaultStatus: DashboardDefaultStatus, Location: loc}
}

// parseBookingID resolves f as a positive integer id. Zero, negative,
// fractional and non-numeric values mean "no real id".
func parseBookingID(f Field, r domain.Record) domain.BookingID {
	s, ok := f.Lookup(r)
	if !ok {
		return domain.BookingID{}
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n <= 0 {
			return domain.BookingID{}
		}
		return domain.NewBookingID(n)
	}
	fl, err := strconv.ParseFloat(s, 64)
	if err != nil || fl <= 0 || fl != math.Trunc(fl) || fl >= math.MaxInt64 {
		return domain.BookingID{}
	}
	return domain.NewBookingID(int64(fl))
}

// roomNumbers collects the room codes of a booking's room associations,
// de-duplicated in first-seen order.
func roomNumbers(b domain.Record) []string {
	v, ok := lookupPath(b, "rooms")
	if !ok {
		return []string{}
	}
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		m, ok := asMap(it)
		if !ok {
			continue
		}
		code, ok := RoomCode.Lookup(domain.Record(m))
		if ok && code != Placeholder {
			out = unionRooms(out, code)
		}
	}
	return out
}

// unionRooms appends every room in add that is not already in rooms.
func unionRooms(rooms []string, add ...string) []string {
	for _, r := range add {
		if r == "" || r == Placeholder || slices.Contains(rooms, r) {
			continue
		}
		rooms = append(rooms, r)
	}
	return rooms
}

// bookerName resolves the main booker's display name from the nested
// customer record, falling back to the booking's own name fields.
func bookerName(b domain.Record) string {
	if n, ok := FullName.Lookup(nested(b, "customer")); ok {
		return n
	}
	return FullName.Resolve(b, Placeholder)
}

// normalizeOne projects a single raw booking. index is its position in the
// fetched list and only feeds the display key.
func normalizeOne(b domain.Record, index int, reg *Registry, opts Options) domain.NormalizedBooking {
	id := parseBookingID(BookingIDField, b)
	checkedIn := IsCheckedInOrLater(b)
	email := BookingEmail.Resolve(b, "")
	booker := bookerName(b)
	entries := reg.ForBooking(id)

	mainName := booker
	if checkedIn {
		if n, ok := MainGuestName(entries); ok {
			mainName = n
		}
	}

	return domain.NormalizedBooking{
		ID:             id,
		Key:            domain.DisplayKey(id, index),
		CustomerID:     CustomerIDField.Resolve(b, ""),
		Status:         recordStatus(b, opts.DefaultStatus),
		CheckedIn:      checkedIn,
		CheckInDate:    DateOnly(CheckInDate.Resolve(b, ""), opts.Location),
		CheckOutDate:   DateOnly(CheckOutDate.Resolve(b, ""), opts.Location),
		RoomNumbers:    roomNumbers(b),
		MainGuestName:  mainName,
		MainGuestEmail: email,
		Adults:         Adults.Int(b),
		Children:       Children.Int(b),
		GuestList:      MergeGuestList(b, checkedIn, entries, booker, email),
	}
}

// Flatten normalizes every raw booking independently, one result per input
// record. Duplicates are kept; GroupByBooking or Normalize collapse them.
func Flatten(raw []domain.Record, reg *Registry, opts Options) []domain.NormalizedBooking {
	out := make([]domain.NormalizedBooking, 0, len(raw))
	for i, b := range raw {
		out = append(out, normalizeOne(b, i, reg, opts))
	}
	return out
}

// Normalize produces exactly one NormalizedBooking per distinct booking id.
// Entries sharing an id are merged: rooms are unioned in first-seen order,
// the last entry's status wins, and the booking counts as checked in if any
// entry says so. Bookings without a real id are never merged.
// reg may be nil when the guest registry is unavailable.
func Normalize(raw []domain.Record, reg *Registry, opts Options) []domain.NormalizedBooking {
	flat := Flatten(raw, reg, opts)
	out := make([]domain.NormalizedBooking, 0, len(flat))
	pos := make(map[int64]int, len(flat))

	for _, nb := range flat {
		id, ok := nb.ID.Get()
		if !ok {
			out = append(out, nb)
			continue
		}
		i, seen := pos[id]
		if !seen {
			nb.RoomNumbers = slices.Clone(nb.RoomNumbers)
			pos[id] = len(out)
			out = append(out, nb)
			continue
		}
		out[i] = mergeBooking(out[i], nb)
	}
	return out
}

func mergeBooking(acc, next domain.NormalizedBooking) domain.NormalizedBooking {
	acc.RoomNumbers = unionRooms(acc.RoomNumbers, next.RoomNumbers...)
	acc.Status = next.Status
	if next.CheckedIn && !acc.CheckedIn {
		acc.CheckedIn = true
		acc.MainGuestName = next.MainGuestName
		acc.GuestList = next.GuestList
	}
	if acc.CheckInDate == "" {
		acc.CheckInDate = next.CheckInDate
	}
	if acc.CheckOutDate == "" {
		acc.CheckOutDate = next.CheckOutDate
	}
	if acc.CustomerID == "" {
		acc.CustomerID = next.CustomerID
	}
	if acc.MainGuestEmail == "" {
		acc.MainGuestEmail = next.MainGuestEmail
	}
	acc.Adults = max(acc.Adults, next.Adults)
	acc.Children = max(acc.Children, next.Children)
	return acc
}
