package reconcile

import (
	"slices"
	"strings"
	"time"

	"github.com/pkordes/frontdesk/internal/domain"
)

// RoomAvailable is the room status counted as available.
const RoomAvailable = "Available"

// DashboardInput is everything BuildDashboard reads. Registry and Rooms may
// be empty when their fetch failed.
type DashboardInput struct {
	Bookings []domain.Record
	Registry *Registry
	Rooms    []domain.Record
	Today    string // "2006-01-02" in Location
	Location *time.Location
}

// BuildDashboard computes the dashboard KPIs and widgets for one day.
// Unrecognized statuses count as Pending here, unlike the booking list.
func BuildDashboard(in DashboardInput) domain.Dashboard {
	flat := Flatten(in.Bookings, in.Registry, DashboardOptions(in.Location))

	byID := make(map[int64]domain.GroupedRow)
	for _, row := range GroupByBooking(flat, nil) {
		byID[row.BookingID] = row
	}

	checkIns := GroupByBooking(flat, func(b domain.NormalizedBooking) bool {
		return b.CheckInDate == in.Today
	})
	inHouse := GroupByBooking(flat, func(b domain.NormalizedBooking) bool {
		return b.Status == domain.StatusCheckedIn
	})

	return domain.Dashboard{
		Date:               in.Today,
		TotalRooms:         len(in.Rooms),
		AvailableRooms:     countAvailable(in.Rooms),
		MissingRegistered:  CountIncompleteRegistrations(in.Bookings),
		RecentCheckIns:     recentCheckIns(in.Registry, byID),
		TodaysCheckIns:     checkIns,
		TodaysCheckOuts:    todaysCheckOuts(in.Registry, byID, in.Today),
		CurrentlyCheckedIn: inHouse,
	}
}

func countAvailable(rooms []domain.Record) int {
	n := 0
	for _, r := range rooms {
		if s, ok := RoomStatus.Lookup(r); ok && strings.EqualFold(s, RoomAvailable) {
			n++
		}
	}
	return n
}

// recentCheckIns walks the registry in order and keeps each checked-in
// booking once. Entries explicitly marked as non-main guests are skipped.
// The result is ordered by check-in date, newest first, undated last.
func recentCheckIns(reg *Registry, byID map[int64]domain.GroupedRow) []domain.GroupedRow {
	seen := make(map[int64]bool)
	var rows []domain.GroupedRow
	for _, e := range reg.Entries() {
		id, ok := e.BookingID.Get()
		if !ok || seen[id] {
			continue
		}
		if e.IsMainGuest != nil && !*e.IsMainGuest {
			continue
		}
		row, ok := byID[id]
		if !ok || row.Status != domain.StatusCheckedIn {
			continue
		}
		seen[id] = true
		rows = append(rows, row)
	}

	slices.SortStableFunc(rows, func(a, b domain.GroupedRow) int {
		ad, bd := a.Booking.CheckInDate, b.Booking.CheckInDate
		return compareMissingLast(ad, bd, ad == "", bd == "", true)
	})
	if len(rows) > domain.RecentCheckInLimit {
		rows = rows[:domain.RecentCheckInLimit]
	}
	if rows == nil {
		rows = []domain.GroupedRow{}
	}
	return rows
}

// todaysCheckOuts lists bookings in the registry that check out on today.
func todaysCheckOuts(reg *Registry, byID map[int64]domain.GroupedRow, today string) []domain.GroupedRow {
	seen := make(map[int64]bool)
	rows := []domain.GroupedRow{}
	for _, e := range reg.Entries() {
		id, ok := e.BookingID.Get()
		if !ok || seen[id] {
			continue
		}
		row, ok := byID[id]
		if !ok || row.Booking.CheckOutDate != today {
			continue
		}
		seen[id] = true
		rows = append(rows, row)
	}
	return rows
}

// registrationComplete reports whether a person has an ID/passport number,
// an occupation and a current address.
func registrationComplete(p domain.Record) bool {
	_, hasID := IDNumber.Lookup(p)
	_, hasOcc := Occupation.Lookup(p)
	_, hasAddr := Address.Lookup(p)
	return hasID && hasOcc && hasAddr
}

// CountIncompleteRegistrations counts people lacking registration data: the
// main booker of every booking plus every inline guest, each counted once.
func CountIncompleteRegistrations(raw []domain.Record) int {
	n := 0
	for _, b := range raw {
		if !registrationComplete(nested(b, "customer")) {
			n++
		}
		for _, g := range InlineGuests(b) {
			if !registrationComplete(g) {
				n++
			}
		}
	}
	return n
}
