package reconcile

import (
	"time"

	"github.com/pkordes/frontdesk/internal/domain"
)

// UnknownDate marks a report date that could not be resolved.
const UnknownDate = "-"

type reportBooking struct {
	rooms    []string
	checkIn  string
	checkOut string
}

// indexReportBookings maps booking ids to the fields the report needs.
// Duplicate entries for one booking contribute their rooms; the first
// non-empty date wins.
func indexReportBookings(raw []domain.Record, loc *time.Location) map[int64]*reportBooking {
	idx := make(map[int64]*reportBooking, len(raw))
	for _, b := range raw {
		id, ok := parseBookingID(BookingIDField, b).Get()
		if !ok {
			continue
		}
		rb, seen := idx[id]
		if !seen {
			rb = &reportBooking{}
			idx[id] = rb
		}

		rooms := roomNumbers(b)
		if len(rooms) == 0 {
			if code, ok := RoomCode.Lookup(nested(b, "room")); ok {
				rooms = []string{code}
			}
		}
		rb.rooms = unionRooms(rb.rooms, rooms...)

		if rb.checkIn == "" {
			rb.checkIn = DateOnly(ReportCheckInDate.Resolve(b, ""), loc)
		}
		if rb.checkOut == "" {
			rb.checkOut = DateOnly(ReportCheckOutDate.Resolve(b, ""), loc)
		}
	}
	return idx
}

// RegistryReport builds the R.R.4 registry: one row per registry entry,
// joined with its booking for dates and rooms. Entries whose booking is
// unknown still produce a row; their check-in falls back to the entry's
// creation time.
func RegistryReport(reg *Registry, rawBookings []domain.Record, loc *time.Location) []domain.RegistryRow {
	bookings := indexReportBookings(rawBookings, loc)
	entries := reg.Entries()
	out := make([]domain.RegistryRow, 0, len(entries))

	for _, e := range entries {
		var rb *reportBooking
		if id, ok := e.BookingID.Get(); ok {
			rb = bookings[id]
		}

		row := domain.RegistryRow{
			CheckInDate:    UnknownDate,
			RoomNumber:     UnknownDate,
			FullName:       e.Name,
			Nationality:    e.Nationality,
			IDNumber:       e.IDNumber,
			CurrentAddress: e.CurrentAddress,
		}
		if row.Nationality == "" {
			row.Nationality = Placeholder
		}
		if rb != nil {
			if rb.checkIn != "" {
				row.CheckInDate = rb.checkIn
			}
			row.CheckOutDate = rb.checkOut
			row.RoomNumber = joinRooms(rb.rooms, UnknownDate)
		}
		if row.CheckInDate == UnknownDate {
			if d := DateOnly(e.CreatedAt, loc); d != "" {
				row.CheckInDate = d
			}
		}
		out = append(out, row)
	}
	return out
}

// CustomerRows projects the guest registry into customer list rows.
func CustomerRows(reg *Registry) []domain.CustomerRow {
	entries := reg.Entries()
	out := make([]domain.CustomerRow, 0, len(entries))
	for _, e := range entries {
		out = append(out, domain.CustomerRow{
			ID:          e.ID,
			FullName:    e.Name,
			Nationality: e.Nationality,
			Gender:      e.Gender,
			IDType:      e.IDType,
			IDNumber:    e.IDNumber,
		})
	}
	return out
}
