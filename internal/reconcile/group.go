package reconcile

import (
	"strings"

	"github.com/pkordes/frontdesk/internal/domain"
)

// joinRooms renders a room list for display.
func joinRooms(rooms []string, empty string) string {
	if len(rooms) == 0 {
		return empty
	}
	return strings.Join(rooms, ", ")
}

// GroupByBooking reduces bookings to one summary row per booking id.
// Bookings failing keep, and bookings without a real id, are skipped. The
// first occurrence fixes the row's position and its Booking; later ones
// union their rooms in and overwrite the status. A nil keep keeps everything.
func GroupByBooking(bookings []domain.NormalizedBooking, keep func(domain.NormalizedBooking) bool) []domain.GroupedRow {
	type acc struct {
		row   domain.GroupedRow
		rooms []string
	}
	var order []int64
	groups := make(map[int64]*acc)

	for _, b := range bookings {
		if keep != nil && !keep(b) {
			continue
		}
		id, ok := b.ID.Get()
		if !ok {
			continue
		}
		g, seen := groups[id]
		if !seen {
			groups[id] = &acc{
				row: domain.GroupedRow{
					Key:       domain.DisplayKey(b.ID, 0),
					BookingID: id,
					Status:    b.Status,
					Booking:   b,
				},
				rooms: unionRooms(nil, b.RoomNumbers...),
			}
			order = append(order, id)
			continue
		}
		g.rooms = unionRooms(g.rooms, b.RoomNumbers...)
		g.row.Status = b.Status
	}

	out := make([]domain.GroupedRow, 0, len(order))
	for _, id := range order {
		g := groups[id]
		g.row.RoomNumbers = joinRooms(g.rooms, Placeholder)
		out = append(out, g.row)
	}
	return out
}
