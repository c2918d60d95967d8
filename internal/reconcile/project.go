package reconcile

import (
	"github.com/pkordes/frontdesk/internal/domain"
)

// NoRooms is shown in the booking list for bookings without rooms.
const NoRooms = "N/A"

var badges = map[domain.BookingStatus]domain.Badge{
	domain.StatusConfirmed:  domain.BadgeBlue,
	domain.StatusCheckedIn:  domain.BadgeGreen,
	domain.StatusPending:    domain.BadgeAmber,
	domain.StatusCheckedOut: domain.BadgeGray,
	domain.StatusCancelled:  domain.BadgeRed,
}

// StatusBadge returns the badge colour for a status.
func StatusBadge(s domain.BookingStatus) domain.Badge {
	if b, ok := badges[s]; ok {
		return b
	}
	return domain.BadgeBlue
}

// FlatRows projects normalized bookings into booking list rows.
func FlatRows(bookings []domain.NormalizedBooking) []domain.FlatRow {
	out := make([]domain.FlatRow, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, domain.FlatRow{
			Key:          b.Key,
			BookingID:    b.ID,
			CustomerID:   b.CustomerID,
			FullName:     b.MainGuestName,
			Email:        b.MainGuestEmail,
			RoomNumbers:  joinRooms(b.RoomNumbers, NoRooms),
			Status:       b.Status,
			Badge:        StatusBadge(b.Status),
			CheckInDate:  b.CheckInDate,
			CheckOutDate: b.CheckOutDate,
			Adults:       b.Adults,
			Children:     b.Children,
			GuestCount:   b.Adults + b.Children,
			GuestList:    b.GuestList,
		})
	}
	return out
}

// Detail projects one booking for the detail view with the person at index
// active. Index 0 is the main booker before check-in and the head of the
// registry after; an out-of-range index falls back to 0.
func Detail(b domain.NormalizedBooking, index int) domain.DetailView {
	people := make([]domain.PersonOption, 0, len(b.GuestList))
	for i, g := range b.GuestList {
		people = append(people, domain.PersonOption{Index: i, Name: g.Name, Role: g.Role, Email: g.Email})
	}
	if index < 0 || index >= len(people) {
		index = 0
	}

	active := domain.GuestRef{Name: Placeholder}
	if len(b.GuestList) > 0 {
		active = b.GuestList[index]
	}

	return domain.DetailView{
		BookingID:    b.ID,
		Status:       b.Status,
		Badge:        StatusBadge(b.Status),
		CheckedIn:    b.CheckedIn,
		CheckInDate:  b.CheckInDate,
		CheckOutDate: b.CheckOutDate,
		Rooms:        joinRooms(b.RoomNumbers, Placeholder),
		People:       people,
		ActiveIndex:  index,
		Active:       active,
	}
}

// ListStats counts the booking list summary cards. Pending bookings never
// appear in the list, so they are not counted either.
func ListStats(rows []domain.FlatRow) domain.BookingStats {
	var s domain.BookingStats
	for _, r := range rows {
		if ExcludePendingFromList && r.Status == domain.StatusPending {
			continue
		}
		s.Total++
		switch r.Status {
		case domain.StatusConfirmed:
			s.Confirmed++
		case domain.StatusCheckedIn:
			s.CheckedIn++
		}
	}
	return s
}
