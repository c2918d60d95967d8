package domain

// Badge is the colour a client renders a status badge with.
type Badge string

const (
	BadgeBlue  Badge = "blue"
	BadgeGreen Badge = "green"
	BadgeAmber Badge = "amber"
	BadgeGray  Badge = "gray"
	BadgeRed   Badge = "red"
)

// FlatRow is one booking as shown in the booking list table.
type FlatRow struct {
	Key          string
	BookingID    BookingID
	CustomerID   string
	FullName     string
	Email        string
	RoomNumbers  string // comma-joined, "N/A" when the booking has no rooms
	Status       BookingStatus
	Badge        Badge
	CheckInDate  string
	CheckOutDate string
	Adults       int
	Children     int
	GuestCount   int
	GuestList    []GuestRef
}

// GroupedRow is one booking in a dashboard widget. Several normalized
// bookings sharing an id collapse into a single GroupedRow.
type GroupedRow struct {
	Key         string
	BookingID   int64
	RoomNumbers string // comma-joined, "—" when no rooms
	Status      BookingStatus
	Booking     NormalizedBooking // first occurrence
}

// PersonOption is one selectable person in the booking detail view.
type PersonOption struct {
	Index int
	Name  string
	Role  string
	Email string
}

// DetailView is the booking detail projection for a single active person.
type DetailView struct {
	BookingID    BookingID
	Status       BookingStatus
	Badge        Badge
	CheckedIn    bool
	CheckInDate  string
	CheckOutDate string
	Rooms        string // comma-joined, "—" when no rooms
	People       []PersonOption
	ActiveIndex  int
	Active       GuestRef
}

// StatusFilter is a booking list status filter: a canonical status or one
// of the two synthetic buckets.
type StatusFilter string

const (
	FilterAll                StatusFilter = "All"
	FilterCurrentAndUpcoming StatusFilter = "Current & Upcoming"
)

// DateRange bounds a date filter. Start and End are "2006-01-02" strings;
// an empty side is unbounded.
type DateRange struct {
	Start string
	End   string
}

// Active reports whether either bound is set.
func (r DateRange) Active() bool {
	return r.Start != "" || r.End != ""
}

// SortOrder orders a booking list. The zero value keeps source order.
type SortOrder string

const (
	SortNone          SortOrder = ""
	SortCheckInAsc    SortOrder = "checkin"
	SortCheckInDesc   SortOrder = "-checkin"
	SortBookingIDAsc  SortOrder = "id"
	SortBookingIDDesc SortOrder = "-id"
)

// BookingQuery is everything the booking list filter stage needs.
type BookingQuery struct {
	Search string
	Status StatusFilter
	Range  DateRange
	Sort   SortOrder
	Page   PageRequest
}

// BookingStats are the booking list summary cards, Pending excluded.
type BookingStats struct {
	Total     int
	Confirmed int
	CheckedIn int
}
