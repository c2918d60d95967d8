package domain

// RecentCheckInLimit caps the "Recent Check-Ins" widget.
const RecentCheckInLimit = 5

// Dashboard is the front-desk overview for one local calendar day.
type Dashboard struct {
	Date               string // "2006-01-02" in the hotel's time zone
	TotalRooms         int
	AvailableRooms     int
	MissingRegistered  int
	RecentCheckIns     []GroupedRow
	TodaysCheckIns     []GroupedRow
	TodaysCheckOuts    []GroupedRow
	CurrentlyCheckedIn []GroupedRow
}
