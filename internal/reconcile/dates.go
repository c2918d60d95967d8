package reconcile

import (
	"regexp"
	"time"

	"github.com/pkordes/frontdesk/internal/domain"
)

// DayLayout is the date-only layout used for every date this package emits.
const DayLayout = "2006-01-02"

var dayOnly = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Timestamp layouts seen from the hotel backend, tried in order. Layouts
// without a zone are read as local time in the configured location.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// DateOnly reduces a date or timestamp to a local "2006-01-02" string.
// A bare date is returned as-is so it never shifts across a day boundary.
// Unparseable input yields "".
func DateOnly(v string, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	if dayOnly.MatchString(v) {
		if _, err := time.Parse(DayLayout, v); err != nil {
			return ""
		}
		return v
	}
	for _, layout := range timestampLayouts {
		t, err := time.ParseInLocation(layout, v, loc)
		if err == nil {
			return t.In(loc).Format(DayLayout)
		}
	}
	return ""
}

// ValidDay reports whether s is a real "2006-01-02" calendar date.
func ValidDay(s string) bool {
	if !dayOnly.MatchString(s) {
		return false
	}
	_, err := time.Parse(DayLayout, s)
	return err == nil
}

// Today returns the calendar date of now in loc, not in UTC.
func Today(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return now.In(loc).Format(DayLayout)
}

// WeekRange returns the Monday..Sunday week containing now, in loc.
func WeekRange(now time.Time, loc *time.Location) domain.DateRange {
	if loc == nil {
		loc = time.Local
	}
	local := now.In(loc)
	offset := int(local.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset = 6 // Sunday belongs to the week that started six days earlier
	}
	start := time.Date(local.Year(), local.Month(), local.Day()-offset, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 6)
	return domain.DateRange{Start: start.Format(DayLayout), End: end.Format(DayLayout)}
}

// InDateRange reports whether the date-only value day falls inside r with
// both bounds inclusive. An empty day never matches an active range.
// Date-only strings order lexically, so whole-day bounds reduce to string
// comparison.
func InDateRange(day string, r domain.DateRange) bool {
	if !r.Active() {
		return true
	}
	if day == "" {
		return false
	}
	if r.Start != "" && day < r.Start {
		return false
	}
	if r.End != "" && day > r.End {
		return false
	}
	return true
}
