package reconcile

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/pkordes/frontdesk/internal/domain"
)

// ExcludePendingFromList removes Pending bookings from the booking list
// whatever status filter is selected. Pending bookings are still counted on
// the dashboard.
const ExcludePendingFromList = true

// ParseStatusFilter accepts "All", "Current & Upcoming", or any spelling the
// status classifier recognizes. An empty value means All.
func ParseStatusFilter(s string) (domain.StatusFilter, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "" || strings.EqualFold(s, string(domain.FilterAll)):
		return domain.FilterAll, nil
	case strings.EqualFold(s, string(domain.FilterCurrentAndUpcoming)) || statusKey(s) == "current&upcoming":
		return domain.FilterCurrentAndUpcoming, nil
	}
	if st, ok := statusTable[statusKey(s)]; ok {
		return domain.StatusFilter(st), nil
	}
	return "", fmt.Errorf("%w: unknown status filter %q", domain.ErrValidation, s)
}

// ParseSortOrder validates a sort query value.
func ParseSortOrder(s string) (domain.SortOrder, error) {
	switch o := domain.SortOrder(strings.TrimSpace(s)); o {
	case domain.SortNone, domain.SortCheckInAsc, domain.SortCheckInDesc, domain.SortBookingIDAsc, domain.SortBookingIDDesc:
		return o, nil
	}
	return "", fmt.Errorf("%w: unknown sort order %q", domain.ErrValidation, s)
}

func statusAllowed(st domain.BookingStatus, f domain.StatusFilter) bool {
	switch f {
	case domain.FilterAll, "":
		return true
	case domain.FilterCurrentAndUpcoming:
		return st == domain.StatusConfirmed || st == domain.StatusCheckedIn || st == domain.StatusCheckedOut
	}
	return string(st) == string(f)
}

func bookingMatches(r domain.FlatRow, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.FullName), term) ||
		strings.Contains(r.BookingID.String(), term) ||
		strings.Contains(strings.ToLower(r.RoomNumbers), term) ||
		strings.Contains(strings.ToLower(string(r.Status)), term)
}

// FilterBookingRows applies the status, search and date filters and the sort
// order, without paginating. The input is not modified.
func FilterBookingRows(rows []domain.FlatRow, q domain.BookingQuery) []domain.FlatRow {
	term := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]domain.FlatRow, 0, len(rows))
	for _, r := range rows {
		if ExcludePendingFromList && r.Status == domain.StatusPending {
			continue
		}
		if !statusAllowed(r.Status, q.Status) {
			continue
		}
		if !bookingMatches(r, term) {
			continue
		}
		if !InDateRange(r.CheckInDate, q.Range) {
			continue
		}
		out = append(out, r)
	}
	sortBookings(out, q.Sort)
	return out
}

// FilterBookings is the booking list window: filter, sort, then paginate.
func FilterBookings(rows []domain.FlatRow, q domain.BookingQuery) domain.Page[domain.FlatRow] {
	return domain.Paginate(FilterBookingRows(rows, q), q.Page)
}

// sortBookings sorts in place and stably. Rows without a check-in date, or
// without a real id, sort last in both directions.
func sortBookings(rows []domain.FlatRow, order domain.SortOrder) {
	switch order {
	case domain.SortCheckInAsc, domain.SortCheckInDesc:
		desc := order == domain.SortCheckInDesc
		slices.SortStableFunc(rows, func(a, b domain.FlatRow) int {
			return compareMissingLast(a.CheckInDate, b.CheckInDate, a.CheckInDate == "", b.CheckInDate == "", desc)
		})
	case domain.SortBookingIDAsc, domain.SortBookingIDDesc:
		desc := order == domain.SortBookingIDDesc
		slices.SortStableFunc(rows, func(a, b domain.FlatRow) int {
			av, aok := a.BookingID.Get()
			bv, bok := b.BookingID.Get()
			return compareMissingLast(av, bv, !aok, !bok, desc)
		})
	}
}

func compareMissingLast[T cmp.Ordered](a, b T, aMissing, bMissing, desc bool) int {
	switch {
	case aMissing && bMissing:
		return 0
	case aMissing:
		return 1
	case bMissing:
		return -1
	}
	if desc {
		return cmp.Compare(b, a)
	}
	return cmp.Compare(a, b)
}

// FilterCustomers windows the customer list. Search covers name,
// nationality and ID number.
func FilterCustomers(rows []domain.CustomerRow, q domain.CustomerQuery) domain.Page[domain.CustomerRow] {
	term := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]domain.CustomerRow, 0, len(rows))
	for _, r := range rows {
		if q.MissingRegistration && r.IDNumber != "" && r.IDType != "" {
			continue
		}
		if term != "" && !containsAny(term, r.FullName, r.Nationality, r.IDNumber) {
			continue
		}
		out = append(out, r)
	}
	return domain.Paginate(out, q.Page)
}

// ValidRange reports whether both bounds are real dates and start <= end.
func ValidRange(r domain.DateRange) bool {
	return ValidDay(r.Start) && ValidDay(r.End) && r.Start <= r.End
}

// FilterRegistryRows applies the report's date and search filters without
// paginating. The date filter only applies to a valid range, and rows whose
// check-in date does not parse always pass it.
func FilterRegistryRows(rows []domain.RegistryRow, q domain.RegistryQuery) []domain.RegistryRow {
	term := strings.ToLower(strings.TrimSpace(q.Search))
	useRange := ValidRange(q.Range)
	out := make([]domain.RegistryRow, 0, len(rows))
	for _, r := range rows {
		if useRange && ValidDay(r.CheckInDate) && !InDateRange(r.CheckInDate, q.Range) {
			continue
		}
		if term != "" && !containsAny(term, r.FullName, r.Nationality, r.IDNumber, r.RoomNumber, r.CurrentAddress) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FilterRegistry is the report window: filter, then paginate.
func FilterRegistry(rows []domain.RegistryRow, q domain.RegistryQuery) domain.Page[domain.RegistryRow] {
	return domain.Paginate(FilterRegistryRows(rows, q), q.Page)
}

func containsAny(term string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}
