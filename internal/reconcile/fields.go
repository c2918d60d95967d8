// Package reconcile turns raw hotel-backend booking and guest records into
// stable, de-duplicated rows for the booking list, the dashboard widgets,
// the booking detail view and the government registry report.
//
// Every function in this package is pure: inputs are never mutated, nothing
// blocks, and malformed input degrades to "—" or an empty collection rather
// than an error.
package reconcile

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkordes/frontdesk/internal/domain"
)

// Placeholder is rendered wherever a display value could not be resolved.
const Placeholder = "—"

// source extracts one candidate value from a record.
type source func(domain.Record) (string, bool)

// Field is a logical field together with the prioritized list of places the
// hotel backend has been seen to put it.
type Field struct {
	Name    string
	sources []source
}

// Lookup returns the first non-empty (after trimming) value among the
// field's aliases.
func (f Field) Lookup(r domain.Record) (string, bool) {
	for _, src := range f.sources {
		if v, ok := src(r); ok {
			return v, true
		}
	}
	return "", false
}

// Resolve is Lookup with a fallback for records where no alias matched.
func (f Field) Resolve(r domain.Record, fallback string) string {
	if v, ok := f.Lookup(r); ok {
		return v
	}
	return fallback
}

// Int resolves the field as a non-negative integer. Missing, malformed and
// negative values all yield 0.
func (f Field) Int(r domain.Record) int {
	v, ok := f.Lookup(r)
	if !ok {
		return 0
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || n < 0 {
		return 0
	}
	return int(n)
}

// path reads a (possibly nested) key, e.g. path("room", "roomCode").
func path(keys ...string) source {
	return func(r domain.Record) (string, bool) {
		v, ok := lookupPath(r, keys...)
		if !ok {
			return "", false
		}
		return stringify(v)
	}
}

// joinAll joins every part with sep, but only when all parts are present.
func joinAll(sep string, parts ...source) source {
	return func(r domain.Record) (string, bool) {
		vals := make([]string, 0, len(parts))
		for _, p := range parts {
			v, ok := p(r)
			if !ok {
				return "", false
			}
			vals = append(vals, v)
		}
		return strings.Join(vals, sep), len(vals) > 0
	}
}

// joinAny joins whichever parts are present.
func joinAny(sep string, parts ...source) source {
	return func(r domain.Record) (string, bool) {
		var vals []string
		for _, p := range parts {
			if v, ok := p(r); ok {
				vals = append(vals, v)
			}
		}
		return strings.Join(vals, sep), len(vals) > 0
	}
}

// first returns the first present part.
func first(parts ...source) source {
	return func(r domain.Record) (string, bool) {
		for _, p := range parts {
			if v, ok := p(r); ok {
				return v, true
			}
		}
		return "", false
	}
}

func field(name string, sources ...source) Field {
	return Field{Name: name, sources: sources}
}

// Alias tables. Order is priority.
var (
	BookingIDField = field("booking id",
		path("id"), path("ID"), path("bookingId"), path("booking_id"))

	GuestBookingIDField = field("guest booking id",
		path("bookingId"), path("booking_id"), path("BookingID"))

	CustomerIDField = field("customer id",
		path("customer", "id"), path("customer", "ID"), path("customerId"), path("customer_id"))

	GuestIDField = field("guest id",
		path("id"), path("ID"), path("guestId"), path("guest_id"))

	FullName = field("full name",
		path("fullName"), path("full_name"), path("FullName"), path("customer_name"), path("name"),
		joinAll(" ", path("first_name"), path("last_name")),
		path("firstName"), path("first_name"))

	GuestName = field("guest name",
		path("fullName"), path("full_name"), path("FullName"), path("name"),
		path("guestName"), path("guest_name"),
		joinAny(" ",
			first(path("firstName"), path("first_name")),
			first(path("lastName"), path("last_name"))),
		joinAny(" ", path("details", "firstName"), path("details", "lastName")))

	Email = field("email", path("email"), path("Email"))

	BookingEmail = field("booking email",
		path("customer", "email"), path("customer", "Email"), path("email"), path("Email"))

	Status = field("status",
		path("status"), path("bookingStatus"), path("booking_status"), path("Status"))

	CheckInDate = field("check-in date",
		path("checkInDate"), path("check_in_date"), path("CheckInDate"),
		path("check_in"), path("checkIn"), path("checkin"))

	CheckOutDate = field("check-out date",
		path("checkOutDate"), path("check_out_date"), path("CheckOutDate"),
		path("check_out"), path("checkOut"), path("checkout"))

	ReportCheckInDate = field("report check-in date",
		append(append([]source{}, CheckInDate.sources...),
			path("startDate"), path("start_date"))...)

	ReportCheckOutDate = field("report check-out date",
		append(append([]source{}, CheckOutDate.sources...),
			path("checkedOutAt"), path("checked_out_at"), path("endDate"), path("end_date"))...)

	CheckedInAt = field("checked-in at", path("checkedInAt"), path("checked_in_at"))

	CreatedAt = field("created at", path("createdAt"), path("created_at"), path("CreatedAt"))

	RoomCode = field("room code",
		path("room", "roomCode"), path("room", "roomNumber"), path("room", "room_code"),
		path("room", "room_number"), path("room", "roomNo"),
		path("roomCode"), path("roomNumber"), path("room_code"), path("room_number"), path("roomNo"))

	RoomStatus = field("room status", path("status"), path("Status"))

	Nationality = field("nationality",
		path("nationality"), path("Nationality"), path("details", "nationality"))

	IDNumber = field("id number",
		path("idNumber"), path("id_number"), path("IDNumber"),
		path("documentNumber"), path("document_number"),
		path("passportId"), path("passport_id"), path("details", "documentNumber"))

	IDType = field("id type",
		path("idType"), path("id_type"), path("IDType"), path("documentType"), path("document_type"))

	Address = field("address",
		path("currentAddress"), path("current_address"), path("CurrentAddress"),
		path("details", "currentAddress"), path("address"))

	Gender = field("gender", path("gender"), path("Gender"), path("details", "gender"))

	Occupation = field("occupation", path("occupation"), path("Occupation"))

	GuestType = field("guest type", path("type"), path("guestType"), path("guest_type"))

	Adults = field("adults", path("guests", "adults"), path("adults"))

	Children = field("children", path("guests", "children"), path("children"))

	AdminIDField = field("admin id", path("id"), path("ID"))

	AdminName = field("admin name",
		path("full_name"), path("fullName"), path("name"), path("username"))

	AdminUsername = field("admin username", path("username"), path("email"))

	RoleName = field("role name", path("name"), path("roleName"), path("role_name"))
)

// asMap accepts both decoded JSON objects and domain.Record values.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case domain.Record:
		return m, m != nil
	case map[string]any:
		return m, m != nil
	}
	return nil, false
}

func lookupPath(r domain.Record, keys ...string) (any, bool) {
	var cur any = r
	for _, k := range keys {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[k]
		if !ok || cur == nil {
			return nil, false
		}
	}
	return cur, true
}

// nested returns the object stored under key, or an empty record.
func nested(r domain.Record, key string) domain.Record {
	if v, ok := lookupPath(r, key); ok {
		if m, ok := asMap(v); ok {
			return domain.Record(m)
		}
	}
	return domain.Record{}
}

// stringify renders scalar JSON values as trimmed text. Objects and arrays
// have no text form and are reported as absent.
func stringify(v any) (string, bool) {
	var s string
	switch x := v.(type) {
	case string:
		s = x
	case json.Number:
		s = x.String()
	case float64:
		s = strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		s = strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		s = strconv.Itoa(x)
	case int64:
		s = strconv.FormatInt(x, 10)
	case bool:
		s = strconv.FormatBool(x)
	default:
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// optionalBool returns nil when none of keys holds a boolean-like value.
func optionalBool(r domain.Record, keys ...string) *bool {
	for _, k := range keys {
		v, ok := lookupPath(r, k)
		if !ok {
			continue
		}
		switch x := v.(type) {
		case bool:
			return &x
		case string:
			switch strings.ToLower(strings.TrimSpace(x)) {
			case "true":
				t := true
				return &t
			case "false":
				f := false
				return &f
			}
		}
	}
	return nil
}
