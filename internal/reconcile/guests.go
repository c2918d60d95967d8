package reconcile

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkordes/frontdesk/internal/domain"
)

// inlineGuestPaths are the places a booking keeps the guest list submitted at
// booking time, in priority order.
var inlineGuestPaths = [][]string{
	{"guest_list"},
	{"guestList"},
	{"accompanyingGuests"},
	{"accompanying_guests"},
	{"customer", "guestList"},
	{"customer", "guest_list"},
	{"guests"},
}

// InlineGuests returns the first non-empty inline guest list on a booking.
func InlineGuests(b domain.Record) []domain.Record {
	for _, p := range inlineGuestPaths {
		v, ok := lookupPath(b, p...)
		if !ok {
			continue
		}
		if list := ParseGuestList(v); len(list) > 0 {
			return list
		}
	}
	return []domain.Record{}
}

// ParseGuestList normalizes a guest list value that may be an array or a
// JSON-encoded array string. Anything else, including malformed JSON, yields
// an empty list. Bare string elements are treated as names.
func ParseGuestList(v any) []domain.Record {
	var items []any
	switch x := v.(type) {
	case []any:
		items = x
	case []domain.Record:
		items = make([]any, len(x))
		for i := range x {
			items[i] = x[i]
		}
	case string:
		dec := json.NewDecoder(strings.NewReader(x))
		dec.UseNumber()
		if err := dec.Decode(&items); err != nil {
			return []domain.Record{}
		}
	default:
		return []domain.Record{}
	}

	out := make([]domain.Record, 0, len(items))
	for _, it := range items {
		if m, ok := asMap(it); ok {
			out = append(out, domain.Record(m))
			continue
		}
		if s, ok := it.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, domain.Record{"name": strings.TrimSpace(s)})
		}
	}
	return out
}

// DecodeRecords decodes a JSON array of objects, keeping numbers as
// json.Number so large ids survive intact.
func DecodeRecords(data []byte) ([]domain.Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out []domain.Record
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// Registry is the guest registry indexed by booking id. Entries keep the
// order the hotel backend returned them in.
type Registry struct {
	entries   []domain.GuestRegistryEntry
	byBooking map[int64][]int
}

// NewRegistry parses raw registry records. A nil or empty input yields an
// empty, usable registry.
func NewRegistry(raw []domain.Record) *Registry {
	reg := &Registry{
		entries:   make([]domain.GuestRegistryEntry, 0, len(raw)),
		byBooking: make(map[int64][]int),
	}
	for _, r := range raw {
		e := parseRegistryEntry(r)
		if id, ok := e.BookingID.Get(); ok {
			reg.byBooking[id] = append(reg.byBooking[id], len(reg.entries))
		}
		reg.entries = append(reg.entries, e)
	}
	return reg
}

func parseRegistryEntry(r domain.Record) domain.GuestRegistryEntry {
	return domain.GuestRegistryEntry{
		ID:             GuestIDField.Resolve(r, ""),
		BookingID:      parseBookingID(GuestBookingIDField, r),
		Name:           GuestName.Resolve(r, Placeholder),
		Email:          Email.Resolve(r, ""),
		IsMainGuest:    optionalBool(r, "isMainGuest", "is_main_guest"),
		Nationality:    Nationality.Resolve(r, ""),
		IDType:         IDType.Resolve(r, ""),
		IDNumber:       IDNumber.Resolve(r, ""),
		Gender:         Gender.Resolve(r, ""),
		CurrentAddress: Address.Resolve(r, ""),
		CreatedAt:      CreatedAt.Resolve(r, ""),
	}
}

// Len returns the number of registry entries.
func (reg *Registry) Len() int {
	if reg == nil {
		return 0
	}
	return len(reg.entries)
}

// Entries returns a copy of every entry in registry order.
func (reg *Registry) Entries() []domain.GuestRegistryEntry {
	if reg == nil {
		return []domain.GuestRegistryEntry{}
	}
	out := make([]domain.GuestRegistryEntry, len(reg.entries))
	copy(out, reg.entries)
	return out
}

// ForBooking returns the entries recorded for one booking.
// A booking without a real id has no registry entries.
func (reg *Registry) ForBooking(id domain.BookingID) []domain.GuestRegistryEntry {
	v, ok := id.Get()
	if reg == nil || !ok {
		return nil
	}
	idx := reg.byBooking[v]
	out := make([]domain.GuestRegistryEntry, 0, len(idx))
	for _, i := range idx {
		out = append(out, reg.entries[i])
	}
	return out
}

// MainGuestName picks the registry's main guest for a booking: the entry
// flagged as main guest, otherwise the first entry. Placeholder names do not
// count.
func MainGuestName(entries []domain.GuestRegistryEntry) (string, bool) {
	if len(entries) == 0 {
		return "", false
	}
	main := entries[0]
	for _, e := range entries {
		if e.IsMainGuest != nil && *e.IsMainGuest {
			main = e
			break
		}
	}
	if main.Name == "" || main.Name == Placeholder {
		return "", false
	}
	return main.Name, true
}

// PreCheckInGuests builds the guest list shown before check-in: the main
// booker first, then every inline guest. Guests without an email inherit the
// booking's.
func PreCheckInGuests(b domain.Record, bookerName, bookingEmail string) []domain.GuestRef {
	inline := InlineGuests(b)
	out := make([]domain.GuestRef, 0, len(inline)+1)
	out = append(out, domain.GuestRef{
		Name:  bookerName,
		Role:  domain.GuestRoleMainBooker,
		Email: bookingEmail,
	})
	for i, g := range inline {
		role := domain.GuestRoleGuest
		if t, ok := GuestType.Lookup(g); ok {
			role = domain.GuestRoleGuest + " (" + t + ")"
		}
		out = append(out, domain.GuestRef{
			Name:        GuestName.Resolve(g, "Guest "+strconv.Itoa(i+1)),
			Role:        role,
			Email:       Email.Resolve(g, bookingEmail),
			Nationality: Nationality.Resolve(g, ""),
			IDNumber:    IDNumber.Resolve(g, ""),
		})
	}
	return out
}

// RegistryGuests converts registry entries into a displayed guest list.
// Entries without a resolvable name are dropped.
func RegistryGuests(entries []domain.GuestRegistryEntry, bookingEmail string) []domain.GuestRef {
	out := make([]domain.GuestRef, 0, len(entries))
	for _, e := range entries {
		if e.Name == "" || e.Name == Placeholder {
			continue
		}
		role := domain.GuestRoleGuest
		if e.IsMainGuest != nil && *e.IsMainGuest {
			role = domain.GuestRoleMainGuest
		}
		email := e.Email
		if email == "" {
			email = bookingEmail
		}
		out = append(out, domain.GuestRef{
			Name:        e.Name,
			Role:        role,
			Email:       email,
			Nationality: e.Nationality,
			IDNumber:    e.IDNumber,
		})
	}
	return out
}

// MergeGuestList picks the authoritative guest list for a booking. Once the
// booking is checked in the registry replaces the inline list entirely; an
// empty registry falls back to the pre-check-in list.
func MergeGuestList(b domain.Record, checkedIn bool, entries []domain.GuestRegistryEntry, bookerName, bookingEmail string) []domain.GuestRef {
	if checkedIn {
		if reg := RegistryGuests(entries, bookingEmail); len(reg) > 0 {
			return reg
		}
	}
	return PreCheckInGuests(b, bookerName, bookingEmail)
}
