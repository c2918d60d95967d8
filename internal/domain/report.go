package domain

import (
	"time"

	"github.com/google/uuid"
)

// RegistryRow is a single row of the R.R.4 guest registry report submitted
// to immigration. It is a flat, denormalized view: one row per registry
// entry, with booking fields (dates, rooms) repeated for every guest.
type RegistryRow struct {
	CheckInDate    string // "2006-01-02", "-" when unknown
	RoomNumber     string
	FullName       string
	Nationality    string
	IDNumber       string
	CurrentAddress string
	CheckOutDate   string // empty when unknown
	Remarks        string
}

// RegistryQuery filters the registry report. Range is applied only when both
// bounds parse and Start is not after End.
type RegistryQuery struct {
	Search string
	Range  DateRange
	Page   PageRequest
}

// ReportExport is the audit record written every time a registry report is
// exported. A zero RangeStart or RangeEnd means the export was not bounded
// on that side.
type ReportExport struct {
	ID          uuid.UUID
	GeneratedBy string
	RangeStart  time.Time
	RangeEnd    time.Time
	Search      string
	Format      string
	RowCount    int
	CreatedAt   time.Time
}
