package attendance

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusAbsent  Status = "absent"
	StatusHalfDay Status = "half_day" // only ever set by an admin edit
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusLate, StatusAbsent, StatusHalfDay:
		return true
	}
	return false
}

type Source string

const (
	SourceMobile Source = "mobile"
	SourceWeb    Source = "web"
)

func (s Source) IsValid() bool {
	return s == SourceMobile || s == SourceWeb
}

type Location struct {
	Latitude  float64
	Longitude float64
}

// Attendance is the single record of one user for one calendar day.
type Attendance struct {
	ID           string
	UserID       string
	Date         time.Time // calendar day; only Year/Month/Day are meaningful
	CheckIn      *time.Time
	CheckOut     *time.Time
	Status       Status
	Location     *Location
	WorkingHours float64
	Source       Source
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO / Join
	UserName       *string
	UserEmail      *string
	UserDepartment *string
}

// RecomputeWorkingHours derives WorkingHours from the check-in/check-out pair.
// Repositories call it on every write so a stale value is never stored.
func (a *Attendance) RecomputeWorkingHours() {
	if a.CheckIn != nil && a.CheckOut != nil {
		a.WorkingHours = a.CheckOut.Sub(*a.CheckIn).Hours()
	}
}

// DateKey formats a calendar day the way records are keyed.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

const syntheticPrefix = "absent-"

// SyntheticAbsenceID builds the id of an absence that exists only in listings.
func SyntheticAbsenceID(userID string, date time.Time) string {
	return fmt.Sprintf("%s%s-%s", syntheticPrefix, userID, DateKey(date))
}

func IsSyntheticAbsenceID(id string) bool {
	return strings.HasPrefix(id, syntheticPrefix)
}

type EntryKind string

const (
	EntryPersisted        EntryKind = "persisted"
	EntrySyntheticAbsence EntryKind = "synthetic_absence"
)

// Entry is one row of the admin listing: either a stored record or an absence
// computed for a working day on which the user has no record.
type Entry struct {
	Kind   EntryKind
	Record *Attendance // set for EntryPersisted
	User   user.User
	Date   time.Time
}

func PersistedEntry(record Attendance, u user.User) Entry {
	return Entry{Kind: EntryPersisted, Record: &record, User: u, Date: record.Date}
}

func SyntheticAbsenceEntry(u user.User, date time.Time) Entry {
	return Entry{Kind: EntrySyntheticAbsence, User: u, Date: date}
}

func (e Entry) ID() string {
	if e.Kind == EntryPersisted && e.Record != nil {
		return e.Record.ID
	}
	return SyntheticAbsenceID(e.User.ID, e.Date)
}
