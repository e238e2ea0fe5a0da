package holiday

import "time"

type HolidayType string

const (
	TypeFixed     HolidayType = "fixed"
	TypeRecurring HolidayType = "recurring"
)

func (t HolidayType) IsValid() bool {
	return t == TypeFixed || t == TypeRecurring
}

type Holiday struct {
	ID        string
	Name      string
	Date      time.Time // calendar day; only Year/Month/Day are meaningful
	Type      HolidayType
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsWeekend reports whether day falls on Saturday or Sunday.
func IsWeekend(day time.Time) bool {
	wd := day.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
