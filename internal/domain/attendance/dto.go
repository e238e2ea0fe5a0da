package attendance

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

const (
	ActionCheckIn  = "check_in"
	ActionCheckOut = "check_out"

	MessageCheckedOut = "Check-out successful"
)

const (
	DefaultHistoryLimit = 50
	MaxListRangeDays    = 93
)

type MarkAttendanceRequest struct {
	UserID    string   `json:"-"`
	UserName  string   `json:"-"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Accuracy  *float64 `json:"accuracy"`
	Source    string   `json:"source"`
	Timezone  string   `json:"timezone"`
}

func (r *MarkAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if r.Source == "" {
		r.Source = string(SourceMobile)
	}
	if !Source(r.Source).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "source",
			Message: "source must be one of: mobile, web",
		})
	}

	if r.Latitude != nil && !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.Accuracy != nil && *r.Accuracy < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "accuracy",
			Message: "accuracy must not be negative",
		})
	}

	if r.Timezone != "" && !validator.IsValidTimezone(r.Timezone) {
		errs = append(errs, validator.ValidationError{
			Field:   "timezone",
			Message: "timezone must be a valid IANA timezone",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// HasCoordinates reports whether both latitude and longitude were supplied.
func (r *MarkAttendanceRequest) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}

type CheckoutRequest struct {
	UserID   string `json:"-"`
	UserName string `json:"-"`
}

func (r *CheckoutRequest) Validate() error {
	if validator.IsEmpty(r.UserID) {
		return validator.ValidationErrors{{Field: "user_id", Message: "user_id is required"}}
	}
	return nil
}

type AdminUpdateRequest struct {
	ID         string  `json:"-"`
	EditorName string  `json:"-"`
	CheckIn    *string `json:"check_in"`
	CheckOut   *string `json:"check_out"`
	Status     *string `json:"status"`
}

func (r *AdminUpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.CheckIn != nil {
		if _, ok := validator.IsValidDateTime(*r.CheckIn); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in",
				Message: "check_in must be an RFC3339 timestamp",
			})
		}
	}

	if r.CheckOut != nil {
		if _, ok := validator.IsValidDateTime(*r.CheckOut); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out",
				Message: "check_out must be an RFC3339 timestamp",
			})
		}
	}

	if r.Status != nil && !Status(*r.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: present, late, absent, half_day",
		})
	}

	if r.CheckIn == nil && r.CheckOut == nil && r.Status == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "at least one of check_in, check_out, status is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type HistoryFilter struct {
	UserID    string
	StartDate *string
	EndDate   *string
	Limit     int
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	errs = validateRange(errs, f.StartDate, f.EndDate)

	if f.Limit <= 0 || f.Limit > DefaultHistoryLimit {
		f.Limit = DefaultHistoryLimit
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// AllUsers as a user filter means no user filter.
const AllUsers = "all"

type ListFilter struct {
	Date      *string
	StartDate *string
	EndDate   *string
	UserID    *string
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.UserID != nil && (*f.UserID == AllUsers || validator.IsEmpty(*f.UserID)) {
		f.UserID = nil
	}

	if f.Date != nil {
		if _, ok := validator.IsValidDate(*f.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
		if f.StartDate != nil || f.EndDate != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date cannot be combined with start_date/end_date",
			})
		}
	}

	errs = validateRange(errs, f.StartDate, f.EndDate)

	if f.StartDate != nil && f.EndDate != nil {
		start, okStart := validator.IsValidDate(*f.StartDate)
		end, okEnd := validator.IsValidDate(*f.EndDate)
		if okStart && okEnd && end.Sub(start) > MaxListRangeDays*24*time.Hour {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "date range must not exceed 93 days",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type StatsFilter struct {
	Date *string
}

func (f *StatsFilter) Validate() error {
	if f.Date != nil {
		if _, ok := validator.IsValidDate(*f.Date); !ok {
			return validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}}
		}
	}
	return nil
}

func validateRange(errs validator.ValidationErrors, startDate, endDate *string) validator.ValidationErrors {
	if (startDate == nil) != (endDate == nil) {
		return append(errs, validator.ValidationError{
			Field:   "date_range",
			Message: "start_date and end_date must be provided together",
		})
	}
	if startDate == nil {
		return errs
	}

	start, okStart := validator.IsValidDate(*startDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	end, okEnd := validator.IsValidDate(*endDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}
	return errs
}

type LocationResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type AttendanceResponse struct {
	ID           string            `json:"id"`
	UserID       string            `json:"user_id"`
	UserName     *string           `json:"user_name,omitempty"`
	UserEmail    *string           `json:"user_email,omitempty"`
	Department   *string           `json:"department,omitempty"`
	Date         string            `json:"date"`
	CheckIn      *string           `json:"check_in"`
	CheckOut     *string           `json:"check_out"`
	Status       Status            `json:"status"`
	Location     *LocationResponse `json:"location,omitempty"`
	WorkingHours float64           `json:"working_hours"`
	Source       *Source           `json:"source,omitempty"`
	IsSynthetic  bool              `json:"is_synthetic"`
	CreatedAt    *string           `json:"created_at,omitempty"`
	UpdatedAt    *string           `json:"updated_at,omitempty"`
}

type MarkAttendanceResponse struct {
	Action     string             `json:"action"`
	Attendance AttendanceResponse `json:"attendance"`
	Message    string             `json:"message"`
	IsLate     bool               `json:"is_late"`
}

type StatsResponse struct {
	Date         string  `json:"date"`
	TotalUsers   int     `json:"total_users"`
	PresentToday int     `json:"present_today"`
	LateToday    int     `json:"late_today"`
	AbsentToday  int     `json:"absent_today"`
	IsHoliday    bool    `json:"is_holiday"`
	IsWeekend    bool    `json:"is_weekend"`
	HolidayName  *string `json:"holiday_name,omitempty"`
	Message      string  `json:"message,omitempty"`
}
