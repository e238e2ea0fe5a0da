package attendance

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Attendance domain errors
var (
	// Admission errors
	ErrNonWorkingDay       = errors.New("attendance cannot be marked on a non-working day")
	ErrOutsideTimeWindow   = errors.New("attendance can only be marked within working hours")
	ErrMissingLocation     = errors.New("location is required for mobile attendance")
	ErrOutsideGeofence     = errors.New("you are outside the office location")
	ErrOfficeNotConfigured = errors.New("office location not configured")

	// Lifecycle errors
	ErrAlreadyCompleted  = errors.New("attendance already completed for today")
	ErrNotCheckedIn      = errors.New("you have not checked in today")
	ErrAlreadyCheckedOut = errors.New("you have already checked out today")

	// Admin edit errors
	ErrInvalidEditTarget = errors.New("cannot edit auto-generated absent records, the user must mark attendance first")
	ErrInvalidEditTime   = errors.New("times must be within working hours")

	// General errors
	ErrAttendanceNotFound  = errors.New("attendance record not found")
	ErrDuplicateAttendance = errors.New("attendance for this user and date already exists")
)

// NonWorkingDayError carries why the day is closed.
type NonWorkingDayError struct {
	Date        time.Time
	IsWeekend   bool
	HolidayName string
}

func (e *NonWorkingDayError) Error() string {
	if e.HolidayName != "" {
		return fmt.Sprintf("cannot mark attendance on holiday: %s", e.HolidayName)
	}
	return "cannot mark attendance on weekends"
}

func (e *NonWorkingDayError) Unwrap() error { return ErrNonWorkingDay }

func (e *NonWorkingDayError) Details() map[string]string {
	d := map[string]string{
		"date":       DateKey(e.Date),
		"is_weekend": strconv.FormatBool(e.IsWeekend),
		"is_holiday": strconv.FormatBool(e.HolidayName != ""),
	}
	if e.HolidayName != "" {
		d["holiday_name"] = e.HolidayName
	}
	return d
}

// TimeWindowError reports the caller's resolved local time against the window.
type TimeWindowError struct {
	Window    string
	LocalTime string
	Timezone  string
}

func (e *TimeWindowError) Error() string {
	return fmt.Sprintf("attendance can only be marked between %s, current time is %s", e.Window, e.LocalTime)
}

func (e *TimeWindowError) Unwrap() error { return ErrOutsideTimeWindow }

func (e *TimeWindowError) Details() map[string]string {
	return map[string]string{
		"window":     e.Window,
		"local_time": e.LocalTime,
		"timezone":   e.Timezone,
	}
}

// GeofenceError carries the measured distance and the radius it was compared to.
type GeofenceError struct {
	Distance       float64
	AllowedRadius  float64
	BaseRadius     float64
	AccuracyBuffer float64
}

func (e *GeofenceError) Error() string {
	return fmt.Sprintf("you are %.0fm from the office, allowed radius is %.0fm", e.Distance, e.AllowedRadius)
}

func (e *GeofenceError) Unwrap() error { return ErrOutsideGeofence }

func (e *GeofenceError) Details() map[string]string {
	return map[string]string{
		"distance":        strconv.FormatFloat(e.Distance, 'f', 0, 64),
		"allowed_radius":  strconv.FormatFloat(e.AllowedRadius, 'f', 0, 64),
		"base_radius":     strconv.FormatFloat(e.BaseRadius, 'f', 0, 64),
		"accuracy_buffer": strconv.FormatFloat(e.AccuracyBuffer, 'f', 0, 64),
	}
}

// EditTimeError names the field whose time of day falls outside working hours.
type EditTimeError struct {
	Field  string
	Window string
}

func (e *EditTimeError) Error() string {
	return fmt.Sprintf("%s must be between %s", e.Field, e.Window)
}

func (e *EditTimeError) Unwrap() error { return ErrInvalidEditTime }

func (e *EditTimeError) Details() map[string]string {
	return map[string]string{e.Field: e.Error()}
}
