package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/office"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// detailer is implemented by domain errors that carry diagnostic fields.
type detailer interface {
	Details() map[string]string
}

func detailsOf(err error) map[string]string {
	var d detailer
	if errors.As(err, &d) {
		return d.Details()
	}
	return nil
}

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// Attendance admission errors
	case errors.Is(err, attendance.ErrNonWorkingDay):
		Error(w, http.StatusBadRequest, "NON_WORKING_DAY", err.Error(), detailsOf(err))
	case errors.Is(err, attendance.ErrOutsideTimeWindow):
		Error(w, http.StatusBadRequest, "OUTSIDE_TIME_WINDOW", err.Error(), detailsOf(err))
	case errors.Is(err, attendance.ErrMissingLocation):
		Error(w, http.StatusBadRequest, "MISSING_LOCATION", err.Error(), nil)
	case errors.Is(err, attendance.ErrOutsideGeofence):
		Error(w, http.StatusBadRequest, "OUTSIDE_GEOFENCE", err.Error(), detailsOf(err))
	case errors.Is(err, attendance.ErrOfficeNotConfigured):
		ServiceUnavailable(w, "OFFICE_NOT_CONFIGURED", "Office location not configured. Please contact admin.")

	// Attendance lifecycle errors
	case errors.Is(err, attendance.ErrAlreadyCompleted):
		Error(w, http.StatusConflict, "ALREADY_COMPLETED", err.Error(), nil)
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Error(w, http.StatusConflict, "ALREADY_CHECKED_OUT", err.Error(), nil)
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Error(w, http.StatusBadRequest, "NOT_CHECKED_IN", err.Error(), nil)
	case errors.Is(err, attendance.ErrDuplicateAttendance):
		Conflict(w, err.Error())

	// Admin edit errors
	case errors.Is(err, attendance.ErrInvalidEditTarget):
		Error(w, http.StatusBadRequest, "INVALID_EDIT_TARGET", err.Error(), nil)
	case errors.Is(err, attendance.ErrInvalidEditTime):
		Error(w, http.StatusBadRequest, "INVALID_EDIT_TIME", err.Error(), detailsOf(err))
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Calendar and location errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrHolidayDateExists):
		Conflict(w, "Holiday already exists for this date")
	case errors.Is(err, office.ErrOfficeLocationNotFound):
		NotFound(w, "No active office location found")

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
