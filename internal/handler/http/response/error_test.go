package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/office"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHandleError_StatusAndCode(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", validator.ValidationErrors{{Field: "latitude", Message: "out of range"}}, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"non working day", &attendance.NonWorkingDayError{IsWeekend: true}, http.StatusBadRequest, "NON_WORKING_DAY"},
		{"time window", &attendance.TimeWindowError{Window: "09:00-17:00", LocalTime: "08:00"}, http.StatusBadRequest, "OUTSIDE_TIME_WINDOW"},
		{"missing location", attendance.ErrMissingLocation, http.StatusBadRequest, "MISSING_LOCATION"},
		{"geofence", &attendance.GeofenceError{Distance: 200, AllowedRadius: 150}, http.StatusBadRequest, "OUTSIDE_GEOFENCE"},
		{"office not configured", attendance.ErrOfficeNotConfigured, http.StatusServiceUnavailable, "OFFICE_NOT_CONFIGURED"},
		{"already completed", attendance.ErrAlreadyCompleted, http.StatusConflict, "ALREADY_COMPLETED"},
		{"already checked out", attendance.ErrAlreadyCheckedOut, http.StatusConflict, "ALREADY_CHECKED_OUT"},
		{"not checked in", attendance.ErrNotCheckedIn, http.StatusBadRequest, "NOT_CHECKED_IN"},
		{"invalid edit target", attendance.ErrInvalidEditTarget, http.StatusBadRequest, "INVALID_EDIT_TARGET"},
		{"invalid edit time", &attendance.EditTimeError{Field: "check_in", Window: "09:00-17:00"}, http.StatusBadRequest, "INVALID_EDIT_TIME"},
		{"attendance not found", attendance.ErrAttendanceNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"holiday exists", holiday.ErrHolidayDateExists, http.StatusConflict, "CONFLICT"},
		{"office missing", office.ErrOfficeLocationNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"admin required", user.ErrAdminPrivilegeRequired, http.StatusForbidden, "FORBIDDEN"},
		{"wrapped storage failure", fmt.Errorf("get attendance: %w", assert.AnError), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			resp := decode(t, rec)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestHandleError_GeofenceDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	err := fmt.Errorf("mark attendance: %w", &attendance.GeofenceError{Distance: 200.4, AllowedRadius: 150, BaseRadius: 100, AccuracyBuffer: 50})
	HandleError(rec, err)

	resp := decode(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "200", resp.Error.Details["distance"])
	assert.Equal(t, "150", resp.Error.Details["allowed_radius"])
	assert.Equal(t, "50", resp.Error.Details["accuracy_buffer"])
}
