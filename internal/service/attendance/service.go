package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/office"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/utils"
	"github.com/google/uuid"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	holiday.HolidayRepository
	office.OfficeLocationRepository
	user.UserRepository
	notifier notification.Notifier
	policy   attendance.Policy
	now      func() time.Time
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

// MarkAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MarkAttendance(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.MarkAttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.MarkAttendanceResponse{}, err
	}

	now := a.now()
	today := a.policy.Day(now)

	// 1. Holiday / weekend
	if err := a.checkWorkingDay(ctx, today); err != nil {
		return attendance.MarkAttendanceResponse{}, err
	}

	// 2. Working hours in the caller's timezone
	callerLoc, err := a.policy.ResolveTimezone(req.Timezone)
	if err != nil {
		return attendance.MarkAttendanceResponse{}, err
	}
	localClock := attendance.ClockOf(now, callerLoc)
	if !a.policy.InWindow(localClock) {
		return attendance.MarkAttendanceResponse{}, &attendance.TimeWindowError{
			Window:    a.policy.Window(),
			LocalTime: localClock.String(),
			Timezone:  callerLoc.String(),
		}
	}

	// 3. Source and coordinates
	source := attendance.Source(req.Source)
	if source == attendance.SourceMobile && !req.HasCoordinates() {
		return attendance.MarkAttendanceResponse{}, attendance.ErrMissingLocation
	}
	position := attendance.Location{}
	if req.HasCoordinates() {
		position = attendance.Location{Latitude: *req.Latitude, Longitude: *req.Longitude}
	}

	// 4. Re-entry on an existing record
	existing, err := a.AttendanceRepository.GetByUserAndDate(ctx, req.UserID, today)
	if err != nil {
		return attendance.MarkAttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if existing != nil && existing.CheckIn != nil {
		if existing.CheckOut != nil {
			return attendance.MarkAttendanceResponse{}, attendance.ErrAlreadyCompleted
		}

		saved, err := a.checkOut(ctx, *existing, now, req.UserName)
		if err != nil {
			return attendance.MarkAttendanceResponse{}, err
		}
		return attendance.MarkAttendanceResponse{
			Action:     attendance.ActionCheckOut,
			Attendance: mapAttendanceToResponse(saved),
			Message:    attendance.MessageCheckedOut,
			IsLate:     saved.Status == attendance.StatusLate,
		}, nil
	}

	// 5. Geofence
	if source == attendance.SourceMobile {
		if err := a.checkGeofence(ctx, position, req.Accuracy); err != nil {
			return attendance.MarkAttendanceResponse{}, err
		}
	}

	// 6. Status
	status := a.policy.StatusAt(now)

	// 7. Persist
	record := attendance.Attendance{UserID: req.UserID, Date: today}
	if existing != nil {
		record = *existing
	}
	record.CheckIn = &now
	record.Status = status
	record.Source = source
	record.Location = &position
	if a.policy.AutoCheckout {
		endOfDay := a.policy.EndOfDay(now, callerLoc)
		record.CheckOut = &endOfDay
	}

	var saved attendance.Attendance
	if existing != nil {
		saved, err = a.AttendanceRepository.Update(ctx, record)
	} else {
		saved, err = a.AttendanceRepository.Create(ctx, record)
	}
	if err != nil {
		if errors.Is(err, attendance.ErrDuplicateAttendance) {
			return attendance.MarkAttendanceResponse{}, err
		}
		return attendance.MarkAttendanceResponse{}, fmt.Errorf("failed to save attendance: %w", err)
	}

	message := a.policy.MarkMessage(status)
	slog.InfoContext(ctx, "attendance marked",
		"user_id", req.UserID, "attendance_id", saved.ID, "status", status, "source", source)

	// 8. Events
	a.notifier.Notify(ctx,
		notification.Event{
			Type:         notification.EventCheckIn,
			Audience:     notification.AudienceAdmin,
			UserID:       req.UserID,
			UserName:     displayName(req.UserName, req.UserID),
			AttendanceID: saved.ID,
			Status:       string(status),
			Source:       string(source),
			Message:      fmt.Sprintf("%s marked attendance (%s)", displayName(req.UserName, req.UserID), status),
			Timestamp:    now,
		},
		notification.Event{
			Type:         notification.EventCheckIn,
			Audience:     notification.AudienceUser,
			UserID:       req.UserID,
			AttendanceID: saved.ID,
			Status:       string(status),
			Message:      message,
			Timestamp:    now,
		},
	)

	return attendance.MarkAttendanceResponse{
		Action:     attendance.ActionCheckIn,
		Attendance: mapAttendanceToResponse(saved),
		Message:    message,
		IsLate:     status == attendance.StatusLate,
	}, nil
}

// Checkout implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Checkout(ctx context.Context, req attendance.CheckoutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := a.now()
	existing, err := a.AttendanceRepository.GetByUserAndDate(ctx, req.UserID, a.policy.Day(now))
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if existing == nil || existing.CheckIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if existing.CheckOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	saved, err := a.checkOut(ctx, *existing, now, req.UserName)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return mapAttendanceToResponse(saved), nil
}

// checkOut closes an open record. Status is left as set at check-in.
func (a *AttendanceServiceImpl) checkOut(ctx context.Context, record attendance.Attendance, now time.Time, userName string) (attendance.Attendance, error) {
	record.CheckOut = &now

	saved, err := a.AttendanceRepository.Update(ctx, record)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to check out: %w", err)
	}

	slog.InfoContext(ctx, "attendance checked out",
		"user_id", saved.UserID, "attendance_id", saved.ID, "working_hours", saved.WorkingHours)

	hours := saved.WorkingHours
	name := displayName(userName, saved.UserID)
	a.notifier.Notify(ctx,
		notification.Event{
			Type:         notification.EventCheckOut,
			Audience:     notification.AudienceAdmin,
			UserID:       saved.UserID,
			UserName:     name,
			AttendanceID: saved.ID,
			Status:       string(saved.Status),
			Source:       string(saved.Source),
			WorkingHours: &hours,
			Message:      fmt.Sprintf("%s checked out (%.2f hours)", name, hours),
			Timestamp:    now,
		},
		notification.Event{
			Type:         notification.EventCheckOut,
			Audience:     notification.AudienceUser,
			UserID:       saved.UserID,
			AttendanceID: saved.ID,
			WorkingHours: &hours,
			Message:      attendance.MessageCheckedOut,
			Timestamp:    now,
		},
	)

	return saved, nil
}

// AdminUpdate implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) AdminUpdate(ctx context.Context, req attendance.AdminUpdateRequest) (attendance.AttendanceResponse, error) {
	if attendance.IsSyntheticAbsenceID(req.ID) {
		return attendance.AttendanceResponse{}, attendance.ErrInvalidEditTarget
	}
	if _, err := uuid.Parse(req.ID); err != nil {
		return attendance.AttendanceResponse{}, attendance.ErrInvalidEditTarget
	}
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	// All supplied times are checked before anything is mutated.
	var checkIn, checkOut *time.Time
	if req.CheckIn != nil {
		t, err := a.parseEditTime("check_in", *req.CheckIn)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		checkIn = &t
	}
	if req.CheckOut != nil {
		t, err := a.parseEditTime("check_out", *req.CheckOut)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		checkOut = &t
	}

	record, err := a.AttendanceRepository.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if checkIn != nil {
		record.CheckIn = checkIn
	}
	if checkOut != nil {
		record.CheckOut = checkOut
	}
	if req.Status != nil {
		record.Status = attendance.Status(*req.Status)
	}
	record.RecomputeWorkingHours()

	saved, err := a.AttendanceRepository.Update(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	slog.InfoContext(ctx, "attendance edited by admin",
		"attendance_id", saved.ID, "user_id", saved.UserID, "status", saved.Status, "editor", req.EditorName)

	editor := displayName(req.EditorName, "admin")
	a.notifier.Notify(ctx, notification.Event{
		Type:         notification.EventAdminEdit,
		Audience:     notification.AudienceAdmin,
		UserID:       saved.UserID,
		AttendanceID: saved.ID,
		Status:       string(saved.Status),
		UpdatedBy:    editor,
		Message:      fmt.Sprintf("Attendance updated by %s", editor),
		Timestamp:    a.now(),
	})

	return mapAttendanceToResponse(saved), nil
}

// parseEditTime parses an RFC3339 timestamp and checks its office-local time of day.
func (a *AttendanceServiceImpl) parseEditTime(field, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, &attendance.EditTimeError{Field: field, Window: a.policy.Window()}
	}
	if !a.policy.InWindow(attendance.ClockOf(t, a.policy.Location)) {
		return time.Time{}, &attendance.EditTimeError{Field: field, Window: a.policy.Window()}
	}
	return t, nil
}

// checkWorkingDay rejects weekends and active holidays.
func (a *AttendanceServiceImpl) checkWorkingDay(ctx context.Context, day time.Time) error {
	closed, err := a.nonWorkingDay(ctx, day)
	if err != nil {
		return err
	}
	if closed != nil {
		return closed
	}
	return nil
}

// nonWorkingDay returns nil for a working day.
func (a *AttendanceServiceImpl) nonWorkingDay(ctx context.Context, day time.Time) (*attendance.NonWorkingDayError, error) {
	if holiday.IsWeekend(day) {
		return &attendance.NonWorkingDayError{Date: day, IsWeekend: true}, nil
	}

	found, err := a.HolidayRepository.GetActiveByDate(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("failed to check holiday: %w", err)
	}
	if found != nil {
		return &attendance.NonWorkingDayError{Date: day, HolidayName: found.Name}, nil
	}
	return nil, nil
}

func (a *AttendanceServiceImpl) checkGeofence(ctx context.Context, position attendance.Location, accuracy *float64) error {
	officeLocation, err := a.OfficeLocationRepository.GetActive(ctx)
	if err != nil {
		if errors.Is(err, office.ErrOfficeLocationNotFound) {
			return attendance.ErrOfficeNotConfigured
		}
		return fmt.Errorf("failed to get office location: %w", err)
	}

	distance := utils.CalculateHaversineDistance(
		position.Latitude, position.Longitude,
		officeLocation.Latitude, officeLocation.Longitude,
	)
	allowed, buffer := attendance.AdmissionRadius(officeLocation.RadiusMeters, accuracy)

	if distance > allowed {
		return &attendance.GeofenceError{
			Distance:       distance,
			AllowedRadius:  allowed,
			BaseRadius:     officeLocation.RadiusMeters,
			AccuracyBuffer: buffer,
		}
	}
	return nil
}

func displayName(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}

func NewAttendanceService(
	attendanceRepository attendance.AttendanceRepository,
	holidayRepository holiday.HolidayRepository,
	officeLocationRepository office.OfficeLocationRepository,
	userRepository user.UserRepository,
	notifier notification.Notifier,
	policy attendance.Policy,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository:     attendanceRepository,
		HolidayRepository:        holidayRepository,
		OfficeLocationRepository: officeLocationRepository,
		UserRepository:           userRepository,
		notifier:                 notifier,
		policy:                   policy,
		now:                      time.Now,
	}
}
