package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
)

// GetToday implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetToday(ctx context.Context, userID string) (attendance.AttendanceResponse, error) {
	record, err := a.AttendanceRepository.GetByUserAndDate(ctx, userID, a.policy.Day(a.now()))
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if record == nil {
		return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
	}
	return mapAttendanceToResponse(*record), nil
}

// GetHistory implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetHistory(ctx context.Context, filter attendance.HistoryFilter) ([]attendance.AttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var start, end *time.Time
	if filter.StartDate != nil && filter.EndDate != nil {
		s, err := a.parseDay(*filter.StartDate)
		if err != nil {
			return nil, err
		}
		e, err := a.parseDay(*filter.EndDate)
		if err != nil {
			return nil, err
		}
		start, end = &s, &e
	}

	records, err := a.AttendanceRepository.ListByUser(ctx, filter.UserID, start, end, filter.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance history: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, mapAttendanceToResponse(r))
	}
	return responses, nil
}

// ListAll implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAll(ctx context.Context, filter attendance.ListFilter) ([]attendance.AttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	start, end, err := a.resolveRange(filter)
	if err != nil {
		return nil, err
	}

	users, err := a.UserRepository.ListActive(ctx, filter.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	records, err := a.AttendanceRepository.ListByDateRange(ctx, start, end, filter.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	var days []time.Time
	closed := make(map[string]bool)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
		nonWorking, err := a.nonWorkingDay(ctx, day)
		if err != nil {
			return nil, err
		}
		closed[attendance.DateKey(day)] = nonWorking != nil
	}

	entries := composeEntries(days, users, records, closed)

	responses := make([]attendance.AttendanceResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, mapEntryToResponse(e))
	}
	return responses, nil
}

// composeEntries pairs every day with every active user: the stored record
// when there is one, otherwise an absence unless the day is closed. Records
// of users outside the active list are not reported.
func composeEntries(days []time.Time, users []user.User, records []attendance.Attendance, closed map[string]bool) []attendance.Entry {
	byDay := make(map[string]map[string]attendance.Attendance)
	for _, r := range records {
		key := attendance.DateKey(r.Date)
		if byDay[key] == nil {
			byDay[key] = make(map[string]attendance.Attendance)
		}
		byDay[key][r.UserID] = r
	}

	entries := make([]attendance.Entry, 0, len(days)*len(users))
	for _, day := range days {
		key := attendance.DateKey(day)
		for _, u := range users {
			if r, ok := byDay[key][u.ID]; ok {
				entries = append(entries, attendance.PersistedEntry(r, u))
				continue
			}
			if !closed[key] {
				entries = append(entries, attendance.SyntheticAbsenceEntry(u, day))
			}
		}
	}
	return entries
}

// GetStats implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetStats(ctx context.Context, filter attendance.StatsFilter) (attendance.StatsResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.StatsResponse{}, err
	}

	day := a.policy.Day(a.now())
	if filter.Date != nil {
		d, err := a.parseDay(*filter.Date)
		if err != nil {
			return attendance.StatsResponse{}, err
		}
		day = d
	}

	total, err := a.UserRepository.CountActive(ctx)
	if err != nil {
		return attendance.StatsResponse{}, fmt.Errorf("failed to count users: %w", err)
	}

	stats := attendance.StatsResponse{
		Date:       attendance.DateKey(day),
		TotalUsers: total,
	}

	closed, err := a.nonWorkingDay(ctx, day)
	if err != nil {
		return attendance.StatsResponse{}, err
	}
	if closed != nil {
		stats.IsWeekend = closed.IsWeekend
		stats.IsHoliday = closed.HolidayName != ""
		if stats.IsHoliday {
			stats.HolidayName = &closed.HolidayName
			stats.Message = fmt.Sprintf("Today is a holiday: %s", closed.HolidayName)
		} else {
			stats.Message = "Today is weekend"
		}
		return stats, nil
	}

	counts, err := a.AttendanceRepository.CountByStatus(ctx, day)
	if err != nil {
		return attendance.StatsResponse{}, fmt.Errorf("failed to count attendance: %w", err)
	}

	stats.PresentToday = counts[attendance.StatusPresent]
	stats.LateToday = counts[attendance.StatusLate]
	stats.AbsentToday = max(total-stats.PresentToday-stats.LateToday, 0)
	return stats, nil
}

func (a *AttendanceServiceImpl) parseDay(value string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", value, a.policy.Location)
}

// resolveRange turns a filter into an inclusive [start, end] of office days.
func (a *AttendanceServiceImpl) resolveRange(filter attendance.ListFilter) (time.Time, time.Time, error) {
	switch {
	case filter.Date != nil:
		d, err := a.parseDay(*filter.Date)
		return d, d, err
	case filter.StartDate != nil && filter.EndDate != nil:
		start, err := a.parseDay(*filter.StartDate)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end, err := a.parseDay(*filter.EndDate)
		return start, end, err
	default:
		today := a.policy.Day(a.now())
		return today, today, nil
	}
}

func mapAttendanceToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	var location *attendance.LocationResponse
	if att.Location != nil {
		location = &attendance.LocationResponse{
			Latitude:  att.Location.Latitude,
			Longitude: att.Location.Longitude,
		}
	}

	var source *attendance.Source
	if att.Source != "" {
		s := att.Source
		source = &s
	}

	return attendance.AttendanceResponse{
		ID:           att.ID,
		UserID:       att.UserID,
		UserName:     att.UserName,
		UserEmail:    att.UserEmail,
		Department:   att.UserDepartment,
		Date:         attendance.DateKey(att.Date),
		CheckIn:      timePtrToString(att.CheckIn),
		CheckOut:     timePtrToString(att.CheckOut),
		Status:       att.Status,
		Location:     location,
		WorkingHours: att.WorkingHours,
		Source:       source,
		CreatedAt:    timePtrToString(&att.CreatedAt),
		UpdatedAt:    timePtrToString(&att.UpdatedAt),
	}
}

func mapEntryToResponse(e attendance.Entry) attendance.AttendanceResponse {
	if e.Kind == attendance.EntryPersisted && e.Record != nil {
		resp := mapAttendanceToResponse(*e.Record)
		resp.UserName = &e.User.Name
		resp.UserEmail = &e.User.Email
		resp.Department = e.User.Department
		return resp
	}

	return attendance.AttendanceResponse{
		ID:          e.ID(),
		UserID:      e.User.ID,
		UserName:    &e.User.Name,
		UserEmail:   &e.User.Email,
		Department:  e.User.Department,
		Date:        attendance.DateKey(e.Date),
		Status:      attendance.StatusAbsent,
		IsSynthetic: true,
	}
}
