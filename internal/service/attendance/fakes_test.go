package attendance

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/office"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/google/uuid"
)

type fakeAttendanceRepo struct {
	records   map[string]attendance.Attendance
	createErr error
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Attendance)}
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	if f.createErr != nil {
		return attendance.Attendance{}, f.createErr
	}
	for _, r := range f.records {
		if r.UserID == a.UserID && attendance.DateKey(r.Date) == attendance.DateKey(a.Date) {
			return attendance.Attendance{}, attendance.ErrDuplicateAttendance
		}
	}
	a.ID = uuid.NewString()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	a.RecomputeWorkingHours()
	f.records[a.ID] = a
	return a, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	if _, ok := f.records[a.ID]; !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	a.UpdatedAt = time.Now()
	a.RecomputeWorkingHours()
	f.records[a.ID] = a
	return a, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	r, ok := f.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return r, nil
}

func (f *fakeAttendanceRepo) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Attendance, error) {
	for _, r := range f.records {
		if r.UserID == userID && attendance.DateKey(r.Date) == attendance.DateKey(date) {
			found := r
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) ListByUser(ctx context.Context, userID string, start, end *time.Time, limit int) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, r := range f.records {
		if r.UserID != userID {
			continue
		}
		key := attendance.DateKey(r.Date)
		if start != nil && key < attendance.DateKey(*start) {
			continue
		}
		if end != nil && key > attendance.DateKey(*end) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return attendance.DateKey(out[i].Date) > attendance.DateKey(out[j].Date)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListByDateRange(ctx context.Context, start, end time.Time, userID *string) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, r := range f.records {
		key := attendance.DateKey(r.Date)
		if key < attendance.DateKey(start) || key > attendance.DateKey(end) {
			continue
		}
		if userID != nil && r.UserID != *userID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeAttendanceRepo) CountByStatus(ctx context.Context, date time.Time) (map[attendance.Status]int, error) {
	counts := make(map[attendance.Status]int)
	for _, r := range f.records {
		if attendance.DateKey(r.Date) == attendance.DateKey(date) {
			counts[r.Status]++
		}
	}
	return counts, nil
}

type fakeHolidayRepo struct {
	byDate map[string]holiday.Holiday
}

func (f *fakeHolidayRepo) ListActive(ctx context.Context) ([]holiday.Holiday, error) {
	var out []holiday.Holiday
	for _, h := range f.byDate {
		out = append(out, h)
	}
	return out, nil
}

func (f *fakeHolidayRepo) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	h.ID = uuid.NewString()
	h.IsActive = true
	f.byDate[attendance.DateKey(h.Date)] = h
	return h, nil
}

func (f *fakeHolidayRepo) Delete(ctx context.Context, id string) error {
	for k, h := range f.byDate {
		if h.ID == id {
			delete(f.byDate, k)
			return nil
		}
	}
	return holiday.ErrHolidayNotFound
}

func (f *fakeHolidayRepo) GetActiveByDate(ctx context.Context, date time.Time) (*holiday.Holiday, error) {
	h, ok := f.byDate[attendance.DateKey(date)]
	if !ok || !h.IsActive {
		return nil, nil
	}
	return &h, nil
}

type fakeOfficeRepo struct {
	active *office.OfficeLocation
}

func (f *fakeOfficeRepo) GetActive(ctx context.Context) (office.OfficeLocation, error) {
	if f.active == nil {
		return office.OfficeLocation{}, office.ErrOfficeLocationNotFound
	}
	return *f.active, nil
}

func (f *fakeOfficeRepo) ReplaceActive(ctx context.Context, loc office.OfficeLocation) (office.OfficeLocation, error) {
	loc.ID = uuid.NewString()
	loc.IsActive = true
	f.active = &loc
	return loc, nil
}

type fakeUserRepo struct {
	users []user.User
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) ListActive(ctx context.Context, userID *string) ([]user.User, error) {
	var out []user.User
	for _, u := range f.users {
		if !u.IsActive {
			continue
		}
		if userID != nil && u.ID != *userID {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) CountActive(ctx context.Context) (int, error) {
	n := 0
	for _, u := range f.users {
		if u.IsActive {
			n++
		}
	}
	return n, nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []notification.Event
}

func (r *recordingNotifier) Notify(ctx context.Context, events ...notification.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, events...)
}

func (r *recordingNotifier) Events() []notification.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notification.Event(nil), r.events...)
}
