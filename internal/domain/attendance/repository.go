package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// Create inserts a record. A second record for the same user and day
	// fails with ErrDuplicateAttendance.
	Create(ctx context.Context, attendance Attendance) (Attendance, error)
	Update(ctx context.Context, attendance Attendance) (Attendance, error)
	GetByID(ctx context.Context, id string) (Attendance, error)
	// GetByUserAndDate returns nil when the user has no record for the day.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*Attendance, error)
	// ListByUser returns records newest first.
	ListByUser(ctx context.Context, userID string, start, end *time.Time, limit int) ([]Attendance, error)
	ListByDateRange(ctx context.Context, start, end time.Time, userID *string) ([]Attendance, error)
	CountByStatus(ctx context.Context, date time.Time) (map[Status]int, error)
}
