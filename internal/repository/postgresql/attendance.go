package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

const attendanceColumns = `
	a.id, a.user_id, a.date, a.check_in, a.check_out, a.status,
	a.latitude, a.longitude, a.working_hours, a.source,
	a.created_at, a.updated_at,
	u.name, u.email, u.department
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var (
		att       attendance.Attendance
		latitude  *float64
		longitude *float64
	)

	err := row.Scan(
		&att.ID, &att.UserID, &att.Date, &att.CheckIn, &att.CheckOut, &att.Status,
		&latitude, &longitude, &att.WorkingHours, &att.Source,
		&att.CreatedAt, &att.UpdatedAt,
		&att.UserName, &att.UserEmail, &att.UserDepartment,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}

	if latitude != nil && longitude != nil {
		att.Location = &attendance.Location{Latitude: *latitude, Longitude: *longitude}
	}
	return att, nil
}

func collectAttendances(rows pgx.Rows) ([]attendance.Attendance, error) {
	defer rows.Close()

	var result []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		result = append(result, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}
	return result, nil
}

func locationArgs(loc *attendance.Location) (*float64, *float64) {
	if loc == nil {
		return nil, nil
	}
	return &loc.Latitude, &loc.Longitude
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	newAttendance.RecomputeWorkingHours()
	latitude, longitude := locationArgs(newAttendance.Location)

	query := `
		INSERT INTO attendances (
			user_id, date, check_in, check_out, status,
			latitude, longitude, working_hours, source
		) VALUES (
			$1, $2::date, $3, $4, $5, $6, $7, $8, $9
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newAttendance.UserID,
		attendance.DateKey(newAttendance.Date),
		newAttendance.CheckIn,
		newAttendance.CheckOut,
		newAttendance.Status,
		latitude,
		longitude,
		newAttendance.WorkingHours,
		newAttendance.Source,
	).Scan(&newAttendance.ID, &newAttendance.CreatedAt, &newAttendance.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return attendance.Attendance{}, attendance.ErrDuplicateAttendance
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return newAttendance, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	att.RecomputeWorkingHours()
	latitude, longitude := locationArgs(att.Location)

	query := `
		UPDATE attendances SET
			check_in = $2,
			check_out = $3,
			status = $4,
			latitude = $5,
			longitude = $6,
			working_hours = $7,
			source = $8,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		att.ID,
		att.CheckIn,
		att.CheckOut,
		att.Status,
		latitude,
		longitude,
		att.WorkingHours,
		att.Source,
	).Scan(&att.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return att, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendances a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE a.id = $1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return att, nil
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendances a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE a.user_id = $1
		  AND a.date = $2::date
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, userID, attendance.DateKey(date)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by date: %w", err)
	}

	return &att, nil
}

// ListByUser implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByUser(ctx context.Context, userID string, start, end *time.Time, limit int) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	var startKey, endKey *string
	if start != nil && end != nil {
		s, e := attendance.DateKey(*start), attendance.DateKey(*end)
		startKey, endKey = &s, &e
	}

	query := `SELECT ` + attendanceColumns + `
		FROM attendances a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE a.user_id = $1
		  AND ($2::date IS NULL OR a.date >= $2::date)
		  AND ($3::date IS NULL OR a.date <= $3::date)
		ORDER BY a.date DESC
		LIMIT $4
	`

	rows, err := q.Query(ctx, query, userID, startKey, endKey, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance history: %w", err)
	}

	return collectAttendances(rows)
}

// ListByDateRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByDateRange(ctx context.Context, start, end time.Time, userID *string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendances a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE a.date BETWEEN $1::date AND $2::date
		  AND ($3::text IS NULL OR a.user_id::text = $3::text)
		ORDER BY a.date DESC, a.check_in
	`

	rows, err := q.Query(ctx, query, attendance.DateKey(start), attendance.DateKey(end), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	return collectAttendances(rows)
}

// CountByStatus implements attendance.AttendanceRepository.
func (a *attendanceRepository) CountByStatus(ctx context.Context, date time.Time) (map[attendance.Status]int, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT status, COUNT(*)
		FROM attendances
		WHERE date = $1::date
		GROUP BY status
	`

	rows, err := q.Query(ctx, query, attendance.DateKey(date))
	if err != nil {
		return nil, fmt.Errorf("failed to count attendance: %w", err)
	}
	defer rows.Close()

	counts := make(map[attendance.Status]int)
	for rows.Next() {
		var (
			status attendance.Status
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan attendance count: %w", err)
		}
		counts[status] = count
	}

	return counts, rows.Err()
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}
