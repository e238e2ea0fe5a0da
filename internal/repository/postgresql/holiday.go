package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type holidayRepository struct {
	db *database.DB
}

// ListActive implements holiday.HolidayRepository.
func (h *holidayRepository) ListActive(ctx context.Context) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, h.db)

	query := `
		SELECT id, name, date, type, is_active, created_at, updated_at
		FROM holidays
		WHERE is_active = TRUE
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		var hd holiday.Holiday
		if err := rows.Scan(&hd.ID, &hd.Name, &hd.Date, &hd.Type, &hd.IsActive, &hd.CreatedAt, &hd.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, hd)
	}

	return holidays, rows.Err()
}

// Create implements holiday.HolidayRepository.
func (h *holidayRepository) Create(ctx context.Context, newHoliday holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, h.db)

	query := `
		INSERT INTO holidays (name, date, type, is_active)
		VALUES ($1, $2::date, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newHoliday.Name,
		newHoliday.Date.Format("2006-01-02"),
		newHoliday.Type,
		newHoliday.IsActive,
	).Scan(&newHoliday.ID, &newHoliday.CreatedAt, &newHoliday.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return holiday.Holiday{}, holiday.ErrHolidayDateExists
		}
		return holiday.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	return newHoliday, nil
}

// Delete implements holiday.HolidayRepository.
func (h *holidayRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, h.db)

	tag, err := q.Exec(ctx, `DELETE FROM holidays WHERE id::text = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}
	return nil
}

// GetActiveByDate implements holiday.HolidayRepository.
func (h *holidayRepository) GetActiveByDate(ctx context.Context, date time.Time) (*holiday.Holiday, error) {
	q := GetQuerier(ctx, h.db)

	query := `
		SELECT id, name, date, type, is_active, created_at, updated_at
		FROM holidays
		WHERE date = $1::date
		  AND is_active = TRUE
	`

	var hd holiday.Holiday
	err := q.QueryRow(ctx, query, date.Format("2006-01-02")).Scan(
		&hd.ID, &hd.Name, &hd.Date, &hd.Type, &hd.IsActive, &hd.CreatedAt, &hd.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get holiday by date: %w", err)
	}

	return &hd, nil
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepository{db: db}
}
