package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/office"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type officeLocationRepository struct {
	db *database.DB
}

// GetActive implements office.OfficeLocationRepository.
func (o *officeLocationRepository) GetActive(ctx context.Context) (office.OfficeLocation, error) {
	q := GetQuerier(ctx, o.db)

	query := `
		SELECT id, latitude, longitude, radius, address, is_active, created_at, updated_at
		FROM office_locations
		WHERE is_active = TRUE
		LIMIT 1
	`

	var loc office.OfficeLocation
	err := q.QueryRow(ctx, query).Scan(
		&loc.ID, &loc.Latitude, &loc.Longitude, &loc.RadiusMeters, &loc.Address,
		&loc.IsActive, &loc.CreatedAt, &loc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return office.OfficeLocation{}, office.ErrOfficeLocationNotFound
		}
		return office.OfficeLocation{}, fmt.Errorf("failed to get office location: %w", err)
	}

	return loc, nil
}

// ReplaceActive implements office.OfficeLocationRepository.
func (o *officeLocationRepository) ReplaceActive(ctx context.Context, loc office.OfficeLocation) (office.OfficeLocation, error) {
	err := WithTransaction(ctx, o.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, o.db)

		if _, err := q.Exec(ctx, `UPDATE office_locations SET is_active = FALSE, updated_at = NOW() WHERE is_active = TRUE`); err != nil {
			return fmt.Errorf("failed to deactivate office locations: %w", err)
		}

		query := `
			INSERT INTO office_locations (latitude, longitude, radius, address, is_active)
			VALUES ($1, $2, $3, $4, TRUE)
			RETURNING id, is_active, created_at, updated_at
		`
		return q.QueryRow(ctx, query, loc.Latitude, loc.Longitude, loc.RadiusMeters, loc.Address).
			Scan(&loc.ID, &loc.IsActive, &loc.CreatedAt, &loc.UpdatedAt)
	})
	if err != nil {
		return office.OfficeLocation{}, fmt.Errorf("failed to set office location: %w", err)
	}

	return loc, nil
}

func NewOfficeLocationRepository(db *database.DB) office.OfficeLocationRepository {
	return &officeLocationRepository{db: db}
}
