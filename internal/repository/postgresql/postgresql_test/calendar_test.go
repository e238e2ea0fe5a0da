package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/office"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolidayRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewHolidayRepository(setup.DB)
	ctx := context.Background()

	day := time.Date(2025, 1, 26, 0, 0, 0, 0, time.UTC)
	created, err := repo.Create(ctx, holiday.Holiday{Name: "Republic Day", Date: day, Type: holiday.TypeFixed, IsActive: true})
	require.NoError(t, err)

	_, err = repo.Create(ctx, holiday.Holiday{Name: "Again", Date: day, Type: holiday.TypeFixed, IsActive: true})
	assert.ErrorIs(t, err, holiday.ErrHolidayDateExists)

	found, err := repo.GetActiveByDate(ctx, day)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Republic Day", found.Name)

	list, err := repo.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), holiday.ErrHolidayNotFound)

	none, err := repo.GetActiveByDate(ctx, day)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestOfficeLocationRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewOfficeLocationRepository(setup.DB)
	ctx := context.Background()

	_, err := repo.GetActive(ctx)
	assert.ErrorIs(t, err, office.ErrOfficeLocationNotFound)

	_, err = repo.ReplaceActive(ctx, office.OfficeLocation{Latitude: 12.97, Longitude: 77.59, RadiusMeters: 100, Address: "Old"})
	require.NoError(t, err)
	second, err := repo.ReplaceActive(ctx, office.OfficeLocation{Latitude: 12.98, Longitude: 77.60, RadiusMeters: 150, Address: "New"})
	require.NoError(t, err)

	active, err := repo.GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)
	assert.Equal(t, 150.0, active.RadiusMeters)

	var activeCount int
	require.NoError(t, setup.DB.QueryRow(ctx, `SELECT COUNT(*) FROM office_locations WHERE is_active`).Scan(&activeCount))
	assert.Equal(t, 1, activeCount)
}

func TestUserRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewUserRepository(setup.DB)
	ctx := context.Background()

	activeID := setup.CreateUser(t, "Asha", "asha@example.com", true)
	setup.CreateUser(t, "Gone", "gone@example.com", false)

	count, err := repo.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	users, err := repo.ListActive(ctx, nil)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, activeID, users[0].ID)

	filtered, err := repo.ListActive(ctx, &activeID)
	require.NoError(t, err)
	assert.Len(t, filtered, 1)

	u, err := repo.GetByID(ctx, activeID)
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", u.Email)
}
