package redis

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/office"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/cache"
)

const officeActiveKey = "attendance:office:active"

type officeLocationCache struct {
	office.OfficeLocationRepository
	cache *cache.Cache
}

// NewOfficeLocationRepository caches the active office location in front of next.
// Cache failures fall back to next.
func NewOfficeLocationRepository(next office.OfficeLocationRepository, c *cache.Cache) office.OfficeLocationRepository {
	return &officeLocationCache{OfficeLocationRepository: next, cache: c}
}

func (r *officeLocationCache) GetActive(ctx context.Context) (office.OfficeLocation, error) {
	var loc office.OfficeLocation
	hit, err := r.cache.GetJSON(ctx, officeActiveKey, &loc)
	if err != nil {
		slog.WarnContext(ctx, "office location cache read failed", "error", err)
	}
	if hit {
		return loc, nil
	}

	loc, err = r.OfficeLocationRepository.GetActive(ctx)
	if err != nil {
		return office.OfficeLocation{}, err
	}
	if err := r.cache.SetJSON(ctx, officeActiveKey, loc); err != nil {
		slog.WarnContext(ctx, "office location cache write failed", "error", err)
	}
	return loc, nil
}

func (r *officeLocationCache) ReplaceActive(ctx context.Context, loc office.OfficeLocation) (office.OfficeLocation, error) {
	saved, err := r.OfficeLocationRepository.ReplaceActive(ctx, loc)
	if err != nil {
		return office.OfficeLocation{}, err
	}
	if err := r.cache.Delete(ctx, officeActiveKey); err != nil {
		slog.WarnContext(ctx, "office location cache invalidation failed", "error", err)
	}
	return saved, nil
}
