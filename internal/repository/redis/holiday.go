package redis

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/cache"
)

const holidayKeyPrefix = "attendance:holiday:"

// holidayEntry caches misses too, so non-holiday days skip the database.
type holidayEntry struct {
	Found   bool             `json:"found"`
	Holiday *holiday.Holiday `json:"holiday,omitempty"`
}

type holidayCache struct {
	holiday.HolidayRepository
	cache *cache.Cache
}

func NewHolidayRepository(next holiday.HolidayRepository, c *cache.Cache) holiday.HolidayRepository {
	return &holidayCache{HolidayRepository: next, cache: c}
}

func holidayKey(date time.Time) string {
	return holidayKeyPrefix + attendance.DateKey(date)
}

func (r *holidayCache) GetActiveByDate(ctx context.Context, date time.Time) (*holiday.Holiday, error) {
	key := holidayKey(date)

	var entry holidayEntry
	hit, err := r.cache.GetJSON(ctx, key, &entry)
	if err != nil {
		slog.WarnContext(ctx, "holiday cache read failed", "key", key, "error", err)
	}
	if hit {
		if !entry.Found {
			return nil, nil
		}
		return entry.Holiday, nil
	}

	h, err := r.HolidayRepository.GetActiveByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if err := r.cache.SetJSON(ctx, key, holidayEntry{Found: h != nil, Holiday: h}); err != nil {
		slog.WarnContext(ctx, "holiday cache write failed", "key", key, "error", err)
	}
	return h, nil
}

func (r *holidayCache) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	created, err := r.HolidayRepository.Create(ctx, h)
	if err != nil {
		return holiday.Holiday{}, err
	}
	r.invalidate(ctx)
	return created, nil
}

func (r *holidayCache) Delete(ctx context.Context, id string) error {
	if err := r.HolidayRepository.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

// invalidate drops every cached day, including cached misses.
func (r *holidayCache) invalidate(ctx context.Context) {
	if err := r.cache.InvalidatePrefix(ctx, holidayKeyPrefix); err != nil {
		slog.WarnContext(ctx, "holiday cache invalidation failed", "error", err)
	}
}
