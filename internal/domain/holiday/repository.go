package holiday

import (
	"context"
	"time"
)

type HolidayRepository interface {
	// ListActive returns active holidays ordered by date.
	ListActive(ctx context.Context) ([]Holiday, error)
	Create(ctx context.Context, holiday Holiday) (Holiday, error)
	Delete(ctx context.Context, id string) error
	// GetActiveByDate returns nil when the day is not a holiday.
	GetActiveByDate(ctx context.Context, date time.Time) (*Holiday, error)
}
