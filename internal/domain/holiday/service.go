package holiday

import "context"

type HolidayService interface {
	ListHolidays(ctx context.Context) ([]HolidayResponse, error)
	CreateHoliday(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	DeleteHoliday(ctx context.Context, id string) error
	// CheckDate reports whether a YYYY-MM-DD date is a holiday or weekend.
	CheckDate(ctx context.Context, date string) (CheckHolidayResponse, error)
}
