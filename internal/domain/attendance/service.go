package attendance

import "context"

type AttendanceService interface {
	// MarkAttendance checks the caller in, or checks them out when an open
	// record already exists for today.
	MarkAttendance(ctx context.Context, req MarkAttendanceRequest) (MarkAttendanceResponse, error)
	Checkout(ctx context.Context, req CheckoutRequest) (AttendanceResponse, error)
	AdminUpdate(ctx context.Context, req AdminUpdateRequest) (AttendanceResponse, error)

	GetToday(ctx context.Context, userID string) (AttendanceResponse, error)
	GetHistory(ctx context.Context, filter HistoryFilter) ([]AttendanceResponse, error)
	ListAll(ctx context.Context, filter ListFilter) ([]AttendanceResponse, error)
	GetStats(ctx context.Context, filter StatsFilter) (StatsResponse, error)
}
