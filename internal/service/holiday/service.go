package holiday

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type HolidayServiceImpl struct {
	holiday.HolidayRepository
	location *time.Location
}

// NewHolidayService creates a holiday service. Dates are interpreted in loc.
func NewHolidayService(holidayRepository holiday.HolidayRepository, loc *time.Location) holiday.HolidayService {
	return &HolidayServiceImpl{
		HolidayRepository: holidayRepository,
		location:          loc,
	}
}

// ListHolidays implements holiday.HolidayService.
func (h *HolidayServiceImpl) ListHolidays(ctx context.Context) ([]holiday.HolidayResponse, error) {
	holidays, err := h.HolidayRepository.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	responses := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, hd := range holidays {
		responses = append(responses, mapHolidayToResponse(hd))
	}
	return responses, nil
}

// CreateHoliday implements holiday.HolidayService.
func (h *HolidayServiceImpl) CreateHoliday(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, h.location)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	created, err := h.HolidayRepository.Create(ctx, holiday.Holiday{
		Name:     req.Name,
		Date:     date,
		Type:     holiday.HolidayType(req.Type),
		IsActive: true,
	})
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	return mapHolidayToResponse(created), nil
}

// DeleteHoliday implements holiday.HolidayService.
func (h *HolidayServiceImpl) DeleteHoliday(ctx context.Context, id string) error {
	if validator.IsEmpty(id) {
		return holiday.ErrHolidayNotFound
	}
	return h.HolidayRepository.Delete(ctx, id)
}

// CheckDate implements holiday.HolidayService.
func (h *HolidayServiceImpl) CheckDate(ctx context.Context, date string) (holiday.CheckHolidayResponse, error) {
	day, err := time.ParseInLocation("2006-01-02", date, h.location)
	if err != nil {
		return holiday.CheckHolidayResponse{}, validator.ValidationErrors{
			{Field: "date", Message: "date must be in YYYY-MM-DD format"},
		}
	}

	found, err := h.HolidayRepository.GetActiveByDate(ctx, day)
	if err != nil {
		return holiday.CheckHolidayResponse{}, fmt.Errorf("failed to check holiday: %w", err)
	}

	weekend := holiday.IsWeekend(day)
	resp := holiday.CheckHolidayResponse{
		Date:      date,
		IsHoliday: found != nil || weekend,
		IsWeekend: weekend,
	}

	switch {
	case found != nil:
		resp.HolidayName = &found.Name
	case weekend:
		name := "Weekend"
		resp.HolidayName = &name
	}

	return resp, nil
}

func mapHolidayToResponse(hd holiday.Holiday) holiday.HolidayResponse {
	return holiday.HolidayResponse{
		ID:        hd.ID,
		Name:      hd.Name,
		Date:      hd.Date.Format("2006-01-02"),
		Type:      hd.Type,
		IsActive:  hd.IsActive,
		CreatedAt: hd.CreatedAt.Format(time.RFC3339),
	}
}
