package holiday

import (
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type CreateHolidayRequest struct {
	Name string `json:"name"`
	Date string `json:"date"`
	Type string `json:"type"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if r.Type == "" {
		r.Type = string(TypeFixed)
	}
	if !HolidayType(r.Type).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: fixed, recurring",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type HolidayResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Date      string      `json:"date"`
	Type      HolidayType `json:"type"`
	IsActive  bool        `json:"is_active"`
	CreatedAt string      `json:"created_at"`
}

type CheckHolidayResponse struct {
	Date        string  `json:"date"`
	IsHoliday   bool    `json:"is_holiday"`
	HolidayName *string `json:"holiday_name"`
	IsWeekend   bool    `json:"is_weekend"`
}
