package office

import (
	"math"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type SetOfficeLocationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Radius    *float64 `json:"radius"`
	Address   string   `json:"address"`
}

func (r *SetOfficeLocationRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Latitude == nil || !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude is required and must be between -90 and 90",
		})
	}

	if r.Longitude == nil || !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude is required and must be between -180 and 180",
		})
	}

	if r.Radius == nil {
		radius := float64(DefaultRadiusMeters)
		r.Radius = &radius
	}
	if *r.Radius < 1 || *r.Radius != math.Trunc(*r.Radius) {
		errs = append(errs, validator.ValidationError{
			Field:   "radius",
			Message: "radius must be a whole number of meters, at least 1",
		})
	}

	if validator.IsEmpty(r.Address) {
		errs = append(errs, validator.ValidationError{
			Field:   "address",
			Message: "address is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type OfficeLocationResponse struct {
	ID        string  `json:"id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Radius    float64 `json:"radius"`
	Address   string  `json:"address"`
	IsActive  bool    `json:"is_active"`
	UpdatedAt string  `json:"updated_at"`
}
