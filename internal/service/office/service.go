package office

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/office"
)

type OfficeLocationServiceImpl struct {
	office.OfficeLocationRepository
}

func NewOfficeLocationService(officeLocationRepository office.OfficeLocationRepository) office.OfficeLocationService {
	return &OfficeLocationServiceImpl{
		OfficeLocationRepository: officeLocationRepository,
	}
}

// GetActive implements office.OfficeLocationService.
func (o *OfficeLocationServiceImpl) GetActive(ctx context.Context) (office.OfficeLocationResponse, error) {
	loc, err := o.OfficeLocationRepository.GetActive(ctx)
	if err != nil {
		return office.OfficeLocationResponse{}, err
	}
	return mapOfficeLocationToResponse(loc), nil
}

// SetActive implements office.OfficeLocationService.
func (o *OfficeLocationServiceImpl) SetActive(ctx context.Context, req office.SetOfficeLocationRequest) (office.OfficeLocationResponse, error) {
	if err := req.Validate(); err != nil {
		return office.OfficeLocationResponse{}, err
	}

	saved, err := o.OfficeLocationRepository.ReplaceActive(ctx, office.OfficeLocation{
		Latitude:     *req.Latitude,
		Longitude:    *req.Longitude,
		RadiusMeters: *req.Radius,
		Address:      req.Address,
		IsActive:     true,
	})
	if err != nil {
		return office.OfficeLocationResponse{}, err
	}

	slog.InfoContext(ctx, "office location updated",
		"office_location_id", saved.ID, "radius", saved.RadiusMeters)

	return mapOfficeLocationToResponse(saved), nil
}

func mapOfficeLocationToResponse(loc office.OfficeLocation) office.OfficeLocationResponse {
	return office.OfficeLocationResponse{
		ID:        loc.ID,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		Radius:    loc.RadiusMeters,
		Address:   loc.Address,
		IsActive:  loc.IsActive,
		UpdatedAt: loc.UpdatedAt.Format(time.RFC3339),
	}
}
