package office

import "context"

type OfficeLocationRepository interface {
	// GetActive returns ErrOfficeLocationNotFound when none is active.
	GetActive(ctx context.Context) (OfficeLocation, error)
	// ReplaceActive deactivates every location and stores loc as the active one.
	ReplaceActive(ctx context.Context, loc OfficeLocation) (OfficeLocation, error)
}
