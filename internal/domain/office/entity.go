package office

import "time"

const DefaultRadiusMeters = 100

// OfficeLocation is the geofence center. At most one is active at a time.
type OfficeLocation struct {
	ID           string
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
	Address      string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
