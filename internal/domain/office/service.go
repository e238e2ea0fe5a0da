package office

import "context"

type OfficeLocationService interface {
	GetActive(ctx context.Context) (OfficeLocationResponse, error)
	SetActive(ctx context.Context, req SetOfficeLocationRequest) (OfficeLocationResponse, error)
}
