package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/office"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
)

type OfficeLocationHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Set(w http.ResponseWriter, r *http.Request)
}

type officeLocationHandlerImpl struct {
	officeLocationService office.OfficeLocationService
}

func NewOfficeLocationHandler(officeLocationService office.OfficeLocationService) OfficeLocationHandler {
	return &officeLocationHandlerImpl{
		officeLocationService: officeLocationService,
	}
}

// Get implements OfficeLocationHandler.
func (h *officeLocationHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.officeLocationService.GetActive(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Set implements OfficeLocationHandler.
func (h *officeLocationHandlerImpl) Set(w http.ResponseWriter, r *http.Request) {
	var req office.SetOfficeLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.officeLocationService.SetActive(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Office location updated successfully", result)
}
