package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"homeservice-dispatch/internal/dto/request"
	"homeservice-dispatch/internal/usecase"
	"homeservice-dispatch/pkg/utils"

	"go.uber.org/zap"
)

type LocationHandler struct {
	service usecase.LocationService
	log     *zap.Logger
}

func NewLocationHandler(service usecase.LocationService, log *zap.Logger) *LocationHandler {
	return &LocationHandler{
		service: service,
		log:     log.With(zap.String("handler", "location")),
	}
}

// GetLocation handles GET /api/technician/location (protected)
func (h *LocationHandler) GetLocation(w http.ResponseWriter, r *http.Request) {
	technicianID, ok := utils.GetTechnicianIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	location, err := h.service.Get(r.Context(), technicianID)
	if err != nil {
		h.log.Error("Failed to get technician location", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	if location == nil {
		utils.ResponseNotFound(w, "No location recorded")
		return
	}

	utils.ResponseSuccess(w, "success", location)
}

// UpdateLocation handles PUT /api/technician/location (protected)
func (h *LocationHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	technicianID, ok := utils.GetTechnicianIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.UpdateLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	location, err := h.service.Set(r.Context(), technicianID, &req)
	if err != nil {
		errMsg := err.Error()
		switch {
		case strings.Contains(errMsg, "validation failed"), strings.Contains(errMsg, "invalid"):
			h.log.Warn("Update location rejected", zap.Error(err))
			utils.ResponseBadRequest(w, errMsg, nil)
		default:
			h.log.Error("Failed to update technician location", zap.Error(err))
			utils.ResponseInternalError(w, "Internal server error")
		}
		return
	}

	utils.ResponseSuccess(w, "success", location)
}
