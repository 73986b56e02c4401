package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"homeservice-dispatch/internal/dto/request"
	"homeservice-dispatch/internal/usecase"
	"homeservice-dispatch/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type DispatchHandler struct {
	dispatch usecase.DispatchService
	nearby   usecase.NearbyService
	log      *zap.Logger
}

func NewDispatchHandler(dispatch usecase.DispatchService, nearby usecase.NearbyService, log *zap.Logger) *DispatchHandler {
	return &DispatchHandler{
		dispatch: dispatch,
		nearby:   nearby,
		log:      log.With(zap.String("handler", "dispatch")),
	}
}

// NearbyJobs handles GET /api/technician/jobs/nearby (protected)
func (h *DispatchHandler) NearbyJobs(w http.ResponseWriter, r *http.Request) {
	technicianID, ok := utils.GetTechnicianIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()
	lat, latErr := utils.ParseFloat(query.Get("lat"))
	lng, lngErr := utils.ParseFloat(query.Get("lng"))
	radius, radiusErr := utils.ParseFloat(query.Get("radius_km"))
	if latErr != nil || lngErr != nil || radiusErr != nil {
		utils.ResponseBadRequest(w, "Invalid coordinate or radius parameter", nil)
		return
	}

	req := &request.NearbyJobsRequest{
		Lat:      lat,
		Lng:      lng,
		RadiusKm: radius,
		Query:    query.Get("q"),
		Limit:    utils.ParseInt(query.Get("limit"), 0),
	}

	jobs, err := h.nearby.FindNearby(r.Context(), technicianID, req)
	if err != nil {
		h.handleServiceError(w, err, "list nearby jobs")
		return
	}

	utils.ResponseSuccess(w, "success", jobs)
}

// Accept handles POST /api/technician/jobs/{id}/accept (protected)
func (h *DispatchHandler) Accept(w http.ResponseWriter, r *http.Request) {
	technicianID, ok := utils.GetTechnicianIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	result, err := h.dispatch.Accept(r.Context(), bookingID, technicianID, clientMeta(r))
	if err != nil {
		h.handleServiceError(w, err, "accept job")
		return
	}

	if result.Claimed {
		utils.ResponseSuccess(w, "success", result)
		return
	}

	// Soft failure: somebody else got there first. Not an error.
	utils.ResponseSuccess(w, "this job was just taken", result)
}

// Decline handles POST /api/technician/jobs/{id}/decline (protected)
func (h *DispatchHandler) Decline(w http.ResponseWriter, r *http.Request) {
	technicianID, ok := utils.GetTechnicianIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	req, ok := decodeActionBody(w, r)
	if !ok {
		return
	}

	result, err := h.dispatch.Decline(r.Context(), bookingID, technicianID, req, clientMeta(r))
	if err != nil {
		h.handleServiceError(w, err, "decline job")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// Cancel handles POST /api/technician/jobs/{id}/cancel (protected)
func (h *DispatchHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	technicianID, ok := utils.GetTechnicianIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	req, ok := decodeActionBody(w, r)
	if !ok {
		return
	}

	result, err := h.dispatch.Cancel(r.Context(), bookingID, technicianID, req, clientMeta(r))
	if err != nil {
		h.handleServiceError(w, err, "cancel job")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// decodeActionBody parses the optional {reason} body. An empty body is fine.
func decodeActionBody(w http.ResponseWriter, r *http.Request) (*request.JobActionRequest, bool) {
	var req request.JobActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return nil, false
	}
	return &req, true
}

func clientMeta(r *http.Request) request.ClientMeta {
	return request.ClientMeta{
		IP:        utils.ClientIP(r.RemoteAddr),
		UserAgent: r.UserAgent(),
	}
}

// handleServiceError maps service errors onto HTTP responses
func (h *DispatchHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"):
		h.log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "invalid"):
		h.log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "unauthorized"):
		h.log.Warn(operation+" failed - unauthorized",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseForbidden(w, errMsg)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
