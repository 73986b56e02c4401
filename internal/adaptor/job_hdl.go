package adaptor

import (
	"net/http"
	"strings"

	"homeservice-dispatch/internal/dto/request"
	"homeservice-dispatch/internal/usecase"
	"homeservice-dispatch/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type JobHandler struct {
	service usecase.JobService
	log     *zap.Logger
}

func NewJobHandler(service usecase.JobService, log *zap.Logger) *JobHandler {
	return &JobHandler{
		service: service,
		log:     log.With(zap.String("handler", "job")),
	}
}

// ListAssigned handles GET /api/technician/jobs (protected)
func (h *JobHandler) ListAssigned(w http.ResponseWriter, r *http.Request) {
	technicianID, ok := utils.GetTechnicianIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	jobs, err := h.service.ListAssigned(r.Context(), technicianID, req)
	if err != nil {
		h.log.Error("Failed to list assigned jobs", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseSuccess(w, "success", jobs)
}

// GetJob handles GET /api/technician/jobs/{id} (protected)
func (h *JobHandler) GetJob(w http.ResponseWriter, r *http.Request) {
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

	job, err := h.service.GetJob(r.Context(), bookingID, technicianID)
	if err != nil {
		errMsg := err.Error()
		switch {
		case strings.Contains(errMsg, "not found"):
			utils.ResponseNotFound(w, errMsg)
		case strings.Contains(errMsg, "invalid"):
			utils.ResponseBadRequest(w, errMsg, nil)
		case strings.Contains(errMsg, "unauthorized"):
			utils.ResponseForbidden(w, errMsg)
		default:
			h.log.Error("Failed to get job", zap.Error(err))
			utils.ResponseInternalError(w, "Internal server error")
		}
		return
	}

	utils.ResponseSuccess(w, "success", job)
}
