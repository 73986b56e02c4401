package wire

import (
	"homeservice-dispatch/internal/adaptor"
	"homeservice-dispatch/internal/data/repository"
	"homeservice-dispatch/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireDispatch(
	r chi.Router,
	handler *adaptor.Handler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Route("/api/technician/jobs", func(r chi.Router) {
		r.Use(middleware.TechnicianAuth(repo.Session, log))

		// GET /api/technician/jobs/nearby - open jobs ranked by distance
		r.Get("/nearby", handler.Dispatch.NearbyJobs)

		// GET /api/technician/jobs - jobs assigned to the caller
		r.Get("/", handler.Job.ListAssigned)

		// GET /api/technician/jobs/{id} - job detail with audit trail;
		// accepts a booking UUID or an order code
		r.Get("/{id}", handler.Job.GetJob)

		// POST /api/technician/jobs/{id}/accept - claim an open job
		r.Post("/{id}/accept", handler.Dispatch.Accept)

		// POST /api/technician/jobs/{id}/decline - pass on / release a job
		r.Post("/{id}/decline", handler.Dispatch.Decline)

		// POST /api/technician/jobs/{id}/cancel - cancel an owned job
		r.Post("/{id}/cancel", handler.Dispatch.Cancel)
	})
}
