package wire

import (
	"homeservice-dispatch/internal/adaptor"
	"homeservice-dispatch/internal/data/repository"
	"homeservice-dispatch/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireLocation(
	r chi.Router,
	handler *adaptor.Handler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Route("/api/technician/location", func(r chi.Router) {
		r.Use(middleware.TechnicianAuth(repo.Session, log))

		// GET /api/technician/location - last declared position
		r.Get("/", handler.Location.GetLocation)

		// PUT /api/technician/location - report a new position
		r.Put("/", handler.Location.UpdateLocation)
	})
}
