package wire

import (
	"homeservice-dispatch/internal/adaptor"
	"homeservice-dispatch/internal/data/repository"
	"homeservice-dispatch/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	handler *adaptor.Handler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Route("/api/technician/auth", func(r chi.Router) {
		r.Use(middleware.TechnicianAuth(repo.Session, log))

		// POST /api/technician/auth/logout - revoke the current session
		r.Post("/logout", handler.Auth.Logout)
	})
}
