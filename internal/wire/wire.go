package wire

import (
	"net/http"

	"homeservice-dispatch/internal/adaptor"
	"homeservice-dispatch/internal/data/repository"
	"homeservice-dispatch/internal/usecase"
	"homeservice-dispatch/pkg/metrics"
	"homeservice-dispatch/pkg/middleware"
	"homeservice-dispatch/pkg/notify"
	"homeservice-dispatch/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App holds the wired dependencies
type App struct {
	Router *chi.Mux
}

// Wiring initializes services, handlers and routes
func Wiring(repo *repository.Repository, config *utils.Config, sink notify.Sink, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, sink, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	logger *zap.Logger,
) *chi.Mux {
	metrics.Register()

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS())

	wireDispatch(r, handler, repo, logger)
	wireLocation(r, handler, repo, logger)
	wireAuth(r, handler, repo, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
