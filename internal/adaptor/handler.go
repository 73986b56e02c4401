package adaptor

import (
	"homeservice-dispatch/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Dispatch *DispatchHandler
	Job      *JobHandler
	Location *LocationHandler
	Auth     *AuthHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Dispatch: NewDispatchHandler(service.Dispatch, service.Nearby, log),
		Job:      NewJobHandler(service.Job, log),
		Location: NewLocationHandler(service.Location, log),
		Auth:     NewAuthHandler(service.Auth, log),
	}
}
