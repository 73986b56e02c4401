package usecase

import (
	"time"

	"homeservice-dispatch/internal/data/repository"
	"homeservice-dispatch/pkg/notify"
	"homeservice-dispatch/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Dispatch DispatchService
	Nearby   NearbyService
	Location LocationService
	Job      JobService
	Auth     AuthService
}

func NewService(repo *repository.Repository, config *utils.Config, sink notify.Sink, log *zap.Logger) *Service {
	notifyTimeout := time.Duration(config.Notify.TimeoutSeconds) * time.Second

	return &Service{
		Dispatch: NewDispatchService(repo, sink, notifyTimeout, log),
		Nearby:   NewNearbyService(repo, config.Dispatch, log),
		Location: NewLocationService(repo, log),
		Job:      NewJobService(repo, log),
		Auth:     NewAuthService(repo, log),
	}
}
