package usecase

import (
	"context"
	"fmt"

	"homeservice-dispatch/internal/data/repository"

	"go.uber.org/zap"
)

// AuthService only ends sessions. Issuing them is the auth service's job.
type AuthService interface {
	Logout(ctx context.Context, token string) error
}

type authService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAuthService(repo *repository.Repository, log *zap.Logger) AuthService {
	return &authService{
		repo: repo,
		log:  log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.repo.Session.Revoke(ctx, token); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	s.log.Info("Session revoked")
	return nil
}
