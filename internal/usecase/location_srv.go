package usecase

import (
	"context"
	"fmt"

	"homeservice-dispatch/internal/data/entity"
	"homeservice-dispatch/internal/data/repository"
	"homeservice-dispatch/internal/dto/request"
	"homeservice-dispatch/internal/dto/response"
	"homeservice-dispatch/pkg/geo"
	"homeservice-dispatch/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LocationService keeps the last declared position per technician. It feeds
// the default search center of the nearby finder.
type LocationService interface {
	Get(ctx context.Context, technicianID uuid.UUID) (*response.LocationResponse, error)
	Set(ctx context.Context, technicianID uuid.UUID, req *request.UpdateLocationRequest) (*response.LocationResponse, error)
}

type locationService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewLocationService(repo *repository.Repository, log *zap.Logger) LocationService {
	return &locationService{
		repo: repo,
		log:  log.With(zap.String("service", "location")),
	}
}

func (s *locationService) Get(ctx context.Context, technicianID uuid.UUID) (*response.LocationResponse, error) {
	location, err := s.repo.TechnicianLocation.Get(ctx, technicianID)
	if err != nil {
		return nil, fmt.Errorf("get technician location: %w", err)
	}
	if location == nil {
		return nil, nil
	}

	resp := response.LocationToResponse(location)
	return &resp, nil
}

func (s *locationService) Set(ctx context.Context, technicianID uuid.UUID, req *request.UpdateLocationRequest) (*response.LocationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	coord := geo.Coordinate{Lat: req.Lat, Lng: req.Lng}
	if !coord.Valid() {
		return nil, fmt.Errorf("invalid coordinates: values must be finite")
	}

	location := &entity.TechnicianLocation{
		TechnicianID: technicianID,
		Lat:          req.Lat,
		Lng:          req.Lng,
		AddressText:  req.AddressText,
		AddressMeta:  req.AddressMeta,
	}

	if err := s.repo.TechnicianLocation.Upsert(ctx, location); err != nil {
		return nil, fmt.Errorf("set technician location: %w", err)
	}

	s.log.Info("Technician location updated",
		zap.String("technician_id", technicianID.String()),
		zap.Float64("lat", req.Lat),
		zap.Float64("lng", req.Lng),
	)

	stored, err := s.repo.TechnicianLocation.Get(ctx, technicianID)
	if err != nil {
		return nil, fmt.Errorf("get technician location: %w", err)
	}
	if stored == nil {
		return nil, fmt.Errorf("technician location missing after upsert")
	}

	resp := response.LocationToResponse(stored)
	return &resp, nil
}
