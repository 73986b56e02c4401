package usecase

import (
	"context"
	"fmt"
	"sort"

	"homeservice-dispatch/internal/data/repository"
	"homeservice-dispatch/internal/dto/request"
	"homeservice-dispatch/internal/dto/response"
	"homeservice-dispatch/pkg/geo"
	"homeservice-dispatch/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NearbyService is the read path of dispatch: unassigned jobs ranked by
// distance from the technician. When no center can be resolved the list
// degrades to recency order instead of substituting a fixed coordinate.
type NearbyService interface {
	FindNearby(ctx context.Context, technicianID uuid.UUID, req *request.NearbyJobsRequest) (*response.NearbyJobsResponse, error)
}

type nearbyService struct {
	repo *repository.Repository
	cfg  utils.DispatchConfig
	log  *zap.Logger
}

func NewNearbyService(repo *repository.Repository, cfg utils.DispatchConfig, log *zap.Logger) NearbyService {
	if cfg.NearbyLimit <= 0 {
		cfg.NearbyLimit = 30
	}
	if cfg.MaxNearbyLimit <= 0 {
		cfg.MaxNearbyLimit = 100
	}
	if cfg.CandidateCap <= 0 {
		cfg.CandidateCap = 200
	}
	return &nearbyService{
		repo: repo,
		cfg:  cfg,
		log:  log.With(zap.String("service", "nearby")),
	}
}

func (s *nearbyService) FindNearby(ctx context.Context, technicianID uuid.UUID, req *request.NearbyJobsRequest) (*response.NearbyJobsResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if (req.Lat == nil) != (req.Lng == nil) {
		return nil, fmt.Errorf("invalid coordinates: lat and lng must be supplied together")
	}

	center, centerResp, err := s.resolveCenter(ctx, technicianID, req)
	if err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = s.cfg.NearbyLimit
	}
	if limit > s.cfg.MaxNearbyLimit {
		limit = s.cfg.MaxNearbyLimit
	}

	candidates, err := s.repo.Booking.FindUnassigned(ctx, req.Query, s.cfg.CandidateCap)
	if err != nil {
		return nil, fmt.Errorf("find nearby jobs: %w", err)
	}

	jobs := make([]response.JobSummary, 0, len(candidates))
	for _, booking := range candidates {
		var distance *float64
		if center != nil && booking.Lat != nil && booking.Lng != nil {
			d := geo.DistanceKm(*center, geo.Coordinate{Lat: *booking.Lat, Lng: *booking.Lng})
			distance = &d
		}

		// Radius only excludes jobs known to be far. A job with no
		// coordinates stays in the pool rather than silently vanishing.
		if center != nil && req.RadiusKm != nil && distance != nil && *distance > *req.RadiusKm {
			continue
		}

		items, err := s.repo.BookingItem.FindByBookingID(ctx, booking.ID)
		if err != nil {
			return nil, fmt.Errorf("find nearby jobs: %w", err)
		}
		itemNames := make([]string, len(items))
		for i, item := range items {
			itemNames[i] = item.ServiceName
		}

		jobs = append(jobs, response.BookingToSummary(booking, itemNames, distance))
	}

	// Candidates arrive newest first; the stable sort keeps that as the
	// tiebreak and as the sole order when no center is known.
	if center != nil {
		sort.SliceStable(jobs, func(i, j int) bool {
			di, dj := jobs[i].DistanceKm, jobs[j].DistanceKm
			if di == nil {
				return false
			}
			if dj == nil {
				return true
			}
			return *di < *dj
		})
	}

	if len(jobs) > limit {
		jobs = jobs[:limit]
	}

	s.log.Debug("Nearby jobs listed",
		zap.String("technician_id", technicianID.String()),
		zap.Int("count", len(jobs)),
		zap.Bool("has_center", center != nil),
	)

	return &response.NearbyJobsResponse{Center: centerResp, Jobs: jobs}, nil
}

// resolveCenter picks the search center: explicit request coordinates win,
// then the technician's stored location, then none.
func (s *nearbyService) resolveCenter(ctx context.Context, technicianID uuid.UUID, req *request.NearbyJobsRequest) (*geo.Coordinate, *response.Center, error) {
	if req.Lat != nil && req.Lng != nil {
		c := geo.Coordinate{Lat: *req.Lat, Lng: *req.Lng}
		if !c.Valid() {
			return nil, nil, fmt.Errorf("invalid coordinates: values must be finite")
		}
		return &c, &response.Center{Lat: c.Lat, Lng: c.Lng, Source: "request"}, nil
	}

	location, err := s.repo.TechnicianLocation.Get(ctx, technicianID)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve search center: %w", err)
	}
	if location == nil {
		return nil, nil, nil
	}

	c := geo.Coordinate{Lat: location.Lat, Lng: location.Lng}
	return &c, &response.Center{Lat: c.Lat, Lng: c.Lng, Source: "stored"}, nil
}
