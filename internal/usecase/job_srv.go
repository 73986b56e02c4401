package usecase

import (
	"context"
	"fmt"

	"homeservice-dispatch/internal/data/entity"
	"homeservice-dispatch/internal/data/repository"
	"homeservice-dispatch/internal/dto/request"
	"homeservice-dispatch/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// JobService serves the technician console's own-job views.
type JobService interface {
	ListAssigned(ctx context.Context, technicianID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.JobSummary], error)
	GetJob(ctx context.Context, key string, technicianID uuid.UUID) (*response.JobDetailResponse, error)
}

type jobService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewJobService(repo *repository.Repository, log *zap.Logger) JobService {
	return &jobService{
		repo: repo,
		log:  log.With(zap.String("service", "job")),
	}
}

func (s *jobService) ListAssigned(ctx context.Context, technicianID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.JobSummary], error) {
	limit := req.Limit()
	offset := req.Offset()

	bookings, err := s.repo.Booking.FindByTechnicianID(ctx, technicianID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list assigned jobs: %w", err)
	}

	total, err := s.repo.Booking.CountByTechnicianID(ctx, technicianID)
	if err != nil {
		return nil, fmt.Errorf("count assigned jobs: %w", err)
	}

	summaries := make([]response.JobSummary, len(bookings))
	for i, booking := range bookings {
		items, err := s.repo.BookingItem.FindByBookingID(ctx, booking.ID)
		if err != nil {
			return nil, fmt.Errorf("list assigned jobs: %w", err)
		}
		itemNames := make([]string, len(items))
		for j, item := range items {
			itemNames[j] = item.ServiceName
		}
		summaries[i] = response.BookingToSummary(booking, itemNames, nil)
	}

	s.log.Debug("Assigned jobs listed",
		zap.String("technician_id", technicianID.String()),
		zap.Int("count", len(bookings)),
		zap.Int64("total", total),
	)

	return response.NewPaginatedResponse(summaries, req.Page, req.PerPage, total), nil
}

func (s *jobService) GetJob(ctx context.Context, key string, technicianID uuid.UUID) (*response.JobDetailResponse, error) {
	booking, err := s.findBooking(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("get job %s: %w", key, err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", key)
	}

	// Visible to the current assignee, or to anyone while still open.
	if booking.TechnicianID != nil && *booking.TechnicianID != technicianID {
		return nil, fmt.Errorf("unauthorized to view this booking")
	}

	items, err := s.repo.BookingItem.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("get job items %s: %w", key, err)
	}

	actions, err := s.repo.BookingAction.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("get job actions %s: %w", key, err)
	}

	itemNames := make([]string, len(items))
	itemDetails := make([]response.JobItemResponse, len(items))
	for i, item := range items {
		itemNames[i] = item.ServiceName
		itemDetails[i] = response.ItemToResponse(item)
	}

	auditEntries := make([]response.AuditEntryResponse, len(actions))
	for i, action := range actions {
		auditEntries[i] = response.ActionToResponse(action)
	}

	return &response.JobDetailResponse{
		JobSummary:  response.BookingToSummary(booking, itemNames, nil),
		ItemDetails: itemDetails,
		Actions:     auditEntries,
	}, nil
}

// findBooking resolves either a booking UUID or an order code, so the
// console can deep-link jobs by the code printed on the customer receipt.
func (s *jobService) findBooking(ctx context.Context, key string) (*entity.Booking, error) {
	if id, err := uuid.Parse(key); err == nil {
		return s.repo.Booking.FindByID(ctx, id)
	}
	return s.repo.Booking.FindByOrderCode(ctx, key)
}
