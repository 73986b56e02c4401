package usecase

import (
	"context"
	"fmt"
	"time"

	"homeservice-dispatch/internal/data/entity"
	"homeservice-dispatch/internal/data/repository"
	"homeservice-dispatch/internal/dto/request"
	"homeservice-dispatch/internal/dto/response"
	"homeservice-dispatch/pkg/metrics"
	"homeservice-dispatch/pkg/notify"
	"homeservice-dispatch/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DispatchService walks a booking through its claim lifecycle. Accept,
// decline and cancel are each a single conditional check-and-update at the
// store, so any number of racing callers resolve to exactly one winner and
// the rest see a soft failure.
type DispatchService interface {
	Accept(ctx context.Context, bookingID string, technicianID uuid.UUID, meta request.ClientMeta) (*response.ClaimResponse, error)
	Decline(ctx context.Context, bookingID string, technicianID uuid.UUID, req *request.JobActionRequest, meta request.ClientMeta) (*response.ActionResponse, error)
	Cancel(ctx context.Context, bookingID string, technicianID uuid.UUID, req *request.JobActionRequest, meta request.ClientMeta) (*response.ActionResponse, error)
}

type dispatchService struct {
	repo          *repository.Repository
	sink          notify.Sink
	notifyTimeout time.Duration
	log           *zap.Logger
}

func NewDispatchService(repo *repository.Repository, sink notify.Sink, notifyTimeout time.Duration, log *zap.Logger) DispatchService {
	if sink == nil {
		sink = notify.NoopSink{}
	}
	if notifyTimeout <= 0 {
		notifyTimeout = 5 * time.Second
	}
	return &dispatchService{
		repo:          repo,
		sink:          sink,
		notifyTimeout: notifyTimeout,
		log:           log.With(zap.String("service", "dispatch")),
	}
}

func (s *dispatchService) Accept(ctx context.Context, bookingID string, technicianID uuid.UUID, meta request.ClientMeta) (*response.ClaimResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	actionMeta := entity.ActionMeta{IP: meta.IP, UserAgent: meta.UserAgent}

	claimed, err := s.repo.Booking.Claim(ctx, id, technicianID, actionMeta)
	if err != nil {
		return nil, fmt.Errorf("accept booking %s: %w", bookingID, err)
	}

	if !claimed {
		// Expected under contention, never an error. The extra read only
		// sharpens the reason string for the client.
		booking, err := s.repo.Booking.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("accept booking %s: %w", bookingID, err)
		}
		if booking == nil {
			metrics.ObserveClaim("accept", "not_found")
			return &response.ClaimResponse{Claimed: false, Reason: "not_found"}, nil
		}

		s.log.Debug("Accept lost the claim race",
			zap.String("booking_id", bookingID),
			zap.String("technician_id", technicianID.String()),
			zap.String("status", string(booking.Status)),
		)
		metrics.ObserveClaim("accept", "already_taken")
		return &response.ClaimResponse{Claimed: false, Reason: "already_taken"}, nil
	}

	s.log.Info("Booking claimed",
		zap.String("booking_id", bookingID),
		zap.String("technician_id", technicianID.String()),
	)
	metrics.ObserveClaim("accept", "claimed")

	s.notifyClaim(id)

	return &response.ClaimResponse{Claimed: true}, nil
}

// notifyClaim tells the customer a technician is en route. Best effort:
// the claim is already durable, a failed send is only logged.
func (s *dispatchService) notifyClaim(bookingID uuid.UUID) {
	go func() {
		nctx, cancel := context.WithTimeout(context.Background(), s.notifyTimeout)
		defer cancel()

		booking, err := s.repo.Booking.FindByID(nctx, bookingID)
		if err != nil || booking == nil {
			s.log.Warn("Claim notification skipped, booking lookup failed",
				zap.Error(err),
				zap.String("booking_id", bookingID.String()),
			)
			return
		}

		event := notify.ClaimEvent{
			BookingID:  booking.ID,
			OrderCode:  booking.OrderCode,
			CustomerID: booking.CustomerID,
			NewStatus:  string(booking.Status),
		}

		if err := s.sink.JobClaimed(nctx, event); err != nil {
			s.log.Warn("Claim notification failed",
				zap.Error(err),
				zap.String("booking_id", bookingID.String()),
				zap.String("order_code", booking.OrderCode),
			)
		}
	}()
}

func (s *dispatchService) Decline(ctx context.Context, bookingID string, technicianID uuid.UUID, req *request.JobActionRequest, meta request.ClientMeta) (*response.ActionResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	actionMeta := entity.ActionMeta{IP: meta.IP, UserAgent: meta.UserAgent, Reason: req.Reason}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("decline booking %s: %w", bookingID, err)
	}
	if booking == nil {
		metrics.ObserveClaim("decline", "not_found")
		return &response.ActionResponse{OK: false, Reason: "not_found"}, nil
	}

	// Declining an offer never taken: no state to change, but the signal
	// is still worth an audit row. The insert is guarded at the store, so
	// a claim racing in between leaves no DECLINE row behind.
	declined, err := s.repo.Booking.DeclineOffer(ctx, id, technicianID, actionMeta)
	if err != nil {
		return nil, fmt.Errorf("decline booking %s: %w", bookingID, err)
	}
	if declined {
		s.log.Info("Offer declined",
			zap.String("booking_id", bookingID),
			zap.String("technician_id", technicianID.String()),
		)
		metrics.ObserveClaim("decline", "declined")
		return &response.ActionResponse{OK: true}, nil
	}

	released, err := s.repo.Booking.Release(ctx, id, technicianID, actionMeta)
	if err != nil {
		return nil, fmt.Errorf("decline booking %s: %w", bookingID, err)
	}
	if !released {
		s.log.Debug("Decline rejected, caller does not own the job",
			zap.String("booking_id", bookingID),
			zap.String("technician_id", technicianID.String()),
			zap.String("status", string(booking.Status)),
		)
		metrics.ObserveClaim("decline", "conflict")
		return &response.ActionResponse{OK: false, Reason: "conflict"}, nil
	}

	s.log.Info("Booking released back to pool",
		zap.String("booking_id", bookingID),
		zap.String("technician_id", technicianID.String()),
	)
	metrics.ObserveClaim("decline", "released")
	return &response.ActionResponse{OK: true}, nil
}

func (s *dispatchService) Cancel(ctx context.Context, bookingID string, technicianID uuid.UUID, req *request.JobActionRequest, meta request.ClientMeta) (*response.ActionResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	actionMeta := entity.ActionMeta{IP: meta.IP, UserAgent: meta.UserAgent, Reason: req.Reason}

	canceled, err := s.repo.Booking.Cancel(ctx, id, technicianID, actionMeta)
	if err != nil {
		return nil, fmt.Errorf("cancel booking %s: %w", bookingID, err)
	}

	if !canceled {
		booking, err := s.repo.Booking.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("cancel booking %s: %w", bookingID, err)
		}
		if booking == nil {
			metrics.ObserveClaim("cancel", "not_found")
			return &response.ActionResponse{OK: false, Reason: "not_found"}, nil
		}

		s.log.Debug("Cancel rejected",
			zap.String("booking_id", bookingID),
			zap.String("technician_id", technicianID.String()),
			zap.String("status", string(booking.Status)),
		)
		metrics.ObserveClaim("cancel", "conflict")
		return &response.ActionResponse{OK: false, Reason: "conflict"}, nil
	}

	s.log.Info("Booking canceled",
		zap.String("booking_id", bookingID),
		zap.String("technician_id", technicianID.String()),
	)
	metrics.ObserveClaim("cancel", "canceled")
	return &response.ActionResponse{OK: true}, nil
}
