package repository

import (
	"context"
	"fmt"

	"homeservice-dispatch/internal/data/entity"
	"homeservice-dispatch/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingActionRepository reads the audit trail. Writes happen alongside the
// transitions that produce them, over in the booking repository.
type BookingActionRepository interface {
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingAction, error)
}

type bookingActionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingActionRepository(db database.PgxIface, log *zap.Logger) BookingActionRepository {
	return &bookingActionRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking_action")),
	}
}

func (r *bookingActionRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingAction, error) {
	query := `
		SELECT id, booking_id, technician_id, action, meta, created_at
		FROM booking_actions
		WHERE booking_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find booking actions",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find actions for booking %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var actions []*entity.BookingAction
	for rows.Next() {
		var action entity.BookingAction
		err := rows.Scan(
			&action.ID,
			&action.BookingID,
			&action.TechnicianID,
			&action.Action,
			&action.Meta,
			&action.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan booking action row", zap.Error(err))
			return nil, fmt.Errorf("scan booking action row: %w", err)
		}
		actions = append(actions, &action)
	}

	return actions, nil
}
