package repository

import (
	"homeservice-dispatch/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Booking            BookingRepository
	BookingItem        BookingItemRepository
	BookingAction      BookingActionRepository
	TechnicianLocation TechnicianLocationRepository
	Session            SessionRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Booking:            NewBookingRepository(db, log),
		BookingItem:        NewBookingItemRepository(db, log),
		BookingAction:      NewBookingActionRepository(db, log),
		TechnicianLocation: NewTechnicianLocationRepository(db, log),
		Session:            NewSessionRepository(db, log),
	}
}
