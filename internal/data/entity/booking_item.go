package entity

import "github.com/google/uuid"

// BookingItem is a priced line item of a booking. Read-only in this service;
// it only contributes service names to job summaries.
type BookingItem struct {
	BaseSimple
	BookingID     uuid.UUID `db:"booking_id"`
	ServiceID     uuid.UUID `db:"service_id"`
	ServiceName   string    `db:"service_name"`
	Quantity      int       `db:"quantity"`
	SubtotalPrice float64   `db:"subtotal_price"`
}
