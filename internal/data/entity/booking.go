package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusWaitingAccept  BookingStatus = "waiting_accept"
	BookingStatusWaitingProcess BookingStatus = "waiting_process"
	BookingStatusInProgress     BookingStatus = "in_progress"
	BookingStatusCompleted      BookingStatus = "completed"
	BookingStatusCanceled       BookingStatus = "canceled"
)

// Booking is the unit of work offered to technicians. TechnicianID is nil
// while the job sits unclaimed in the waiting_accept pool; Lat/Lng are nil
// when the customer only supplied a free-text address.
type Booking struct {
	Base
	OrderCode    string          `db:"order_code"`
	CustomerID   uuid.UUID       `db:"customer_id"`
	Status       BookingStatus   `db:"status"`
	TechnicianID *uuid.UUID      `db:"technician_id"`
	Lat          *float64        `db:"lat"`
	Lng          *float64        `db:"lng"`
	AddressText  string          `db:"address_text"`
	AddressMeta  json.RawMessage `db:"address_meta"`
	ServiceDate  time.Time       `db:"service_date"`
	ServiceTime  string          `db:"service_time"`
	TotalPrice   float64         `db:"total_price"`
}
