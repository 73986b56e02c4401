package notify

import (
	"context"

	"github.com/google/uuid"
)

// ClaimEvent tells the customer a technician is on the way.
type ClaimEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	OrderCode  string    `json:"order_code"`
	CustomerID uuid.UUID `json:"customer_id"`
	NewStatus  string    `json:"new_status"`
}

// Sink is the push-notification boundary. Delivery is best-effort,
// at-most-once; a failed send never affects the claim it announces.
type Sink interface {
	JobClaimed(ctx context.Context, event ClaimEvent) error
}

// NoopSink drops every event. Used when no push channel is configured.
type NoopSink struct{}

func (NoopSink) JobClaimed(ctx context.Context, event ClaimEvent) error {
	return nil
}
