package response

import (
	"encoding/json"
	"time"

	"homeservice-dispatch/internal/data/entity"
)

// JobSummary is the shape a technician's job list is built from. Item names
// are denormalized for display and rebuilt fresh on every query.
type JobSummary struct {
	ID          string               `json:"id"`
	OrderCode   string               `json:"order_code"`
	Status      entity.BookingStatus `json:"status"`
	ServiceDate string               `json:"service_date"`
	ServiceTime string               `json:"service_time"`
	AddressText string               `json:"address_text"`
	AddressMeta json.RawMessage      `json:"address_meta,omitempty"`
	Lat         *float64             `json:"lat"`
	Lng         *float64             `json:"lng"`
	DistanceKm  *float64             `json:"distance_km"`
	TotalPrice  float64              `json:"total_price"`
	Items       []string             `json:"items"`
	CreatedAt   time.Time            `json:"created_at"`
}

// Center reports which coordinate the nearby search was ranked against.
type Center struct {
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Source string  `json:"source"` // "request" or "stored"
}

type NearbyJobsResponse struct {
	Center *Center      `json:"center"`
	Jobs   []JobSummary `json:"jobs"`
}

// ClaimResponse is the accept outcome. A false Claimed with a reason is the
// expected result of losing a race, not an error.
type ClaimResponse struct {
	Claimed bool   `json:"claimed"`
	Reason  string `json:"reason,omitempty"`
}

// ActionResponse is the decline/cancel outcome.
type ActionResponse struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

type JobItemResponse struct {
	ServiceName   string  `json:"service_name"`
	Quantity      int     `json:"quantity"`
	SubtotalPrice float64 `json:"subtotal_price"`
}

type AuditEntryResponse struct {
	Action       entity.ActionType `json:"action"`
	TechnicianID *string           `json:"technician_id"`
	Meta         json.RawMessage   `json:"meta,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

type JobDetailResponse struct {
	JobSummary
	ItemDetails []JobItemResponse    `json:"item_details"`
	Actions     []AuditEntryResponse `json:"actions"`
}

// Helper converters

func BookingToSummary(booking *entity.Booking, itemNames []string, distanceKm *float64) JobSummary {
	return JobSummary{
		ID:          booking.ID.String(),
		OrderCode:   booking.OrderCode,
		Status:      booking.Status,
		ServiceDate: booking.ServiceDate.Format("2006-01-02"),
		ServiceTime: booking.ServiceTime,
		AddressText: booking.AddressText,
		AddressMeta: booking.AddressMeta,
		Lat:         booking.Lat,
		Lng:         booking.Lng,
		DistanceKm:  distanceKm,
		TotalPrice:  booking.TotalPrice,
		Items:       itemNames,
		CreatedAt:   booking.CreatedAt,
	}
}

func ItemToResponse(item *entity.BookingItem) JobItemResponse {
	return JobItemResponse{
		ServiceName:   item.ServiceName,
		Quantity:      item.Quantity,
		SubtotalPrice: item.SubtotalPrice,
	}
}

func ActionToResponse(action *entity.BookingAction) AuditEntryResponse {
	resp := AuditEntryResponse{
		Action:    action.Action,
		Meta:      action.Meta,
		CreatedAt: action.CreatedAt,
	}
	if action.TechnicianID != nil {
		id := action.TechnicianID.String()
		resp.TechnicianID = &id
	}
	return resp
}
