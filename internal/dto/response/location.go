package response

import (
	"encoding/json"
	"time"

	"homeservice-dispatch/internal/data/entity"
)

type LocationResponse struct {
	TechnicianID string          `json:"technician_id"`
	Lat          float64         `json:"lat"`
	Lng          float64         `json:"lng"`
	AddressText  string          `json:"address_text"`
	AddressMeta  json.RawMessage `json:"address_meta,omitempty"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func LocationToResponse(location *entity.TechnicianLocation) LocationResponse {
	return LocationResponse{
		TechnicianID: location.TechnicianID.String(),
		Lat:          location.Lat,
		Lng:          location.Lng,
		AddressText:  location.AddressText,
		AddressMeta:  location.AddressMeta,
		UpdatedAt:    location.UpdatedAt,
	}
}
