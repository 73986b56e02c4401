package request

import "encoding/json"

type UpdateLocationRequest struct {
	Lat         float64         `json:"lat" validate:"latitude"`
	Lng         float64         `json:"lng" validate:"longitude"`
	AddressText string          `json:"address_text" validate:"required,max=500"`
	AddressMeta json.RawMessage `json:"address_meta,omitempty"`
}
