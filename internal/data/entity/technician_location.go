package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TechnicianLocation holds the last reported position of a technician.
// One row per technician, last write wins.
type TechnicianLocation struct {
	TechnicianID uuid.UUID       `db:"technician_id"`
	Lat          float64         `db:"lat"`
	Lng          float64         `db:"lng"`
	AddressText  string          `db:"address_text"`
	AddressMeta  json.RawMessage `db:"address_meta"`
	UpdatedAt    time.Time       `db:"updated_at"`
}
