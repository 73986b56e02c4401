package entity

import (
	"encoding/json"

	"github.com/google/uuid"
)

type ActionType string

const (
	ActionAccept  ActionType = "ACCEPT"
	ActionDecline ActionType = "DECLINE"
	ActionCancel  ActionType = "CANCEL"
)

// ActionMeta is the free-form context recorded with every action row.
type ActionMeta struct {
	IP        string `json:"ip,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

func (m ActionMeta) JSON() json.RawMessage {
	b, err := json.Marshal(m)
	if err != nil {
		return json.RawMessage(`{}`)
	}
	return b
}

// BookingAction is an append-only audit record. TechnicianID is nil for
// system-originated actions. Rows are never updated or deleted.
type BookingAction struct {
	BaseSimple
	BookingID    uuid.UUID       `db:"booking_id"`
	TechnicianID *uuid.UUID      `db:"technician_id"`
	Action       ActionType      `db:"action"`
	Meta         json.RawMessage `db:"meta"`
}
