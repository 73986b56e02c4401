package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is a technician console session. Token issuance belongs to the
// auth service; this service only looks sessions up to resolve identity.
type Session struct {
	BaseSimple
	TechnicianID uuid.UUID  `db:"technician_id"`
	Token        uuid.UUID  `db:"token"`
	UserAgent    *string    `db:"user_agent"`
	IPAddress    *string    `db:"ip_address"`
	ExpiresAt    time.Time  `db:"expires_at"`
	RevokedAt    *time.Time `db:"revoked_at"`
}
