package domain

import (
	"time"

	"github.com/google/uuid"
)

// Principal is the authenticated caller derived from a verified access
// token.
type Principal struct {
	UserID    uuid.UUID
	Email     string
	SessionID uuid.UUID
	TokenID   string
	ExpiresAt time.Time
}
