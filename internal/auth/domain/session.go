package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session is one signed-in device. The refresh token itself is never
// stored, only its sha256 hex digest.
type Session struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	RefreshTokenHash string
	UserAgent        string
	IP               string
	ExpiresAt        time.Time
	RevokedAt        *time.Time
	CreatedAt        time.Time
}

func NewSession(userID uuid.UUID, refreshTokenHash, userAgent, ip string, ttl time.Duration, now time.Time) *Session {
	return &Session{
		ID:               uuid.New(),
		UserID:           userID,
		RefreshTokenHash: refreshTokenHash,
		UserAgent:        truncate(userAgent, 255),
		IP:               truncate(ip, 64),
		ExpiresAt:        now.Add(ttl),
		CreatedAt:        now,
	}
}

func (s *Session) IsActive(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

func (s *Session) Revoke(now time.Time) {
	if s.RevokedAt != nil {
		return
	}
	s.RevokedAt = &now
}

// Rotate swaps the refresh token and slides the expiry window. The session
// id is kept so access tokens minted for it stay tied to one device.
func (s *Session) Rotate(refreshTokenHash string, ttl time.Duration, now time.Time) {
	s.RefreshTokenHash = refreshTokenHash
	s.ExpiresAt = now.Add(ttl)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
