package ports

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ravosoft/photohub/backend/internal/auth/domain"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	FindByRefreshTokenHash(ctx context.Context, hash string) (*domain.Session, error)
	Update(ctx context.Context, session *domain.Session) error
	// Rotate stores the session's new refresh hash and expiry only while the
	// row still holds previousHash and is not revoked. Otherwise it returns
	// ErrSessionNotFound, so each refresh token is redeemed at most once.
	Rotate(ctx context.Context, session *domain.Session, previousHash string) error
	// RevokeAllForUser revokes every active session of userID except the
	// one given, which may be uuid.Nil.
	RevokeAllForUser(ctx context.Context, userID uuid.UUID, except uuid.UUID, at time.Time) (int64, error)
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) error
}

// TokenDenylist remembers revoked access token ids until they would have
// expired anyway.
type TokenDenylist interface {
	Deny(ctx context.Context, tokenID string, until time.Time) error
	IsDenied(ctx context.Context, tokenID string) (bool, error)
}
