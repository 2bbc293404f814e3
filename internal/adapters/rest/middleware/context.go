package middleware

import (
	"context"

	"github.com/google/uuid"
	"github.com/ravosoft/photohub/backend/internal/auth/domain"
)

type contextKey string

const principalKey contextKey = "principal"

// WithPrincipal stores the authenticated caller on ctx.
func WithPrincipal(ctx context.Context, p *domain.Principal) context.Context {
	if p != nil {
		noteUser(ctx, p.UserID)
	}
	return context.WithValue(ctx, principalKey, p)
}

// GetPrincipal returns the caller set by Authenticate, if any.
func GetPrincipal(ctx context.Context) (*domain.Principal, bool) {
	p, ok := ctx.Value(principalKey).(*domain.Principal)
	return p, ok && p != nil
}

// GetUserID is a helper function to get the user ID from the request context
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	p, ok := GetPrincipal(ctx)
	if !ok {
		return uuid.Nil, false
	}
	return p.UserID, true
}
