package ownership

import (
	"context"

	"github.com/google/uuid"
)

// Resource types with registered checkers.
const (
	ResourceImages = "images"
	ResourceAlbums = "albums"
)

// Checker answers whether userID owns resourceID. A missing resource is
// reported as not owned, not as an error.
type Checker interface {
	CheckOwnership(ctx context.Context, userID uuid.UUID, resourceID uuid.UUID) (bool, error)
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(ctx context.Context, userID uuid.UUID, resourceID uuid.UUID) (bool, error)

func (f CheckerFunc) CheckOwnership(ctx context.Context, userID uuid.UUID, resourceID uuid.UUID) (bool, error) {
	return f(ctx, userID, resourceID)
}

// Registry dispatches ownership checks by resource type. Bounded contexts
// register their checker at startup; middleware and other contexts query it
// without importing each other.
type Registry interface {
	RegisterChecker(resourceType string, checker Checker)
	CheckOwnership(ctx context.Context, userID uuid.UUID, resourceType string, resourceID uuid.UUID) (bool, error)
}
