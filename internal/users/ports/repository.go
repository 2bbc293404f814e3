package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ravosoft/photohub/backend/internal/users/domain"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrUsernameTaken = errors.New("username already taken")
)

// UserRepository persists users. Create reports ErrEmailTaken or
// ErrUsernameTaken when a unique constraint fires.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// ClearAvatar unsets avatar_image_id wherever it points at imageID.
	ClearAvatar(ctx context.Context, imageID uuid.UUID) error
}
