package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ravosoft/photohub/backend/internal/images/domain"
)

var ErrImageNotFound = errors.New("image not found")

type ImageRepository interface {
	CreateBatch(ctx context.Context, images []*domain.Image) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Image, error)
	List(ctx context.Context, query domain.ListQuery) ([]*domain.Image, int64, error)
	Update(ctx context.Context, image *domain.Image) error
	SetThumbnailKey(ctx context.Context, id uuid.UUID, key string) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Image, error)
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error
	// OwnerOf returns ErrImageNotFound for unknown ids.
	OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
}

// AlbumLinker appends freshly uploaded images to an album. The albums
// context implements it.
type AlbumLinker interface {
	LinkImages(ctx context.Context, ownerID, albumID uuid.UUID, imageIDs []uuid.UUID) error
}
