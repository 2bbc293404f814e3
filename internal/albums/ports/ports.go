package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ravosoft/photohub/backend/internal/albums/domain"
)

var (
	ErrAlbumNotFound = errors.New("album not found")
	ErrSlugTaken     = errors.New("slug already used by this owner")
)

// AlbumRepository persists albums and their ordered image links.
type AlbumRepository interface {
	Create(ctx context.Context, album *domain.Album) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Album, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Album, error)
	Update(ctx context.Context, album *domain.Album) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error
	SlugExists(ctx context.Context, ownerID uuid.UUID, slug string, excludeID uuid.UUID) (bool, error)
	OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error)

	// LinkedImageIDs returns the subset of imageIDs already in the album.
	LinkedImageIDs(ctx context.Context, albumID uuid.UUID, imageIDs []uuid.UUID) ([]uuid.UUID, error)
	// AppendImages adds links after the current last position, in order.
	AppendImages(ctx context.Context, albumID uuid.UUID, imageIDs []uuid.UUID) error
	// RemoveImage reports whether a link was removed.
	RemoveImage(ctx context.Context, albumID, imageID uuid.UUID) (bool, error)
	// FirstImage returns the lowest-positioned image, or nil for an empty album.
	FirstImage(ctx context.Context, albumID uuid.UUID) (*uuid.UUID, error)
	HasImage(ctx context.Context, albumID, imageID uuid.UUID) (bool, error)
	// UnlinkImage removes imageID from every album and returns the albums
	// that contained it.
	UnlinkImage(ctx context.Context, imageID uuid.UUID) ([]uuid.UUID, error)
}
