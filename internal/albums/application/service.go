package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ravosoft/photohub/backend/internal/albums/domain"
	"github.com/ravosoft/photohub/backend/internal/albums/ports"
	"github.com/ravosoft/photohub/backend/internal/platform/database"
	"github.com/ravosoft/photohub/backend/internal/platform/eventbus"
	"github.com/ravosoft/photohub/backend/internal/platform/events"
	"github.com/ravosoft/photohub/backend/internal/platform/logger"
	"github.com/ravosoft/photohub/backend/internal/platform/ownership"
	"github.com/ravosoft/photohub/backend/internal/platform/validator"
)

const (
	maxSlugAttempts    = 100
	MaxImagesPerAppend = 200
)

type CreateParams struct {
	Name        string
	Description *string
}

type UpdateParams struct {
	Name        *string
	Description *string
}

type AlbumService struct {
	repo      ports.AlbumRepository
	ownership ownership.Registry
	tx        database.TransactionManager
	logger    logger.Logger
}

func NewAlbumService(
	repo ports.AlbumRepository,
	registry ownership.Registry,
	tx database.TransactionManager,
	logger logger.Logger,
) *AlbumService {
	return &AlbumService{
		repo:      repo,
		ownership: registry,
		tx:        tx,
		logger:    logger,
	}
}

func (s *AlbumService) Create(ctx context.Context, ownerID uuid.UUID, params CreateParams) (*domain.Album, error) {
	description := ""
	if params.Description != nil {
		description = validator.SanitizeText(*params.Description)
	}

	album, err := domain.NewAlbum(ownerID, validator.SanitizeText(params.Name), description)
	if err != nil {
		return nil, mapDomainError(err)
	}

	base := album.Slug
	for attempt := 0; attempt < 2; attempt++ {
		if album.Slug, err = s.uniqueSlug(ctx, ownerID, base, uuid.Nil); err != nil {
			return nil, err
		}
		err = s.repo.Create(ctx, album)
		if !errors.Is(err, ports.ErrSlugTaken) {
			break
		}
		// Lost a race with a concurrent create; search again.
	}
	if err != nil {
		if errors.Is(err, ports.ErrSlugTaken) {
			return nil, ErrSlugExhausted
		}
		return nil, fmt.Errorf("failed to create album: %w", err)
	}

	s.logger.Info(ctx, "album created", "album_id", album.ID, "slug", album.Slug)
	return album, nil
}

func (s *AlbumService) List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Album, error) {
	albums, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list albums: %w", err)
	}
	return albums, nil
}

// Get returns the album if ownerID owns it. Albums of other users are
// reported as missing.
func (s *AlbumService) Get(ctx context.Context, ownerID, albumID uuid.UUID) (*domain.Album, error) {
	album, err := s.repo.FindByID(ctx, albumID)
	if err != nil {
		if errors.Is(err, ports.ErrAlbumNotFound) {
			return nil, ErrAlbumNotFound
		}
		return nil, fmt.Errorf("failed to find album: %w", err)
	}
	if album.OwnerID != ownerID {
		return nil, ErrAlbumNotFound
	}
	return album, nil
}

func (s *AlbumService) Update(ctx context.Context, ownerID, albumID uuid.UUID, params UpdateParams) (*domain.Album, error) {
	album, err := s.Get(ctx, ownerID, albumID)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		renamed, err := album.Rename(validator.SanitizeText(*params.Name))
		if err != nil {
			return nil, mapDomainError(err)
		}
		if renamed {
			if album.Slug, err = s.uniqueSlug(ctx, ownerID, album.Slug, album.ID); err != nil {
				return nil, err
			}
		}
	}
	if params.Description != nil {
		if err := album.SetDescription(validator.SanitizeText(*params.Description)); err != nil {
			return nil, mapDomainError(err)
		}
	}

	if err := s.repo.Update(ctx, album); err != nil {
		switch {
		case errors.Is(err, ports.ErrSlugTaken):
			return nil, ErrSlugExhausted
		case errors.Is(err, ports.ErrAlbumNotFound):
			return nil, ErrAlbumNotFound
		}
		return nil, fmt.Errorf("failed to update album: %w", err)
	}
	return album, nil
}

// Delete removes the album and its links. Images are untouched.
func (s *AlbumService) Delete(ctx context.Context, ownerID, albumID uuid.UUID) error {
	if _, err := s.Get(ctx, ownerID, albumID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, albumID); err != nil {
		if errors.Is(err, ports.ErrAlbumNotFound) {
			return ErrAlbumNotFound
		}
		return fmt.Errorf("failed to delete album: %w", err)
	}
	return nil
}

// AddImages appends owned images in request order. Images already in the
// album are skipped. The first appended image becomes the cover when the
// album has none.
func (s *AlbumService) AddImages(ctx context.Context, ownerID, albumID uuid.UUID, imageIDs []uuid.UUID) (*domain.Album, error) {
	imageIDs = dedupe(imageIDs)
	if len(imageIDs) == 0 {
		return nil, ErrNoImages
	}
	if len(imageIDs) > MaxImagesPerAppend {
		return nil, ErrInvalidAlbum.WithDetails(fmt.Sprintf("at most %d images per request", MaxImagesPerAppend))
	}

	var album *domain.Album
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		album, err = s.Get(ctx, ownerID, albumID)
		if err != nil {
			return err
		}

		for _, id := range imageIDs {
			owned, err := s.ownership.CheckOwnership(ctx, ownerID, ownership.ResourceImages, id)
			if err != nil {
				return fmt.Errorf("failed to check image ownership: %w", err)
			}
			if !owned {
				return ErrImageNotFound.WithDetails(map[string]string{"imageId": id.String()})
			}
		}

		present, err := s.repo.LinkedImageIDs(ctx, albumID, imageIDs)
		if err != nil {
			return fmt.Errorf("failed to read album links: %w", err)
		}
		fresh := subtract(imageIDs, present)
		if len(fresh) == 0 {
			return nil
		}

		if err := s.repo.AppendImages(ctx, albumID, fresh); err != nil {
			return fmt.Errorf("failed to link images: %w", err)
		}
		if album.CoverImageID == nil {
			cover := fresh[0]
			album.SetCover(&cover)
			if err := s.repo.Update(ctx, album); err != nil {
				return fmt.Errorf("failed to set cover: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, ownerID, albumID)
}

// LinkImages lets the upload flow place new images into an album.
func (s *AlbumService) LinkImages(ctx context.Context, ownerID, albumID uuid.UUID, imageIDs []uuid.UUID) error {
	_, err := s.AddImages(ctx, ownerID, albumID, imageIDs)
	return err
}

// RemoveImage unlinks one image. A removed cover is replaced by the next
// image in album order, or cleared when the album becomes empty.
func (s *AlbumService) RemoveImage(ctx context.Context, ownerID, albumID, imageID uuid.UUID) (*domain.Album, error) {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		album, err := s.Get(ctx, ownerID, albumID)
		if err != nil {
			return err
		}

		removed, err := s.repo.RemoveImage(ctx, albumID, imageID)
		if err != nil {
			return fmt.Errorf("failed to unlink image: %w", err)
		}
		if !removed {
			return ErrImageNotInAlbum
		}
		if album.IsCover(imageID) {
			return s.reassignCover(ctx, album)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, ownerID, albumID)
}

func (s *AlbumService) SetCover(ctx context.Context, ownerID, albumID, imageID uuid.UUID) (*domain.Album, error) {
	album, err := s.Get(ctx, ownerID, albumID)
	if err != nil {
		return nil, err
	}

	linked, err := s.repo.HasImage(ctx, albumID, imageID)
	if err != nil {
		return nil, fmt.Errorf("failed to read album links: %w", err)
	}
	if !linked {
		return nil, ErrCoverNotInAlbum
	}

	album.SetCover(&imageID)
	if err := s.repo.Update(ctx, album); err != nil {
		return nil, fmt.Errorf("failed to set cover: %w", err)
	}
	return album, nil
}

// HandleImageDeleted drops the image from every album and repairs covers.
func (s *AlbumService) HandleImageDeleted(ctx context.Context, imageID uuid.UUID) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		albumIDs, err := s.repo.UnlinkImage(ctx, imageID)
		if err != nil {
			return fmt.Errorf("failed to unlink image: %w", err)
		}
		for _, albumID := range albumIDs {
			album, err := s.repo.FindByID(ctx, albumID)
			if err != nil {
				if errors.Is(err, ports.ErrAlbumNotFound) {
					continue
				}
				return fmt.Errorf("failed to find album: %w", err)
			}
			if album.IsCover(imageID) {
				if err := s.reassignCover(ctx, album); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (s *AlbumService) DeleteAllForOwner(ctx context.Context, ownerID uuid.UUID) error {
	if err := s.repo.DeleteByOwner(ctx, ownerID); err != nil {
		return fmt.Errorf("failed to delete albums: %w", err)
	}
	return nil
}

// CheckOwnership implements ownership.Checker for albums.
func (s *AlbumService) CheckOwnership(ctx context.Context, userID, albumID uuid.UUID) (bool, error) {
	owner, err := s.repo.OwnerOf(ctx, albumID)
	if err != nil {
		if errors.Is(err, ports.ErrAlbumNotFound) {
			return false, nil
		}
		return false, err
	}
	return owner == userID, nil
}

func (s *AlbumService) RegisterOwnership(registry ownership.Registry) {
	registry.RegisterChecker(ownership.ResourceAlbums, s)
}

func (s *AlbumService) RegisterSubscribers(bus *eventbus.Bus) {
	bus.Subscribe(events.ImageDeletedTopic, func(ctx context.Context, event eventbus.Event) error {
		payload, ok := event.Payload.(events.ImageDeletedEvent)
		if !ok {
			return fmt.Errorf("unexpected payload %T", event.Payload)
		}
		return s.HandleImageDeleted(ctx, payload.ImageID)
	})
	bus.Subscribe(events.UserDeletedTopic, func(ctx context.Context, event eventbus.Event) error {
		payload, ok := event.Payload.(events.UserDeletedEvent)
		if !ok {
			return fmt.Errorf("unexpected payload %T", event.Payload)
		}
		return s.DeleteAllForOwner(ctx, payload.UserID)
	})
}

func (s *AlbumService) reassignCover(ctx context.Context, album *domain.Album) error {
	next, err := s.repo.FirstImage(ctx, album.ID)
	if err != nil {
		return fmt.Errorf("failed to find next cover: %w", err)
	}
	album.SetCover(next)
	if err := s.repo.Update(ctx, album); err != nil {
		return fmt.Errorf("failed to update cover: %w", err)
	}
	return nil
}

// uniqueSlug tries base, base-2, base-3 ... among the owner's albums.
func (s *AlbumService) uniqueSlug(ctx context.Context, ownerID uuid.UUID, base string, excludeID uuid.UUID) (string, error) {
	for n := 1; n <= maxSlugAttempts; n++ {
		candidate := validator.MakeSlugUniqueWithMaxLength(base, n, domain.MaxSlugLength)
		taken, err := s.repo.SlugExists(ctx, ownerID, candidate, excludeID)
		if err != nil {
			return "", fmt.Errorf("failed to check slug: %w", err)
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", ErrSlugExhausted
}

func mapDomainError(err error) error {
	switch {
	case errors.Is(err, domain.ErrNameRequired), errors.Is(err, domain.ErrNameTooLong):
		return ErrInvalidAlbumName.WithDetails(err.Error())
	default:
		return ErrInvalidAlbum.WithDetails(err.Error())
	}
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == uuid.Nil {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func subtract(ids, remove []uuid.UUID) []uuid.UUID {
	drop := make(map[uuid.UUID]struct{}, len(remove))
	for _, id := range remove {
		drop[id] = struct{}{}
	}
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := drop[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
