package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ravosoft/photohub/backend/internal/images/domain"
	"github.com/ravosoft/photohub/backend/internal/images/ports"
	"github.com/ravosoft/photohub/backend/internal/platform/database"
	"github.com/ravosoft/photohub/backend/internal/platform/eventbus"
	"github.com/ravosoft/photohub/backend/internal/platform/events"
	"github.com/ravosoft/photohub/backend/internal/platform/imaging"
	"github.com/ravosoft/photohub/backend/internal/platform/logger"
	"github.com/ravosoft/photohub/backend/internal/platform/ownership"
	"github.com/ravosoft/photohub/backend/internal/platform/storage"
	"github.com/ravosoft/photohub/backend/internal/platform/validator"
	"golang.org/x/sync/errgroup"
)

type Config struct {
	MaxUploadBytes    int64
	MaxFilesPerUpload int
	Concurrency       int
	ThumbnailSize     int
}

// UploadFile is one part of a multipart upload. Open may be called once.
type UploadFile struct {
	FileName string
	Size     int64
	Open     func() (io.ReadSeekCloser, error)
}

type ListParams struct {
	Page        int
	PageSize    int
	Query       string
	ContentType string
	AlbumID     *uuid.UUID
	Sort        string
}

type UpdateParams struct {
	Title       *string
	Description *string
}

type ImageService struct {
	repo      ports.ImageRepository
	albums    ports.AlbumLinker
	ownership ownership.Registry
	storage   storage.Storage
	tx        database.TransactionManager
	eventBus  *eventbus.Bus
	logger    logger.Logger
	cfg       Config
}

func NewImageService(
	repo ports.ImageRepository,
	albums ports.AlbumLinker,
	registry ownership.Registry,
	store storage.Storage,
	tx database.TransactionManager,
	eventBus *eventbus.Bus,
	logger logger.Logger,
	cfg Config,
) *ImageService {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.MaxFilesPerUpload < 1 {
		cfg.MaxFilesPerUpload = 20
	}
	return &ImageService{
		repo:      repo,
		albums:    albums,
		ownership: registry,
		storage:   store,
		tx:        tx,
		eventBus:  eventBus,
		logger:    logger,
		cfg:       cfg,
	}
}

// Upload validates, stores and records every file, then optionally links
// the batch into an album. Nothing is recorded unless every file succeeds.
func (s *ImageService) Upload(ctx context.Context, ownerID uuid.UUID, files []UploadFile, albumID *uuid.UUID) ([]*domain.Image, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	if len(files) > s.cfg.MaxFilesPerUpload {
		return nil, ErrTooManyFiles.WithDetails(map[string]int{"max": s.cfg.MaxFilesPerUpload})
	}
	for _, f := range files {
		if f.Size > s.cfg.MaxUploadBytes {
			return nil, ErrFileTooLarge.WithDetails(map[string]any{"file": f.FileName, "maxBytes": s.cfg.MaxUploadBytes})
		}
	}
	if albumID != nil {
		if err := s.requireAlbum(ctx, ownerID, *albumID); err != nil {
			return nil, err
		}
	}

	images := make([]*domain.Image, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)
	for i, f := range files {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			img, err := s.store(gctx, ownerID, f)
			if err != nil {
				return err
			}
			images[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.discard(ctx, images)
		return nil, err
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.CreateBatch(ctx, images); err != nil {
			return fmt.Errorf("failed to record images: %w", err)
		}
		if albumID == nil {
			return nil
		}
		ids := make([]uuid.UUID, len(images))
		for i, img := range images {
			ids[i] = img.ID
		}
		return s.albums.LinkImages(ctx, ownerID, *albumID, ids)
	})
	if err != nil {
		s.discard(ctx, images)
		return nil, err
	}

	now := time.Now().UTC()
	for _, img := range images {
		s.eventBus.Publish(ctx, eventbus.Event{
			Topic: events.ImageUploadedTopic,
			Payload: events.ImageUploadedEvent{
				ImageID:     img.ID,
				OwnerID:     ownerID,
				StorageKey:  img.StorageKey,
				ContentType: img.ContentType,
				OccurredAt:  now,
			},
		})
	}
	s.logger.Info(ctx, "images uploaded", "owner_id", ownerID, "count", len(images))
	return images, nil
}

// store sniffs, measures and writes one file.
func (s *ImageService) store(ctx context.Context, ownerID uuid.UUID, f UploadFile) (*domain.Image, error) {
	r, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload %q: %w", f.FileName, err)
	}
	defer r.Close()

	head := make([]byte, imaging.SniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read upload %q: %w", f.FileName, err)
	}
	contentType, ext, err := imaging.Detect(head[:n])
	if err != nil {
		return nil, ErrUnsupported.WithDetails(map[string]string{"file": f.FileName})
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind upload: %w", err)
	}
	width, height, err := imaging.Dimensions(r)
	if err != nil {
		return nil, ErrCorruptImage.WithDetails(map[string]string{"file": f.FileName})
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind upload: %w", err)
	}
	img := domain.NewImage(ownerID, f.FileName, contentType, ext, f.Size, width, height)
	img.Title = validator.SanitizeText(img.Title)

	counter := &countingReader{r: io.LimitReader(r, s.cfg.MaxUploadBytes+1)}
	if err := s.storage.Put(ctx, img.StorageKey, counter, contentType); err != nil {
		return nil, fmt.Errorf("failed to store %q: %w", f.FileName, err)
	}
	if counter.n > s.cfg.MaxUploadBytes {
		_ = s.storage.Delete(ctx, img.StorageKey)
		return nil, ErrFileTooLarge.WithDetails(map[string]any{"file": f.FileName, "maxBytes": s.cfg.MaxUploadBytes})
	}
	img.SizeBytes = counter.n
	return img, nil
}

// discard removes stored objects of a failed batch.
func (s *ImageService) discard(ctx context.Context, images []*domain.Image) {
	ctx = context.WithoutCancel(ctx)
	for _, img := range images {
		if img == nil {
			continue
		}
		if err := s.storage.Delete(ctx, img.StorageKey); err != nil {
			s.logger.Warn(ctx, "failed to remove orphaned upload", "key", img.StorageKey, "error", err)
		}
	}
}

func (s *ImageService) List(ctx context.Context, ownerID uuid.UUID, params ListParams) (*domain.Page, error) {
	query, err := s.buildQuery(ownerID, params)
	if err != nil {
		return nil, err
	}
	if query.AlbumID != nil {
		if err := s.requireAlbum(ctx, ownerID, *query.AlbumID); err != nil {
			return nil, err
		}
	}

	items, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	return &domain.Page{Items: items, Total: total, Page: query.Page, PageSize: query.PageSize}, nil
}

func (s *ImageService) buildQuery(ownerID uuid.UUID, params ListParams) (domain.ListQuery, error) {
	q := domain.ListQuery{
		OwnerID:     ownerID,
		Page:        params.Page,
		PageSize:    params.PageSize,
		Query:       strings.TrimSpace(params.Query),
		ContentType: strings.TrimSpace(params.ContentType),
		AlbumID:     params.AlbumID,
		Sort:        domain.SortOrder(params.Sort),
	}
	if q.Page == 0 {
		q.Page = 1
	}
	if q.PageSize == 0 {
		q.PageSize = domain.DefaultPageSize
	}
	if q.Sort == "" {
		q.Sort = domain.SortNewest
	}

	switch {
	case q.Page < 1:
		return q, ErrInvalidQuery.WithDetails("page must be at least 1")
	case q.PageSize < 1 || q.PageSize > domain.MaxPageSize:
		return q, ErrInvalidQuery.WithDetails(fmt.Sprintf("pageSize must be between 1 and %d", domain.MaxPageSize))
	case !q.Sort.Valid():
		return q, ErrInvalidQuery.WithDetails("sort must be one of newest, oldest, largest")
	case q.Sort == domain.SortPosition && q.AlbumID == nil:
		return q, ErrInvalidQuery.WithDetails("position sort requires albumId")
	}
	return q, nil
}

// Get returns the image if ownerID owns it. Images of other users are
// reported as missing.
func (s *ImageService) Get(ctx context.Context, ownerID, imageID uuid.UUID) (*domain.Image, error) {
	img, err := s.repo.FindByID(ctx, imageID)
	if err != nil {
		if errors.Is(err, ports.ErrImageNotFound) {
			return nil, ErrImageNotFound
		}
		return nil, fmt.Errorf("failed to find image: %w", err)
	}
	if img.OwnerID != ownerID {
		return nil, ErrImageNotFound
	}
	return img, nil
}

func (s *ImageService) Update(ctx context.Context, ownerID, imageID uuid.UUID, params UpdateParams) (*domain.Image, error) {
	img, err := s.Get(ctx, ownerID, imageID)
	if err != nil {
		return nil, err
	}
	if err := img.Update(validator.SanitizeTextPtr(params.Title), validator.SanitizeTextPtr(params.Description)); err != nil {
		return nil, ErrInvalidMetadata.WithDetails(err.Error())
	}
	if err := s.repo.Update(ctx, img); err != nil {
		if errors.Is(err, ports.ErrImageNotFound) {
			return nil, ErrImageNotFound
		}
		return nil, fmt.Errorf("failed to update image: %w", err)
	}
	return img, nil
}

func (s *ImageService) Delete(ctx context.Context, ownerID, imageID uuid.UUID) error {
	img, err := s.Get(ctx, ownerID, imageID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, imageID); err != nil {
		if errors.Is(err, ports.ErrImageNotFound) {
			return ErrImageNotFound
		}
		return fmt.Errorf("failed to delete image: %w", err)
	}
	s.removeObjects(ctx, img)

	s.eventBus.Publish(ctx, eventbus.Event{
		Topic: events.ImageDeletedTopic,
		Payload: events.ImageDeletedEvent{
			ImageID:    img.ID,
			OwnerID:    img.OwnerID,
			OccurredAt: time.Now().UTC(),
		},
	})
	return nil
}

// OpenFile streams the original upload.
func (s *ImageService) OpenFile(ctx context.Context, ownerID, imageID uuid.UUID) (io.ReadCloser, *domain.Image, error) {
	img, err := s.Get(ctx, ownerID, imageID)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.storage.Open(ctx, img.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, ErrImageNotFound
		}
		return nil, nil, fmt.Errorf("failed to open image: %w", err)
	}
	return rc, img, nil
}

// OpenThumbnail streams the thumbnail, or the original while the
// thumbnail has not been generated yet. The returned content type matches
// whichever was opened.
func (s *ImageService) OpenThumbnail(ctx context.Context, ownerID, imageID uuid.UUID) (io.ReadCloser, string, *domain.Image, error) {
	img, err := s.Get(ctx, ownerID, imageID)
	if err != nil {
		return nil, "", nil, err
	}
	if img.HasThumbnail() {
		rc, err := s.storage.Open(ctx, *img.ThumbnailKey)
		if err == nil {
			return rc, "image/jpeg", img, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, "", nil, fmt.Errorf("failed to open thumbnail: %w", err)
		}
	}

	rc, err := s.storage.Open(ctx, img.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, "", nil, ErrImageNotFound
		}
		return nil, "", nil, fmt.Errorf("failed to open image: %w", err)
	}
	return rc, img.ContentType, img, nil
}

// GenerateThumbnail renders and records the thumbnail of one image.
func (s *ImageService) GenerateThumbnail(ctx context.Context, imageID uuid.UUID) error {
	img, err := s.repo.FindByID(ctx, imageID)
	if err != nil {
		if errors.Is(err, ports.ErrImageNotFound) {
			// Deleted before the worker got to it.
			return nil
		}
		return fmt.Errorf("failed to find image: %w", err)
	}

	src, err := s.storage.Open(ctx, img.StorageKey)
	if err != nil {
		return fmt.Errorf("failed to open original: %w", err)
	}
	defer src.Close()

	thumb, err := imaging.Thumbnail(src, s.cfg.ThumbnailSize)
	if err != nil {
		return fmt.Errorf("failed to render thumbnail: %w", err)
	}

	key := domain.ThumbnailKey(img.OwnerID, img.ID)
	if err := s.storage.Put(ctx, key, bytes.NewReader(thumb), "image/jpeg"); err != nil {
		return fmt.Errorf("failed to store thumbnail: %w", err)
	}
	if err := s.repo.SetThumbnailKey(ctx, img.ID, key); err != nil {
		if errors.Is(err, ports.ErrImageNotFound) {
			_ = s.storage.Delete(ctx, key)
			return nil
		}
		return fmt.Errorf("failed to record thumbnail: %w", err)
	}
	s.logger.Debug(ctx, "thumbnail generated", "image_id", img.ID, "bytes", len(thumb))
	return nil
}

// DeleteAllForOwner removes every image row and object of a user.
func (s *ImageService) DeleteAllForOwner(ctx context.Context, ownerID uuid.UUID) error {
	images, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("failed to list images: %w", err)
	}
	if err := s.repo.DeleteByOwner(ctx, ownerID); err != nil {
		return fmt.Errorf("failed to delete images: %w", err)
	}
	for _, img := range images {
		s.removeObjects(ctx, img)
	}
	s.logger.Info(ctx, "images removed for deleted user", "owner_id", ownerID, "count", len(images))
	return nil
}

// CheckOwnership implements ownership.Checker for images.
func (s *ImageService) CheckOwnership(ctx context.Context, userID, imageID uuid.UUID) (bool, error) {
	owner, err := s.repo.OwnerOf(ctx, imageID)
	if err != nil {
		if errors.Is(err, ports.ErrImageNotFound) {
			return false, nil
		}
		return false, err
	}
	return owner == userID, nil
}

func (s *ImageService) RegisterSubscribers(bus *eventbus.Bus) {
	bus.Subscribe(events.ImageUploadedTopic, func(ctx context.Context, event eventbus.Event) error {
		payload, ok := event.Payload.(events.ImageUploadedEvent)
		if !ok {
			return fmt.Errorf("unexpected payload %T", event.Payload)
		}
		return s.GenerateThumbnail(ctx, payload.ImageID)
	})
	bus.Subscribe(events.UserDeletedTopic, func(ctx context.Context, event eventbus.Event) error {
		payload, ok := event.Payload.(events.UserDeletedEvent)
		if !ok {
			return fmt.Errorf("unexpected payload %T", event.Payload)
		}
		return s.DeleteAllForOwner(ctx, payload.UserID)
	})
}

func (s *ImageService) RegisterOwnership(registry ownership.Registry) {
	registry.RegisterChecker(ownership.ResourceImages, s)
}

func (s *ImageService) requireAlbum(ctx context.Context, ownerID, albumID uuid.UUID) error {
	owned, err := s.ownership.CheckOwnership(ctx, ownerID, ownership.ResourceAlbums, albumID)
	if err != nil {
		return fmt.Errorf("failed to check album ownership: %w", err)
	}
	if !owned {
		return ErrAlbumNotFound
	}
	return nil
}

func (s *ImageService) removeObjects(ctx context.Context, img *domain.Image) {
	keys := []string{img.StorageKey}
	if img.HasThumbnail() {
		keys = append(keys, *img.ThumbnailKey)
	}
	for _, key := range keys {
		if err := s.storage.Delete(ctx, key); err != nil {
			s.logger.Warn(ctx, "failed to delete object", "key", key, "error", err)
		}
	}
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
