package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/ravosoft/photohub/backend/internal/images/domain"
	"github.com/ravosoft/photohub/backend/internal/images/ports"
	"github.com/ravosoft/photohub/backend/internal/platform/database"
	"gorm.io/gorm"
)

const createBatchSize = 50

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

type ImageRepository struct {
	database.BaseRepository
}

func NewImageRepository(db *gorm.DB) ports.ImageRepository {
	return &ImageRepository{BaseRepository: database.NewBaseRepository(db)}
}

func (r *ImageRepository) CreateBatch(ctx context.Context, images []*domain.Image) error {
	if len(images) == 0 {
		return nil
	}
	rows := make([]imageModel, len(images))
	for i, img := range images {
		rows[i] = toImageModel(img)
	}
	if err := r.Conn(ctx).CreateInBatches(rows, createBatchSize).Error; err != nil {
		return fmt.Errorf("failed to insert images: %w", err)
	}
	return nil
}

func (r *ImageRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Image, error) {
	var row imageModel
	if err := r.Conn(ctx).Where("id = ?", id).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrImageNotFound
		}
		return nil, fmt.Errorf("failed to find image: %w", err)
	}
	return row.toDomain(), nil
}

// List builds the filtered query once and runs it twice: for the total and
// for the requested page.
func (r *ImageRepository) List(ctx context.Context, q domain.ListQuery) ([]*domain.Image, int64, error) {
	filter := func(b sq.SelectBuilder) sq.SelectBuilder {
		b = b.From("images i").Where(sq.Eq{"i.owner_id": q.OwnerID.String()})
		if q.AlbumID != nil {
			b = b.Join("album_images ai ON ai.image_id = i.id").
				Where(sq.Eq{"ai.album_id": q.AlbumID.String()})
		}
		if q.Query != "" {
			pattern := "%" + likeEscaper.Replace(strings.ToLower(q.Query)) + "%"
			b = b.Where(sq.Expr("LOWER(i.title) LIKE ? ESCAPE '!'", pattern))
		}
		if q.ContentType != "" {
			b = b.Where(sq.Eq{"i.content_type": q.ContentType})
		}
		return b
	}

	var total int64
	if err := r.Raw(ctx, filter(r.SB.Select("COUNT(*)")), &total); err != nil {
		return nil, 0, fmt.Errorf("failed to count images: %w", err)
	}
	if total == 0 {
		return []*domain.Image{}, 0, nil
	}

	page := filter(r.SB.Select("i.*")).
		OrderBy(orderFor(q.Sort)...).
		Limit(uint64(q.PageSize)).
		Offset(uint64(q.Offset()))

	var rows []imageModel
	if err := r.Raw(ctx, page, &rows); err != nil {
		return nil, 0, fmt.Errorf("failed to list images: %w", err)
	}

	items := make([]*domain.Image, len(rows))
	for i := range rows {
		items[i] = rows[i].toDomain()
	}
	return items, total, nil
}

func orderFor(sort domain.SortOrder) []string {
	switch sort {
	case domain.SortOldest:
		return []string{"i.created_at ASC", "i.id ASC"}
	case domain.SortLargest:
		return []string{"i.size_bytes DESC", "i.created_at DESC", "i.id ASC"}
	case domain.SortPosition:
		return []string{"ai.position ASC"}
	default:
		return []string{"i.created_at DESC", "i.id DESC"}
	}
}

func (r *ImageRepository) Update(ctx context.Context, img *domain.Image) error {
	res := r.Conn(ctx).Model(&imageModel{}).Where("id = ?", img.ID).Updates(map[string]any{
		"title":       img.Title,
		"description": img.Description,
		"updated_at":  img.UpdatedAt,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update image: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ports.ErrImageNotFound
	}
	return nil
}

func (r *ImageRepository) SetThumbnailKey(ctx context.Context, id uuid.UUID, key string) error {
	res := r.Conn(ctx).Model(&imageModel{}).Where("id = ?", id).Update("thumbnail_key", key)
	if res.Error != nil {
		return fmt.Errorf("failed to set thumbnail: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ports.ErrImageNotFound
	}
	return nil
}

func (r *ImageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.Conn(ctx).Where("id = ?", id).Delete(&imageModel{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete image: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ports.ErrImageNotFound
	}
	return nil
}

func (r *ImageRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Image, error) {
	var rows []imageModel
	if err := r.Conn(ctx).Where("owner_id = ?", ownerID).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	items := make([]*domain.Image, len(rows))
	for i := range rows {
		items[i] = rows[i].toDomain()
	}
	return items, nil
}

func (r *ImageRepository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	if err := r.Conn(ctx).Where("owner_id = ?", ownerID).Delete(&imageModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete images: %w", err)
	}
	return nil
}

func (r *ImageRepository) OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var row imageModel
	err := r.Conn(ctx).Select("owner_id").Where("id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ports.ErrImageNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to read image owner: %w", err)
	}
	return row.OwnerID, nil
}

func toImageModel(img *domain.Image) imageModel {
	return imageModel{
		ID:           img.ID,
		OwnerID:      img.OwnerID,
		Title:        img.Title,
		Description:  img.Description,
		FileName:     img.FileName,
		ContentType:  img.ContentType,
		SizeBytes:    img.SizeBytes,
		Width:        img.Width,
		Height:       img.Height,
		StorageKey:   img.StorageKey,
		ThumbnailKey: img.ThumbnailKey,
		CreatedAt:    img.CreatedAt,
		UpdatedAt:    img.UpdatedAt,
	}
}

func (m imageModel) toDomain() *domain.Image {
	return &domain.Image{
		ID:           m.ID,
		OwnerID:      m.OwnerID,
		Title:        m.Title,
		Description:  m.Description,
		FileName:     m.FileName,
		ContentType:  m.ContentType,
		SizeBytes:    m.SizeBytes,
		Width:        m.Width,
		Height:       m.Height,
		StorageKey:   m.StorageKey,
		ThumbnailKey: m.ThumbnailKey,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
