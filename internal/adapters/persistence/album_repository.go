package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/ravosoft/photohub/backend/internal/albums/domain"
	"github.com/ravosoft/photohub/backend/internal/albums/ports"
	"github.com/ravosoft/photohub/backend/internal/platform/database"
	"gorm.io/gorm"
)

type AlbumRepository struct {
	database.BaseRepository
}

func NewAlbumRepository(db *gorm.DB) ports.AlbumRepository {
	return &AlbumRepository{BaseRepository: database.NewBaseRepository(db)}
}

func (r *AlbumRepository) Create(ctx context.Context, a *domain.Album) error {
	row := toAlbumModel(a)
	if err := r.Conn(ctx).Create(&row).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return ports.ErrSlugTaken
		}
		return fmt.Errorf("failed to create album: %w", err)
	}
	return nil
}

func (r *AlbumRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Album, error) {
	var rows []albumRow
	if err := r.Raw(ctx, r.withCount().Where("a.id = ?", id.String()), &rows); err != nil {
		return nil, fmt.Errorf("failed to find album: %w", err)
	}
	if len(rows) == 0 {
		return nil, ports.ErrAlbumNotFound
	}
	return rows[0].toDomain(), nil
}

func (r *AlbumRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Album, error) {
	query := r.withCount().
		Where("a.owner_id = ?", ownerID.String()).
		OrderBy("a.created_at DESC", "a.id ASC")

	var rows []albumRow
	if err := r.Raw(ctx, query, &rows); err != nil {
		return nil, fmt.Errorf("failed to list albums: %w", err)
	}
	albums := make([]*domain.Album, len(rows))
	for i := range rows {
		albums[i] = rows[i].toDomain()
	}
	return albums, nil
}

func (r *AlbumRepository) Update(ctx context.Context, a *domain.Album) error {
	res := r.Conn(ctx).Model(&albumModel{}).Where("id = ?", a.ID).Updates(map[string]any{
		"name":           a.Name,
		"slug":           a.Slug,
		"description":    a.Description,
		"cover_image_id": a.CoverImageID,
		"updated_at":     a.UpdatedAt,
	})
	if res.Error != nil {
		if database.IsDuplicateKey(res.Error) {
			return ports.ErrSlugTaken
		}
		return fmt.Errorf("failed to update album: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ports.ErrAlbumNotFound
	}
	return nil
}

// Delete removes the album and its links. Images stay.
func (r *AlbumRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.Conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("album_id = ?", id).Delete(&albumImageModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete album links: %w", err)
		}
		res := tx.Where("id = ?", id).Delete(&albumModel{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete album: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ports.ErrAlbumNotFound
		}
		return nil
	})
}

func (r *AlbumRepository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	return r.Conn(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []string
		if err := tx.Model(&albumModel{}).Where("owner_id = ?", ownerID).Pluck("id", &ids).Error; err != nil {
			return fmt.Errorf("failed to list albums: %w", err)
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Where("album_id IN ?", ids).Delete(&albumImageModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete album links: %w", err)
		}
		if err := tx.Where("owner_id = ?", ownerID).Delete(&albumModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete albums: %w", err)
		}
		return nil
	})
}

func (r *AlbumRepository) SlugExists(ctx context.Context, ownerID uuid.UUID, slug string, excludeID uuid.UUID) (bool, error) {
	q := r.Conn(ctx).Model(&albumModel{}).Where("owner_id = ? AND slug = ?", ownerID, slug)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return count > 0, nil
}

func (r *AlbumRepository) OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var row albumModel
	if err := r.Conn(ctx).Select("owner_id").Where("id = ?", id).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ports.ErrAlbumNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to read album owner: %w", err)
	}
	return row.OwnerID, nil
}

func (r *AlbumRepository) LinkedImageIDs(ctx context.Context, albumID uuid.UUID, imageIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(imageIDs) == 0 {
		return nil, nil
	}
	var ids []uuid.UUID
	err := r.Conn(ctx).Model(&albumImageModel{}).
		Where("album_id = ? AND image_id IN ?", albumID, uuidStrings(imageIDs)).
		Pluck("image_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read album links: %w", err)
	}
	return ids, nil
}

func (r *AlbumRepository) AppendImages(ctx context.Context, albumID uuid.UUID, imageIDs []uuid.UUID) error {
	if len(imageIDs) == 0 {
		return nil
	}
	conn := r.Conn(ctx)

	var last int
	err := conn.Model(&albumImageModel{}).
		Where("album_id = ?", albumID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&last).Error
	if err != nil {
		return fmt.Errorf("failed to read last position: %w", err)
	}

	now := time.Now().UTC()
	links := make([]albumImageModel, len(imageIDs))
	for i, id := range imageIDs {
		links[i] = albumImageModel{AlbumID: albumID, ImageID: id, Position: last + i + 1, AddedAt: now}
	}
	if err := conn.Create(&links).Error; err != nil {
		return fmt.Errorf("failed to insert album links: %w", err)
	}
	return nil
}

func (r *AlbumRepository) RemoveImage(ctx context.Context, albumID, imageID uuid.UUID) (bool, error) {
	res := r.Conn(ctx).Where("album_id = ? AND image_id = ?", albumID, imageID).Delete(&albumImageModel{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to remove album link: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *AlbumRepository) FirstImage(ctx context.Context, albumID uuid.UUID) (*uuid.UUID, error) {
	var link albumImageModel
	err := r.Conn(ctx).Where("album_id = ?", albumID).Order("position ASC").Take(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read first image: %w", err)
	}
	return &link.ImageID, nil
}

func (r *AlbumRepository) HasImage(ctx context.Context, albumID, imageID uuid.UUID) (bool, error) {
	var count int64
	err := r.Conn(ctx).Model(&albumImageModel{}).
		Where("album_id = ? AND image_id = ?", albumID, imageID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to read album link: %w", err)
	}
	return count > 0, nil
}

func (r *AlbumRepository) UnlinkImage(ctx context.Context, imageID uuid.UUID) ([]uuid.UUID, error) {
	conn := r.Conn(ctx)

	var albumIDs []uuid.UUID
	if err := conn.Model(&albumImageModel{}).Where("image_id = ?", imageID).Pluck("album_id", &albumIDs).Error; err != nil {
		return nil, fmt.Errorf("failed to read album links: %w", err)
	}
	if len(albumIDs) == 0 {
		return nil, nil
	}
	if err := conn.Where("image_id = ?", imageID).Delete(&albumImageModel{}).Error; err != nil {
		return nil, fmt.Errorf("failed to remove album links: %w", err)
	}
	return albumIDs, nil
}

func (r *AlbumRepository) withCount() sq.SelectBuilder {
	return r.SB.Select("a.*", "(SELECT COUNT(*) FROM album_images ai WHERE ai.album_id = a.id) AS image_count").
		From("albums a")
}

func toAlbumModel(a *domain.Album) albumModel {
	return albumModel{
		ID:           a.ID,
		OwnerID:      a.OwnerID,
		Name:         a.Name,
		Slug:         a.Slug,
		Description:  a.Description,
		CoverImageID: a.CoverImageID,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func (r albumRow) toDomain() *domain.Album {
	return &domain.Album{
		ID:           r.ID,
		OwnerID:      r.OwnerID,
		Name:         r.Name,
		Slug:         r.Slug,
		Description:  r.Description,
		CoverImageID: r.CoverImageID,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		ImageCount:   r.ImageCount,
	}
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
