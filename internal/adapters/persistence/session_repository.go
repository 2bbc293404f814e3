package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ravosoft/photohub/backend/internal/auth/domain"
	"github.com/ravosoft/photohub/backend/internal/auth/ports"
	"github.com/ravosoft/photohub/backend/internal/platform/database"
	"gorm.io/gorm"
)

type SessionRepository struct {
	database.BaseRepository
}

func NewSessionRepository(db *gorm.DB) ports.SessionRepository {
	return &SessionRepository{BaseRepository: database.NewBaseRepository(db)}
}

func (r *SessionRepository) Create(ctx context.Context, s *domain.Session) error {
	row := toSessionModel(s)
	if err := r.Conn(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *SessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *SessionRepository) FindByRefreshTokenHash(ctx context.Context, hash string) (*domain.Session, error) {
	return r.findOne(ctx, "refresh_token_hash = ?", hash)
}

func (r *SessionRepository) findOne(ctx context.Context, cond string, arg any) (*domain.Session, error) {
	var row sessionModel
	if err := r.Conn(ctx).Where(cond, arg).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return row.toDomain(), nil
}

func (r *SessionRepository) Update(ctx context.Context, s *domain.Session) error {
	res := r.Conn(ctx).Model(&sessionModel{}).Where("id = ?", s.ID).Updates(map[string]any{
		"refresh_token_hash": s.RefreshTokenHash,
		"expires_at":         s.ExpiresAt,
		"revoked_at":         s.RevokedAt,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ports.ErrSessionNotFound
	}
	return nil
}

func (r *SessionRepository) Rotate(ctx context.Context, s *domain.Session, previousHash string) error {
	res := r.Conn(ctx).Model(&sessionModel{}).
		Where("id = ? AND refresh_token_hash = ? AND revoked_at IS NULL", s.ID, previousHash).
		Updates(map[string]any{
			"refresh_token_hash": s.RefreshTokenHash,
			"expires_at":         s.ExpiresAt,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to rotate session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ports.ErrSessionNotFound
	}
	return nil
}

func (r *SessionRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID, except uuid.UUID, at time.Time) (int64, error) {
	q := r.Conn(ctx).Model(&sessionModel{}).
		Where("user_id = ? AND revoked_at IS NULL", userID)
	if except != uuid.Nil {
		q = q.Where("id <> ?", except)
	}
	res := q.Update("revoked_at", at)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to revoke sessions: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *SessionRepository) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	if err := r.Conn(ctx).Where("user_id = ?", userID).Delete(&sessionModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}
	return nil
}

func toSessionModel(s *domain.Session) sessionModel {
	return sessionModel{
		ID:               s.ID,
		UserID:           s.UserID,
		RefreshTokenHash: s.RefreshTokenHash,
		UserAgent:        s.UserAgent,
		IP:               s.IP,
		ExpiresAt:        s.ExpiresAt,
		RevokedAt:        s.RevokedAt,
		CreatedAt:        s.CreatedAt,
	}
}

func (m sessionModel) toDomain() *domain.Session {
	return &domain.Session{
		ID:               m.ID,
		UserID:           m.UserID,
		RefreshTokenHash: m.RefreshTokenHash,
		UserAgent:        m.UserAgent,
		IP:               m.IP,
		ExpiresAt:        m.ExpiresAt,
		RevokedAt:        m.RevokedAt,
		CreatedAt:        m.CreatedAt,
	}
}
