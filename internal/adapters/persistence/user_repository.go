package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ravosoft/photohub/backend/internal/platform/database"
	"github.com/ravosoft/photohub/backend/internal/users/domain"
	"github.com/ravosoft/photohub/backend/internal/users/ports"
	"gorm.io/gorm"
)

type UserRepository struct {
	database.BaseRepository
}

func NewUserRepository(db *gorm.DB) ports.UserRepository {
	return &UserRepository{BaseRepository: database.NewBaseRepository(db)}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	row := toUserModel(user)
	if err := r.Conn(ctx).Create(&row).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return r.conflict(ctx, user)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// conflict works out which unique column fired. Translated driver errors
// no longer name the index, so the taken value is looked up instead.
func (r *UserRepository) conflict(ctx context.Context, user *domain.User) error {
	taken, err := r.ExistsByUsername(ctx, user.Username)
	if err == nil && taken {
		return ports.ErrUsernameTaken
	}
	return ports.ErrEmailTaken
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var row userModel
	if err := r.Conn(ctx).Where("id = ?", id).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return row.toDomain(), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var row userModel
	if err := r.Conn(ctx).Where("email = ?", email).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return row.toDomain(), nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	res := r.Conn(ctx).Model(&userModel{}).Where("id = ?", user.ID).Updates(map[string]any{
		"display_name":    user.DisplayName,
		"bio":             user.Bio,
		"avatar_image_id": user.AvatarImageID,
		"password_hash":   user.PasswordHash,
		"updated_at":      user.UpdatedAt,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ports.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.Conn(ctx).Where("id = ?", id).Delete(&userModel{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ports.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.Conn(ctx).Model(&userModel{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return count > 0, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.Conn(ctx).Model(&userModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}

func (r *UserRepository) ClearAvatar(ctx context.Context, imageID uuid.UUID) error {
	err := r.Conn(ctx).Model(&userModel{}).
		Where("avatar_image_id = ?", imageID).
		Update("avatar_image_id", nil).Error
	if err != nil {
		return fmt.Errorf("failed to clear avatar: %w", err)
	}
	return nil
}

func toUserModel(u *domain.User) userModel {
	return userModel{
		ID:            u.ID,
		Email:         u.Email,
		Username:      u.Username,
		DisplayName:   u.DisplayName,
		Bio:           u.Bio,
		AvatarImageID: u.AvatarImageID,
		PasswordHash:  u.PasswordHash,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func (m userModel) toDomain() *domain.User {
	return &domain.User{
		ID:            m.ID,
		Email:         m.Email,
		Username:      m.Username,
		DisplayName:   m.DisplayName,
		Bio:           m.Bio,
		AvatarImageID: m.AvatarImageID,
		PasswordHash:  m.PasswordHash,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
