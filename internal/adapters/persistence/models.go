package persistence

import (
	"time"

	"github.com/google/uuid"
)

// Row types are kept apart from domain types so column tags and nullable
// representations never leak into the domain.

type userModel struct {
	ID            uuid.UUID  `gorm:"type:char(36);primaryKey"`
	Email         string     `gorm:"size:255;not null;uniqueIndex:idx_users_email"`
	Username      string     `gorm:"size:30;not null;uniqueIndex:idx_users_username"`
	DisplayName   string     `gorm:"size:60;not null;default:''"`
	Bio           string     `gorm:"size:500;not null;default:''"`
	AvatarImageID *uuid.UUID `gorm:"type:char(36);index"`
	PasswordHash  string     `gorm:"size:100;not null"`
	CreatedAt     time.Time  `gorm:"not null"`
	UpdatedAt     time.Time  `gorm:"not null"`
}

func (userModel) TableName() string { return "users" }

type sessionModel struct {
	ID               uuid.UUID  `gorm:"type:char(36);primaryKey"`
	UserID           uuid.UUID  `gorm:"type:char(36);not null;index"`
	RefreshTokenHash string     `gorm:"size:64;not null;uniqueIndex:idx_sessions_refresh"`
	UserAgent        string     `gorm:"size:255;not null;default:''"`
	IP               string     `gorm:"size:64;not null;default:''"`
	ExpiresAt        time.Time  `gorm:"not null;index"`
	RevokedAt        *time.Time `gorm:"default:null"`
	CreatedAt        time.Time  `gorm:"not null"`
}

func (sessionModel) TableName() string { return "sessions" }

type imageModel struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	OwnerID      uuid.UUID `gorm:"type:char(36);not null;index:idx_images_owner_created,priority:1"`
	Title        string    `gorm:"size:200;not null;default:''"`
	Description  string    `gorm:"size:2000;not null;default:''"`
	FileName     string    `gorm:"size:255;not null"`
	ContentType  string    `gorm:"size:32;not null"`
	SizeBytes    int64     `gorm:"not null"`
	Width        int       `gorm:"not null"`
	Height       int       `gorm:"not null"`
	StorageKey   string    `gorm:"size:255;not null"`
	ThumbnailKey *string   `gorm:"size:255"`
	CreatedAt    time.Time `gorm:"not null;index:idx_images_owner_created,priority:2"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (imageModel) TableName() string { return "images" }

type albumModel struct {
	ID           uuid.UUID  `gorm:"type:char(36);primaryKey"`
	OwnerID      uuid.UUID  `gorm:"type:char(36);not null;uniqueIndex:idx_albums_owner_slug,priority:1"`
	Name         string     `gorm:"size:100;not null"`
	Slug         string     `gorm:"size:120;not null;uniqueIndex:idx_albums_owner_slug,priority:2"`
	Description  string     `gorm:"size:1000;not null;default:''"`
	CoverImageID *uuid.UUID `gorm:"type:char(36)"`
	CreatedAt    time.Time  `gorm:"not null"`
	UpdatedAt    time.Time  `gorm:"not null"`
}

func (albumModel) TableName() string { return "albums" }

type albumImageModel struct {
	AlbumID  uuid.UUID `gorm:"type:char(36);primaryKey"`
	ImageID  uuid.UUID `gorm:"type:char(36);primaryKey;index"`
	Position int       `gorm:"not null"`
	AddedAt  time.Time `gorm:"not null"`
}

func (albumImageModel) TableName() string { return "album_images" }

// albumRow is an album read together with its link count. Fields are
// listed flat: GORM skips unexported embedded structs when scanning.
type albumRow struct {
	ID           uuid.UUID
	OwnerID      uuid.UUID
	Name         string
	Slug         string
	Description  string
	CoverImageID *uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ImageCount   int64
}
