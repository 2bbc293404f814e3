package domain

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 2000
)

var (
	ErrTitleTooLong       = errors.New("title must not exceed 200 characters")
	ErrDescriptionTooLong = errors.New("description must not exceed 2000 characters")
)

type Image struct {
	ID           uuid.UUID
	OwnerID      uuid.UUID
	Title        string
	Description  string
	FileName     string
	ContentType  string
	SizeBytes    int64
	Width        int
	Height       int
	StorageKey   string
	ThumbnailKey *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewImage describes an uploaded file. The title defaults to the file name
// without its extension.
func NewImage(ownerID uuid.UUID, fileName, contentType, ext string, size int64, width, height int) *Image {
	id := uuid.New()
	now := time.Now().UTC()
	fileName = path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	title := strings.TrimSuffix(fileName, path.Ext(fileName))
	if utf8.RuneCountInString(title) > MaxTitleLength {
		title = string([]rune(title)[:MaxTitleLength])
	}

	return &Image{
		ID:          id,
		OwnerID:     ownerID,
		Title:       title,
		FileName:    fileName,
		ContentType: contentType,
		SizeBytes:   size,
		Width:       width,
		Height:      height,
		StorageKey:  StorageKey(ownerID, id, ext),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Update applies non-nil fields.
func (i *Image) Update(title, description *string) error {
	if title != nil && utf8.RuneCountInString(*title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if description != nil && utf8.RuneCountInString(*description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	if title != nil {
		i.Title = *title
	}
	if description != nil {
		i.Description = *description
	}
	i.UpdatedAt = time.Now().UTC()
	return nil
}

func (i *Image) HasThumbnail() bool {
	return i.ThumbnailKey != nil && *i.ThumbnailKey != ""
}

func StorageKey(ownerID, imageID uuid.UUID, ext string) string {
	return fmt.Sprintf("images/%s/%s%s", ownerID, imageID, ext)
}

func ThumbnailKey(ownerID, imageID uuid.UUID) string {
	return fmt.Sprintf("thumbs/%s/%s.jpg", ownerID, imageID)
}
