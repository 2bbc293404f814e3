package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/ravosoft/photohub/backend/internal/platform/validator"
)

const (
	MaxNameLength        = 100
	MaxDescriptionLength = 1000
	MaxSlugLength        = 120

	fallbackSlug = "album"
)

var (
	ErrNameRequired       = errors.New("album name is required")
	ErrNameTooLong        = errors.New("album name must not exceed 100 characters")
	ErrDescriptionTooLong = errors.New("album description must not exceed 1000 characters")
)

type Album struct {
	ID           uuid.UUID
	OwnerID      uuid.UUID
	Name         string
	Slug         string
	Description  string
	CoverImageID *uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// ImageCount is filled by reads, never written.
	ImageCount int64
}

func NewAlbum(ownerID uuid.UUID, name, description string) (*Album, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return nil, ErrDescriptionTooLong
	}

	now := time.Now().UTC()
	return &Album{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        name,
		Slug:        BaseSlug(name),
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Rename reports whether the name changed, in which case the slug was
// reset to its base form and needs a uniqueness pass.
func (a *Album) Rename(name string) (bool, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return false, err
	}
	if name == a.Name {
		return false, nil
	}
	a.Name = name
	a.Slug = BaseSlug(name)
	a.touch()
	return true, nil
}

func (a *Album) SetDescription(description string) error {
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	a.Description = description
	a.touch()
	return nil
}

func (a *Album) SetCover(imageID *uuid.UUID) {
	a.CoverImageID = imageID
	a.touch()
}

func (a *Album) IsCover(imageID uuid.UUID) bool {
	return a.CoverImageID != nil && *a.CoverImageID == imageID
}

func (a *Album) touch() {
	a.UpdatedAt = time.Now().UTC()
}

// BaseSlug derives the URL slug from a name. Names with no usable
// characters get a generic slug.
func BaseSlug(name string) string {
	slug := validator.GenerateSlug(name, MaxSlugLength)
	if slug == "" {
		return fallbackSlug
	}
	return slug
}

func validateName(name string) error {
	if name == "" {
		return ErrNameRequired
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}
