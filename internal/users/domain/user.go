package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	ErrInvalidUsername  = errors.New("invalid username format")
	ErrUsernameTooShort = errors.New("username must be at least 3 characters")
	ErrUsernameTooLong  = errors.New("username must not exceed 30 characters")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrDisplayNameLong  = errors.New("display name must not exceed 60 characters")
	ErrBioTooLong       = errors.New("bio must not exceed 500 characters")
)

const (
	MaxDisplayNameLength = 60
	MaxBioLength         = 500
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

type User struct {
	ID            uuid.UUID
	Email         string
	Username      string
	DisplayName   string
	Bio           string
	AvatarImageID *uuid.UUID
	PasswordHash  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewUser validates identity fields. Email is stored lower-cased so
// lookups are case-insensitive on every database.
func NewUser(email, username, passwordHash string) (*User, error) {
	email = NormalizeEmail(email)
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &User{
		ID:           uuid.New(),
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// UpdateProfile applies non-nil fields. An empty string clears the field.
func (u *User) UpdateProfile(displayName, bio *string) error {
	if displayName != nil {
		if utf8.RuneCountInString(*displayName) > MaxDisplayNameLength {
			return ErrDisplayNameLong
		}
		u.DisplayName = strings.TrimSpace(*displayName)
	}
	if bio != nil {
		if utf8.RuneCountInString(*bio) > MaxBioLength {
			return ErrBioTooLong
		}
		u.Bio = strings.TrimSpace(*bio)
	}
	u.touch()
	return nil
}

func (u *User) SetAvatar(imageID *uuid.UUID) {
	u.AvatarImageID = imageID
	u.touch()
}

func (u *User) ChangePasswordHash(hash string) {
	u.PasswordHash = hash
	u.touch()
}

func (u *User) touch() {
	u.UpdatedAt = time.Now().UTC()
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidateEmail(email string) error {
	if email == "" || !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

func ValidateUsername(username string) error {
	if len(username) < 3 {
		return ErrUsernameTooShort
	}
	if len(username) > 30 {
		return ErrUsernameTooLong
	}
	if !usernameRegex.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}
