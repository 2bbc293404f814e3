package domain_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/ravosoft/photohub/backend/internal/users/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	user, err := domain.NewUser("  Alice@Example.COM ", "alice_01", "hash")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "alice_01", user.Username)
	assert.Equal(t, "hash", user.PasswordHash)
	assert.NotZero(t, user.CreatedAt)
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)
}

func TestNewUser_Validation(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		username string
		wantErr  error
	}{
		{"bad email", "not-an-email", "alice", domain.ErrInvalidEmail},
		{"empty email", "", "alice", domain.ErrInvalidEmail},
		{"short username", "a@b.co", "al", domain.ErrUsernameTooShort},
		{"long username", "a@b.co", strings.Repeat("a", 31), domain.ErrUsernameTooLong},
		{"bad characters", "a@b.co", "alice!", domain.ErrInvalidUsername},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewUser(tt.email, tt.username, "hash")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUser_UpdateProfile(t *testing.T) {
	user, err := domain.NewUser("a@b.co", "alice", "hash")
	require.NoError(t, err)

	name := " Alice "
	require.NoError(t, user.UpdateProfile(&name, nil))
	assert.Equal(t, "Alice", user.DisplayName)
	assert.Empty(t, user.Bio)

	empty := ""
	require.NoError(t, user.UpdateProfile(&empty, nil))
	assert.Empty(t, user.DisplayName)

	long := strings.Repeat("x", domain.MaxBioLength+1)
	assert.ErrorIs(t, user.UpdateProfile(nil, &long), domain.ErrBioTooLong)
}

func TestUser_SetAvatar(t *testing.T) {
	user, err := domain.NewUser("a@b.co", "alice", "hash")
	require.NoError(t, err)

	id := uuid.New()
	user.SetAvatar(&id)
	assert.Equal(t, &id, user.AvatarImageID)

	user.SetAvatar(nil)
	assert.Nil(t, user.AvatarImageID)
}
