package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAlbum(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantSlug string
		wantErr  error
	}{
		{name: "plain", input: "Summer Trip 2024", wantSlug: "summer-trip-2024"},
		{name: "diacritics", input: "Đà Lạt mùa đông", wantSlug: "da-lat-mua-dong"},
		{name: "symbols only", input: "!!!", wantSlug: "album"},
		{name: "blank", input: "   ", wantErr: ErrNameRequired},
		{name: "too long", input: strings.Repeat("a", MaxNameLength+1), wantErr: ErrNameTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			album, err := NewAlbum(uuid.New(), tt.input, "")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSlug, album.Slug)
			assert.Nil(t, album.CoverImageID)
		})
	}
}

func TestAlbum_Rename(t *testing.T) {
	album, err := NewAlbum(uuid.New(), "Trip", "")
	require.NoError(t, err)
	album.Slug = "trip-2"

	changed, err := album.Rename(" Trip ")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, "trip-2", album.Slug, "unchanged name keeps its slug")

	changed, err = album.Rename("Road Trip")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "road-trip", album.Slug)
}

func TestAlbum_Cover(t *testing.T) {
	album, err := NewAlbum(uuid.New(), "Trip", "")
	require.NoError(t, err)

	id := uuid.New()
	album.SetCover(&id)
	assert.True(t, album.IsCover(id))
	assert.False(t, album.IsCover(uuid.New()))

	album.SetCover(nil)
	assert.False(t, album.IsCover(id))
}
