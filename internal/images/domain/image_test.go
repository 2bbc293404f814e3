package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewImage(t *testing.T) {
	owner := uuid.New()
	img := NewImage(owner, `C:\photos\beach day.JPG`, "image/jpeg", ".jpg", 1024, 800, 600)

	assert.Equal(t, "beach day.JPG", img.FileName)
	assert.Equal(t, "beach day", img.Title)
	assert.Equal(t, "images/"+owner.String()+"/"+img.ID.String()+".jpg", img.StorageKey)
	assert.False(t, img.HasThumbnail())
	assert.Equal(t, "thumbs/"+owner.String()+"/"+img.ID.String()+".jpg", ThumbnailKey(owner, img.ID))
}

func TestImage_Update(t *testing.T) {
	img := NewImage(uuid.New(), "a.png", "image/png", ".png", 1, 1, 1)

	title := "Sunset"
	require.NoError(t, img.Update(&title, nil))
	assert.Equal(t, "Sunset", img.Title)
	assert.Empty(t, img.Description)

	long := strings.Repeat("x", MaxDescriptionLength+1)
	assert.ErrorIs(t, img.Update(nil, &long), ErrDescriptionTooLong)
	assert.Equal(t, "Sunset", img.Title)
}

func TestListQuery_Offset(t *testing.T) {
	assert.Equal(t, 0, ListQuery{Page: 1, PageSize: 24}.Offset())
	assert.Equal(t, 48, ListQuery{Page: 3, PageSize: 24}.Offset())
}

func TestSortOrder_Valid(t *testing.T) {
	assert.True(t, SortLargest.Valid())
	assert.False(t, SortOrder("random").Valid())
}
