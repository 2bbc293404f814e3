package storage_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/ravosoft/photohub/backend/internal/platform/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_PutOpenDelete(t *testing.T) {
	s, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "images/owner/abc.png", strings.NewReader("png-bytes"), "image/png"))

	rc, err := s.Open(ctx, "images/owner/abc.png")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, s.Delete(ctx, "images/owner/abc.png"))
	require.NoError(t, s.Delete(ctx, "images/owner/abc.png"), "delete is idempotent")

	_, err = s.Open(ctx, "images/owner/abc.png")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestLocalStorage_RejectsEscapingKeys(t *testing.T) {
	s, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "/etc/passwd", "../outside.txt", "images/../../x"} {
		err := s.Put(context.Background(), key, strings.NewReader("x"), "text/plain")
		assert.ErrorIs(t, err, storage.ErrInvalidKey, key)
	}
}

func TestLocalStorage_PutHonoursCancellation(t *testing.T) {
	s, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = s.Put(ctx, "images/a.png", strings.NewReader("data"), "image/png")
	assert.ErrorIs(t, err, context.Canceled)

	_, err = s.Open(context.Background(), "images/a.png")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
