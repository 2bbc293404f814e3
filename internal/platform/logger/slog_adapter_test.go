package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/ravosoft/photohub/backend/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logger.ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, logger.ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, logger.ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel("bogus"))
}

func TestSlogAdapter_JSONOutsideDevelopment(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewSlogAdapterWriter(&buf, "production", "info")

	log.Debug(context.Background(), "hidden")
	log.Info(context.Background(), "image uploaded", "image_id", "abc")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "image uploaded", record["msg"])
	assert.Equal(t, "abc", record["image_id"])
	assert.Equal(t, "photohub", record["service"])
}

func TestSlogAdapter_TextInDevelopment(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewSlogAdapterWriter(&buf, "development", "debug").With("component", "test")

	log.Debug(context.Background(), "hello")

	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "component=test")
}
