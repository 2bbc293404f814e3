package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(context.Background(), db))
	return db
}

func seedImage(t *testing.T, db *gorm.DB, owner uuid.UUID, title string, size int64, created time.Time) imageModel {
	t.Helper()
	id := uuid.New()
	row := imageModel{
		ID:          id,
		OwnerID:     owner,
		Title:       title,
		FileName:    title + ".jpg",
		ContentType: "image/jpeg",
		SizeBytes:   size,
		Width:       10,
		Height:      10,
		StorageKey:  "images/" + owner.String() + "/" + id.String() + ".jpg",
		CreatedAt:   created,
		UpdatedAt:   created,
	}
	require.NoError(t, db.Create(&row).Error)
	return row
}
