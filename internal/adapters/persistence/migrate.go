package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Migrate creates or alters every table the service uses.
func Migrate(ctx context.Context, db *gorm.DB) error {
	err := db.WithContext(ctx).AutoMigrate(
		&userModel{},
		&sessionModel{},
		&imageModel{},
		&albumModel{},
		&albumImageModel{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
