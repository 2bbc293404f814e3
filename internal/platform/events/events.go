package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/ravosoft/photohub/backend/internal/platform/eventbus"
)

const (
	ImageUploadedTopic eventbus.Topic = "images.uploaded"
	ImageDeletedTopic  eventbus.Topic = "images.deleted"
	UserDeletedTopic   eventbus.Topic = "users.deleted"
)

// ImageUploadedEvent triggers thumbnail generation.
type ImageUploadedEvent struct {
	ImageID     uuid.UUID
	OwnerID     uuid.UUID
	StorageKey  string
	ContentType string
	OccurredAt  time.Time
}

// ImageDeletedEvent is published after the row and files are gone.
type ImageDeletedEvent struct {
	ImageID    uuid.UUID
	OwnerID    uuid.UUID
	OccurredAt time.Time
}

// UserDeletedEvent fans out account removal to every context that owns
// per-user data.
type UserDeletedEvent struct {
	UserID     uuid.UUID
	OccurredAt time.Time
}
