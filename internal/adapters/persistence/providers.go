package persistence

import "github.com/google/wire"

var ProviderSet = wire.NewSet(
	NewUserRepository,
	NewSessionRepository,
	NewImageRepository,
	NewAlbumRepository,
)
