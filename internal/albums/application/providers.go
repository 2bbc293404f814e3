package application

import (
	"github.com/google/wire"
	imagePorts "github.com/ravosoft/photohub/backend/internal/images/ports"
)

var ProviderSet = wire.NewSet(
	NewAlbumService,
	wire.Bind(new(imagePorts.AlbumLinker), new(*AlbumService)),
)
