package application

import (
	"github.com/google/wire"
	"github.com/ravosoft/photohub/backend/internal/platform/password"
)

var ProviderSet = wire.NewSet(
	NewTokenIssuer,
	NewAuthService,
	wire.Bind(new(PasswordHasher), new(*password.Hasher)),
)
