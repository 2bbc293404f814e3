package application

import (
	"github.com/google/wire"
	"github.com/ravosoft/photohub/backend/internal/platform/password"
)

var ProviderSet = wire.NewSet(
	NewUserService,
	wire.Bind(new(PasswordVerifier), new(*password.Hasher)),
)
