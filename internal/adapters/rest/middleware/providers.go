package middleware

import (
	"github.com/google/wire"
	"github.com/ravosoft/photohub/backend/internal/auth/application"
)

// ProviderSet is the wire provider set for middleware components
var ProviderSet = wire.NewSet(
	NewAuthMiddleware,
	NewErrorReporter,
	wire.Bind(new(Authenticator), new(*application.AuthService)),
)
