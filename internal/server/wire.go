//go:build wireinject
// +build wireinject

package server

import (
	"context"

	"github.com/google/wire"
	"github.com/ravosoft/photohub/backend/internal/adapters/persistence"
	"github.com/ravosoft/photohub/backend/internal/adapters/rest"
	"github.com/ravosoft/photohub/backend/internal/adapters/rest/middleware"
	"github.com/ravosoft/photohub/backend/internal/adapters/tokenstore"
	albumApp "github.com/ravosoft/photohub/backend/internal/albums/application"
	authApp "github.com/ravosoft/photohub/backend/internal/auth/application"
	imageApp "github.com/ravosoft/photohub/backend/internal/images/application"
	"github.com/ravosoft/photohub/backend/internal/platform/database"
	"github.com/ravosoft/photohub/backend/internal/platform/eventbus"
	"github.com/ravosoft/photohub/backend/internal/platform/i18n"
	"github.com/ravosoft/photohub/backend/internal/platform/logger"
	"github.com/ravosoft/photohub/backend/internal/platform/ownership"
	"github.com/ravosoft/photohub/backend/internal/platform/password"
	"github.com/ravosoft/photohub/backend/internal/platform/seeder"
	"github.com/ravosoft/photohub/backend/internal/platform/storage"
	userApp "github.com/ravosoft/photohub/backend/internal/users/application"
)

var bootstrapSet = wire.NewSet(
	logger.NewBootstrapLogger,
	LoadConfig,
	provideLoggerConfig,
	logger.ProviderSet,
	ConnectDatabase,
)

// InitializeApp creates a fully configured App with all dependencies
func InitializeApp(ctx context.Context) (*App, func(), error) {
	wire.Build(
		bootstrapSet,

		// Infrastructure
		database.ProviderSet,
		persistence.ProviderSet,
		provideTokenStoreConfig,
		tokenstore.ProviderSet,
		provideStorageConfig,
		storage.ProviderSet,

		// Platform services
		ownership.ProviderSet,
		eventbus.ProviderSet,
		password.ProviderSet,
		i18n.ProviderSet,

		// Application services
		provideTokenConfig,
		provideSessionConfig,
		authApp.ProviderSet,
		userApp.ProviderSet,
		provideImageConfig,
		imageApp.ProviderSet,
		albumApp.ProviderSet,
		provideBindings,

		// REST
		middleware.ProviderSet,
		provideCookieConfig,
		provideVersion,
		provideHealthChecks,
		rest.ProviderSet,

		NewHTTPHandler,
		NewHTTPServer,
		NewApp,
	)

	return nil, nil, nil
}

// InitializeMigrator creates the schema migrator and seeders.
func InitializeMigrator(ctx context.Context) (*Migrator, func(), error) {
	wire.Build(
		bootstrapSet,
		persistence.ProviderSet,
		password.ProviderSet,
		provideSeeders,
		seeder.NewOrchestrator,
		NewMigrator,
	)

	return nil, nil, nil
}
