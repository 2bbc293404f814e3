package server

import (
	"context"
	"fmt"

	"github.com/ravosoft/photohub/backend/internal/adapters/persistence"
	"github.com/ravosoft/photohub/backend/internal/adapters/rest"
	"github.com/ravosoft/photohub/backend/internal/adapters/tokenstore"
	albumApp "github.com/ravosoft/photohub/backend/internal/albums/application"
	authApp "github.com/ravosoft/photohub/backend/internal/auth/application"
	imageApp "github.com/ravosoft/photohub/backend/internal/images/application"
	"github.com/ravosoft/photohub/backend/internal/platform/eventbus"
	"github.com/ravosoft/photohub/backend/internal/platform/logger"
	"github.com/ravosoft/photohub/backend/internal/platform/ownership"
	"github.com/ravosoft/photohub/backend/internal/platform/password"
	"github.com/ravosoft/photohub/backend/internal/platform/seeder"
	"github.com/ravosoft/photohub/backend/internal/platform/storage"
	userApp "github.com/ravosoft/photohub/backend/internal/users/application"
	"github.com/ravosoft/photohub/backend/internal/users/ports"
	userSeeder "github.com/ravosoft/photohub/backend/internal/users/seeder"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Version is overridden at build time with -ldflags.
var Version = "dev"

func provideVersion() rest.Version {
	return rest.Version(Version)
}

func provideLoggerConfig(config Config) logger.Config {
	return logger.Config{
		Environment: config.Environment,
		LogLevel:    config.LogLevel,
	}
}

func provideTokenConfig(config Config) authApp.TokenConfig {
	return authApp.TokenConfig{
		Secret:    config.JWTSecret,
		Issuer:    config.JWTIssuer,
		AccessTTL: config.AccessTokenTTL,
	}
}

func provideSessionConfig(config Config) authApp.SessionConfig {
	return authApp.SessionConfig{RefreshTTL: config.RefreshTokenTTL}
}

func provideCookieConfig(config Config) rest.CookieConfig {
	return rest.CookieConfig{Secure: config.CookieSecure, Domain: config.CookieDomain}
}

func provideImageConfig(config Config) imageApp.Config {
	return imageApp.Config{
		MaxUploadBytes:    config.MaxUploadBytes,
		MaxFilesPerUpload: config.MaxFilesPerUpload,
		Concurrency:       config.UploadConcurrency,
		ThumbnailSize:     config.ThumbnailSize,
	}
}

func provideStorageConfig(config Config) storage.Config {
	return storage.Config{
		Driver:          config.StorageDriver,
		Dir:             config.StorageDir,
		Bucket:          config.GCSBucket,
		CredentialsFile: config.GCSCredentialsFile,
	}
}

func provideTokenStoreConfig(config Config) tokenstore.Config {
	return tokenstore.Config{RedisURL: config.RedisURL}
}

// provideHealthChecks probes the database, and Redis when it is configured.
func provideHealthChecks(db *gorm.DB, rdb *redis.Client) rest.HealthChecks {
	checks := rest.HealthChecks{{
		Name: "database",
		Check: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}}
	if rdb != nil {
		checks = append(checks, rest.HealthCheck{
			Name: "redis",
			Check: func(ctx context.Context) error {
				return rdb.Ping(ctx).Err()
			},
		})
	}
	return checks
}

// provideBindings wires the contexts together: ownership checkers for
// cross-context lookups and subscribers for domain events.
func provideBindings(
	bus *eventbus.Bus,
	registry ownership.Registry,
	auth *authApp.AuthService,
	users *userApp.UserService,
	images *imageApp.ImageService,
	albums *albumApp.AlbumService,
) Bindings {
	images.RegisterOwnership(registry)
	albums.RegisterOwnership(registry)

	auth.RegisterSubscribers(bus)
	users.RegisterSubscribers(bus)
	images.RegisterSubscribers(bus)
	albums.RegisterSubscribers(bus)
	return Bindings{}
}

func provideSeeders(users ports.UserRepository, hasher *password.Hasher, config Config, log logger.Logger) []seeder.Seeder {
	return []seeder.Seeder{
		userSeeder.NewDemoUserSeeder(users, hasher, userSeeder.DemoConfig{
			Email:    config.SeedEmail,
			Password: config.SeedPassword,
		}, log),
	}
}

// Migrator applies the schema and runs the seeders.
type Migrator struct {
	db      *gorm.DB
	seeders *seeder.Orchestrator
	log     logger.Logger
}

func NewMigrator(db *gorm.DB, seeders *seeder.Orchestrator, log logger.Logger) *Migrator {
	return &Migrator{db: db, seeders: seeders, log: log}
}

func (m *Migrator) Run(ctx context.Context) error {
	if err := persistence.Migrate(ctx, m.db); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	m.log.Info(ctx, "database schema migrated")
	return m.seeders.RunAll(ctx)
}
