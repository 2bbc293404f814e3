package server

import (
	"context"
	"fmt"
	"time"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/ravosoft/photohub/backend/internal/adapters/persistence"
	"github.com/ravosoft/photohub/backend/internal/platform/logger"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ConnectDatabase opens the configured database, checks it with a ping and
// returns it with a cleanup function.
func ConnectDatabase(ctx context.Context, config Config, log logger.Logger) (*gorm.DB, func(), error) {
	log.Info(ctx, "connecting to database", "driver", config.DatabaseDriver)

	dialector, err := openDialector(config)
	if err != nil {
		log.Error(ctx, "Database connect failed!", "error", err)
		return nil, nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.NewGormAdapter(log, config.LogLevel),
	})
	if err != nil {
		log.Error(ctx, "Database connect failed!", "error", err)
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Error(ctx, "Database connect failed!", "error", err)
		return nil, nil, fmt.Errorf("failed to access connection pool: %w", err)
	}

	if config.DatabaseDriver == "sqlite" {
		// SQLite allows one writer; a single connection also keeps :memory: stable.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
		sqlDB.SetConnMaxIdleTime(1 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		log.Error(ctx, "Database connect failed!", "error", err)
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if config.AutoMigrate {
		if err := persistence.Migrate(ctx, db); err != nil {
			_ = sqlDB.Close()
			log.Error(ctx, "failed to migrate database", "error", err)
			return nil, nil, err
		}
		log.Info(ctx, "database schema migrated")
	}

	log.Info(ctx, "connected to database")

	cleanup := func() {
		log.Info(context.Background(), "closing database connection pool")
		_ = sqlDB.Close()
	}
	return db, cleanup, nil
}

func openDialector(config Config) (gorm.Dialector, error) {
	switch config.DatabaseDriver {
	case "mysql":
		dsn, err := mysqlDSN(config.DatabaseURL, config.MySQLPassword)
		if err != nil {
			return nil, err
		}
		return mysql.Open(dsn), nil
	case "postgres":
		return postgres.Open(config.DatabaseURL), nil
	case "sqlite":
		return sqlite.Open(config.DatabaseURL), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", config.DatabaseDriver)
	}
}

// mysqlDSN fills in MYSQL_PASSWORD when the DSN carries none and forces the
// options the repositories rely on.
func mysqlDSN(raw, password string) (string, error) {
	cfg, err := mysqldrv.ParseDSN(raw)
	if err != nil {
		return "", fmt.Errorf("invalid DATABASE_URL: %w", err)
	}
	if cfg.Passwd == "" {
		cfg.Passwd = password
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	if cfg.Params == nil {
		cfg.Params = map[string]string{}
	}
	if _, ok := cfg.Params["charset"]; !ok {
		cfg.Params["charset"] = "utf8mb4"
	}
	return cfg.FormatDSN(), nil
}
