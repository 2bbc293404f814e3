package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/ravosoft/photohub/backend/internal/platform/logger"
	"github.com/spf13/viper"
)

const environmentDevelopment = "development"

// DefaultCORSOrigins are the browser clients allowed to call the API with
// credentials.
var DefaultCORSOrigins = []string{
	"http://localhost:5173",
	"https://drive.ravosoft.com",
	"https://photohub-alpha.vercel.app",
}

type Config struct {
	Port        string `mapstructure:"PORT"`
	Environment string `mapstructure:"ENVIRONMENT"`
	LogLevel    string `mapstructure:"LOG_LEVEL"` // Logging level (debug, info, warn, error)

	DatabaseDriver string `mapstructure:"DATABASE_DRIVER"` // mysql, postgres or sqlite
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	MySQLPassword  string `mapstructure:"MYSQL_PASSWORD"` // Injected into a MySQL DSN that has no password
	AutoMigrate    bool   `mapstructure:"AUTO_MIGRATE"`

	JWTSecret       string        `mapstructure:"JWT_SECRET"`
	JWTIssuer       string        `mapstructure:"JWT_ISSUER"`
	AccessTokenTTL  time.Duration `mapstructure:"ACCESS_TOKEN_TTL"`
	RefreshTokenTTL time.Duration `mapstructure:"REFRESH_TOKEN_TTL"`
	CookieSecure    bool          `mapstructure:"COOKIE_SECURE"`
	CookieDomain    string        `mapstructure:"COOKIE_DOMAIN"`

	RedisURL string `mapstructure:"REDIS_URL"`

	StorageDriver      string `mapstructure:"STORAGE_DRIVER"`
	StorageDir         string `mapstructure:"STORAGE_DIR"`
	GCSBucket          string `mapstructure:"GCS_BUCKET"`
	GCSCredentialsFile string `mapstructure:"GCS_CREDENTIALS_FILE"`

	StaticDir        string   `mapstructure:"STATIC_DIR"`
	CORSOrigins      []string `mapstructure:"CORS_ORIGINS"`
	MaxJSONBodyBytes int64    `mapstructure:"MAX_JSON_BODY_BYTES"`

	MaxUploadBytes    int64 `mapstructure:"MAX_UPLOAD_BYTES"`
	MaxFilesPerUpload int   `mapstructure:"MAX_FILES_PER_UPLOAD"`
	UploadConcurrency int   `mapstructure:"UPLOAD_CONCURRENCY"`
	ThumbnailSize     int   `mapstructure:"THUMBNAIL_SIZE"`

	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`

	SeedEmail    string `mapstructure:"SEED_EMAIL"`
	SeedPassword string `mapstructure:"SEED_PASSWORD"`
}

func (c Config) IsDevelopment() bool {
	return c.Environment == environmentDevelopment
}

// Addr is the listen address derived from PORT.
func (c Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

var defaults = map[string]any{
	"PORT":                 "8000",
	"ENVIRONMENT":          environmentDevelopment,
	"LOG_LEVEL":            "info",
	"DATABASE_DRIVER":      "mysql",
	"DATABASE_URL":         "root@tcp(localhost:3306)/photohub?parseTime=true&charset=utf8mb4",
	"MYSQL_PASSWORD":       "",
	"AUTO_MIGRATE":         false,
	"JWT_SECRET":           "",
	"JWT_ISSUER":           "photohub",
	"ACCESS_TOKEN_TTL":     "15m",
	"REFRESH_TOKEN_TTL":    "168h",
	"COOKIE_SECURE":        false,
	"COOKIE_DOMAIN":        "",
	"REDIS_URL":            "",
	"STORAGE_DRIVER":       "local",
	"STORAGE_DIR":          "data/uploads",
	"GCS_BUCKET":           "",
	"GCS_CREDENTIALS_FILE": "",
	"STATIC_DIR":           "public",
	"CORS_ORIGINS":         DefaultCORSOrigins,
	"MAX_JSON_BODY_BYTES":  1 << 20,
	"MAX_UPLOAD_BYTES":     20 << 20,
	"MAX_FILES_PER_UPLOAD": 20,
	"UPLOAD_CONCURRENCY":   4,
	"THUMBNAIL_SIZE":       400,
	"SHUTDOWN_TIMEOUT":     "0s",
	"SEED_EMAIL":           "",
	"SEED_PASSWORD":        "",
}

func LoadConfig(bootstrapLogger *logger.BootstrapLogger) (Config, error) {
	ctx := context.Background()

	// A missing .env is fine; the process environment still applies.
	if err := godotenv.Load(); err != nil {
		bootstrapLogger.Info(ctx, "no .env file found, using environment variables only")
	} else {
		bootstrapLogger.Info(ctx, "loaded .env file")
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		bootstrapLogger.Error(ctx, "failed to unmarshal configuration", "error", err)
		return Config{}, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	config.CORSOrigins = trimAll(config.CORSOrigins)

	if config.MySQLPassword != "" {
		bootstrapLogger.Info(ctx, "has env")
	} else {
		bootstrapLogger.Info(ctx, "not found env")
	}

	if err := config.validate(); err != nil {
		bootstrapLogger.Error(ctx, "configuration validation failed", "error", err)
		return Config{}, err
	}

	if config.JWTSecret == "" {
		secret, err := ephemeralSecret()
		if err != nil {
			return Config{}, err
		}
		config.JWTSecret = secret
		bootstrapLogger.Warn(ctx, "JWT_SECRET not set, tokens will not survive a restart")
	}

	bootstrapLogger.Info(ctx, "configuration loaded",
		"environment", config.Environment,
		"log_level", config.LogLevel,
		"port", config.Port,
		"database_driver", config.DatabaseDriver,
		"storage_driver", config.StorageDriver,
	)
	return config, nil
}

func (c Config) validate() error {
	switch c.DatabaseDriver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("DATABASE_DRIVER must be mysql, postgres or sqlite, got %q", c.DatabaseDriver)
	}
	if c.Port == "" {
		return errors.New("PORT must not be empty")
	}
	if c.JWTSecret == "" && !c.IsDevelopment() {
		return errors.New("JWT_SECRET is required outside development")
	}
	if c.JWTSecret != "" && len(c.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 bytes")
	}
	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return errors.New("ACCESS_TOKEN_TTL and REFRESH_TOKEN_TTL must be positive")
	}
	if c.MaxUploadBytes <= 0 {
		return errors.New("MAX_UPLOAD_BYTES must be positive")
	}
	if c.ShutdownTimeout < 0 {
		return errors.New("SHUTDOWN_TIMEOUT must not be negative")
	}
	return nil
}

func ephemeralSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate JWT secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
