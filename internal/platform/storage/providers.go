package storage

import (
	"context"
	"fmt"

	"github.com/google/wire"
	"github.com/ravosoft/photohub/backend/internal/platform/logger"
)

const (
	DriverLocal = "local"
	DriverGCS   = "gcs"
)

type Config struct {
	Driver          string
	Dir             string
	Bucket          string
	CredentialsFile string
}

var ProviderSet = wire.NewSet(ProvideStorage)

func ProvideStorage(ctx context.Context, cfg Config, log logger.Logger) (Storage, func(), error) {
	switch cfg.Driver {
	case "", DriverLocal:
		s, err := NewLocalStorage(cfg.Dir)
		if err != nil {
			return nil, nil, err
		}
		log.Info(ctx, "using local object storage", "dir", cfg.Dir)
		return s, func() {}, nil
	case DriverGCS:
		s, cleanup, err := NewGCSStorage(ctx, cfg.Bucket, cfg.CredentialsFile)
		if err != nil {
			return nil, nil, err
		}
		log.Info(ctx, "using gcs object storage", "bucket", cfg.Bucket)
		return s, cleanup, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
