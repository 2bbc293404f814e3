package tokenstore

import (
	"context"

	"github.com/google/wire"
	"github.com/ravosoft/photohub/backend/internal/auth/ports"
	"github.com/ravosoft/photohub/backend/internal/platform/logger"
	"github.com/redis/go-redis/v9"
)

type Config struct {
	RedisURL string
}

var ProviderSet = wire.NewSet(
	ProvideRedisClient,
	ProvideDenylist,
)

// ProvideRedisClient returns nil when Redis is not configured.
func ProvideRedisClient(ctx context.Context, cfg Config, log logger.Logger) (*redis.Client, func(), error) {
	if cfg.RedisURL == "" {
		log.Info(ctx, "redis not configured, token denylist kept in memory")
		return nil, func() {}, nil
	}

	rdb, err := NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	log.Info(ctx, "connected to redis")
	return rdb, func() { _ = rdb.Close() }, nil
}

func ProvideDenylist(rdb *redis.Client) ports.TokenDenylist {
	if rdb == nil {
		return NewMemoryDenylist()
	}
	return NewRedisDenylist(rdb)
}
