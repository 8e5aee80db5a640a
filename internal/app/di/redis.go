package di

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"tickertalk/internal/platform/config"
	infraredis "tickertalk/internal/platform/redis"
)

// NewRedis returns a Redis client when the cache is configured and reachable.
// Otherwise it returns nil and the application runs without a cache.
func NewRedis(ctx context.Context, cfg config.RedisConfig) *redis.Client {
	if !cfg.CacheEnabled() {
		return nil
	}
	rdb, err := infraredis.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable. Running without cache.")
		return nil
	}
	return rdb
}
