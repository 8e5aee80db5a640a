// Package di provides dependency injection factories for creating application components.
package di

import (
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"tickertalk/internal/feature/marketdata/usecase"
	"tickertalk/internal/platform/cache"
	"tickertalk/internal/platform/config"
	"tickertalk/internal/platform/externalapi/rapidapi"
	infrahttp "tickertalk/internal/platform/http"
	"tickertalk/internal/platform/metrics"
)

// NewGateway creates the RapidAPI gateway with its own HTTP client.
// If rdb is non-nil and a cache TTL is configured, results are cached in Redis.
func NewGateway(cfg *config.Config, recorder *metrics.Recorder, rdb *redis.Client) usecase.Gateway {
	rcfg := rapidapi.LoadConfig(cfg.RapidAPI)
	httpClient := infrahttp.NewHTTPClient(rcfg.Timeout)

	var gw usecase.Gateway = rapidapi.NewGateway(rcfg, httpClient, recorder)
	if rdb != nil && cfg.Redis.CacheEnabled() {
		log.Info().Dur("ttl", cfg.Redis.CacheTTL).Msg("market data cache enabled")
		gw = cache.NewCachingGateway(rdb, cfg.Redis.CacheTTL, gw, "marketdata")
	}
	return gw
}
