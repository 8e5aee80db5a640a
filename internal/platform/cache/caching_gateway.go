// Package cache provides caching implementations for gateway interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"tickertalk/internal/feature/marketdata/domain/entity"
	"tickertalk/internal/feature/marketdata/usecase"
)

// CachingGateway decorates a market data Gateway with Redis caching.
// Only successful results are cached; failures always pass through.
type CachingGateway struct {
	inner     usecase.Gateway
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.Gateway = (*CachingGateway)(nil)

// NewCachingGateway decorates a Gateway with Redis caching.
// If ttl is 0, it defaults to 1 minute. If namespace is empty, it uses "marketdata".
func NewCachingGateway(rdb *redis.Client, ttl time.Duration, inner usecase.Gateway, namespace string) *CachingGateway {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if namespace == "" {
		namespace = "marketdata"
	}
	return &CachingGateway{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Quote returns the cached quote body or fetches it from the inner gateway.
func (c *CachingGateway) Quote(ctx context.Context, ticker string) (json.RawMessage, error) {
	return cached(ctx, c, c.cacheKey("quote", ticker), func() (json.RawMessage, error) {
		return c.inner.Quote(ctx, ticker)
	})
}

// News returns the cached news items or fetches them from the inner gateway.
func (c *CachingGateway) News(ctx context.Context, ticker string) ([]entity.NewsItem, error) {
	return cached(ctx, c, c.cacheKey("news", ticker), func() ([]entity.NewsItem, error) {
		return c.inner.News(ctx, ticker)
	})
}

// Profile returns the cached profile body or fetches it from the inner gateway.
func (c *CachingGateway) Profile(ctx context.Context, ticker, module string) (json.RawMessage, error) {
	return cached(ctx, c, c.cacheKey("profile", ticker, module), func() (json.RawMessage, error) {
		return c.inner.Profile(ctx, ticker, module)
	})
}

// Chart returns the cached chart data or fetches it from the inner gateway.
func (c *CachingGateway) Chart(ctx context.Context, q entity.ChartQuery) (entity.ChartData, error) {
	return cached(ctx, c, c.cacheKey("chart", q.Symbol, q.Region, q.Range, q.Interval), func() (entity.ChartData, error) {
		return c.inner.Chart(ctx, q)
	})
}

// Analyst returns the cached analyst reports or fetches them from the inner gateway.
func (c *CachingGateway) Analyst(ctx context.Context, symbol, region string) ([]entity.AnalystReport, error) {
	return cached(ctx, c, c.cacheKey("analyst", symbol, region), func() ([]entity.AnalystReport, error) {
		return c.inner.Analyst(ctx, symbol, region)
	})
}

// cached checks the cache first, then falls back to fetch and stores the result.
func cached[T any](ctx context.Context, c *CachingGateway, key string, fetch func() (T, error)) (T, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return fetch()
	}

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out T
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the remote API
	out, err := fetch()
	if err != nil {
		return out, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to store cache entry")
		}
	}
	return out, nil
}

// cacheKey generates a cache key for an operation and its parameters.
func (c *CachingGateway) cacheKey(op string, parts ...string) string {
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = safe(p)
	}
	return fmt.Sprintf("%s:%s:%s", c.namespace, op, strings.Join(escaped, ":"))
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return strings.ToUpper(s)
}
