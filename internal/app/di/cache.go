package di

import (
	"github.com/redis/go-redis/v9"

	"bloomberg_lite/internal/feature/quotes/adapters"
	"bloomberg_lite/internal/feature/quotes/usecase"
	"bloomberg_lite/internal/platform/config"
)

// NewQuoteCache creates the Redis-backed quote cache with the configured
// freshness windows. A nil Redis client yields a cache that always misses,
// so the server degrades to fetching every request from the provider.
func NewQuoteCache(rdb *redis.Client, cfg config.Config) usecase.QuoteCache {
	return adapters.NewQuoteRedis(rdb, cfg.QuoteTTL, cfg.HistoryTTL)
}
