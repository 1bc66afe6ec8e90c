// Package adapters はquotesフィーチャーのキャッシュ実装を提供します。
package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"bloomberg_lite/internal/feature/quotes/domain/entity"
	"bloomberg_lite/internal/feature/quotes/usecase"
)

// Key prefixes mirror the logical collections: one live snapshot per symbol,
// one history series per (symbol, period).
const (
	quoteKeyPrefix   = "stocks"
	historyKeyPrefix = "stock_history"
)

// QuoteRedis implements usecase.QuoteCache on Redis. Expiry is enforced by
// the store itself: entries are written with a TTL equal to the freshness
// window, so a stale snapshot simply disappears. A nil client disables the
// cache entirely (every read is a miss, every write a no-op).
type QuoteRedis struct {
	rdb        *redis.Client
	quoteTTL   time.Duration
	historyTTL time.Duration
}

// QuoteRedisがQuoteCacheを実装していることをコンパイル時に検証します。
var _ usecase.QuoteCache = (*QuoteRedis)(nil)

// NewQuoteRedis creates a Redis-backed quote cache.
// Non-positive TTLs fall back to the usecase defaults.
func NewQuoteRedis(rdb *redis.Client, quoteTTL, historyTTL time.Duration) *QuoteRedis {
	if quoteTTL <= 0 {
		quoteTTL = usecase.DefaultQuoteTTL
	}
	if historyTTL <= 0 {
		historyTTL = usecase.DefaultHistoryTTL
	}
	return &QuoteRedis{rdb: rdb, quoteTTL: quoteTTL, historyTTL: historyTTL}
}

// GetQuote returns the cached snapshot for symbol, or (nil, nil) on a miss.
func (c *QuoteRedis) GetQuote(ctx context.Context, symbol string) (*entity.Quote, error) {
	if c.rdb == nil {
		return nil, nil
	}

	key := quoteKey(symbol)
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var q entity.Quote
	if err := json.Unmarshal(b, &q); err != nil {
		// Delete corrupted cache entry and report a miss
		_ = c.rdb.Del(ctx, key).Err()
		return nil, nil
	}
	return &q, nil
}

// PutQuote stores the snapshot, replacing any prior entry for the symbol.
func (c *QuoteRedis) PutQuote(ctx context.Context, quote *entity.Quote) error {
	if c.rdb == nil || quote == nil {
		return nil
	}

	b, err := json.Marshal(quote)
	if err != nil {
		return fmt.Errorf("failed to marshal quote: %w", err)
	}
	return c.rdb.Set(ctx, quoteKey(quote.Symbol), b, c.quoteTTL).Err()
}

// GetHistory returns the cached bar series, or (nil, nil) on a miss.
func (c *QuoteRedis) GetHistory(ctx context.Context, symbol, period string) ([]entity.Bar, error) {
	if c.rdb == nil {
		return nil, nil
	}

	key := historyKey(symbol, period)
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var bars []entity.Bar
	if err := json.Unmarshal(b, &bars); err != nil {
		_ = c.rdb.Del(ctx, key).Err()
		return nil, nil
	}
	return bars, nil
}

// PutHistory stores the bar series for (symbol, period).
func (c *QuoteRedis) PutHistory(ctx context.Context, symbol, period string, bars []entity.Bar) error {
	if c.rdb == nil || len(bars) == 0 {
		return nil
	}

	b, err := json.Marshal(bars)
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	return c.rdb.Set(ctx, historyKey(symbol, period), b, c.historyTTL).Err()
}

func quoteKey(symbol string) string {
	return fmt.Sprintf("%s:%s", quoteKeyPrefix, safe(symbol))
}

func historyKey(symbol, period string) string {
	return fmt.Sprintf("%s:%s:%s", historyKeyPrefix, safe(symbol), safe(period))
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
