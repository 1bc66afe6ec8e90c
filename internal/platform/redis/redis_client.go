package redis

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"bloomberg_lite/internal/platform/config"
)

// NewRedisClient connects to the quote cache store and verifies the
// connection with a ping. The caller decides what to do when Redis is
// unavailable (the server runs without the cache).
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	addr := cfg.Host + ":" + cfg.Port

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       0,
	})

	// 接続確認
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		slog.Error("Redis connection failed", "address", addr, "error", err)
		return nil, err
	}

	slog.Info("Redis connection successful", "address", addr)
	return rdb, nil
}
