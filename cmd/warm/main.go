// Command warm pre-fills the quote cache for a list of symbols so the first
// requests after a deploy are served without waiting on the provider.
//
// Usage: warm AAPL MSFT GOOG
// Without arguments the WARM_SYMBOLS environment variable (comma-separated) is used.
package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"bloomberg_lite/internal/app/di"
	"bloomberg_lite/internal/feature/quotes/usecase"
	"bloomberg_lite/internal/platform/config"
	infraredis "bloomberg_lite/internal/platform/redis"
)

func main() {
	cfg := config.Load()

	symbols := os.Args[1:]
	if len(symbols) == 0 {
		symbols = strings.Split(os.Getenv("WARM_SYMBOLS"), ",")
	}
	if len(symbols) == 0 || (len(symbols) == 1 && strings.TrimSpace(symbols[0]) == "") {
		log.Fatal("no symbols given: pass them as arguments or set WARM_SYMBOLS")
	}

	rdb, err := infraredis.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Fatal("redis is required for cache warming:", err)
	}
	defer func() {
		_ = rdb.Close()
	}()

	marketRepo := di.NewMarket(cfg)
	quoteCache := di.NewQuoteCache(rdb, cfg)
	uc := usecase.NewQuoteUsecase(marketRepo, quoteCache, cfg.QuoteTTL, cfg.HistoryTTL)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	quotes, err := uc.GetQuotes(ctx, symbols)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("warmed %d/%d symbols", len(quotes), len(symbols))
}
