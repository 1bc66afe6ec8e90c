// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"bloomberg_lite/internal/platform/config"
	"bloomberg_lite/internal/platform/externalapi/twelvedata"
	infrahttp "bloomberg_lite/internal/platform/http"
	"bloomberg_lite/internal/shared/ratelimiter"
)

// NewMarket creates a fully configured TwelveDataMarket with HTTP client
// and per-minute rate limiter.
func NewMarket(cfg config.Config) *twelvedata.TwelveDataMarket {
	tdCfg := twelvedata.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(tdCfg.Timeout)
	limiter := ratelimiter.NewRateLimiter(cfg.ProviderRateLimit, time.Minute)
	return twelvedata.NewTwelveDataMarket(tdCfg, httpClient, limiter)
}
