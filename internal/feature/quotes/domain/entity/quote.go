// Package entity defines the domain models for the quotes feature.
package entity

import (
	"strings"
	"time"
)

// Quote is a normalized snapshot of a stock quote. One live snapshot exists
// per symbol; it is shared across users and replaced on every refetch.
type Quote struct {
	Symbol             string    // Canonical uppercase ticker symbol (e.g., "AAPL")
	CompanyName        string    // Long company name
	CurrentPrice       float64   // Latest traded price
	PriceChange        float64   // Absolute change since previous close
	PriceChangePercent float64   // Percent change since previous close
	PreviousClose      float64   // Previous session close
	Open               float64   // Session open
	DayHigh            float64   // Session high
	DayLow             float64   // Session low
	Volume             int64     // Session volume
	MarketCap          float64   // Market capitalization; 0 when the provider cannot supply it
	PERatio            float64   // Trailing P/E; 0 when the provider cannot supply it
	FiftyTwoWeekHigh   float64   // 52-week high
	FiftyTwoWeekLow    float64   // 52-week low
	FetchedAt          time.Time // When this snapshot was fetched from the provider
}

// Bar is a single daily OHLCV bar in a historical price series.
type Bar struct {
	Time   time.Time // Trading day
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// NormalizeSymbol canonicalizes a ticker symbol: surrounding whitespace is
// trimmed and the result uppercased. An empty result means the input was not
// a usable symbol.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
