package dto

import (
	"time"

	"bloomberg_lite/internal/feature/quotes/domain/entity"
)

// QuoteResponse はクオートスナップショットのレスポンスDTOです。
type QuoteResponse struct {
	Symbol             string    `json:"symbol"`
	CompanyName        string    `json:"company_name"`
	CurrentPrice       float64   `json:"current_price"`
	PriceChange        float64   `json:"price_change"`
	PriceChangePercent float64   `json:"price_change_percent"`
	PreviousClose      float64   `json:"previous_close"`
	Open               float64   `json:"open"`
	DayHigh            float64   `json:"day_high"`
	DayLow             float64   `json:"day_low"`
	Volume             int64     `json:"volume"`
	MarketCap          float64   `json:"market_cap"`
	PERatio            float64   `json:"pe_ratio"`
	FiftyTwoWeekHigh   float64   `json:"fifty_two_week_high"`
	FiftyTwoWeekLow    float64   `json:"fifty_two_week_low"`
	LastUpdated        time.Time `json:"last_updated"`
}

// NewQuoteResponse はドメインエンティティをレスポンスDTOに変換します。
func NewQuoteResponse(q *entity.Quote) QuoteResponse {
	return QuoteResponse{
		Symbol:             q.Symbol,
		CompanyName:        q.CompanyName,
		CurrentPrice:       q.CurrentPrice,
		PriceChange:        q.PriceChange,
		PriceChangePercent: q.PriceChangePercent,
		PreviousClose:      q.PreviousClose,
		Open:               q.Open,
		DayHigh:            q.DayHigh,
		DayLow:             q.DayLow,
		Volume:             q.Volume,
		MarketCap:          q.MarketCap,
		PERatio:            q.PERatio,
		FiftyTwoWeekHigh:   q.FiftyTwoWeekHigh,
		FiftyTwoWeekLow:    q.FiftyTwoWeekLow,
		LastUpdated:        q.FetchedAt,
	}
}
