// Package usecase implements the business logic for the quotes feature.
package usecase

import "errors"

var (
	// ErrInvalidSymbol is returned when the requested symbol is empty after
	// normalization.
	ErrInvalidSymbol = errors.New("invalid symbol")

	// ErrSymbolNotFound is returned when the market data provider has no data
	// for the requested symbol.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrUnsupportedPeriod is returned when a history request names a period
	// outside the supported set.
	ErrUnsupportedPeriod = errors.New("unsupported period")

	// ErrMarketUnavailable is returned when the market data provider call
	// itself fails (network, timeout, malformed payload).
	ErrMarketUnavailable = errors.New("market data unavailable")
)
