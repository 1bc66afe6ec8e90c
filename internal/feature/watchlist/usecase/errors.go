// Package usecase implements the business logic for the watchlist feature.
package usecase

import "errors"

var (
	// ErrWatchlistNotFound is returned when no watchlist matches (user, name).
	ErrWatchlistNotFound = errors.New("watchlist not found")

	// ErrWatchlistExists is returned when creating a watchlist that already
	// exists for (user, name). Callers treat it as a lost creation race.
	ErrWatchlistExists = errors.New("watchlist already exists")

	// ErrInvalidSymbol is returned when a symbol is empty after normalization.
	ErrInvalidSymbol = errors.New("symbol is required")
)
