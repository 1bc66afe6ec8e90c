// Package entity defines the domain entities for the watchlist feature.
package entity

import "time"

// DefaultName is the name of the watchlist created lazily for every user.
const DefaultName = "Default"

// Watchlist is a named set of ticker symbols owned by one user.
// (UserID, Name) is unique; symbols have set semantics.
type Watchlist struct {
	// ID is the unique identifier for the watchlist.
	ID uint `gorm:"primaryKey"`

	// UserID is the owning user.
	UserID uint `gorm:"not null;uniqueIndex:watchlist_user_name,priority:1"`

	// Name distinguishes multiple lists per user.
	Name string `gorm:"size:64;not null;uniqueIndex:watchlist_user_name,priority:2"`

	// Symbols holds the canonical uppercase symbols, serialized as JSON.
	Symbols []string `gorm:"serializer:json;type:text"`

	// CreatedAt is the timestamp when the watchlist was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the watchlist was last updated.
	UpdatedAt time.Time
}

// Has reports whether symbol is already in the list.
func (w *Watchlist) Has(symbol string) bool {
	for _, s := range w.Symbols {
		if s == symbol {
			return true
		}
	}
	return false
}

// AddSymbol adds symbol to the list and reports whether the list changed.
// Adding a symbol already present is a no-op.
func (w *Watchlist) AddSymbol(symbol string) bool {
	if w.Has(symbol) {
		return false
	}
	w.Symbols = append(w.Symbols, symbol)
	return true
}

// RemoveSymbol removes symbol from the list and reports whether the list changed.
// Removing an absent symbol is a no-op.
func (w *Watchlist) RemoveSymbol(symbol string) bool {
	for i, s := range w.Symbols {
		if s == symbol {
			w.Symbols = append(w.Symbols[:i], w.Symbols[i+1:]...)
			return true
		}
	}
	return false
}
