package entity

import "testing"

// TestNormalizeSymbol はシンボルの正規化（トリム・大文字化）を検証します。
func TestNormalizeSymbol(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"aapl", "AAPL"},
		{"  msft ", "MSFT"},
		{"BRK.B", "BRK.B"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := NormalizeSymbol(tt.input); got != tt.expected {
			t.Errorf("NormalizeSymbol(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}
