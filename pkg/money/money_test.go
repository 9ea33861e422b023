package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestLineSubtotal(t *testing.T) {
	tests := []struct {
		name     string
		quantity string
		rate     string
		want     string
	}{
		{"whole numbers", "2", "100", "200"},
		{"fractional quantity", "2.5", "33.33", "83.33"},   // 83.325 rounds half-up
		{"sub-paisa result", "3", "33.335", "100.01"},      // 100.005 rounds half-up
		{"zero quantity", "0", "50", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := decimal.RequireFromString(tt.quantity)
			r := decimal.RequireFromString(tt.rate)
			want := decimal.RequireFromString(tt.want)
			if got := LineSubtotal(q, r); !got.Equal(want) {
				t.Errorf("LineSubtotal(%s, %s) = %s, want %s", tt.quantity, tt.rate, got, want)
			}
		})
	}
}

func TestGSTAmount(t *testing.T) {
	tests := []struct {
		name     string
		subtotal string
		rate     string
		want     string
	}{
		{"18 percent of 200", "200", "18", "36"},
		{"18 percent of 99.99", "99.99", "18", "18"},    // 17.9982 -> 18.00
		{"zero rate", "500", "0", "0"},
		{"rounding boundary", "100.25", "18", "18.05"},  // 18.045 rounds half-up
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := decimal.RequireFromString(tt.subtotal)
			r := decimal.RequireFromString(tt.rate)
			want := decimal.RequireFromString(tt.want)
			if got := GSTAmount(s, r); !got.Equal(want) {
				t.Errorf("GSTAmount(%s, %s) = %s, want %s", tt.subtotal, tt.rate, got, want)
			}
		})
	}
}
