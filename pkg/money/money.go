// Package money centralizes the decimal arithmetic used for bill amounts.
// All monetary values are rounded half-up to 2 decimal places at the point
// of computation, never deferred to a single final rounding.
package money

import "github.com/shopspring/decimal"

var Zero = decimal.Zero

// Round2 rounds half-up to 2 decimal places.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// LineSubtotal computes round(quantity * rate, 2) for a bill line.
func LineSubtotal(quantity, rate decimal.Decimal) decimal.Decimal {
	return Round2(quantity.Mul(rate))
}

// GSTAmount computes round(subtotal * gstRate / 100, 2).
func GSTAmount(subtotal, gstRate decimal.Decimal) decimal.Decimal {
	return Round2(subtotal.Mul(gstRate).Div(decimal.NewFromInt(100)))
}

// FromFloat converts an API-supplied float into a 2-decimal amount.
func FromFloat(f float64) decimal.Decimal {
	return Round2(decimal.NewFromFloat(f))
}
