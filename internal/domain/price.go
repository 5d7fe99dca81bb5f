package domain

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ParsePrice converts price text coming from markup, forms or the menu file
// into an amount. Surrounding spaces and a leading "$" are accepted. Text
// that is not a non-negative number yields zero.
func ParsePrice(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// SanitizePrice maps NaN, infinities and negative prices to zero.
func SanitizePrice(p float64) float64 {
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
		return 0
	}
	return p
}
