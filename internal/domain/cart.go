package domain

import (
	"github.com/shopspring/decimal"
)

// LineItem is one menu item plus a quantity inside the cart. Name, price and
// image are copied when the item is first added and never re-synced.
type LineItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"img"`
	Quantity int     `json:"quantity"`
}

// LineTotal returns price × quantity rounded to cents.
func (i LineItem) LineTotal() decimal.Decimal {
	return decimal.NewFromFloat(i.Price).Mul(decimal.NewFromInt(int64(i.Quantity))).Round(2)
}

// Totals are values derived from the cart contents. They are never stored.
type Totals struct {
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// Display renders the total the way the cart footer shows it, e.g. "$19.98".
func (t Totals) Display() string {
	return FormatPrice(t.Total)
}

// FormatPrice renders an amount in dollars with two decimals.
func FormatPrice(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// ComputeTotals sums quantities and price × quantity over items. The
// total is rounded to 2 decimal places.
func ComputeTotals(items []LineItem) Totals {
	t := Totals{Total: decimal.Zero}
	for _, item := range items {
		t.Count += item.Quantity
		t.Total = t.Total.Add(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	t.Total = t.Total.Round(2)
	return t
}

// FindItemIndex returns the index of the item with id, or -1.
func FindItemIndex(items []LineItem, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
