// Package pricing holds the integer money arithmetic used by checkout and promotion preview.
package pricing

import "github.com/shopspring/decimal"

// Money represents a monetary value stored in minor units.
type Money = int64

// DiscountType selects how a promotion value is interpreted.
type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountFixed   DiscountType = "fixed"
)

// Valid reports whether t is a known discount type.
func (t DiscountType) Valid() bool {
	return t == DiscountPercent || t == DiscountFixed
}

// PlatformFeeCents returns subtotal*bps/10000 rounded half up.
func PlatformFeeCents(subtotal Money, bps int) Money {
	if subtotal <= 0 || bps <= 0 {
		return 0
	}
	return (subtotal*Money(bps) + 5000) / 10000
}

// DiscountCents computes the discount a promotion grants on subtotal.
// Fixed discounts are capped at the subtotal, percentages are clamped to 1..100.
func DiscountCents(subtotal Money, kind DiscountType, value int64) Money {
	if subtotal <= 0 {
		return 0
	}
	switch kind {
	case DiscountFixed:
		if value <= 0 {
			return 0
		}
		if value > subtotal {
			return subtotal
		}
		return value
	case DiscountPercent:
		pct := min(max(value, 1), 100)
		return (subtotal*pct + 50) / 100
	default:
		return 0
	}
}

// FormatCents renders cents as a dollar amount, e.g. 1000 -> "$10.00".
func FormatCents(cents Money) string {
	d := decimal.New(cents, -2)
	if d.IsNegative() {
		return "-$" + d.Abs().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}
