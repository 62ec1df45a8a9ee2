package pricing

// Line is one aggregated cart line priced from the catalog snapshot.
type Line struct {
	ProductID string
	Qty       int
	UnitPrice Money
}

// Totals aggregates computed order amounts.
type Totals struct {
	Subtotal    Money `json:"subtotalCents"`
	Discount    Money `json:"discountCents"`
	PlatformFee Money `json:"platformFeeCents"`
	FeeBps      int   `json:"platformFeeBps"`
	Total       Money `json:"totalCents"`
}

// Subtotal sums price*qty over lines, ignoring non-positive quantities.
func Subtotal(lines []Line) Money {
	var subtotal Money
	for _, l := range lines {
		if l.Qty <= 0 {
			continue
		}
		subtotal += Money(l.Qty) * l.UnitPrice
	}
	return subtotal
}

// Assemble computes order totals. The platform fee is charged on the
// subtotal before discount.
func Assemble(lines []Line, discount Money, feeBps int) Totals {
	subtotal := Subtotal(lines)
	if discount < 0 {
		discount = 0
	}
	if discount > subtotal {
		discount = subtotal
	}
	return Totals{
		Subtotal:    subtotal,
		Discount:    discount,
		PlatformFee: PlatformFeeCents(subtotal, feeBps),
		FeeBps:      feeBps,
		Total:       subtotal - discount,
	}
}
