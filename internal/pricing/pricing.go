package pricing

import (
	"github.com/retailcore/pos-gateway/internal/cart"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Quote is a priced view of a cart at one discount level. All amounts are kept
// at full precision; callers round to two fractional digits for display.
type Quote struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
}

// Subtotal sums unit price snapshot times quantity over all lines. Decimal
// arithmetic keeps the accumulator exact under repeated addition.
func Subtotal(lines []cart.Line) decimal.Decimal {
	total := decimal.Zero

	for _, line := range lines {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	return total
}

// DiscountAmount computes subtotal * percent / 100. The percent is validated
// to [0, 100] at the request boundary; this function assumes valid input.
func DiscountAmount(subtotal decimal.Decimal, discountPercent float64) decimal.Decimal {
	if discountPercent == 0 {
		return decimal.Zero
	}

	return subtotal.Mul(decimal.NewFromFloat(discountPercent)).Div(hundred)
}

// Total is subtotal minus discount; never negative while percent <= 100.
func Total(subtotal, discountAmount decimal.Decimal) decimal.Decimal {
	return subtotal.Sub(discountAmount)
}

func NewQuote(lines []cart.Line, discountPercent float64) Quote {
	subtotal := Subtotal(lines)
	discount := DiscountAmount(subtotal, discountPercent)

	return Quote{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		Total:          Total(subtotal, discount),
	}
}
