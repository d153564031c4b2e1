package pricing_test

import (
	"testing"

	"github.com/retailcore/pos-gateway/internal/cart"
	"github.com/retailcore/pos-gateway/internal/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func lines(pairs ...any) []cart.Line {
	out := make([]cart.Line, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, cart.Line{
			UnitPrice: decimal.RequireFromString(pairs[i].(string)),
			Quantity:  pairs[i+1].(int),
		})
	}

	return out
}

func TestNewQuote(t *testing.T) {
	t.Run("Ten percent off a mixed cart", func(t *testing.T) {
		// Arrange: 4 * 25.00 + 10 * 3.00 = 130.00
		cartLines := lines("25.00", 4, "3.00", 10)

		// Act
		quote := pricing.NewQuote(cartLines, 10)

		// Assert
		assert.Equal(t, "130.00", quote.Subtotal.StringFixed(2))
		assert.Equal(t, "13.00", quote.DiscountAmount.StringFixed(2))
		assert.Equal(t, "117.00", quote.Total.StringFixed(2))
	})

	t.Run("Zero discount leaves total equal to subtotal", func(t *testing.T) {
		// Arrange
		cartLines := lines("12.50", 3)

		// Act
		quote := pricing.NewQuote(cartLines, 0)

		// Assert
		assert.True(t, quote.DiscountAmount.IsZero())
		assert.True(t, quote.Total.Equal(quote.Subtotal))
	})

	t.Run("Full discount brings total to zero", func(t *testing.T) {
		// Arrange
		cartLines := lines("19.99", 7)

		// Act
		quote := pricing.NewQuote(cartLines, 100)

		// Assert
		assert.True(t, quote.DiscountAmount.Equal(quote.Subtotal))
		assert.True(t, quote.Total.IsZero())
	})

	t.Run("Empty cart quotes as zero", func(t *testing.T) {
		// Act
		quote := pricing.NewQuote(nil, 25)

		// Assert
		assert.True(t, quote.Subtotal.IsZero())
		assert.True(t, quote.DiscountAmount.IsZero())
		assert.True(t, quote.Total.IsZero())
	})
}

func TestSubtotal_ExactUnderRepeatedAddition(t *testing.T) {
	// Arrange: 0.10 a hundred times trips binary floats but not decimals.
	cartLines := make([]cart.Line, 100)
	for i := range cartLines {
		cartLines[i] = cart.Line{UnitPrice: decimal.RequireFromString("0.10"), Quantity: 1}
	}

	// Act
	subtotal := pricing.Subtotal(cartLines)

	// Assert
	assert.True(t, subtotal.Equal(decimal.NewFromInt(10)))
}

func TestDiscountAmount_FractionalPercent(t *testing.T) {
	// Arrange
	subtotal := decimal.RequireFromString("200.00")

	// Act
	discount := pricing.DiscountAmount(subtotal, 12.5)

	// Assert
	assert.Equal(t, "25.00", discount.StringFixed(2))
}
