package cart_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"storefront/internal/cart"
)

func TestShipping_Threshold(t *testing.T) {
	cases := []struct {
		total    int64
		shipping int64
	}{
		{0, 50},
		{100, 50},
		{499, 50},
		{500, 0},
		{2000, 0},
	}
	for _, tc := range cases {
		got := cart.Shipping(decimal.NewFromInt(tc.total))
		assert.True(t, decimal.NewFromInt(tc.shipping).Equal(got), "total %d", tc.total)
	}
}

func TestSummary_CheckoutScenario(t *testing.T) {
	c := cart.New()
	c.AddItem(cart.Item{ProductID: "p-1", Title: "Wool Coat", Price: 1000, Quantity: 2})

	s := c.Summary()
	assert.Equal(t, 2000.0, s.ItemsPrice)
	assert.Equal(t, 360.0, s.TaxPrice)
	assert.Equal(t, 0.0, s.ShippingPrice)
	assert.Equal(t, 2360.0, s.TotalPrice)
}

func TestSummary_SmallOrderPaysShipping(t *testing.T) {
	s := cart.Summarize(decimal.NewFromInt(200))
	assert.Equal(t, 36.0, s.TaxPrice)
	assert.Equal(t, 50.0, s.ShippingPrice)
	assert.Equal(t, 286.0, s.TotalPrice)
}

func TestTotalOf(t *testing.T) {
	type line struct {
		p float64
		q int
	}
	lines := []line{{10.5, 2}, {3, 3}}
	got := cart.TotalOf(lines, func(l line) float64 { return l.p }, func(l line) int { return l.q })
	assert.True(t, decimal.NewFromInt(30).Equal(got))
}
