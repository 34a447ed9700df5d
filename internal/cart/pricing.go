package cart

import "github.com/shopspring/decimal"

// Checkout policy. Not configurable at runtime.
const (
	TaxPercent            = 18
	FreeShippingThreshold = 499 // orders strictly above this ship free
	ShippingFee           = 50
)

// Summary is the price breakdown sent with an order.
type Summary struct {
	ItemsPrice    float64 `json:"itemsPrice"`
	TaxPrice      float64 `json:"taxPrice"`
	ShippingPrice float64 `json:"shippingPrice"`
	TotalPrice    float64 `json:"totalPrice"`
}

// Summarize computes tax, shipping and grand total for an items total.
func Summarize(itemsTotal decimal.Decimal) Summary {
	tax := itemsTotal.Mul(decimal.NewFromInt(TaxPercent)).Div(decimal.NewFromInt(100)).Round(2)
	shipping := Shipping(itemsTotal)
	return Summary{
		ItemsPrice:    itemsTotal.InexactFloat64(),
		TaxPrice:      tax.InexactFloat64(),
		ShippingPrice: shipping.InexactFloat64(),
		TotalPrice:    itemsTotal.Add(tax).Add(shipping).InexactFloat64(),
	}
}

// Shipping returns the flat fee, or zero once the total passes the threshold.
func Shipping(itemsTotal decimal.Decimal) decimal.Decimal {
	if itemsTotal.GreaterThan(decimal.NewFromInt(FreeShippingThreshold)) {
		return decimal.Zero
	}
	return decimal.NewFromInt(ShippingFee)
}

// TotalOf sums price * quantity over arbitrary priced lines.
func TotalOf[T any](lines []T, price func(T) float64, quantity func(T) int) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(decimal.NewFromFloat(price(l)).Mul(decimal.NewFromInt(int64(quantity(l)))))
	}
	return total
}
