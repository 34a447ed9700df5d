// Package cart holds the client-side shopping cart: an ordered list of line
// items keyed by product and size, and the order summary derived from it.
package cart

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Item is one line in the cart. The product fields are copied from the
// catalog when the item is added.
type Item struct {
	ProductID    string   `json:"_id"`
	Title        string   `json:"title"`
	Price        float64  `json:"price"`
	Images       []string `json:"images,omitempty"`
	Category     string   `json:"category,omitempty"`
	CountInStock int      `json:"countInStock,omitempty"`
	Quantity     int      `json:"quantity"`
	SelectedSize string   `json:"selectedSize,omitempty"`
}

func (it Item) matches(productID, size string) bool {
	return it.ProductID == productID && it.SelectedSize == size
}

// Subtotal returns price * quantity for the line.
func (it Item) Subtotal() decimal.Decimal {
	return decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// Cart is not safe for concurrent use.
type Cart struct {
	items []Item
	total decimal.Decimal
}

// New returns a cart holding items, as restored from storage.
func New(items ...Item) *Cart {
	c := &Cart{}
	for _, it := range items {
		if it.Quantity < 1 {
			it.Quantity = 1
		}
		c.items = append(c.items, it)
	}
	c.recalculate()
	return c
}

// Unmarshal rebuilds a cart from its serialized array form.
func Unmarshal(data []byte) (*Cart, error) {
	if len(data) == 0 {
		return New(), nil
	}
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return New(items...), nil
}

// MarshalJSON serializes the cart as a plain array of items.
func (c *Cart) MarshalJSON() ([]byte, error) {
	items := c.items
	if items == nil {
		items = []Item{}
	}
	return json.Marshal(items)
}

// AddItem merges item into an existing line with the same product and size,
// or appends it. A missing quantity counts as one.
func (c *Cart) AddItem(item Item) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	for i := range c.items {
		if c.items[i].matches(item.ProductID, item.SelectedSize) {
			c.items[i].Quantity += item.Quantity
			c.recalculate()
			return
		}
	}
	c.items = append(c.items, item)
	c.recalculate()
}

// RemoveItem drops the line for productID and size. An empty size removes
// every line for the product.
func (c *Cart) RemoveItem(productID, size string) {
	kept := c.items[:0]
	for _, it := range c.items {
		if it.ProductID == productID && (size == "" || it.SelectedSize == size) {
			continue
		}
		kept = append(kept, it)
	}
	c.items = kept
	c.recalculate()
}

// SetQuantity updates matching lines in place. Quantities below one are
// clamped to one. An empty size applies to every line for the product.
func (c *Cart) SetQuantity(productID string, quantity int, size string) {
	if quantity < 1 {
		quantity = 1
	}
	for i := range c.items {
		if c.items[i].ProductID == productID && (size == "" || c.items[i].SelectedSize == size) {
			c.items[i].Quantity = quantity
		}
	}
	c.recalculate()
}

func (c *Cart) Clear() {
	c.items = nil
	c.recalculate()
}

// Items returns a copy of the cart lines in insertion order.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Len() int { return len(c.items) }

// Count returns the number of units across all lines.
func (c *Cart) Count() int {
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// Total is the sum of price * quantity over all lines.
func (c *Cart) Total() decimal.Decimal { return c.total }

// Summary derives the checkout totals for the current cart.
func (c *Cart) Summary() Summary { return Summarize(c.total) }

func (c *Cart) recalculate() {
	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.Subtotal())
	}
	c.total = total
}
