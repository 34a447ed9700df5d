package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"storefront/internal/cart"
	"storefront/internal/imageutil"
	"storefront/internal/models"
)

func newTable(w io.Writer, header ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	return tw
}

func money(v float64) string { return fmt.Sprintf("₹%.2f", v) }

func renderProducts(w io.Writer, products []models.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, "No products found")
		return
	}
	tw := newTable(w, "ID", "TITLE", "PRICE", "STOCK", "RATING", "IMAGE")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%.1f (%d)\t%s\n",
			p.ID, p.Title, money(p.Price), p.CountInStock, p.Rating, p.NumReviews,
			imageutil.Resolve(p.Images, 0, imageutil.Options{Context: imageutil.Thumbnail}))
	}
	tw.Flush()
}

func renderProduct(w io.Writer, p *models.Product) {
	fmt.Fprintf(w, "%s\n%s\n\n", p.Title, strings.Repeat("=", len(p.Title)))
	fmt.Fprintf(w, "Price:    %s\n", money(p.Price))
	fmt.Fprintf(w, "Category: %s\n", p.Category)
	if p.CountInStock > 0 {
		fmt.Fprintf(w, "Stock:    %d\n", p.CountInStock)
	} else {
		fmt.Fprintln(w, "Stock:    Out of stock")
	}
	fmt.Fprintf(w, "Rating:   %.1f from %d reviews\n", p.Rating, p.NumReviews)
	fmt.Fprintf(w, "Sizes:    %s\n", strings.Join(p.Sizes, ", "))
	fmt.Fprintf(w, "Colors:   %s\n", strings.Join(p.Colors, ", "))
	fmt.Fprintf(w, "SKU:      %s\n\n", p.SKU)
	fmt.Fprintln(w, p.LongDescription)

	if len(p.Images) > 0 {
		fmt.Fprintln(w, "\nImages:")
	}
	for i := range p.Images {
		fmt.Fprintln(w, "  "+imageutil.Resolve(p.Images, i, imageutil.Options{Context: imageutil.Detail}))
	}
	if len(p.Reviews) > 0 {
		fmt.Fprintln(w, "\nReviews:")
	}
	for _, r := range p.Reviews {
		fmt.Fprintf(w, "  %d/5 %s: %s\n", r.Rating, r.Name, r.Comment)
	}
}

func renderSummary(w io.Writer, s cart.Summary) {
	fmt.Fprintf(w, "Items:    %s\n", money(s.ItemsPrice))
	fmt.Fprintf(w, "Tax:      %s\n", money(s.TaxPrice))
	if s.ShippingPrice == 0 {
		fmt.Fprintln(w, "Shipping: Free")
	} else {
		fmt.Fprintf(w, "Shipping: %s\n", money(s.ShippingPrice))
	}
	fmt.Fprintf(w, "Total:    %s\n", money(s.TotalPrice))
}

func renderCart(w io.Writer, c *cart.Cart) {
	if c.Len() == 0 {
		fmt.Fprintln(w, "Your cart is empty")
		return
	}
	tw := newTable(w, "ID", "TITLE", "SIZE", "QTY", "PRICE", "SUBTOTAL", "IMAGE")
	for _, it := range c.Items() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			it.ProductID, it.Title, it.SelectedSize, it.Quantity, money(it.Price),
			money(it.Subtotal().InexactFloat64()),
			imageutil.Resolve(it.Images, 0, imageutil.Options{Context: imageutil.Thumbnail}))
	}
	tw.Flush()
	fmt.Fprintf(w, "\n%d item(s)\n", c.Count())
	renderSummary(w, c.Summary())
}

func status(o *models.Order) string {
	switch {
	case o.IsDelivered:
		return "delivered"
	case o.IsPaid:
		return "paid"
	default:
		return "pending"
	}
}

func renderOrders(w io.Writer, orders []models.Order) {
	if len(orders) == 0 {
		fmt.Fprintln(w, "No orders yet")
		return
	}
	tw := newTable(w, "ID", "DATE", "ITEMS", "TOTAL", "STATUS")
	for i := range orders {
		o := &orders[i]
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
			o.ID, o.CreatedAt.Format("2006-01-02"), len(o.OrderItems), money(o.TotalPrice), status(o))
	}
	tw.Flush()
}

func renderOrder(w io.Writer, o *models.Order, userName, userEmail string) {
	fmt.Fprintf(w, "Order %s (%s)\n", o.ID, status(o))
	if userName != "" {
		fmt.Fprintf(w, "Customer: %s <%s>\n", userName, userEmail)
	}
	a := o.ShippingAddress
	fmt.Fprintf(w, "Ship to:  %s, %s %s, %s\n", a.Address, a.City, a.PostalCode, a.Country)
	fmt.Fprintf(w, "Payment:  %s\n", o.PaymentMethod)
	if o.TrackingNumber != "" {
		fmt.Fprintf(w, "Tracking: %s\n", o.TrackingNumber)
	}
	fmt.Fprintln(w)

	tw := newTable(w, "PRODUCT", "SIZE", "QTY", "PRICE")
	for _, it := range o.OrderItems {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", it.Name, it.Size, it.Quantity, money(it.Price))
	}
	tw.Flush()
	fmt.Fprintln(w)
	renderSummary(w, cart.Summary{
		ItemsPrice:    o.ItemsPrice,
		TaxPrice:      o.TaxPrice,
		ShippingPrice: o.ShippingPrice,
		TotalPrice:    o.TotalPrice,
	})
}
