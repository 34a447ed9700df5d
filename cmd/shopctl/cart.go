package main

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"storefront/internal/cart"
	"storefront/internal/models"
)

func (a *app) cartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the local cart",
	}

	var qty int
	var size string
	add := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.api.Product(args[0])
			if err != nil {
				return err
			}
			if size != "" && len(p.Sizes) > 0 && !slices.Contains(p.Sizes, size) {
				return fmt.Errorf("size %q is not available, choose one of %v", size, p.Sizes)
			}
			c := a.state.Cart()
			c.AddItem(itemFrom(p, qty, size))
			return a.saveCart(c, fmt.Sprintf("Added %s to cart", p.Title))
		},
	}
	add.Flags().IntVarP(&qty, "qty", "q", 1, "quantity")
	add.Flags().StringVarP(&size, "size", "s", "", "size")

	var removeSize string
	remove := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a product from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.state.Cart()
			c.RemoveItem(args[0], removeSize)
			return a.saveCart(c, "Removed from cart")
		},
	}
	remove.Flags().StringVarP(&removeSize, "size", "s", "", "only the line with this size")

	var setSize string
	set := &cobra.Command{
		Use:   "set <product-id> <quantity>",
		Short: "Change the quantity of a cart line",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity %q", args[1])
			}
			c := a.state.Cart()
			c.SetQuantity(args[0], n, setSize)
			return a.saveCart(c, "Cart updated")
		},
	}
	set.Flags().StringVarP(&setSize, "size", "s", "", "only the line with this size")

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the cart and its totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderCart(a.out, a.state.Cart())
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.saveCart(cart.New(), "Cart cleared")
		},
	}

	cmd.AddCommand(add, remove, set, show, clearCmd)
	return cmd
}

func itemFrom(p *models.Product, qty int, size string) cart.Item {
	return cart.Item{
		ProductID:    p.ID,
		Title:        p.Title,
		Price:        p.Price,
		Images:       p.Images,
		Category:     p.Category,
		CountInStock: p.CountInStock,
		Quantity:     qty,
		SelectedSize: size,
	}
}

func (a *app) saveCart(c *cart.Cart, msg string) error {
	if err := a.state.SetCart(c); err != nil {
		return err
	}
	if err := a.state.Save(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}
