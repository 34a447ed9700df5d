package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"storefront/internal/cart"
	"storefront/internal/models"
)

func (a *app) checkoutCmd() *cobra.Command {
	var addr models.ShippingAddress
	var payment string
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			c := a.state.Cart()
			if c.Len() == 0 {
				return errors.New("your cart is empty")
			}
			order, err := a.api.PlaceOrder(c, addr, payment)
			if err != nil {
				return err
			}
			if err := a.saveCart(cart.New(), fmt.Sprintf("Order %s placed", order.ID)); err != nil {
				return err
			}
			renderSummary(a.out, cart.Summary{
				ItemsPrice:    order.ItemsPrice,
				TaxPrice:      order.TaxPrice,
				ShippingPrice: order.ShippingPrice,
				TotalPrice:    order.TotalPrice,
			})
			return nil
		},
	}
	cmd.Flags().StringVar(&addr.Address, "address", "", "street address")
	cmd.Flags().StringVar(&addr.City, "city", "", "city")
	cmd.Flags().StringVar(&addr.State, "region", "", "state or region")
	cmd.Flags().StringVar(&addr.PostalCode, "postal-code", "", "postal code")
	cmd.Flags().StringVar(&addr.Country, "country", "India", "country")
	cmd.Flags().StringVar(&payment, "payment", "PayPal", "payment method")
	cmd.MarkFlagRequired("address")
	cmd.MarkFlagRequired("city")
	cmd.MarkFlagRequired("postal-code")
	return cmd
}

func (a *app) ordersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Your orders",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cmd.Root().PersistentPreRunE(cmd, args); err != nil {
				return err
			}
			return a.requireLogin()
		},
	}

	mine := &cobra.Command{
		Use:   "mine",
		Short: "List your orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orders, err := a.api.MyOrders()
			if err != nil {
				return err
			}
			renderOrders(a.out, orders)
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show <order-id>",
		Short: "Show an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := a.api.Order(args[0])
			if err != nil {
				return err
			}
			renderOrder(a.out, &o.Order, o.User.Name, o.User.Email)
			return nil
		},
	}

	var paymentID string
	pay := &cobra.Command{
		Use:   "pay <order-id>",
		Short: "Record the payment of an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := a.api.Profile()
			if err != nil {
				return err
			}
			if paymentID == "" {
				paymentID = "PAY-" + uuid.NewString()
			}
			o, err := a.api.PayOrder(args[0], models.PaymentResult{
				ID:           paymentID,
				Status:       "COMPLETED",
				UpdateTime:   time.Now().UTC().Format(time.RFC3339),
				EmailAddress: me.Email,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Order %s paid (%s)\n", o.ID, money(o.TotalPrice))
			return nil
		},
	}
	pay.Flags().StringVar(&paymentID, "payment-id", "", "gateway transaction id")

	cmd.AddCommand(mine, show, pay)
	return cmd
}
