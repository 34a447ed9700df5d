package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"storefront/internal/productutil"
)

func (a *app) adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Shop administration",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cmd.Root().PersistentPreRunE(cmd, args); err != nil {
				return err
			}
			return a.requireLogin()
		},
	}
	cmd.AddCommand(a.adminProductsCmd(), a.adminOrdersCmd(), a.adminStatsCmd())
	return cmd
}

func (a *app) adminProductsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "products", Short: "Manage products"}

	var (
		title, description, category string
		price                        float64
		stock                        int
		featured                     bool
		images, sizes, colors        []string
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := productutil.StandardizeName(title, category)
			if !productutil.IsValidName(name) {
				return errors.New("please enter a descriptive product name of at least 5 characters")
			}
			body := map[string]any{
				"title":        name,
				"description":  description,
				"price":        price,
				"countInStock": stock,
				"category":     category,
				"featured":     featured,
			}
			if len(images) > 0 {
				body["images"] = images
			}
			if len(sizes) > 0 {
				body["sizes"] = sizes
			}
			if len(colors) > 0 {
				body["colors"] = colors
			}
			p, err := a.api.CreateProduct(body)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Created %s (%s, SKU %s)\n", p.Title, p.ID, p.SKU)
			return nil
		},
	}
	create.Flags().StringVar(&title, "title", "", "product name")
	create.Flags().StringVar(&description, "description", "", "short description")
	create.Flags().StringVar(&category, "category", "", "category name")
	create.Flags().Float64Var(&price, "price", 0, "price")
	create.Flags().IntVar(&stock, "stock", 0, "units in stock")
	create.Flags().BoolVar(&featured, "featured", false, "show on the home page")
	create.Flags().StringSliceVar(&images, "image", nil, "image URL, repeatable")
	create.Flags().StringSliceVar(&sizes, "sizes", nil, "comma separated sizes")
	create.Flags().StringSliceVar(&colors, "colors", nil, "comma separated colors")
	create.MarkFlagRequired("title")
	create.MarkFlagRequired("description")
	create.MarkFlagRequired("category")

	del := &cobra.Command{
		Use:   "delete <product-id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.api.DeleteProduct(args[0]); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Product removed")
			return nil
		},
	}

	cmd.AddCommand(create, del)
	return cmd
}

func (a *app) adminOrdersCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "orders", Short: "Manage orders"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List every order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orders, err := a.api.AllOrders()
			if err != nil {
				return err
			}
			renderOrders(a.out, orders)
			return nil
		},
	}

	var tracking string
	deliver := &cobra.Command{
		Use:   "deliver <order-id>",
		Short: "Mark an order as delivered",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := a.api.DeliverOrder(args[0], tracking)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Order %s delivered", o.ID)
			if o.TrackingNumber != "" {
				fmt.Fprintf(a.out, " (tracking %s)", o.TrackingNumber)
			}
			fmt.Fprintln(a.out)
			return nil
		},
	}
	deliver.Flags().StringVar(&tracking, "tracking", "", "carrier tracking number")

	cmd.AddCommand(list, deliver)
	return cmd
}

func (a *app) adminStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.api.Stats()
			if err != nil {
				return err
			}
			tw := newTable(a.out, "PRODUCTS", "USERS", "ORDERS", "REVENUE")
			fmt.Fprintf(tw, "%d\t%d\t%d\t%s\n", s.TotalProducts, s.TotalUsers, s.TotalOrders, money(s.TotalRevenue))
			return tw.Flush()
		},
	}
}
