package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"storefront/internal/client"
)

func (a *app) productsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"p"},
		Short:   "Browse the catalog",
	}

	var q client.ProductQuery
	list := &cobra.Command{
		Use:   "list",
		Short: "List products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.api.Products(q)
			if err != nil {
				return err
			}
			renderProducts(a.out, res.Products)
			if res.Pages > 1 {
				fmt.Fprintf(a.out, "\nPage %d of %d (%d products)\n", res.Page, res.Pages, res.Total)
			}
			return nil
		},
	}
	list.Flags().StringVarP(&q.Keyword, "keyword", "k", "", "search titles")
	list.Flags().StringVarP(&q.Category, "category", "c", "", "category name")
	list.Flags().BoolVar(&q.Featured, "featured", false, "featured products only")
	list.Flags().StringVar(&q.Sort, "sort", "", "sort field, prefix with - for descending (price, -price, title, rating, createdAt)")
	list.Flags().IntVar(&q.Page, "page", 1, "page number")
	list.Flags().IntVar(&q.Limit, "limit", 0, "products per page")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.api.Product(args[0])
			if err != nil {
				return err
			}
			renderProduct(a.out, p)
			return nil
		},
	}

	related := &cobra.Command{
		Use:   "related <id>",
		Short: "Show products from the same category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := a.api.Related(args[0])
			if err != nil {
				return err
			}
			renderProducts(a.out, products)
			return nil
		},
	}

	var rating int
	var comment string
	review := &cobra.Command{
		Use:   "review <id>",
		Short: "Review a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			if err := a.api.AddReview(args[0], rating, comment); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Review added")
			return nil
		},
	}
	review.Flags().IntVar(&rating, "rating", 5, "rating from 1 to 5")
	review.Flags().StringVar(&comment, "comment", "", "review text")
	review.MarkFlagRequired("comment")

	cmd.AddCommand(list, show, related, review)
	return cmd
}
