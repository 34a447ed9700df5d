package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"storefront/internal/repositories"
)

// Stats are the store-wide totals shown on the admin dashboard.
type Stats struct {
	TotalProducts int64   `json:"totalProducts"`
	TotalUsers    int64   `json:"totalUsers"`
	TotalOrders   int64   `json:"totalOrders"`
	TotalRevenue  float64 `json:"totalRevenue"`
}

// DashboardService computes admin dashboard figures.
type DashboardService struct {
	products repositories.ProductRepository
	users    repositories.UserRepository
	orders   repositories.OrderRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(products repositories.ProductRepository, users repositories.UserRepository, orders repositories.OrderRepository) *DashboardService {
	return &DashboardService{products: products, users: users, orders: orders}
}

// Stats runs the four aggregate queries concurrently.
func (s *DashboardService) Stats(ctx context.Context) (*Stats, error) {
	var st Stats
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		st.TotalProducts, err = s.products.Count(ctx, repositories.ProductFilter{})
		return err
	})
	g.Go(func() (err error) {
		st.TotalUsers, err = s.users.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		st.TotalOrders, err = s.orders.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		st.TotalRevenue, err = s.orders.PaidRevenue(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to compute dashboard stats: %w", err)
	}
	return &st, nil
}
