package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/logging"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
)

func TestDashboardService_Stats(t *testing.T) {
	ctx := context.Background()
	products := repositories.NewMockProductRepository()
	users := repositories.NewMockUserRepository()
	orders := repositories.NewMockOrderRepository()

	require.NoError(t, products.Create(ctx, &models.Product{Title: "A", SKU: "1"}))
	require.NoError(t, products.Create(ctx, &models.Product{Title: "B", SKU: "2"}))
	require.NoError(t, users.Create(ctx, &models.User{Email: "a@example.com"}))

	orderService := services.NewOrderService(orders, users, nil, logging.Discard())
	first, err := orderService.Create(ctx, "u1", checkoutRequest())
	require.NoError(t, err)
	_, err = orderService.Create(ctx, "u1", checkoutRequest())
	require.NoError(t, err)
	_, err = orderService.MarkPaid(ctx, first.ID, models.PaymentResult{ID: "PAY"})
	require.NoError(t, err)

	stats, err := services.NewDashboardService(products, users, orders).Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &services.Stats{TotalProducts: 2, TotalUsers: 1, TotalOrders: 2, TotalRevenue: 2360}, stats)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	users := repositories.NewMockUserRepository()
	categories := repositories.NewMockCategoryRepository()

	require.NoError(t, services.Seed(ctx, users, categories, logging.Discard()))
	require.NoError(t, services.Seed(ctx, users, categories, logging.Discard()))

	cats, err := categories.List(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 4)

	admin, err := users.GetByEmail(ctx, services.SeedAdminEmail)
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)

	auth := services.NewAuthService(users, testJWTSecret, 0, logging.Discard())
	_, err = auth.Login(ctx, services.SeedAdminEmail, services.SeedAdminPassword)
	assert.NoError(t, err)
}
