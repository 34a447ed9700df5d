package repositories_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true, Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, repositories.AutoMigrate(db))
	return db
}

func backends(t *testing.T) map[string]repositories.ProductRepository {
	return map[string]repositories.ProductRepository{
		"gorm":   repositories.NewGORMProductRepository(openSQLite(t)),
		"memory": repositories.NewMockProductRepository(),
	}
}

func seed(t *testing.T, repo repositories.ProductRepository) []models.Product {
	t.Helper()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	products := []models.Product{
		{Title: "Classic Denim Jacket", Category: "Men's Clothing", Price: 2499, Featured: true, SKU: "SKU-1"},
		{Title: "Summer Floral Dress", Category: "Women's Clothing", Price: 1299, SKU: "SKU-2"},
		{Title: "Leather Belt", Category: "Accessories", Price: 499, SKU: "SKU-3"},
		{Title: "Running Shoes", Category: "Footwear", Price: 3299, Featured: true, SKU: "SKU-4"},
		{Title: "Denim Shorts", Category: "Men's Clothing", Price: 899, SKU: "SKU-5"},
	}
	for i := range products {
		products[i].CreatedAt = base.Add(time.Duration(i) * time.Hour)
		products[i].Images = []string{"/images/" + products[i].SKU + ".jpg"}
		require.NoError(t, repo.Create(context.Background(), &products[i]))
	}
	return products
}

func titles(ps []models.Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Title
	}
	return out
}

func ptr[T any](v T) *T { return &v }

func TestProductRepository_List(t *testing.T) {
	cases := []struct {
		name   string
		filter repositories.ProductFilter
		want   []string
		count  int64
	}{
		{
			name:   "default sort is newest first",
			filter: repositories.ProductFilter{},
			want:   []string{"Denim Shorts", "Running Shoes", "Leather Belt", "Summer Floral Dress", "Classic Denim Jacket"},
			count:  5,
		},
		{
			name:   "keyword is a case-insensitive substring",
			filter: repositories.ProductFilter{Keyword: "DENIM", Sort: "title"},
			want:   []string{"Classic Denim Jacket", "Denim Shorts"},
			count:  2,
		},
		{
			name:   "category exact match",
			filter: repositories.ProductFilter{Category: "Men's Clothing", Sort: "price"},
			want:   []string{"Denim Shorts", "Classic Denim Jacket"},
			count:  2,
		},
		{
			name:   "featured only",
			filter: repositories.ProductFilter{Featured: ptr(true), Sort: "-price"},
			want:   []string{"Running Shoes", "Classic Denim Jacket"},
			count:  2,
		},
		{
			name:   "price bounds are inclusive",
			filter: repositories.ProductFilter{MinPrice: ptr(499.0), MaxPrice: ptr(1299.0), Sort: "price"},
			want:   []string{"Leather Belt", "Denim Shorts", "Summer Floral Dress"},
			count:  3,
		},
		{
			name:   "pagination",
			filter: repositories.ProductFilter{Sort: "price", Page: 2, Limit: 2},
			want:   []string{"Summer Floral Dress", "Classic Denim Jacket"},
			count:  5,
		},
		{
			name:   "page past the end",
			filter: repositories.ProductFilter{Page: 9, Limit: 2},
			want:   []string{},
			count:  5,
		},
		{
			name:   "huge page is empty",
			filter: repositories.ProductFilter{Page: 922337203685477590, Limit: 10},
			want:   []string{},
			count:  5,
		},
		{
			name:   "underscore is not a wildcard",
			filter: repositories.ProductFilter{Keyword: "_"},
			want:   []string{},
			count:  0,
		},
		{
			name:   "percent is not a wildcard",
			filter: repositories.ProductFilter{Keyword: "%"},
			want:   []string{},
			count:  0,
		},
		{
			name:   "unknown sort falls back to newest first",
			filter: repositories.ProductFilter{Sort: "; DROP TABLE products", Limit: 1},
			want:   []string{"Denim Shorts"},
			count:  5,
		},
	}

	for backend, repo := range backends(t) {
		seed(t, repo)
		for _, tc := range cases {
			t.Run(backend+"/"+tc.name, func(t *testing.T) {
				ctx := context.Background()
				got, err := repo.List(ctx, tc.filter)
				require.NoError(t, err)
				assert.Equal(t, tc.want, titles(got))

				n, err := repo.Count(ctx, tc.filter)
				require.NoError(t, err)
				assert.Equal(t, tc.count, n)
			})
		}
	}
}

func TestProductRepository_KeywordMatchesLiterally(t *testing.T) {
	for backend, repo := range backends(t) {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			seed(t, repo)
			for _, p := range []models.Product{
				{Title: "Basic_Tee 100% Cotton", Category: "Men's Clothing", Price: 399, SKU: "SKU-6"},
				{Title: "Basic Tee Back\\Print", Category: "Men's Clothing", Price: 449, SKU: "SKU-7"},
			} {
				require.NoError(t, repo.Create(ctx, &p))
			}

			for keyword, want := range map[string][]string{
				"c_t":  {"Basic_Tee 100% Cotton"},
				"0% c": {"Basic_Tee 100% Cotton"},
				"k\\p": {"Basic Tee Back\\Print"},
				"ic t": {"Basic Tee Back\\Print"},
			} {
				got, err := repo.List(ctx, repositories.ProductFilter{Keyword: keyword})
				require.NoError(t, err)
				assert.Equal(t, want, titles(got), keyword)

				n, err := repo.Count(ctx, repositories.ProductFilter{Keyword: keyword})
				require.NoError(t, err)
				assert.Equal(t, int64(len(want)), n, keyword)
			}
		})
	}
}

func TestProductRepository_UpdateKeepsEmbeddedLists(t *testing.T) {
	for backend, repo := range backends(t) {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			products := seed(t, repo)

			p, err := repo.GetByID(ctx, products[0].ID)
			require.NoError(t, err)
			p.Reviews = append(p.Reviews, models.Review{ID: "r1", User: "u1", Name: "Asha", Rating: 4, Comment: "Fits well"})
			p.RecalculateRating()
			p.CountInStock = 0
			p.Featured = false
			require.NoError(t, repo.Update(ctx, p))

			got, err := repo.GetByID(ctx, p.ID)
			require.NoError(t, err)
			require.Len(t, got.Reviews, 1)
			assert.Equal(t, 4.0, got.Rating)
			assert.Equal(t, 1, got.NumReviews)
			assert.False(t, got.Featured)
			assert.Equal(t, []string{"/images/SKU-1.jpg"}, got.Images)
		})
	}
}

func TestProductRepository_RelatedAndNotFound(t *testing.T) {
	for backend, repo := range backends(t) {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			products := seed(t, repo)

			related, err := repo.ListRelated(ctx, "Men's Clothing", products[0].ID, 4)
			require.NoError(t, err)
			assert.Equal(t, []string{"Denim Shorts"}, titles(related))

			_, err = repo.GetByID(ctx, "missing")
			assert.ErrorIs(t, err, repositories.ErrNotFound)
			assert.ErrorIs(t, repo.Delete(ctx, "missing"), repositories.ErrNotFound)
			assert.ErrorIs(t, repo.Update(ctx, &models.Product{ID: "missing"}), repositories.ErrNotFound)

			exists, err := repo.SKUExists(ctx, "SKU-3")
			require.NoError(t, err)
			assert.True(t, exists)

			require.NoError(t, repo.Delete(ctx, products[2].ID))
			exists, err = repo.SKUExists(ctx, "SKU-3")
			require.NoError(t, err)
			assert.False(t, exists)
		})
	}
}

func TestOrderRepository_PaidRevenue(t *testing.T) {
	repos := map[string]repositories.OrderRepository{
		"gorm":   repositories.NewGORMOrderRepository(openSQLite(t)),
		"memory": repositories.NewMockOrderRepository(),
	}
	for backend, repo := range repos {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			paid := &models.Order{User: "u1", TotalPrice: 2360, OrderItems: []models.OrderItem{{Product: "p1", Quantity: 2, Price: 1000}}}
			unpaid := &models.Order{User: "u2", TotalPrice: 286}
			require.NoError(t, repo.Create(ctx, paid))
			require.NoError(t, repo.Create(ctx, unpaid))

			now := time.Now()
			paid.IsPaid = true
			paid.PaidAt = &now
			paid.PaymentResult = &models.PaymentResult{ID: "pay_1", Status: "COMPLETED"}
			require.NoError(t, repo.Update(ctx, paid))

			revenue, err := repo.PaidRevenue(ctx)
			require.NoError(t, err)
			assert.Equal(t, 2360.0, revenue)

			mine, err := repo.ListByUser(ctx, "u1")
			require.NoError(t, err)
			require.Len(t, mine, 1)
			assert.True(t, mine[0].IsPaid)
			require.NotNil(t, mine[0].PaymentResult)
			assert.Equal(t, "pay_1", mine[0].PaymentResult.ID)
			assert.Len(t, mine[0].OrderItems, 1)

			n, err := repo.Count(ctx)
			require.NoError(t, err)
			assert.Equal(t, int64(2), n)
		})
	}
}
