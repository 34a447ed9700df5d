package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

const (
	SeedAdminEmail    = "admin@example.com"
	SeedAdminPassword = "admin123"
)

var seedCategories = []models.Category{
	{Name: "Men's Clothing", Description: "Shirts, jackets, trousers and more for men"},
	{Name: "Women's Clothing", Description: "Dresses, tops, skirts and more for women"},
	{Name: "Accessories", Description: "Bags, belts, jewellery and sunglasses"},
	{Name: "Footwear", Description: "Shoes, sneakers, boots and sandals"},
}

// Seed inserts the default categories and the admin account when missing.
// Running it again is a no-op.
func Seed(ctx context.Context, users repositories.UserRepository, categories repositories.CategoryRepository, logger *slog.Logger) error {
	for _, c := range seedCategories {
		_, err := categories.GetByName(ctx, c.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("failed to look up category %s: %w", c.Name, err)
		}
		if err := categories.Create(ctx, &c); err != nil {
			return fmt.Errorf("failed to seed category %s: %w", c.Name, err)
		}
		logger.InfoContext(ctx, "seeded category", "name", c.Name)
	}

	_, err := users.GetByEmail(ctx, SeedAdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}
	hashed, err := hashPassword(SeedAdminPassword)
	if err != nil {
		return err
	}
	admin := &models.User{Name: "Admin User", Email: SeedAdminEmail, Password: hashed, IsAdmin: true}
	if err := users.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}
	logger.InfoContext(ctx, "seeded admin user", "email", SeedAdminEmail)
	return nil
}
