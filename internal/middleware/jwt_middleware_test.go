package middleware_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/logging"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
)

func setup(t *testing.T) (*fiber.App, *services.AuthService, *repositories.MockUserRepository) {
	t.Helper()
	users := repositories.NewMockUserRepository()
	auth := services.NewAuthService(users, "secret", time.Hour, logging.Discard())

	app := fiber.New()
	app.Get("/me", middleware.AuthRequired(auth), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"name": middleware.CurrentUser(c).Name})
	})
	app.Get("/admin", middleware.AuthRequired(auth), middleware.AdminRequired(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app, auth, users
}

func get(t *testing.T, app *fiber.App, path, auth string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set(fiber.HeaderAuthorization, auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body := map[string]any{}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp.StatusCode, body
}

func TestAuthRequired(t *testing.T) {
	app, auth, users := setup(t)
	ctx := context.Background()

	user := &models.User{Name: "Meera", Email: "meera@example.com"}
	require.NoError(t, users.Create(ctx, user))
	token, err := auth.GenerateToken(user.ID)
	require.NoError(t, err)

	status, body := get(t, app, "/me", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Not authorized, no token", body["message"])

	status, _ = get(t, app, "/me", "Token "+token)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = get(t, app, "/me", "Bearer not-a-jwt")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, body = get(t, app, "/me", "Bearer "+token)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Meera", body["name"])
}

func TestAdminRequired(t *testing.T) {
	app, auth, users := setup(t)
	ctx := context.Background()

	shopper := &models.User{Name: "Shopper", Email: "s@example.com"}
	admin := &models.User{Name: "Admin", Email: "admin@example.com", IsAdmin: true}
	require.NoError(t, users.Create(ctx, shopper))
	require.NoError(t, users.Create(ctx, admin))

	shopperToken, _ := auth.GenerateToken(shopper.ID)
	adminToken, _ := auth.GenerateToken(admin.ID)

	status, body := get(t, app, "/admin", "Bearer "+shopperToken)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, services.ErrForbidden.Error(), body["message"])

	status, _ = get(t, app, "/admin", "Bearer "+adminToken)
	assert.Equal(t, fiber.StatusNoContent, status)
}
