package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/logging"
	"storefront/internal/models"
	"storefront/internal/services"
)

const userKey = "user"

// AuthRequired is a Fiber middleware that resolves the bearer token to a user.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Not authorized, no token",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		user, err := authService.Authenticate(c.UserContext(), strings.TrimSpace(parts[1]))
		if err != nil {
			logging.FromContext(c.UserContext()).Debug("token rejected", "error", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Not authorized, token failed",
			})
		}

		c.Locals(userKey, user)
		return c.Next()
	}
}

// AdminRequired rejects users without the admin flag. It must run after AuthRequired.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := services.EnsureAdmin(CurrentUser(c)); err != nil {
			status := fiber.StatusForbidden
			if errors.Is(err, services.ErrUnauthorized) {
				status = fiber.StatusUnauthorized
			}
			return c.Status(status).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Next()
	}
}

// CurrentUser returns the user stored by AuthRequired, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userKey).(*models.User)
	return user
}
