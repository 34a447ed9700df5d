package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/services"
)

// AdminHandler serves the admin dashboard.
type AdminHandler struct {
	dashboard *services.DashboardService
	orders    *services.OrderService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(dashboard *services.DashboardService, orders *services.OrderService) *AdminHandler {
	return &AdminHandler{dashboard: dashboard, orders: orders}
}

// RegisterRoutes registers the admin dashboard routes.
func (h *AdminHandler) RegisterRoutes(router fiber.Router, auth, admin fiber.Handler) {
	adminRoutes := router.Group("/admin", auth, admin)
	adminRoutes.Get("/stats", h.HandleStats)
	adminRoutes.Get("/orders/recent", h.HandleRecentOrders)
}

// HandleStats returns the store-wide totals.
func (h *AdminHandler) HandleStats(c *fiber.Ctx) error {
	stats, err := h.dashboard.Stats(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// HandleRecentOrders returns the most recent orders, newest first.
func (h *AdminHandler) HandleRecentOrders(c *fiber.Ctx) error {
	orders, err := h.orders.Recent(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}
