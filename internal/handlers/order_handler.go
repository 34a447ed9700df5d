package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/cart"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// RegisterRoutes registers the order routes. Every route requires a signed-in user.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, auth, admin fiber.Handler) {
	orderRoutes := router.Group("/orders", auth)
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Get("/", admin, h.HandleGetOrders)
	orderRoutes.Get("/myorders", h.HandleGetMyOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Put("/:id/pay", h.HandlePayOrder)
	orderRoutes.Put("/:id/deliver", admin, h.HandleDeliverOrder)
}

// OrderRequest is the checkout body. Totals are computed by the client.
type OrderRequest struct {
	OrderItems      []models.OrderItem     `json:"orderItems"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
	ItemsPrice      float64                `json:"itemsPrice"`
	TaxPrice        float64                `json:"taxPrice"`
	ShippingPrice   float64                `json:"shippingPrice"`
	TotalPrice      float64                `json:"totalPrice"`
}

// DeliverRequest is the optional body of a delivery update.
type DeliverRequest struct {
	TrackingNumber string `json:"trackingNumber"`
}

type userSummary struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// orderResponse is an order with its user reference populated.
type orderResponse struct {
	*models.Order
	User userSummary `json:"user"`
}

// HandleCreateOrder creates a new order.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req OrderRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	createdOrder, err := h.service.Create(c.UserContext(), middleware.CurrentUser(c).ID, services.OrderRequest{
		OrderItems:      req.OrderItems,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		Totals: cart.Summary{
			ItemsPrice:    req.ItemsPrice,
			TaxPrice:      req.TaxPrice,
			ShippingPrice: req.ShippingPrice,
			TotalPrice:    req.TotalPrice,
		},
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(createdOrder)
}

// HandleGetOrders retrieves all orders.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListAll(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// HandleGetMyOrders retrieves the orders of the authenticated user.
func (h *OrderHandler) HandleGetMyOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListMine(c.UserContext(), middleware.CurrentUser(c).ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	detail, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return notFound(c, err, "Order")
	}
	return c.JSON(orderResponse{
		Order: detail.Order,
		User:  userSummary{ID: detail.Order.User, Name: detail.UserName, Email: detail.UserEmail},
	})
}

// HandlePayOrder marks an order as paid with the gateway result.
func (h *OrderHandler) HandlePayOrder(c *fiber.Ctx) error {
	var result models.PaymentResult
	if err := bindOptional(c, &result); err != nil {
		return respondError(c, err)
	}
	order, err := h.service.MarkPaid(c.UserContext(), c.Params("id"), result)
	if err != nil {
		return notFound(c, err, "Order")
	}
	return c.JSON(order)
}

// HandleDeliverOrder marks an order as delivered.
func (h *OrderHandler) HandleDeliverOrder(c *fiber.Ctx) error {
	var req DeliverRequest
	if err := bindOptional(c, &req); err != nil {
		return respondError(c, err)
	}
	order, err := h.service.MarkDelivered(c.UserContext(), c.Params("id"), req.TrackingNumber)
	if err != nil {
		return notFound(c, err, "Order")
	}
	return c.JSON(order)
}
