package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"storefront/internal/cart"
	"storefront/internal/events"
	"storefront/internal/models"
	"storefront/internal/repositories"
)

const (
	// RecentOrdersLimit is the size of the admin dashboard's recent orders list.
	RecentOrdersLimit = 5
	// PublishTimeout bounds how long a request waits on the event broker.
	PublishTimeout = 3 * time.Second
)

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
	userRepo  repositories.UserRepository
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time

	publishTimeout time.Duration
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, userRepo repositories.UserRepository, publisher events.Publisher, logger *slog.Logger) *OrderService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &OrderService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,

		publishTimeout: PublishTimeout,
	}
}

// OrderRequest is the checkout payload. Totals are computed by the client.
type OrderRequest struct {
	OrderItems      []models.OrderItem
	ShippingAddress models.ShippingAddress
	PaymentMethod   string
	Totals          cart.Summary
}

// OrderDetail is an order together with its owner's public fields.
type OrderDetail struct {
	Order     *models.Order
	UserName  string
	UserEmail string
}

// Create stores an immutable order snapshot for userID.
// Client totals are stored as sent; a mismatch with the items is only logged.
func (s *OrderService) Create(ctx context.Context, userID string, req OrderRequest) (*models.Order, error) {
	if len(req.OrderItems) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]models.OrderItem, len(req.OrderItems))
	copy(items, req.OrderItems)

	expected := cart.Summarize(cart.TotalOf(items,
		func(it models.OrderItem) float64 { return it.Price },
		func(it models.OrderItem) int { return it.Quantity }))
	if expected != req.Totals {
		s.logger.WarnContext(ctx, "order totals differ from line items",
			"user_id", userID,
			"client_total", req.Totals.TotalPrice,
			"computed_total", expected.TotalPrice,
		)
	}

	order := &models.Order{
		User:            userID,
		OrderItems:      items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		ItemsPrice:      req.Totals.ItemsPrice,
		TaxPrice:        req.Totals.TaxPrice,
		ShippingPrice:   req.Totals.ShippingPrice,
		TotalPrice:      req.Totals.TotalPrice,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	s.logger.InfoContext(ctx, "order created", "order_id", order.ID, "user_id", userID, "total_price", order.TotalPrice)
	s.publish(ctx, events.OrderCreated, order)
	return order, nil
}

// Get retrieves a single order with its owner's name and email.
func (s *OrderService) Get(ctx context.Context, id string) (*OrderDetail, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &OrderDetail{Order: order}
	if u, err := s.userRepo.GetByID(ctx, order.User); err == nil {
		detail.UserName, detail.UserEmail = u.Name, u.Email
	}
	return detail, nil
}

// ListMine returns the orders placed by userID.
func (s *OrderService) ListMine(ctx context.Context, userID string) ([]models.Order, error) {
	return emptyIfNil(s.orderRepo.ListByUser(ctx, userID))
}

// ListAll retrieves all orders.
func (s *OrderService) ListAll(ctx context.Context) ([]models.Order, error) {
	return emptyIfNil(s.orderRepo.List(ctx))
}

// Recent returns the newest orders first.
func (s *OrderService) Recent(ctx context.Context) ([]models.Order, error) {
	return emptyIfNil(s.orderRepo.ListRecent(ctx, RecentOrdersLimit))
}

// MarkPaid records the gateway result. Paying twice overwrites the first result.
func (s *OrderService) MarkPaid(ctx context.Context, id string, result models.PaymentResult) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	order.IsPaid = true
	order.PaidAt = &now
	order.PaymentResult = &result
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to mark order %s paid: %w", id, err)
	}
	s.publish(ctx, events.OrderPaid, order)
	return order, nil
}

// MarkDelivered flags the order delivered. An empty tracking number keeps the old one.
func (s *OrderService) MarkDelivered(ctx context.Context, id, trackingNumber string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	order.IsDelivered = true
	order.DeliveredAt = &now
	if trackingNumber != "" {
		order.TrackingNumber = trackingNumber
	}
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to mark order %s delivered: %w", id, err)
	}
	s.publish(ctx, events.OrderDelivered, order)
	return order, nil
}

// publish never fails the caller and gives up after publishTimeout.
func (s *OrderService) publish(ctx context.Context, eventType string, order *models.Order) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
	defer cancel()
	if err := s.publisher.Publish(ctx, events.NewOrderEvent(eventType, order)); err != nil {
		s.logger.WarnContext(ctx, "failed to publish order event", "type", eventType, "order_id", order.ID, "error", err)
	}
}

func emptyIfNil(orders []models.Order, err error) ([]models.Order, error) {
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}
