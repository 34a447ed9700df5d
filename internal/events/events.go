// Package events publishes order lifecycle notifications to a message broker.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"storefront/internal/models"
)

const (
	OrderCreated   = "order.created"
	OrderPaid      = "order.paid"
	OrderDelivered = "order.delivered"
)

// OrderEvent is the message body sent for every order lifecycle change.
type OrderEvent struct {
	Type           string    `json:"type"`
	OrderID        string    `json:"orderId"`
	UserID         string    `json:"userId"`
	ItemCount      int       `json:"itemCount"`
	TotalPrice     float64   `json:"totalPrice"`
	IsPaid         bool      `json:"isPaid"`
	IsDelivered    bool      `json:"isDelivered"`
	TrackingNumber string    `json:"trackingNumber,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// NewOrderEvent snapshots order under the given event type.
func NewOrderEvent(eventType string, order *models.Order) OrderEvent {
	count := 0
	for _, it := range order.OrderItems {
		count += it.Quantity
	}
	return OrderEvent{
		Type:           eventType,
		OrderID:        order.ID,
		UserID:         order.User,
		ItemCount:      count,
		TotalPrice:     order.TotalPrice,
		IsPaid:         order.IsPaid,
		IsDelivered:    order.IsDelivered,
		TrackingNumber: order.TrackingNumber,
		OccurredAt:     time.Now().UTC(),
	}
}

// Decode parses a message body produced by a Publisher.
func Decode(body []byte) (OrderEvent, error) {
	var ev OrderEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return OrderEvent{}, fmt.Errorf("failed to decode order event: %w", err)
	}
	return ev, nil
}

// Publisher delivers order events to a broker.
type Publisher interface {
	Publish(ctx context.Context, ev OrderEvent) error
	Close() error
}

// Handler processes one received order event.
type Handler func(ctx context.Context, ev OrderEvent) error

// Consumer feeds received order events to a Handler until its context ends.
type Consumer interface {
	Consume(ctx context.Context, h Handler) error
	Close() error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, OrderEvent) error { return nil }
func (Nop) Close() error                              { return nil }

// LogHandler returns a Handler that records each event it receives.
func LogHandler(logger *slog.Logger) Handler {
	return func(ctx context.Context, ev OrderEvent) error {
		logger.InfoContext(ctx, "order event received",
			"type", ev.Type,
			"order_id", ev.OrderID,
			"user_id", ev.UserID,
			"total_price", ev.TotalPrice,
		)
		return nil
	}
}
