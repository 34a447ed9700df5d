package events

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/streadway/amqp"

	"storefront/pkg/rabbitmq"
)

// Rabbit publishes and consumes order events over a RabbitMQ queue.
type Rabbit struct {
	client *rabbitmq.Client
}

func NewRabbit(client *rabbitmq.Client) *Rabbit {
	return &Rabbit{client: client}
}

func (r *Rabbit) Publish(ctx context.Context, ev OrderEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}
	return r.client.Publish(ctx, ev.Type, body)
}

func (r *Rabbit) Consume(ctx context.Context, h Handler) error {
	return r.client.Consume(ctx, func(ctx context.Context, d amqp.Delivery) error {
		ev, err := Decode(d.Body)
		if err != nil {
			return err
		}
		return h(ctx, ev)
	})
}

func (r *Rabbit) Close() error {
	return r.client.Close()
}
