package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/checkout"
	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/order"
)

// RabbitNotifier publishes new orders to the staff-notification exchange. The
// notifier worker consumes the bound queue and relays them over SMS; checkout
// itself never waits on that.
type RabbitNotifier struct {
	ch         *amqp.Channel
	exchange   string
	routingKey string
}

// NewRabbitNotifier declares the exchange, queue, and binding once at startup
// so publisher and worker can start in any order.
func NewRabbitNotifier(ch *amqp.Channel, exchange, queueName, routingKey string) (*RabbitNotifier, error) {
	if err := ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	q, err := ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.QueueBind(q.Name, routingKey, exchange, false, nil); err != nil {
		return nil, fmt.Errorf("queue bind: %w", err)
	}

	return &RabbitNotifier{ch: ch, exchange: exchange, routingKey: routingKey}, nil
}

func (n *RabbitNotifier) NotifyNewOrder(ctx context.Context, o order.Order) error {
	body, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // survive broker restarts
		MessageId:    o.ID,
		Body:         body,
	}

	if err := n.ch.PublishWithContext(ctx, n.exchange, n.routingKey, false, false, pub); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

var _ checkout.Notifier = (*RabbitNotifier)(nil)
