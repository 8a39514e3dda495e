package queue

import (
	"context"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitConsumer drains one queue with one handler. Used by the notifier
// worker; notification delivery is best effort, so handler errors drop the
// message instead of requeueing by default.
type RabbitConsumer struct {
	Ch           *amqp.Channel
	QueueName    string
	Handler      Handler
	Log          *slog.Logger
	Prefetch     int
	CallTimeout  time.Duration
	RequeueOnErr bool
}

func NewRabbitConsumer(ch *amqp.Channel, queueName string, h Handler, log *slog.Logger) *RabbitConsumer {
	return &RabbitConsumer{
		Ch:          ch,
		QueueName:   queueName,
		Handler:     h,
		Log:         log,
		Prefetch:    50,
		CallTimeout: 10 * time.Second,
	}
}

// Start consumes until ctx is cancelled or the channel closes.
func (c *RabbitConsumer) Start(ctx context.Context) error {
	if err := c.Ch.Qos(c.Prefetch, 0, false); err != nil {
		return err
	}

	msgs, err := c.Ch.Consume(
		c.QueueName,
		"",    // consumer tag
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			callCtx, cancel := context.WithTimeout(ctx, c.CallTimeout)
			err := c.Handler.Handle(callCtx, d)
			cancel()

			if err != nil {
				c.Log.Warn("delivery handler failed", "queue", c.QueueName,
					"routing_key", d.RoutingKey, "requeue", c.RequeueOnErr, "err", err)
				_ = d.Nack(false, c.RequeueOnErr)
				continue
			}
			_ = d.Ack(false)
		}
	}
}
