// The notifier worker relays new orders to the store's SMS phone. It consumes
// the staff-notification queue the checkout path publishes to; delivery is
// best effort and failures never travel back to the customer.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/marceloquintiliano12-debug/a-aidaTati/configs"
	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/adapter/notify"
	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/adapter/queue"
	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/logging"
	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/order"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}

	cfg, err := configs.Load("configs", env)
	if err != nil {
		log.Fatal(err)
	}

	logging.Init("notifier", cfg.App.LogFile)
	logger := logging.New("notifier")

	conn, err := amqp.Dial(cfg.Rabbit.URL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()
	ch, err := conn.Channel()
	if err != nil {
		log.Fatal(err)
	}
	defer ch.Close()

	// declare the same topology as the publisher so either side can start first
	if _, err := queue.NewRabbitNotifier(ch, cfg.Rabbit.Exchange, cfg.Rabbit.Queue, cfg.Rabbit.RoutingKey); err != nil {
		log.Fatal(err)
	}

	gateway := notify.NewSMSGateway(cfg.Store.SMSGatewayURL, cfg.Store.SMSTo)

	handler := queue.JSONHandler[order.Order]{
		HandleFunc: func(ctx context.Context, o order.Order) error {
			if !gateway.Configured() {
				logger.Info("sms gateway not configured, logging only",
					"order_id", o.ID, "summary", notify.SummaryText(o))
				return nil
			}
			if err := gateway.Send(ctx, o); err != nil {
				// best effort, no retry: log and ack
				logger.Warn("sms send failed", "order_id", o.ID, "err", err)
			}
			return nil
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := queue.NewRabbitConsumer(ch, cfg.Rabbit.Queue, handler, logger)
	logger.Info("notifier consuming", "queue", cfg.Rabbit.Queue)
	if err := consumer.Start(ctx); err != nil && ctx.Err() == nil {
		log.Fatal(err)
	}
}
