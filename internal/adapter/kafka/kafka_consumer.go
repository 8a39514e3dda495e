package kafka

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/IBM/sarama"

	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/order"
)

// HandlerFunc processes a decoded order event.
type HandlerFunc func(ctx context.Context, o order.Order) error

// Consumer consumes the order.created topic with a single handler. Delivery is
// at-least-once; the handler must be idempotent.
type Consumer struct {
	Group  sarama.ConsumerGroup
	Topics []string
	Handle HandlerFunc
	Log    *slog.Logger
}

func NewConsumer(group sarama.ConsumerGroup, topics []string, h HandlerFunc, log *slog.Logger) *Consumer {
	return &Consumer{Group: group, Topics: topics, Handle: h, Log: log}
}

func (c *Consumer) Start(ctx context.Context) error {
	handler := &cgHandler{handle: c.Handle, log: c.Log}
	for {
		if err := c.Group.Consume(ctx, c.Topics, handler); err != nil {
			return err
		}
		// Consume returns on cancellation or rebalance; loop to rejoin.
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

type cgHandler struct {
	handle HandlerFunc
	log    *slog.Logger
}

func (h *cgHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *cgHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *cgHandler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		var o order.Order
		if err := json.Unmarshal(msg.Value, &o); err != nil {
			h.log.Warn("kafka decode error", "offset", msg.Offset, "err", err)
			// mark to avoid reprocessing poison
			sess.MarkMessage(msg, "decode-error")
			continue
		}
		if err := h.handle(sess.Context(), o); err != nil {
			h.log.Warn("order event handler error", "order_id", o.ID, "offset", msg.Offset, "err", err)
			// not marked; retried on next poll
			continue
		}
		sess.MarkMessage(msg, "")
	}
	return nil
}
