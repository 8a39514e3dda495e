package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"

	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/checkout"
	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/order"
)

// OrderEvents emits order.created records for the kitchen board feed. Keyed by
// order id so duplicates land on the same partition in order.
type OrderEvents struct {
	producer sarama.SyncProducer
	topic    string
}

func NewOrderEvents(producer sarama.SyncProducer, topic string) *OrderEvents {
	return &OrderEvents{producer: producer, topic: topic}
}

func (e *OrderEvents) PublishCreated(_ context.Context, o order.Order) error {
	body, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}
	_, _, err = e.producer.SendMessage(&sarama.ProducerMessage{
		Topic: e.topic,
		Key:   sarama.StringEncoder(o.ID),
		Value: sarama.ByteEncoder(body),
	})
	if err != nil {
		return fmt.Errorf("produce order.created: %w", err)
	}
	return nil
}

var _ checkout.OrderEvents = (*OrderEvents)(nil)
