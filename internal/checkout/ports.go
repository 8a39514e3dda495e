package checkout

import (
	"context"

	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/order"
)

type OrderRepo interface {
	Create(ctx context.Context, o *order.Order) error
}

// IdempotencyStore fences duplicate checkout attempts carrying the same key.
type IdempotencyStore interface {
	TryLock(ctx context.Context, scope, key string) (bool, error)
	Remember(ctx context.Context, scope, key, value string) error
	Recall(ctx context.Context, scope, key string) (string, bool, error)
}

// Notifier relays a fresh order to store staff. Best effort: callers discard
// the error after logging it.
type Notifier interface {
	NotifyNewOrder(ctx context.Context, o order.Order) error
}

// OrderEvents feeds the kitchen board's realtime stream.
type OrderEvents interface {
	PublishCreated(ctx context.Context, o order.Order) error
}
