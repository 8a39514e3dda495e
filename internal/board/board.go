// Package board holds the kitchen-side view of open orders: a bounded,
// newest-first list of everything that still needs preparing, fed by the
// realtime order stream and trimmed by operator status updates.
package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/order"
)

var (
	ErrNotVisible        = errors.New("order not on the board")
	ErrInvalidTransition = errors.New("operators may only complete or cancel an order")
)

type Repo interface {
	ListPending(ctx context.Context, limit int) ([]order.Order, error)
	UpdateStatus(ctx context.Context, id string, st order.Status) error
}

type Board struct {
	repo  Repo
	limit int
	log   *slog.Logger

	mu      sync.RWMutex
	visible []order.Order
	// seen is cumulative across the board's lifetime so a re-delivered insert
	// can never resurrect an order the operator already closed.
	seen map[string]struct{}
}

func New(repo Repo, limit int, log *slog.Logger) *Board {
	return &Board{
		repo:  repo,
		limit: limit,
		log:   log,
		seen:  make(map[string]struct{}),
	}
}

// Refresh replaces the visible list with the authoritative pending page.
// It is both the initial load and the single rollback mechanism after a
// failed status update.
func (b *Board) Refresh(ctx context.Context) error {
	orders, err := b.repo.ListPending(ctx, b.limit)
	if err != nil {
		return fmt.Errorf("refresh board: %w", err)
	}
	b.mu.Lock()
	b.visible = orders
	for _, o := range orders {
		b.seen[o.ID] = struct{}{}
	}
	b.mu.Unlock()
	return nil
}

// Apply prepends a newly arrived order. Delivery is at-least-once, so the
// prepend is idempotent: a duplicate id is dropped and reported false.
func (b *Board) Apply(o order.Order) bool {
	if o.Status.Terminal() {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, dup := b.seen[o.ID]; dup {
		return false
	}
	b.seen[o.ID] = struct{}{}
	b.visible = append([]order.Order{o}, b.visible...)
	if b.limit > 0 && len(b.visible) > b.limit {
		b.visible = b.visible[:b.limit]
	}
	return true
}

// Run consumes the realtime feed until ctx is cancelled or the channel
// closes. A single consumer loop applies events, so arrivals never race the
// rest of the board state. Each accepted order is logged as the audible
// new-order alert.
func (b *Board) Run(ctx context.Context, events <-chan order.Order) {
	for {
		select {
		case <-ctx.Done():
			return
		case o, ok := <-events:
			if !ok {
				return
			}
			if b.Apply(o) {
				b.log.Info("new order", "order_id", o.ID, "customer", o.CustomerName,
					"total", o.TotalAmount.StringFixed(2))
			}
		}
	}
}

// Orders returns a copy of the visible list, newest first.
func (b *Board) Orders() []order.Order {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]order.Order, len(b.visible))
	copy(out, b.visible)
	return out
}

// Transition closes an order: optimistic removal first, persisted update
// second. If persistence fails the board never guesses the prior state back;
// it resynchronizes from the repo, because another operator may have moved
// the order concurrently.
func (b *Board) Transition(ctx context.Context, id string, to order.Status) error {
	if !to.Terminal() {
		return ErrInvalidTransition
	}

	b.mu.Lock()
	idx := -1
	for i, o := range b.visible {
		if o.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		b.mu.Unlock()
		return ErrNotVisible
	}
	b.visible = append(b.visible[:idx], b.visible[idx+1:]...)
	b.mu.Unlock()

	if err := b.repo.UpdateStatus(ctx, id, to); err != nil {
		if rerr := b.Refresh(ctx); rerr != nil {
			b.log.Error("board resync failed after update error", "order_id", id, "err", rerr)
		}
		return fmt.Errorf("update order %s: %w", id, err)
	}
	return nil
}
