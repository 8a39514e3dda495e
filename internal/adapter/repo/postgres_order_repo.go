package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/board"
	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/checkout"
	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/order"
)

var ErrNotFound = errors.New("not found")

type PostgresOrderRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresOrderRepo(pool *pgxpool.Pool) *PostgresOrderRepo {
	return &PostgresOrderRepo{pool: pool}
}

func (r *PostgresOrderRepo) Create(ctx context.Context, o *order.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
INSERT INTO orders (id, customer_name, total_amount, payment_method, delivery_type,
                    delivery_fee, address, change_for, items, status, created_at)
VALUES ($1, $2, $3::numeric, $4, $5, $6::numeric, NULLIF($7,''), NULLIF($8,''), $9, $10, $11)`,
		o.ID, o.CustomerName, o.TotalAmount.StringFixed(2), string(o.Payment), string(o.Delivery),
		o.DeliveryFee.StringFixed(2), o.Address, o.ChangeFor, items, string(o.Status), o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// ListPending returns the non-terminal page the board shows, newest first.
func (r *PostgresOrderRepo) ListPending(ctx context.Context, limit int) ([]order.Order, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, customer_name, total_amount::text, payment_method, delivery_type,
       delivery_fee::text, COALESCE(address,''), COALESCE(change_for,''), items, status, created_at
FROM orders
WHERE status NOT IN ('completed','cancelled')
ORDER BY created_at DESC
LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("select pending orders: %w", err)
	}
	defer rows.Close()

	var out []order.Order
	for rows.Next() {
		var (
			o            order.Order
			total, fee   string
			pay, del, st string
			items        []byte
		)
		if err := rows.Scan(&o.ID, &o.CustomerName, &total, &pay, &del,
			&fee, &o.Address, &o.ChangeFor, &items, &st, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		if o.TotalAmount, err = decimal.NewFromString(total); err != nil {
			return nil, fmt.Errorf("order %s total: %w", o.ID, err)
		}
		if o.DeliveryFee, err = decimal.NewFromString(fee); err != nil {
			return nil, fmt.Errorf("order %s fee: %w", o.ID, err)
		}
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return nil, fmt.Errorf("order %s items: %w", o.ID, err)
		}
		o.Payment = order.PaymentMethod(pay)
		o.Delivery = order.DeliveryMode(del)
		o.Status = order.Status(st)
		out = append(out, o)
	}
	return out, rows.Err()
}

// UpdateStatus persists an operator transition. The guard lives in the UPDATE
// itself: a row that already reached a terminal state is never rewritten, even
// when two operators race on stale board views.
func (r *PostgresOrderRepo) UpdateStatus(ctx context.Context, id string, st order.Status) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE orders SET status = $1
WHERE id = $2 AND status NOT IN ('completed','cancelled')`, string(st), id)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var current string
		if qerr := r.pool.QueryRow(ctx,
			`SELECT status FROM orders WHERE id = $1`, id).Scan(&current); qerr != nil {
			return ErrNotFound
		}
		return fmt.Errorf("order %s is %s: %w", id, current, order.ErrAlreadyClosed)
	}
	return nil
}

var (
	_ checkout.OrderRepo = (*PostgresOrderRepo)(nil)
	_ board.Repo         = (*PostgresOrderRepo)(nil)
)
