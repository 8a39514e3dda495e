package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/cart"
	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/order"
	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/pricing"
)

var (
	// ErrValidation marks precondition failures; nothing has been persisted
	// when it is returned.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicate means another attempt with the same idempotency key is in
	// flight or already done.
	ErrDuplicate = errors.New("duplicate checkout attempt")
)

// localIDPrefix marks orders that could not be persisted and need manual
// reconciliation.
const localIDPrefix = "LOCAL-"

type SubmitInput struct {
	CustomerName   string
	Items          []cart.Item
	Payment        order.PaymentMethod
	Delivery       order.DeliveryMode
	Address        string
	ChangeFor      string
	IdempotencyKey string // optional; empty falls back to the UI-only guard
}

type Result struct {
	Success       bool
	OrderID       string
	CheckoutURL   string // set for pix/card only
	PixKey        string // set for pix only
	PixQRImageURL string // set for pix only
	Total         decimal.Decimal
	Order         order.Order // snapshot the UI renders into the messaging deep link
}

// PaymentConfig describes the store's fixed payment collaborators. The link is
// not parameterized, so the amount reaches the customer out of band.
type PaymentConfig struct {
	CheckoutURL   string
	PixKey        string
	PixQRImageURL string
}

// Orchestrator turns a cart plus form input into a persisted pending order.
// Persistence and notification failures degrade; only precondition violations
// surface as errors.
type Orchestrator struct {
	repo     OrderRepo
	idem     IdempotencyStore
	notifier Notifier
	events   OrderEvents
	pricer   pricing.Engine
	pay      PaymentConfig
	log      *slog.Logger
	now      func() time.Time
}

func NewOrchestrator(repo OrderRepo, idem IdempotencyStore, notifier Notifier, events OrderEvents, pricer pricing.Engine, pay PaymentConfig, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		repo:     repo,
		idem:     idem,
		notifier: notifier,
		events:   events,
		pricer:   pricer,
		pay:      pay,
		log:      log,
		now:      time.Now,
	}
}

func (o *Orchestrator) Submit(ctx context.Context, in SubmitInput) (Result, error) {
	if err := o.validate(in); err != nil {
		return Result{}, err
	}

	// Idempotency recall: a retried attempt replays the first result instead
	// of inserting a second order.
	if in.IdempotencyKey != "" {
		id, ok, err := o.idem.Recall(ctx, "checkout", in.IdempotencyKey)
		if err != nil {
			o.log.Warn("idempotency recall failed", "err", err)
		}
		if ok {
			ord := o.buildOrder(in)
			ord.ID = id
			return o.result(ord), nil
		}
		ok, err = o.idem.TryLock(ctx, "checkout", in.IdempotencyKey)
		if err != nil {
			// Fencing store down: proceed unguarded rather than block checkout.
			o.log.Warn("idempotency store unavailable", "err", err)
		} else if !ok {
			return Result{}, ErrDuplicate
		}
	}

	ord := o.buildOrder(in)

	if err := o.repo.Create(ctx, &ord); err != nil {
		// Keep the customer moving: hand out a locally scoped id and flag the
		// order for manual reconciliation.
		ord.ID = o.localOrderID()
		o.log.Error("order persist failed, using local id", "order_id", ord.ID, "err", err)
	} else {
		o.notifyStaff(ord)
		o.publishCreated(ord)
	}

	if in.IdempotencyKey != "" {
		_ = o.idem.Remember(ctx, "checkout", in.IdempotencyKey, ord.ID)
	}

	return o.result(ord), nil
}

func (o *Orchestrator) validate(in SubmitInput) error {
	if strings.TrimSpace(in.CustomerName) == "" {
		return fmt.Errorf("%w: %w", ErrValidation, order.ErrMissingName)
	}
	if in.Delivery == order.ModeDelivery && strings.TrimSpace(in.Address) == "" {
		return fmt.Errorf("%w: %w", ErrValidation, order.ErrMissingAddress)
	}
	if len(in.Items) == 0 {
		return fmt.Errorf("%w: %w", ErrValidation, order.ErrEmptyOrder)
	}
	return nil
}

// buildOrder snapshots titles and prices into the payload; the order must stay
// readable as sold even if the menu changes afterwards.
func (o *Orchestrator) buildOrder(in SubmitInput) order.Order {
	items := make([]order.LineItem, 0, len(in.Items))
	for _, it := range in.Items {
		addons := make([]order.AddonSnapshot, 0, len(it.Addons))
		for _, a := range it.Addons {
			addons = append(addons, order.AddonSnapshot{ID: a.ID, Title: a.Title, Price: a.Price})
		}
		items = append(items, order.LineItem{
			ProductID:    it.Product.ID,
			ProductTitle: it.Product.Title,
			Qty:          it.Qty,
			Addons:       addons,
			NeedSpoon:    it.NeedSpoon,
			Subtotal:     o.pricer.LineSubtotal(it),
		})
	}

	ord := order.Order{
		ID:           uuid.NewString(),
		CustomerName: strings.TrimSpace(in.CustomerName),
		Items:        items,
		TotalAmount:  o.pricer.Total(in.Items, in.Delivery),
		Payment:      in.Payment,
		Delivery:     in.Delivery,
		DeliveryFee:  o.pricer.Fee(in.Delivery),
		Status:       order.StatusPending,
		CreatedAt:    o.now().UTC(),
	}
	if in.Delivery == order.ModeDelivery {
		ord.Address = strings.TrimSpace(in.Address)
	}
	if in.Payment == order.PayMoney {
		ord.ChangeFor = strings.TrimSpace(in.ChangeFor)
	}
	return ord
}

// notifyStaff fires the staff notification without blocking checkout. The
// result is deliberately discarded after logging; there is no retry.
func (o *Orchestrator) notifyStaff(ord order.Order) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := o.notifier.NotifyNewOrder(ctx, ord); err != nil {
			o.log.Warn("staff notification skipped", "order_id", ord.ID, "err", err)
		}
	}()
}

// publishCreated feeds the kitchen board. Also best effort: the board can
// recover anything it misses from its next authoritative refresh.
func (o *Orchestrator) publishCreated(ord order.Order) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := o.events.PublishCreated(ctx, ord); err != nil {
			o.log.Warn("order.created publish failed", "order_id", ord.ID, "err", err)
		}
	}()
}

func (o *Orchestrator) result(ord order.Order) Result {
	res := Result{
		Success: true,
		OrderID: ord.ID,
		Total:   ord.TotalAmount,
		Order:   ord,
	}
	switch ord.Payment {
	case order.PayMoney:
		// paid on delivery; nothing to redirect to
	case order.PayPix:
		res.CheckoutURL = o.pay.CheckoutURL
		res.PixKey = o.pay.PixKey
		res.PixQRImageURL = o.pay.PixQRImageURL
	default: // card
		res.CheckoutURL = o.pay.CheckoutURL
	}
	return res
}

func (o *Orchestrator) localOrderID() string {
	ms := strconv.FormatInt(o.now().UnixMilli(), 10)
	return localIDPrefix + ms[len(ms)-6:]
}
