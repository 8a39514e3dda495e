package order

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether no further transition is allowed out of s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

type PaymentMethod string

const (
	PayPix   PaymentMethod = "pix"
	PayCard  PaymentMethod = "card"
	PayMoney PaymentMethod = "money"
)

type DeliveryMode string

const (
	ModeDelivery DeliveryMode = "delivery"
	ModePickup   DeliveryMode = "pickup"
)

var (
	ErrMissingName    = errors.New("customer name required")
	ErrMissingAddress = errors.New("delivery address required")
	ErrEmptyOrder     = errors.New("order has no items")
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrAlreadyClosed  = errors.New("order already in a terminal state")
)

// AddonSnapshot is an addon as sold: title and price frozen at checkout time.
type AddonSnapshot struct {
	ID    string          `json:"id"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
}

// LineItem is one cart entry snapshotted into the order payload. It carries no
// live catalog references so later menu edits cannot rewrite past orders.
type LineItem struct {
	ProductID    int64           `json:"product_id"`
	ProductTitle string          `json:"product_title"`
	Qty          int             `json:"qty"`
	Addons       []AddonSnapshot `json:"addons"`
	NeedSpoon    bool            `json:"needSpoon"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

type Order struct {
	ID           string          `json:"id"`
	CustomerName string          `json:"customer_name"`
	Items        []LineItem      `json:"items"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Payment      PaymentMethod   `json:"payment_method"`
	Delivery     DeliveryMode    `json:"delivery_type"`
	DeliveryFee  decimal.Decimal `json:"delivery_fee"`
	Address      string          `json:"address,omitempty"`    // set iff Delivery == ModeDelivery
	ChangeFor    string          `json:"change_for,omitempty"` // meaningful iff Payment == PayMoney
	Status       Status          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
}

func (o *Order) Validate() error {
	if strings.TrimSpace(o.CustomerName) == "" {
		return ErrMissingName
	}
	if o.Delivery == ModeDelivery && strings.TrimSpace(o.Address) == "" {
		return ErrMissingAddress
	}
	if len(o.Items) == 0 {
		return ErrEmptyOrder
	}
	if o.TotalAmount.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}

// ShortID is the human-facing order reference used on tickets and messages.
func (o *Order) ShortID() string {
	if len(o.ID) > 8 {
		return o.ID[:8]
	}
	return o.ID
}
