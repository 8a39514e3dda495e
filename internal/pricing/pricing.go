// Package pricing computes order money amounts. All arithmetic runs on
// decimals; binary floats never touch a money path, so totals cannot drift by
// cents no matter how many lines accumulate.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/cart"
	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/order"
)

// Engine is a pure calculator; the only state is the configured delivery fee.
type Engine struct {
	DeliveryFee decimal.Decimal
}

func NewEngine(deliveryFee decimal.Decimal) Engine {
	return Engine{DeliveryFee: deliveryFee}
}

// LineSubtotal = (product price + sum of addon prices) × qty.
// Addon order does not matter.
func (e Engine) LineSubtotal(it cart.Item) decimal.Decimal {
	unit := it.Product.Price
	for _, a := range it.Addons {
		unit = unit.Add(a.Price)
	}
	return unit.Mul(decimal.NewFromInt(int64(it.Qty)))
}

func (e Engine) CartSubtotal(items []cart.Item) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(e.LineSubtotal(it))
	}
	return sum
}

// Fee is the delivery surcharge: fixed for delivery, zero for pickup.
func (e Engine) Fee(mode order.DeliveryMode) decimal.Decimal {
	if mode == order.ModeDelivery {
		return e.DeliveryFee
	}
	return decimal.Zero
}

func (e Engine) Total(items []cart.Item, mode order.DeliveryMode) decimal.Decimal {
	return e.CartSubtotal(items).Add(e.Fee(mode))
}

// FormatBRL renders an amount for display, e.g. "R$ 48,00". Presentation only:
// stored and transmitted amounts keep the dot separator.
func FormatBRL(d decimal.Decimal) string {
	return "R$ " + strings.Replace(d.StringFixed(2), ".", ",", 1)
}
