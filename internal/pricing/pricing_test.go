package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/cart"
	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/catalog"
	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/order"
)

func d(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	v, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return v
}

func sampleCart(t *testing.T) []cart.Item {
	t.Helper()
	return []cart.Item{
		{
			ID:      "a",
			Product: catalog.Product{ID: 1, Title: "Açaí 300ml", Price: d(t, "12.00")},
			Qty:     1,
			Addons:  []catalog.Addon{{ID: "nutella", Title: "Nutella", Price: d(t, "4.00")}},
		},
		{
			ID:      "b",
			Product: catalog.Product{ID: 2, Title: "Açaí 500ml", Price: d(t, "15.00")},
			Qty:     2,
		},
	}
}

func TestLineSubtotal(t *testing.T) {
	e := NewEngine(d(t, "2.00"))

	tests := []struct {
		name string
		item cart.Item
		want string
	}{
		{
			name: "product with addon",
			item: cart.Item{Product: catalog.Product{Price: d(t, "12.00")},
				Addons: []catalog.Addon{{ID: "x", Price: d(t, "4.00")}}, Qty: 1},
			want: "16.00",
		},
		{
			name: "quantity multiplies product and addons",
			item: cart.Item{Product: catalog.Product{Price: d(t, "15.00")},
				Addons: []catalog.Addon{{ID: "x", Price: d(t, "3.00")}}, Qty: 3},
			want: "54.00",
		},
		{
			name: "no addons",
			item: cart.Item{Product: catalog.Product{Price: d(t, "15.00")}, Qty: 2},
			want: "30.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.LineSubtotal(tt.item).StringFixed(2); got != tt.want {
				t.Errorf("LineSubtotal() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestLineSubtotalAddonOrderIrrelevant(t *testing.T) {
	e := NewEngine(d(t, "2.00"))
	a := catalog.Addon{ID: "a", Price: d(t, "4.00")}
	b := catalog.Addon{ID: "b", Price: d(t, "3.00")}

	fwd := cart.Item{Product: catalog.Product{Price: d(t, "12.00")}, Addons: []catalog.Addon{a, b}, Qty: 2}
	rev := cart.Item{Product: catalog.Product{Price: d(t, "12.00")}, Addons: []catalog.Addon{b, a}, Qty: 2}

	if !e.LineSubtotal(fwd).Equal(e.LineSubtotal(rev)) {
		t.Errorf("subtotal depends on addon order: %s vs %s",
			e.LineSubtotal(fwd), e.LineSubtotal(rev))
	}
}

func TestTotalSampleCart(t *testing.T) {
	e := NewEngine(d(t, "2.00"))
	items := sampleCart(t)

	if got := e.CartSubtotal(items).StringFixed(2); got != "46.00" {
		t.Errorf("CartSubtotal() = %s, want 46.00", got)
	}
	if got := e.Total(items, order.ModeDelivery).StringFixed(2); got != "48.00" {
		t.Errorf("Total(delivery) = %s, want 48.00", got)
	}
	if got := e.Total(items, order.ModePickup).StringFixed(2); got != "46.00" {
		t.Errorf("Total(pickup) = %s, want 46.00", got)
	}
	if !e.Fee(order.ModePickup).IsZero() {
		t.Errorf("Fee(pickup) = %s, want 0", e.Fee(order.ModePickup))
	}
}

func TestTotalEqualsSubtotalPlusFee(t *testing.T) {
	e := NewEngine(d(t, "2.00"))
	items := sampleCart(t)

	for _, mode := range []order.DeliveryMode{order.ModeDelivery, order.ModePickup} {
		want := e.CartSubtotal(items).Add(e.Fee(mode))
		if got := e.Total(items, mode); !got.Equal(want) {
			t.Errorf("Total(%s) = %s, want %s", mode, got, want)
		}
	}
}

func TestTotalIsIdempotent(t *testing.T) {
	e := NewEngine(d(t, "2.00"))
	items := sampleCart(t)

	first := e.Total(items, order.ModeDelivery)
	second := e.Total(items, order.ModeDelivery)
	if !first.Equal(second) {
		t.Errorf("recompute changed the total: %s then %s", first, second)
	}
}

func TestNoCentDriftAcrossManyAdditions(t *testing.T) {
	e := NewEngine(decimal.Zero)
	// 0.10 added 1000 times must be exactly 100.00
	items := make([]cart.Item, 1000)
	for i := range items {
		items[i] = cart.Item{Product: catalog.Product{Price: d(t, "0.10")}, Qty: 1}
	}
	if got := e.CartSubtotal(items).StringFixed(2); got != "100.00" {
		t.Errorf("CartSubtotal() = %s, want 100.00", got)
	}
}

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"48.00", "R$ 48,00"},
		{"46", "R$ 46,00"},
		{"3.5", "R$ 3,50"},
		{"0", "R$ 0,00"},
		{"1234.56", "R$ 1234,56"},
	}
	for _, tt := range tests {
		if got := FormatBRL(d(t, tt.in)); got != tt.want {
			t.Errorf("FormatBRL(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
