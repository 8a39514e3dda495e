package checkout

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/order"
)

func messageOrder(t *testing.T) order.Order {
	t.Helper()
	return order.Order{
		ID:           "3f8a1b2c-dead-beef-0000-000000000000",
		CustomerName: "Tati",
		Items: []order.LineItem{
			{
				ProductID:    1,
				ProductTitle: "Açaí 300ml",
				Qty:          1,
				Addons:       []order.AddonSnapshot{{ID: "nutella", Title: "Nutella", Price: decimal.RequireFromString("4.00")}},
				NeedSpoon:    true,
				Subtotal:     decimal.RequireFromString("16.00"),
			},
			{
				ProductID:    2,
				ProductTitle: "Açaí 500ml",
				Qty:          2,
				NeedSpoon:    false,
				Subtotal:     decimal.RequireFromString("30.00"),
			},
		},
		TotalAmount: decimal.RequireFromString("48.00"),
		Payment:     order.PayPix,
		Delivery:    order.ModeDelivery,
		DeliveryFee: decimal.RequireFromString("2.00"),
		Address:     "Rua das Flores, 12",
		Status:      order.StatusPending,
		CreatedAt:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestSummaryMessageDelivery(t *testing.T) {
	msg := SummaryMessage(messageOrder(t))

	// every block, in reading order
	wantInOrder := []string{
		"*🔔 NOVO PEDIDO #3F8A1B2C*",
		"👤 *Cliente:* Tati",
		"*1x Açaí 300ml*",
		"   + Nutella",
		"*2x Açaí 500ml*",
		"   🚫 Sem colherzinha",
		"🛵 *Tipo:* Entrega",
		"📍 *Endereço:* Rua das Flores, 12",
		"💲 *Pagamento:* PIX",
		"✅ *Status:* Pago Online via Mercado Pago",
		"💰 *Total Final:* R$ 48,00",
		"👉 *Segue o comprovante em anexo.*",
	}
	pos := 0
	for _, want := range wantInOrder {
		idx := strings.Index(msg[pos:], want)
		if idx < 0 {
			t.Fatalf("message missing %q after position %d:\n%s", want, pos, msg)
		}
		pos += idx + len(want)
	}
}

func TestSummaryMessageMoneyPickup(t *testing.T) {
	ord := messageOrder(t)
	ord.Payment = order.PayMoney
	ord.Delivery = order.ModePickup
	ord.Address = ""
	ord.ChangeFor = "50,00"
	ord.TotalAmount = decimal.RequireFromString("46.00")

	msg := SummaryMessage(ord)

	for _, want := range []string{
		"🛵 *Tipo:* Retirada",
		"💲 *Pagamento:* Dinheiro",
		"💵 *Troco para:* 50,00",
		"⏳ *Status:* Pagar na entrega",
		"💰 *Total Final:* R$ 46,00",
		"Poderiam confirmar?",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
	for _, reject := range []string{"Endereço", "Mercado Pago", "comprovante"} {
		if strings.Contains(msg, reject) {
			t.Errorf("pickup/money message must not contain %q:\n%s", reject, msg)
		}
	}
}

func TestSummaryMessageNoChangeLineWhenUnset(t *testing.T) {
	ord := messageOrder(t)
	ord.Payment = order.PayMoney
	ord.ChangeFor = ""

	if msg := SummaryMessage(ord); strings.Contains(msg, "Troco") {
		t.Errorf("message has a change line without a change amount:\n%s", msg)
	}
}

func TestLink(t *testing.T) {
	link := Link("5517996248616", messageOrder(t))

	if !strings.HasPrefix(link, "https://wa.me/5517996248616?text=") {
		t.Fatalf("Link() = %q, wrong base", link)
	}
	text := strings.TrimPrefix(link, "https://wa.me/5517996248616?text=")
	if strings.ContainsAny(text, " \n*") {
		t.Errorf("link text not percent-encoded: %q", text)
	}
	// spaces travel as %20, never as form-style plus signs
	if strings.Contains(text, "+") {
		t.Errorf("link text contains +, want %%20 for spaces: %q", text)
	}
	if !strings.Contains(text, "%20") {
		t.Errorf("link text has no %%20-encoded spaces: %q", text)
	}
	if !strings.Contains(text, "Tati") {
		t.Errorf("link text lost the customer name: %q", text)
	}
}
