package checkout

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/order"
	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/pricing"
)

// SummaryMessage renders the order as the WhatsApp text the customer relays to
// the store: header, customer, items with addons, delivery and payment blocks,
// formatted total, then a closing line that depends on how they paid.
func SummaryMessage(ord order.Order) string {
	var b strings.Builder

	b.WriteString("*🔔 NOVO PEDIDO #" + strings.ToUpper(ord.ShortID()) + "*\n")
	b.WriteString("👤 *Cliente:* " + ord.CustomerName + "\n")
	b.WriteString("--------------------------------\n")

	for _, it := range ord.Items {
		b.WriteString("*" + strconv.Itoa(it.Qty) + "x " + it.ProductTitle + "*\n")
		if len(it.Addons) > 0 {
			titles := make([]string, 0, len(it.Addons))
			for _, a := range it.Addons {
				titles = append(titles, a.Title)
			}
			b.WriteString("   + " + strings.Join(titles, ", ") + "\n")
		}
		if !it.NeedSpoon {
			b.WriteString("   🚫 Sem colherzinha\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("--------------------------------\n")
	if ord.Delivery == order.ModeDelivery {
		b.WriteString("🛵 *Tipo:* Entrega\n")
		b.WriteString("📍 *Endereço:* " + ord.Address + "\n")
	} else {
		b.WriteString("🛵 *Tipo:* Retirada\n")
	}

	b.WriteString("💲 *Pagamento:* " + paymentLabel(ord.Payment) + "\n")
	if ord.Payment == order.PayMoney {
		if ord.ChangeFor != "" {
			b.WriteString("💵 *Troco para:* " + ord.ChangeFor + "\n")
		}
		b.WriteString("⏳ *Status:* Pagar na entrega\n")
	} else {
		b.WriteString("✅ *Status:* Pago Online via Mercado Pago\n")
	}

	b.WriteString("💰 *Total Final:* " + pricing.FormatBRL(ord.TotalAmount) + "\n")

	if ord.Payment == order.PayMoney {
		b.WriteString("\nOlá! Acabei de fazer o pedido pelo site. Poderiam confirmar?")
	} else {
		b.WriteString("\nOlá! Realizei o pedido e o pagamento pelo site. 👉 *Segue o comprovante em anexo.*")
	}

	return b.String()
}

// Link builds the wa.me deep link carrying the percent-encoded summary.
// Spaces must travel as %20, not +: WhatsApp prefills the query value
// literally, so a + would show up as a plus sign in the chat box.
func Link(number string, ord order.Order) string {
	text := strings.ReplaceAll(url.QueryEscape(SummaryMessage(ord)), "+", "%20")
	return "https://wa.me/" + number + "?text=" + text
}

func paymentLabel(m order.PaymentMethod) string {
	switch m {
	case order.PayPix:
		return "PIX"
	case order.PayCard:
		return "Cartão"
	default:
		return "Dinheiro"
	}
}
