package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/order"
	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/pricing"
)

// SMSGateway posts a short order summary to the store's SMS webhook. Best
// effort end to end: the caller logs a failure and moves on, there is no retry.
type SMSGateway struct {
	url    string
	to     string
	client *http.Client
}

func NewSMSGateway(url, to string) *SMSGateway {
	return &SMSGateway{
		url:    url,
		to:     to,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Configured reports whether a gateway URL is set; an unconfigured gateway is
// a valid deployment (the worker just logs new orders).
func (g *SMSGateway) Configured() bool { return g.url != "" }

func (g *SMSGateway) Send(ctx context.Context, o order.Order) error {
	payload, err := json.Marshal(map[string]string{
		"to":   g.to,
		"body": SummaryText(o),
	})
	if err != nil {
		return fmt.Errorf("marshal sms payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("send sms: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway status %d", resp.StatusCode)
	}
	return nil
}

// SummaryText is the one-line ticket the kitchen phone receives.
func SummaryText(o order.Order) string {
	var b strings.Builder
	b.WriteString("Pedido #" + strings.ToUpper(o.ShortID()) + " - " + o.CustomerName + ": ")
	for i, it := range o.Items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(it.Qty) + "x " + it.ProductTitle)
	}
	if o.Delivery == order.ModeDelivery {
		b.WriteString(" | Entrega: " + o.Address)
	} else {
		b.WriteString(" | Retirada")
	}
	b.WriteString(" | " + pricing.FormatBRL(o.TotalAmount))
	return b.String()
}
