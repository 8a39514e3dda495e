package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/cart"
	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/checkout"
	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/logging"
	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/order"
	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/pricing"
)

type CheckoutHandler struct {
	carts    *cart.Service
	orch     *checkout.Orchestrator
	whatsapp string
}

func NewCheckoutHandler(carts *cart.Service, orch *checkout.Orchestrator, whatsapp string) *CheckoutHandler {
	return &CheckoutHandler{carts: carts, orch: orch, whatsapp: whatsapp}
}

type checkoutReq struct {
	CartID        string `json:"cart_id" binding:"required"`
	CustomerName  string `json:"customer_name"`
	PaymentMethod string `json:"payment_method" binding:"required,oneof=pix card money"`
	DeliveryType  string `json:"delivery_type" binding:"required,oneof=delivery pickup"`
	Address       string `json:"address"`
	ChangeFor     string `json:"change_for"`
}

type checkoutResp struct {
	Success       bool   `json:"success"`
	OrderID       string `json:"order_id"`
	CheckoutURL   string `json:"checkout_url,omitempty"`
	PixKey        string `json:"pix_key,omitempty"`
	PixQRImageURL string `json:"pix_qr_image_url,omitempty"`
	Total         string `json:"total"`
	TotalDisplay  string `json:"total_display"`
	WhatsAppLink  string `json:"whatsapp_link"`
}

// Checkout converts a cart plus form input into a pending order. The
// X-Idempotency-Key header guards against double submission of one confirm.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req checkoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	items, err := h.carts.Items(req.CartID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "cart_not_found"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	res, err := h.orch.Submit(ctx, checkout.SubmitInput{
		CustomerName:   req.CustomerName,
		Items:          items,
		Payment:        order.PaymentMethod(req.PaymentMethod),
		Delivery:       order.DeliveryMode(req.DeliveryType),
		Address:        req.Address,
		ChangeFor:      req.ChangeFor,
		IdempotencyKey: c.GetHeader("X-Idempotency-Key"),
	})
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, checkout.ErrValidation):
			status = http.StatusBadRequest
		case errors.Is(err, checkout.ErrDuplicate):
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := h.carts.Clear(req.CartID); err != nil {
		logging.From(c).Warn("cart clear after checkout failed", "cart_id", req.CartID, "err", err)
	}

	c.JSON(http.StatusOK, checkoutResp{
		Success:       res.Success,
		OrderID:       res.OrderID,
		CheckoutURL:   res.CheckoutURL,
		PixKey:        res.PixKey,
		PixQRImageURL: res.PixQRImageURL,
		Total:         res.Total.StringFixed(2),
		TotalDisplay:  pricing.FormatBRL(res.Total),
		WhatsAppLink:  checkout.Link(h.whatsapp, res.Order),
	})
}
