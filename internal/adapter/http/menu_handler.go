package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/catalog"
)

type MenuHandler struct {
	store *catalog.Store
	fee   decimal.Decimal
}

func NewMenuHandler(store *catalog.Store, deliveryFee decimal.Decimal) *MenuHandler {
	return &MenuHandler{store: store, fee: deliveryFee}
}

// GetMenu serves products plus addons. The catalog falls back to the bundled
// menu internally, so this never fails.
func (h *MenuHandler) GetMenu(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	c.JSON(http.StatusOK, gin.H{
		"products":     h.store.Products(ctx),
		"addons":       h.store.Addons(),
		"delivery_fee": h.fee.StringFixed(2),
	})
}
