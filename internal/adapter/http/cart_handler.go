package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/cart"
	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/catalog"
	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/pricing"
)

type CartHandler struct {
	carts  *cart.Service
	store  *catalog.Store
	pricer pricing.Engine
}

func NewCartHandler(carts *cart.Service, store *catalog.Store, pricer pricing.Engine) *CartHandler {
	return &CartHandler{carts: carts, store: store, pricer: pricer}
}

func (h *CartHandler) CreateCart(c *gin.Context) {
	c.JSON(http.StatusCreated, gin.H{"cart_id": h.carts.Create()})
}

type addItemReq struct {
	ProductID int64    `json:"product_id" binding:"required"`
	Qty       int      `json:"qty" binding:"required,gt=0"`
	AddonIDs  []string `json:"addon_ids"`
	NeedSpoon *bool    `json:"need_spoon"`
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	product, ok := h.store.ProductByID(ctx, req.ProductID)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown_product"})
		return
	}

	// default matches the storefront: spoon included unless opted out
	needSpoon := true
	if req.NeedSpoon != nil {
		needSpoon = *req.NeedSpoon
	}

	item, err := h.carts.Add(c.Param("id"), product, req.Qty, h.store.AddonsByIDs(req.AddonIDs), needSpoon)
	if err != nil {
		cartError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"item":          item,
		"line_subtotal": h.pricer.LineSubtotal(item).StringFixed(2),
	})
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	if err := h.carts.Remove(c.Param("id"), c.Param("itemID")); err != nil {
		cartError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	if err := h.carts.Clear(c.Param("id")); err != nil {
		cartError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CartHandler) GetCart(c *gin.Context) {
	items, err := h.carts.Items(c.Param("id"))
	if err != nil {
		cartError(c, err)
		return
	}

	type pricedItem struct {
		cart.Item
		LineSubtotal string `json:"line_subtotal"`
	}
	priced := make([]pricedItem, 0, len(items))
	for _, it := range items {
		priced = append(priced, pricedItem{Item: it, LineSubtotal: h.pricer.LineSubtotal(it).StringFixed(2)})
	}

	subtotal := h.pricer.CartSubtotal(items)
	c.JSON(http.StatusOK, gin.H{
		"items":            priced,
		"subtotal":         subtotal.StringFixed(2),
		"subtotal_display": pricing.FormatBRL(subtotal),
	})
}

func cartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cart.ErrCartNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "cart_not_found"})
	case errors.Is(err, cart.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "item_not_found"})
	case errors.Is(err, cart.ErrBadQty):
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_quantity"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
	}
}
