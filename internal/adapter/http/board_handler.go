package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/board"
	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/logging"
	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/order"
)

type BoardHandler struct {
	board *board.Board
}

func NewBoardHandler(b *board.Board) *BoardHandler {
	return &BoardHandler{board: b}
}

// ListOrders returns the visible pending page, newest first. ?refresh=1 forces
// an authoritative reload first.
func (h *BoardHandler) ListOrders(c *gin.Context) {
	if c.Query("refresh") == "1" {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := h.board.Refresh(ctx); err != nil {
			logging.From(c).Warn("board refresh failed", "err", err)
		}
	}
	c.JSON(http.StatusOK, gin.H{"orders": h.board.Orders()})
}

type statusReq struct {
	Status string `json:"status" binding:"required,oneof=completed cancelled"`
}

// UpdateStatus applies an operator transition. A failed persisted update has
// already resynced the board when it reports here; the operator sees the error
// and the order back in the refreshed list.
func (h *BoardHandler) UpdateStatus(c *gin.Context) {
	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	err := h.board.Transition(ctx, c.Param("id"), order.Status(req.Status))
	switch {
	case err == nil:
		c.Status(http.StatusNoContent)
	case errors.Is(err, board.ErrNotVisible), errors.Is(err, order.ErrAlreadyClosed):
		c.JSON(http.StatusConflict, gin.H{"error": "not_pending"})
	case errors.Is(err, board.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_transition"})
	default:
		c.JSON(http.StatusBadGateway, gin.H{
			"error":  "update_failed",
			"orders": h.board.Orders(), // already resynchronized
		})
	}
}
