package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/adapter/http/middleware"
	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/logging"
)

func NewRouter(mh *MenuHandler, ch *CartHandler, ckh *CheckoutHandler, bh *BoardHandler, th *TokenHandler, authz *middleware.Authz) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Metrics())
	r.Use(middleware.Logging(logging.New("http")))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	// Prometheus endpoint (scraped by Prometheus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/v1/token", th.IssueToken)

	v1 := r.Group("/v1")
	{
		v1.GET("/menu", mh.GetMenu)
		v1.POST("/carts", ch.CreateCart)
		v1.GET("/carts/:id", ch.GetCart)
		v1.POST("/carts/:id/items", ch.AddItem)
		v1.DELETE("/carts/:id/items", ch.ClearCart)
		v1.DELETE("/carts/:id/items/:itemID", ch.RemoveItem)
		v1.POST("/checkout", ckh.Checkout)
	}

	admin := r.Group("/admin")
	{
		admin.GET("/orders", authz.Require("orders.read"), bh.ListOrders)
		admin.POST("/orders/:id/status", authz.Require("orders.write"), bh.UpdateStatus)
	}

	return r
}
