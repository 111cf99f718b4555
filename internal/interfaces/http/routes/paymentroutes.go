package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/payrelay/internal/interfaces/http/handlers"
)

// PaymentRouteConfig holds dependencies for payment routes.
type PaymentRouteConfig struct {
	PaymentHandler *handlers.PaymentHandler
}

// SetupPaymentRoutes configures payment routes. /url is authenticated by the
// handler itself so the token check runs before the body is read.
func SetupPaymentRoutes(engine *gin.Engine, cfg *PaymentRouteConfig) {
	pay := engine.Group("/api/pay")
	{
		pay.POST("/url", cfg.PaymentHandler.CreatePaymentURL)
		pay.POST("/callback", cfg.PaymentHandler.HandleCallback)
	}
}
