package http

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/payrelay/internal/infrastructure/config"
	"github.com/orris-inc/payrelay/internal/interfaces/http/middleware"
	"github.com/orris-inc/payrelay/internal/interfaces/http/routes"
	"github.com/orris-inc/payrelay/internal/shared/logger"
)

// Router represents the HTTP router configuration
type Router struct {
	engine    *gin.Engine
	container *Container
	cfg       *config.Config
	logger    logger.Interface
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(cfg *config.Config, log logger.Interface) *Router {
	return &Router{
		engine:    gin.New(),
		container: NewContainer(cfg, log),
		cfg:       cfg,
		logger:    log,
	}
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.RequestLogger(r.logger.Named("access")))
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.SecurityHeaders())
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigin))

	routes.SetupSystemRoutes(r.engine, &routes.SystemRouteConfig{
		HealthHandler: r.container.healthHandler,
	})
	routes.SetupPaymentRoutes(r.engine, &routes.PaymentRouteConfig{
		PaymentHandler: r.container.paymentHandler,
	})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
