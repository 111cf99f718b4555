package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/payrelay/internal/interfaces/http/handlers"
	"github.com/orris-inc/payrelay/internal/shared/errors"
	"github.com/orris-inc/payrelay/internal/shared/utils"
)

const (
	msgEndpointNotFound = "Endpoint not found"
	msgMethodNotAllowed = "Method Not Allowed"
)

// SystemRouteConfig holds dependencies for system routes.
type SystemRouteConfig struct {
	HealthHandler *handlers.HealthHandler
}

// SetupSystemRoutes configures the health check and the JSON 404/405 fallbacks.
func SetupSystemRoutes(engine *gin.Engine, cfg *SystemRouteConfig) {
	engine.GET("/health", cfg.HealthHandler.Health)

	engine.HandleMethodNotAllowed = true
	engine.NoRoute(func(c *gin.Context) {
		utils.WriteReply(c, utils.ErrorReply(errors.NewNotFoundError(msgEndpointNotFound)))
	})
	engine.NoMethod(func(c *gin.Context) {
		utils.WriteReply(c, utils.ErrorReply(errors.NewMethodNotAllowedError(msgMethodNotAllowed)))
	})
}
