package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/payrelay/internal/shared/biztime"
	"github.com/orris-inc/payrelay/internal/shared/utils"
	"github.com/orris-inc/payrelay/internal/shared/version"
)

type HealthResponse struct {
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthHandler struct {
	environment string
	now         func() time.Time
}

func NewHealthHandler(environment string) *HealthHandler {
	return &HealthHandler{
		environment: environment,
		now:         biztime.NowUTC,
	}
}

// @Summary		Health check
// @Tags			system
// @Produce		json
// @Success		200	{object}	HealthResponse
// @Router			/health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	utils.WriteReply(c, utils.OK(HealthResponse{
		Status:      "healthy",
		Timestamp:   biztime.FormatISO(h.now()),
		Version:     version.Version,
		Environment: h.environment,
	}))
}
