package fitment

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/fitment/internal/shared/logger"
	"github.com/orris-inc/fitment/internal/shared/utils"
)

type pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	store  pinger
	logger logger.Interface
}

func NewHealthHandler(store pinger, logger logger.Interface) *HealthHandler {
	return &HealthHandler{store: store, logger: logger}
}

// HealthCheck handles GET /health
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.PingContext(ctx); err != nil {
		h.logger.Warnw("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  "database unreachable",
		})
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"status": "healthy"})
}
