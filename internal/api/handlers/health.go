package handlers

import (
	"context"
	"net/http"
	"time"

	"retail-dashboard/internal/data"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const healthTimeout = 3 * time.Second

// Health handles GET /health. The dashboard itself is up whenever it answers;
// backend reachability is reported alongside.
func Health(client *data.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		backend := "ok"
		status := "ok"
		if _, err := client.Health(ctx); err != nil {
			logger.Warn("backend health check failed", zap.Error(err))
			backend = "unreachable"
			status = "degraded"
		}
		c.JSON(http.StatusOK, gin.H{"status": status, "backend": backend})
	}
}
