package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger verifica conectividad de una dependencia externa.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reporta el estado del servicio y sus dependencias.
type HealthHandler struct {
	logger *zap.Logger
	db     Pinger
	cache  Pinger
}

func NewHealthHandler(logger *zap.Logger, db, cache Pinger) *HealthHandler {
	return &HealthHandler{
		logger: logger,
		db:     db,
		cache:  cache,
	}
}

// Health maneja GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	body := gin.H{"status": "ok"}

	body["postgres"] = h.check(ctx, "postgres", h.db, &status)
	body["redis"] = h.check(ctx, "redis", h.cache, &status)

	if status != http.StatusOK {
		body["status"] = "degraded"
	}
	c.JSON(status, body)
}

func (h *HealthHandler) check(ctx context.Context, name string, dep Pinger, status *int) string {
	if dep == nil {
		return "disabled"
	}
	if err := dep.Ping(ctx); err != nil {
		h.logger.Warn("health check failed", zap.String("dependency", name), zap.Error(err))
		*status = http.StatusServiceUnavailable
		return "unavailable"
	}
	return "ok"
}
