package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yigit/alumnihub/internal/pkg/cache"
	"github.com/yigit/alumnihub/internal/pkg/realtime"
)

const healthCheckTimeout = 2 * time.Second

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController reports liveness and dependency state
type HealthController struct {
	db    Pinger
	cache *cache.Redis
	hub   *realtime.Hub
}

// NewHealthController creates a new HealthController. db may be nil for the
// in-memory store.
func NewHealthController(db Pinger, cache *cache.Redis, hub *realtime.Hub) *HealthController {
	return &HealthController{db: db, cache: cache, hub: hub}
}

// Health reports service health
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Failure 503 {object} dto.APIResponse
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), healthCheckTimeout)
	defer cancel()

	status := http.StatusOK
	database := "memory"
	if c.db != nil {
		database = "up"
		if err := c.db.Ping(reqCtx); err != nil {
			database = "down"
			status = http.StatusServiceUnavailable
		}
	}

	redis := "disabled"
	if c.cache.Available() {
		redis = "up"
		if err := c.cache.Ping(reqCtx); err != nil {
			// stats fall back to live computation
			redis = "down"
		}
	}

	body := gin.H{
		"status":   http.StatusText(status),
		"database": database,
		"redis":    redis,
	}
	if c.hub != nil {
		body["websocketClients"] = c.hub.ClientCount()
	}
	respond(ctx, status, body, "")
}
