package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/fitnesshub/internal/app/models/dto"
)

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController serves liveness endpoints
type HealthController struct {
	pinger Pinger
	driver string
}

// NewHealthController creates a new HealthController. A nil pinger always reports healthy.
func NewHealthController(pinger Pinger, driver string) *HealthController {
	return &HealthController{pinger: pinger, driver: driver}
}

// Root answers the bare index route
// @Summary Greeting
// @Tags health
// @Produce plain
// @Success 200 {string} string
// @Router / [get]
func (c *HealthController) Root(ctx *gin.Context) {
	ctx.String(http.StatusOK, "FitnessHub server is running")
}

// Health reports store reachability
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	if c.pinger != nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()
		if err := c.pinger.Ping(pingCtx); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "unavailable", Store: c.driver})
			return
		}
	}
	ctx.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Store: c.driver})
}
