package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studentdesk/internal/app/models/dto"
)

// PingFunc checks that a backing store is reachable
type PingFunc func(ctx context.Context) error

// HealthController reports service liveness
type HealthController struct {
	ping PingFunc
}

// NewHealthController creates a new HealthController. ping may be nil.
func NewHealthController(ping PingFunc) *HealthController {
	return &HealthController{ping: ping}
}

// HealthStatus is the payload of the health endpoint
type HealthStatus struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database" example:"ok"`
}

// Health reports whether the API and its database are up
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.StructuredResponse{data=controllers.HealthStatus}
// @Failure 503 {object} dto.ErrorResponse
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	status := HealthStatus{Status: "ok", Database: "ok"}
	if c.ping != nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()
		if err := c.ping(pingCtx); err != nil {
			status.Status = "degraded"
			status.Database = "unavailable"
			detail := dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "Database unavailable").WithDetails(status)
			ctx.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(detail))
			return
		}
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(status, "Service is healthy"))
}

// Ping answers with pong
func (c *HealthController) Ping(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "pong"})
}
