package system_healthcheck

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const healthcheckTimeout = 5 * time.Second

type HealthcheckController struct {
	healthcheckService *HealthcheckService
}

func (c *HealthcheckController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/system/health", c.CheckHealth)
}

// CheckHealth
// @Summary Check service health
// @Description Reports database, cache and disk state. Responds 503 when any of them is degraded.
// @Tags system
// @Produce json
// @Success 200 {object} HealthcheckResponseDTO
// @Failure 503 {object} HealthcheckResponseDTO
// @Router /system/health [get]
func (c *HealthcheckController) CheckHealth(ctx *gin.Context) {
	checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), healthcheckTimeout)
	defer cancel()

	response := c.healthcheckService.GetHealth(checkCtx)

	status := http.StatusOK
	if response.Status != StatusOK {
		status = http.StatusServiceUnavailable
	}

	ctx.JSON(status, response)
}
