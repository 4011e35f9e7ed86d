package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"property-pricing-service/internal/dto"
)

// GetStats handles GET /stats with the dashboard market summary.
func (h *Handler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToStatsResponse(h.stats.Market()))
}
