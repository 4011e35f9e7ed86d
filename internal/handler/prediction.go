package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"property-pricing-service/internal/dto"
)

// CreatePrediction handles POST /predictions. The body is a flat JSON
// object of column name to value, exactly the trained feature columns.
func (h *Handler) CreatePrediction(c *gin.Context) {
	var req dto.PredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be a JSON object"})
		return
	}

	estimate, err := h.prediction.Predict(req.Fields())
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPredictionResponse(estimate))
}
