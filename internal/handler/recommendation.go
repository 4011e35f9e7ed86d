package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"property-pricing-service/internal/dto"
)

const defaultRecommendations = 5

// ListRecommendations handles GET /properties/:id/recommendations?k=5.
func (h *Handler) ListRecommendations(c *gin.Context) {
	k := defaultRecommendations
	if raw := c.Query("k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "k must be a positive integer"})
			return
		}
		k = parsed
	}

	recs, err := h.recommender.Recommend(c.Param("id"), k)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"property_id":     c.Param("id"),
		"recommendations": dto.ToRecommendationResponses(recs),
	})
}

// ListNearby handles GET /locations/nearby?location=X&radius_km=5.
func (h *Handler) ListNearby(c *gin.Context) {
	location := c.Query("location")
	if location == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "location is required"})
		return
	}

	radiusKm := 5.0
	if raw := c.Query("radius_km"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "radius_km must be a positive number"})
			return
		}
		radiusKm = parsed
	}

	props, err := h.recommender.Nearby(location, radiusKm)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"location":  location,
		"radius_km": radiusKm,
		"nearby":    dto.ToNearbyResponses(props),
	})
}
