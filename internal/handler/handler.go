package handler

import (
	"github.com/gin-gonic/gin"

	"property-pricing-service/internal/usecase"
)

type Handler struct {
	prediction  *usecase.PredictionUseCase
	recommender *usecase.RecommenderUseCase
	stats       *usecase.StatsUseCase
}

func New(prediction *usecase.PredictionUseCase, recommender *usecase.RecommenderUseCase, stats *usecase.StatsUseCase) *Handler {
	return &Handler{prediction: prediction, recommender: recommender, stats: stats}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/predictions", h.CreatePrediction)
	r.GET("/properties/:id/recommendations", h.ListRecommendations)
	r.GET("/locations/nearby", h.ListNearby)
	r.GET("/stats", h.GetStats)
}
