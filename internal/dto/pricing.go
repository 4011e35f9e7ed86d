package dto

import (
	"strconv"

	"property-pricing-service/internal/usecase"
)

// PredictionRequest is the flat column-to-value body of a predict call.
// Values arrive as whatever JSON type the caller used; Fields normalizes
// them to the string cells the feature set transforms.
type PredictionRequest map[string]interface{}

func (r PredictionRequest) Fields() map[string]string {
	out := make(map[string]string, len(r))
	for k, v := range r {
		switch t := v.(type) {
		case string:
			out[k] = t
		case float64:
			out[k] = strconv.FormatFloat(t, 'g', -1, 64)
		case bool:
			out[k] = strconv.FormatBool(t)
		case nil:
			out[k] = ""
		default:
			out[k] = ""
		}
	}
	return out
}

type PredictionResponse struct {
	Estimate float64 `json:"estimate"`
	Low      float64 `json:"low"`
	High     float64 `json:"high"`
	Unit     string  `json:"unit"`
}

type RecommendationResponse struct {
	PropertyID string  `json:"property_id"`
	Score      float64 `json:"score"`
}

type NearbyResponse struct {
	PropertyID string  `json:"property_id"`
	DistanceKm float64 `json:"distance_km"`
}

type StatsResponse struct {
	Rows               int     `json:"rows"`
	Sectors            int     `json:"sectors"`
	AvgPrice           float64 `json:"avg_price"`
	MedianPricePerSqft float64 `json:"median_price_per_sqft"`
}

func ToPredictionResponse(e usecase.Estimate) PredictionResponse {
	return PredictionResponse{Estimate: e.Price, Low: e.Low, High: e.High, Unit: "Cr"}
}

func ToRecommendationResponses(recs []usecase.Recommendation) []RecommendationResponse {
	out := make([]RecommendationResponse, len(recs))
	for i, r := range recs {
		out[i] = RecommendationResponse{PropertyID: r.PropertyID, Score: r.Score}
	}
	return out
}

func ToNearbyResponses(props []usecase.NearbyProperty) []NearbyResponse {
	out := make([]NearbyResponse, len(props))
	for i, p := range props {
		out[i] = NearbyResponse{PropertyID: p.PropertyID, DistanceKm: p.Meters / 1000}
	}
	return out
}

func ToStatsResponse(s usecase.MarketStats) StatsResponse {
	return StatsResponse{
		Rows:               s.Rows,
		Sectors:            s.Sectors,
		AvgPrice:           s.AvgPrice,
		MedianPricePerSqft: s.MedianPricePerSqft,
	}
}
