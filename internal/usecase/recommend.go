package usecase

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"

	"property-pricing-service/internal/domain"
)

const maxNearbyResults = 15

// Recommendation is one similar property with its cosine score.
type Recommendation struct {
	PropertyID string
	Score      float64
}

// NearbyProperty is one property within a radius of a reference location.
type NearbyProperty struct {
	PropertyID string
	Meters     float64
}

// RecommenderUseCase ranks stored properties by cosine similarity over
// the scaled feature matrix, and answers radius queries against the
// location-distance matrix. Both structures are read-only after startup.
type RecommenderUseCase struct {
	ids       []string
	vectors   [][]float64
	norms     []float64
	rowByID   map[string]int
	distances *domain.DistanceMatrix
}

// NewRecommenderUseCase indexes the frame's rows. The first occurrence of
// a duplicated ID wins, matching input row order everywhere else.
func NewRecommenderUseCase(frame *domain.FeatureFrame, distances *domain.DistanceMatrix) *RecommenderUseCase {
	uc := &RecommenderUseCase{
		ids:       frame.IDs,
		vectors:   frame.X,
		norms:     make([]float64, len(frame.X)),
		rowByID:   make(map[string]int, len(frame.IDs)),
		distances: distances,
	}
	for i, v := range frame.X {
		uc.norms[i] = floats.Norm(v, 2)
	}
	for i, id := range frame.IDs {
		if _, ok := uc.rowByID[id]; !ok {
			uc.rowByID[id] = i
		}
	}
	return uc
}

// Recommend returns up to k properties most similar to the given one,
// descending by score. The property itself is excluded and ties keep
// input row order.
func (uc *RecommenderUseCase) Recommend(propertyID string, k int) ([]Recommendation, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive", domain.ErrValidation)
	}
	base, ok := uc.rowByID[propertyID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrPropertyNotFound, propertyID)
	}

	scored := make([]Recommendation, 0, len(uc.ids))
	seen := map[string]bool{propertyID: true}
	for i, id := range uc.ids {
		if i == base || seen[id] {
			continue
		}
		seen[id] = true
		scored = append(scored, Recommendation{PropertyID: id, Score: uc.cosine(base, i)})
	}
	sort.SliceStable(scored, func(a, b int) bool { return scored[a].Score > scored[b].Score })

	if len(scored) > k {
		scored = scored[:k]
	}
	return scored, nil
}

func (uc *RecommenderUseCase) cosine(a, b int) float64 {
	if uc.norms[a] == 0 || uc.norms[b] == 0 {
		return 0
	}
	return floats.Dot(uc.vectors[a], uc.vectors[b]) / (uc.norms[a] * uc.norms[b])
}

// Nearby lists properties within radiusKm of a reference location,
// nearest first, capped for display.
func (uc *RecommenderUseCase) Nearby(location string, radiusKm float64) ([]NearbyProperty, error) {
	if uc.distances == nil {
		return nil, fmt.Errorf("%w: no distance data loaded", domain.ErrLocationNotFound)
	}
	if radiusKm <= 0 {
		return nil, fmt.Errorf("%w: radius must be positive", domain.ErrValidation)
	}
	col, err := uc.distances.LocationIndex(location)
	if err != nil {
		return nil, err
	}

	limit := radiusKm * 1000
	var out []NearbyProperty
	for i, name := range uc.distances.Properties {
		if m := uc.distances.Meters[i][col]; m < limit {
			out = append(out, NearbyProperty{PropertyID: name, Meters: m})
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Meters < out[b].Meters })
	if len(out) > maxNearbyResults {
		out = out[:maxNearbyResults]
	}
	return out, nil
}
