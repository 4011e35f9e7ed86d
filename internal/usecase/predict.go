// Package usecase holds the serving-side operations layered on the loaded
// dataset and model artifact. Everything here is read-only over shared
// state: the artifact and frames are loaded once at startup and never
// mutated, so concurrent requests need no locking.
package usecase

import (
	"fmt"

	"property-pricing-service/internal/domain"
)

// Estimate is a price prediction with its confidence band, in the same
// unit the model was trained on (Cr).
type Estimate struct {
	Price float64
	Low   float64
	High  float64
}

// PredictionUseCase evaluates the loaded model artifact against raw
// caller input.
type PredictionUseCase struct {
	artifact *domain.ModelArtifact
}

func NewPredictionUseCase(artifact *domain.ModelArtifact) *PredictionUseCase {
	return &PredictionUseCase{artifact: artifact}
}

// Predict transforms the raw input with the artifact's FeatureSet and
// returns the estimate band. Input incompatible with the trained feature
// set comes back as ErrValidation, never as a panic or a bogus number.
func (uc *PredictionUseCase) Predict(raw map[string]string) (Estimate, error) {
	if uc.artifact == nil {
		return Estimate{}, fmt.Errorf("%w: no model loaded", domain.ErrArtifactNotFound)
	}
	price, err := uc.artifact.Predict(raw)
	if err != nil {
		return Estimate{}, err
	}
	low := price - uc.artifact.Margin
	if low < 0 {
		low = 0
	}
	return Estimate{Price: price, Low: low, High: price + uc.artifact.Margin}, nil
}

// Metrics exposes the artifact's validation scores for the health and
// stats surfaces.
func (uc *PredictionUseCase) Metrics() domain.ValidationMetrics {
	if uc.artifact == nil {
		return domain.ValidationMetrics{}
	}
	return uc.artifact.Metrics
}
