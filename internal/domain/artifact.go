package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// ValidationMetrics are the held-out scores of the chosen regressor.
type ValidationMetrics struct {
	RMSE float64 `json:"rmse"`
	MAE  float64 `json:"mae"`
	R2   float64 `json:"r2"`
}

// ModelArtifact bundles a fitted regressor with the FeatureSet that
// produced its inputs. It is written once by the training stage and only
// ever read by the serving layer; retraining creates a new artifact.
type ModelArtifact struct {
	ID         uuid.UUID         `json:"id"`
	CreatedAt  time.Time         `json:"created_at"`
	ModelName  string            `json:"model_name"`
	Weights    []float64         `json:"weights"`
	Intercept  float64           `json:"intercept"`
	FeatureSet *FeatureSet       `json:"feature_set"`
	Metrics    ValidationMetrics `json:"metrics"`

	// Observed target range in original price units, for sanity bounds
	// and the prediction band on the serving side.
	PriceMin float64 `json:"price_min"`
	PriceMax float64 `json:"price_max"`
	Margin   float64 `json:"margin"`
}

// Predict transforms one raw input row and evaluates the model, returning
// an estimate in original price units.
func (a *ModelArtifact) Predict(raw map[string]string) (float64, error) {
	if a.FeatureSet == nil {
		return 0, fmt.Errorf("%w: artifact has no feature set", ErrArtifactNotFound)
	}
	x, err := a.FeatureSet.Transform(raw)
	if err != nil {
		return 0, err
	}
	if len(x) != len(a.Weights) {
		return 0, fmt.Errorf("%w: expected %d features, got %d", ErrValidation, len(a.Weights), len(x))
	}
	y := a.Intercept
	for i, w := range a.Weights {
		y += w * x[i]
	}
	if a.FeatureSet.LogTarget {
		y = math.Expm1(y)
	}
	return y, nil
}
