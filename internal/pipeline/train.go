package pipeline

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"property-pricing-service/internal/domain"
	"property-pricing-service/internal/regress"
)

// TrainConfig controls the split and the candidate models.
type TrainConfig struct {
	ValidationRatio float64
	Seed            int64
	RidgeLambda     float64

	// Margin is the half-width of the serving-side estimate band, in
	// original price units.
	Margin float64
}

// DefaultTrainConfig matches the behavior of the original training run:
// a 20% validation split and a ±0.22 Cr estimate band.
func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		ValidationRatio: 0.2,
		Seed:            42,
		RidgeLambda:     1.0,
		Margin:          0.22,
	}
}

// Train fits every candidate regressor on the model-ready frame and keeps
// the one with the lowest validation RMSE, bundling it with the frame's
// FeatureSet into an immutable artifact.
func Train(frame *domain.FeatureFrame, fs *domain.FeatureSet, cfg TrainConfig) (*domain.ModelArtifact, error) {
	if err := checkFinite(frame); err != nil {
		return nil, err
	}

	trainIdx, valIdx := regress.Split(len(frame.X), cfg.ValidationRatio, cfg.Seed)
	if len(trainIdx) == 0 || len(valIdx) == 0 {
		return nil, fmt.Errorf("%w: %d rows are too few to split for validation", domain.ErrDataQuality, len(frame.X))
	}
	xTrain, yTrain := regress.Take(frame.X, frame.Y, trainIdx)
	xVal, yVal := regress.Take(frame.X, frame.Y, valIdx)

	candidates := []regress.Regressor{
		regress.NewLinearRegression(),
		regress.NewRidge(cfg.RidgeLambda),
	}

	var best regress.Regressor
	bestRMSE := math.Inf(1)
	var bestPred []float64
	for _, model := range candidates {
		if err := model.Fit(xTrain, yTrain); err != nil {
			return nil, fmt.Errorf("fit %s: %w", model.Name(), err)
		}
		pred := make([]float64, len(xVal))
		for i, row := range xVal {
			pred[i] = model.Predict(row)
		}
		rmse := regress.RMSE(yVal, pred)
		log.WithFields(log.Fields{"model": model.Name(), "rmse": rmse}).Info("candidate evaluated")
		if rmse < bestRMSE {
			best, bestRMSE, bestPred = model, rmse, pred
		}
	}

	weights, intercept := best.Coefficients()

	prices := append([]float64(nil), frame.Y...)
	if fs.LogTarget {
		for i, v := range prices {
			prices[i] = math.Expm1(v)
		}
	}

	artifact := &domain.ModelArtifact{
		ID:         uuid.New(),
		CreatedAt:  time.Now().UTC(),
		ModelName:  best.Name(),
		Weights:    append([]float64(nil), weights...),
		Intercept:  intercept,
		FeatureSet: fs,
		Metrics: domain.ValidationMetrics{
			RMSE: bestRMSE,
			MAE:  regress.MAE(yVal, bestPred),
			R2:   regress.R2(yVal, bestPred),
		},
		PriceMin: floats.Min(prices),
		PriceMax: floats.Max(prices),
		Margin:   cfg.Margin,
	}
	return artifact, nil
}

// checkFinite rejects any NaN or Inf that slipped through the earlier
// stages; a partial fit on bad data is worse than no fit.
func checkFinite(frame *domain.FeatureFrame) error {
	for i, row := range frame.X {
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: non-finite value at row %d column %q", domain.ErrDataQuality, i, frame.Columns[j])
			}
		}
	}
	for i, v := range frame.Y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite target at row %d", domain.ErrDataQuality, i)
		}
	}
	return nil
}
