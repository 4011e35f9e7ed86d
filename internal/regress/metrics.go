package regress

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// RMSE is the root mean squared error between truth and predictions.
func RMSE(yTrue, yPred []float64) float64 {
	s := 0.0
	for i := range yTrue {
		d := yPred[i] - yTrue[i]
		s += d * d
	}
	return math.Sqrt(s / float64(len(yTrue)))
}

// MAE is the mean absolute error between truth and predictions.
func MAE(yTrue, yPred []float64) float64 {
	s := 0.0
	for i := range yTrue {
		s += math.Abs(yPred[i] - yTrue[i])
	}
	return s / float64(len(yTrue))
}

// R2 is the coefficient of determination.
func R2(yTrue, yPred []float64) float64 {
	return stat.RSquaredFrom(yPred, yTrue, nil)
}
