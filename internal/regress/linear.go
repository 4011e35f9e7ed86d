// Package regress provides the small set of regression models the
// training stage chooses between, plus split and scoring helpers.
package regress

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"property-pricing-service/internal/domain"
)

// Regressor is a fitted least-squares model over row-major features.
type Regressor interface {
	Name() string
	Fit(x [][]float64, y []float64) error
	Predict(x []float64) float64
	Coefficients() (weights []float64, intercept float64)
}

// LinearRegression solves ordinary least squares through gonum's
// QR-backed Dense solve, bias handled as an appended ones column.
type LinearRegression struct {
	Weights   []float64
	Intercept float64
}

func NewLinearRegression() *LinearRegression { return &LinearRegression{} }

func (m *LinearRegression) Name() string { return "ols" }

func (m *LinearRegression) Fit(x [][]float64, y []float64) error {
	rows, cols, err := checkShape(x, y)
	if err != nil {
		return err
	}
	design := mat.NewDense(rows, cols+1, nil)
	for i, row := range x {
		for j, v := range row {
			design.Set(i, j, v)
		}
		design.Set(i, cols, 1)
	}
	target := mat.NewDense(rows, 1, append([]float64(nil), y...))

	var coef mat.Dense
	if err := coef.Solve(design, target); err != nil {
		return fmt.Errorf("%w: least squares solve failed: %v", domain.ErrDataQuality, err)
	}

	m.Weights = make([]float64, cols)
	for j := 0; j < cols; j++ {
		m.Weights[j] = coef.At(j, 0)
	}
	m.Intercept = coef.At(cols, 0)
	return nil
}

func (m *LinearRegression) Predict(x []float64) float64 {
	return dot(m.Weights, x) + m.Intercept
}

func (m *LinearRegression) Coefficients() ([]float64, float64) {
	return m.Weights, m.Intercept
}

// Ridge is L2-regularized least squares via the normal equations
// (XᵀX + λI)w = Xᵀy. The bias column is not penalized.
type Ridge struct {
	Lambda    float64
	Weights   []float64
	Intercept float64
}

func NewRidge(lambda float64) *Ridge { return &Ridge{Lambda: lambda} }

func (m *Ridge) Name() string { return "ridge" }

func (m *Ridge) Fit(x [][]float64, y []float64) error {
	rows, cols, err := checkShape(x, y)
	if err != nil {
		return err
	}
	design := mat.NewDense(rows, cols+1, nil)
	for i, row := range x {
		for j, v := range row {
			design.Set(i, j, v)
		}
		design.Set(i, cols, 1)
	}
	target := mat.NewDense(rows, 1, append([]float64(nil), y...))

	var gram mat.Dense
	gram.Mul(design.T(), design)
	for j := 0; j < cols; j++ {
		gram.Set(j, j, gram.At(j, j)+m.Lambda)
	}

	var moment mat.Dense
	moment.Mul(design.T(), target)

	var coef mat.Dense
	if err := coef.Solve(&gram, &moment); err != nil {
		return fmt.Errorf("%w: ridge solve failed: %v", domain.ErrDataQuality, err)
	}

	m.Weights = make([]float64, cols)
	for j := 0; j < cols; j++ {
		m.Weights[j] = coef.At(j, 0)
	}
	m.Intercept = coef.At(cols, 0)
	return nil
}

func (m *Ridge) Predict(x []float64) float64 {
	return dot(m.Weights, x) + m.Intercept
}

func (m *Ridge) Coefficients() ([]float64, float64) {
	return m.Weights, m.Intercept
}

func checkShape(x [][]float64, y []float64) (rows, cols int, err error) {
	rows = len(x)
	if rows == 0 || len(y) != rows {
		return 0, 0, fmt.Errorf("%w: feature matrix and target length mismatch (%d rows, %d targets)", domain.ErrDataQuality, rows, len(y))
	}
	cols = len(x[0])
	if cols == 0 {
		return 0, 0, fmt.Errorf("%w: feature matrix has no columns", domain.ErrDataQuality)
	}
	if rows <= cols+1 {
		return 0, 0, fmt.Errorf("%w: %d rows are too few for %d features", domain.ErrDataQuality, rows, cols)
	}
	return rows, cols, nil
}

func dot(w, x []float64) float64 {
	s := 0.0
	for i := range w {
		s += w[i] * x[i]
	}
	return s
}
