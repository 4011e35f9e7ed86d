package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// LabelEncoder maps categorical labels to integer codes in first-seen
// order. Classes is the full state: index is the code, so the encoder
// survives a JSON round trip without the lookup map.
type LabelEncoder struct {
	Column  string   `json:"column"`
	Classes []string `json:"classes"`

	codes map[string]int
}

// Fit assigns codes to every distinct non-missing label in order of first
// appearance. Fitting again resets the encoder.
func (e *LabelEncoder) Fit(values []string) {
	e.Classes = e.Classes[:0]
	e.codes = make(map[string]int)
	for _, v := range values {
		if IsMissing(v) {
			continue
		}
		v = strings.TrimSpace(v)
		if _, ok := e.codes[v]; !ok {
			e.codes[v] = len(e.Classes)
			e.Classes = append(e.Classes, v)
		}
	}
}

func (e *LabelEncoder) index() map[string]int {
	if e.codes == nil {
		e.codes = make(map[string]int, len(e.Classes))
		for i, c := range e.Classes {
			e.codes[c] = i
		}
	}
	return e.codes
}

// Encode returns the code for a label seen during fitting. Unseen labels
// are a validation error, never a silent fallback code.
func (e *LabelEncoder) Encode(v string) (float64, error) {
	code, ok := e.index()[strings.TrimSpace(v)]
	if !ok {
		return 0, fmt.Errorf("%w: value %q for %q was not seen during training", ErrValidation, v, e.Column)
	}
	return float64(code), nil
}

// Decode inverts Encode.
func (e *LabelEncoder) Decode(code int) (string, error) {
	if code < 0 || code >= len(e.Classes) {
		return "", fmt.Errorf("%w: code %d out of range for %q", ErrValidation, code, e.Column)
	}
	return e.Classes[code], nil
}

// StandardScaler holds per-column mean and standard deviation fitted on
// the training matrix. A zero-variance column scales with std 1 so it
// maps to a constant instead of NaN.
type StandardScaler struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

// Fit computes column means and stds over a row-major matrix.
func (s *StandardScaler) Fit(x [][]float64) {
	if len(x) == 0 {
		return
	}
	cols := len(x[0])
	s.Mean = make([]float64, cols)
	s.Std = make([]float64, cols)
	n := float64(len(x))
	for j := 0; j < cols; j++ {
		sum := 0.0
		for i := range x {
			sum += x[i][j]
		}
		mean := sum / n
		variance := 0.0
		for i := range x {
			d := x[i][j] - mean
			variance += d * d
		}
		std := math.Sqrt(variance / n)
		if std == 0 {
			std = 1
		}
		s.Mean[j] = mean
		s.Std[j] = std
	}
}

// Transform scales one row into z-space.
func (s *StandardScaler) Transform(row []float64) []float64 {
	out := make([]float64, len(row))
	for j, v := range row {
		out[j] = (v - s.Mean[j]) / s.Std[j]
	}
	return out
}

// FeatureSet is everything the serving layer needs to turn raw input into
// the exact representation the model was trained on: column order, fitted
// encoders, and the fitted scaler. It persists with the model so the
// transform is never re-derived from a different dataset.
type FeatureSet struct {
	Target    string                   `json:"target"`
	LogTarget bool                     `json:"log_target"`
	Columns   []string                 `json:"columns"`
	Encoders  map[string]*LabelEncoder `json:"encoders"`
	Scaler    *StandardScaler          `json:"scaler"`
}

// Transform encodes and scales one raw input row in training column order.
// A missing required feature, a non-numeric value in a numeric column, or
// a category unseen at fit time all fail with ErrValidation.
func (fs *FeatureSet) Transform(raw map[string]string) ([]float64, error) {
	vec := make([]float64, len(fs.Columns))
	for i, col := range fs.Columns {
		v, ok := raw[col]
		if !ok || IsMissing(v) {
			return nil, fmt.Errorf("%w: required feature %q is missing", ErrValidation, col)
		}
		if enc, isCat := fs.Encoders[col]; isCat {
			code, err := enc.Encode(v)
			if err != nil {
				return nil, err
			}
			vec[i] = code
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: feature %q must be numeric, got %q", ErrValidation, col, v)
		}
		vec[i] = f
	}
	if fs.Scaler != nil {
		vec = fs.Scaler.Transform(vec)
	}
	return vec, nil
}

// FeatureFrame is the model-ready dataset: scaled features X aligned with
// the target Y and the source property IDs.
type FeatureFrame struct {
	IDs     []string
	Columns []string
	X       [][]float64
	Y       []float64
}
