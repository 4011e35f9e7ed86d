package domain

import "errors"

var (
	// ErrConfiguration covers policies or feature configs that reference
	// columns the input dataset does not have.
	ErrConfiguration = errors.New("pipeline configuration invalid")

	// ErrDataQuality covers columns that are unusable: fully empty,
	// non-numeric where a numeric value is required, or NaN/Inf values
	// surviving into the model-ready matrix.
	ErrDataQuality = errors.New("dataset quality insufficient")

	// ErrValidation covers caller-supplied prediction input that is
	// incompatible with the trained feature set.
	ErrValidation = errors.New("prediction input invalid")

	ErrPropertyNotFound = errors.New("property not found")
	ErrLocationNotFound = errors.New("location not found")
	ErrArtifactNotFound = errors.New("model artifact not found")
)
