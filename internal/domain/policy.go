package domain

type ImputeKind string

const (
	ImputeMedian   ImputeKind = "median"
	ImputeMean     ImputeKind = "mean"
	ImputeMode     ImputeKind = "mode"
	ImputeConstant ImputeKind = "constant"
	ImputeDropRow  ImputeKind = "drop-row"
)

// ImputeStrategy is one column's rule for filling missing values.
// Constant is only read for ImputeConstant.
type ImputeStrategy struct {
	Kind     ImputeKind
	Constant string
}

// ImputationPolicy maps columns to fill strategies. Columns listed in
// PositiveColumns treat values <= 0 as missing before any fill runs, so
// a negative price never survives as a real observation.
type ImputationPolicy struct {
	Columns         map[string]ImputeStrategy
	PositiveColumns []string
}

type DetectKind string

const (
	DetectIQR    DetectKind = "iqr"
	DetectZScore DetectKind = "zscore"
)

type OutlierAction string

const (
	ActionCap    OutlierAction = "cap"
	ActionRemove OutlierAction = "remove"
)

// OutlierRule pairs a detection rule with an explicit treatment action.
// K is the IQR multiplier, Z the z-score threshold; only the field for
// the chosen detector is read.
type OutlierRule struct {
	Detect DetectKind
	K      float64
	Z      float64
	Action OutlierAction
}

// OutlierPolicy maps numeric columns to rules. There is no default rule:
// an uncovered column passes through untouched.
type OutlierPolicy map[string]OutlierRule
