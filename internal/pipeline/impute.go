// Package pipeline implements the offline batch stages that turn a raw
// property dataset into a trained pricing model: missing-value imputation,
// outlier treatment, feature selection, and model training. Every stage is
// a pure function from (dataset, policy) to dataset and can be rerun on
// its own output without changing it.
package pipeline

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"

	"property-pricing-service/internal/domain"
)

// Clean fills missing values per the policy. Columns without a strategy
// pass through untouched. Fill values are computed from the input dataset
// before anything is written, so strategies never see each other's fills.
func Clean(ds *domain.Dataset, policy domain.ImputationPolicy) (*domain.Dataset, error) {
	out := ds.Clone()

	// Positive-only columns: a zero or negative price/area is a data
	// entry error, not an observation.
	for _, name := range policy.PositiveColumns {
		idx := out.ColumnIndex(name)
		if idx < 0 {
			return nil, fmt.Errorf("%w: positive-only column %q not in dataset", domain.ErrConfiguration, name)
		}
		for _, row := range out.Rows {
			if domain.IsMissing(row[idx]) {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(row[idx]), 64)
			if err != nil || v <= 0 {
				row[idx] = ""
			}
		}
	}

	// Validate and plan before mutating, in a fixed column order so the
	// result does not depend on map iteration.
	names := make([]string, 0, len(policy.Columns))
	for name := range policy.Columns {
		names = append(names, name)
	}
	sort.Strings(names)

	fills := make(map[string]string, len(names))
	var dropCols []int
	for _, name := range names {
		strategy := policy.Columns[name]
		idx := out.ColumnIndex(name)
		if idx < 0 {
			return nil, fmt.Errorf("%w: imputation column %q not in dataset", domain.ErrConfiguration, name)
		}

		switch strategy.Kind {
		case domain.ImputeDropRow:
			dropCols = append(dropCols, idx)
		case domain.ImputeConstant:
			fills[name] = strategy.Constant
		case domain.ImputeMode:
			mode, err := columnMode(out, name)
			if err != nil {
				return nil, err
			}
			fills[name] = mode
		case domain.ImputeMean, domain.ImputeMedian:
			nums, err := out.NumericColumn(name)
			if err != nil {
				return nil, err
			}
			if len(nums) == 0 {
				return nil, fmt.Errorf("%w: column %q has no usable values", domain.ErrDataQuality, name)
			}
			var fill float64
			if strategy.Kind == domain.ImputeMean {
				fill = stat.Mean(nums, nil)
			} else {
				sorted := append([]float64(nil), nums...)
				sort.Float64s(sorted)
				fill = stat.Quantile(0.5, stat.Empirical, sorted, nil)
			}
			fills[name] = strconv.FormatFloat(fill, 'g', -1, 64)
		default:
			return nil, fmt.Errorf("%w: unknown impute strategy %q for column %q", domain.ErrConfiguration, strategy.Kind, name)
		}
	}

	for _, name := range names {
		fill, ok := fills[name]
		if !ok {
			continue
		}
		idx := out.ColumnIndex(name)
		for _, row := range out.Rows {
			if domain.IsMissing(row[idx]) {
				row[idx] = fill
			}
		}
	}

	if len(dropCols) > 0 {
		kept := out.Rows[:0]
		for _, row := range out.Rows {
			missing := false
			for _, idx := range dropCols {
				if domain.IsMissing(row[idx]) {
					missing = true
					break
				}
			}
			if !missing {
				kept = append(kept, row)
			}
		}
		out.Rows = kept
	}

	return out, nil
}

// columnMode returns the most frequent non-missing label, earliest first
// appearance winning ties so the result is deterministic.
func columnMode(ds *domain.Dataset, name string) (string, error) {
	cells, err := ds.Column(name)
	if err != nil {
		return "", err
	}
	counts := make(map[string]int)
	best, bestCount := "", 0
	for _, c := range cells {
		if domain.IsMissing(c) {
			continue
		}
		c = strings.TrimSpace(c)
		counts[c]++
		if counts[c] > bestCount {
			best, bestCount = c, counts[c]
		}
	}
	if bestCount == 0 {
		return "", fmt.Errorf("%w: column %q has no usable values", domain.ErrDataQuality, name)
	}
	return best, nil
}
