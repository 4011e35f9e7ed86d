package pipeline

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"

	"property-pricing-service/internal/domain"
)

type bounds struct {
	column int
	lower  float64
	upper  float64
	action domain.OutlierAction
}

// TreatOutliers caps or removes statistically extreme values per the
// policy. Bounds for every ruled column are computed from the input
// dataset before any treatment is applied, so removal in one column
// cannot shift another column's bounds.
func TreatOutliers(ds *domain.Dataset, policy domain.OutlierPolicy) (*domain.Dataset, error) {
	out := ds.Clone()

	names := make([]string, 0, len(policy))
	for name := range policy {
		names = append(names, name)
	}
	sort.Strings(names)

	plans := make([]bounds, 0, len(names))
	for _, name := range names {
		rule := policy[name]
		idx := out.ColumnIndex(name)
		if idx < 0 {
			return nil, fmt.Errorf("%w: outlier column %q not in dataset", domain.ErrConfiguration, name)
		}

		values, err := ruledColumn(out, name, idx)
		if err != nil {
			return nil, err
		}

		var lower, upper float64
		switch rule.Detect {
		case domain.DetectIQR:
			sorted := append([]float64(nil), values...)
			sort.Float64s(sorted)
			q1 := stat.Quantile(0.25, stat.Empirical, sorted, nil)
			q3 := stat.Quantile(0.75, stat.Empirical, sorted, nil)
			iqr := q3 - q1
			lower = q1 - rule.K*iqr
			upper = q3 + rule.K*iqr
		case domain.DetectZScore:
			mean, std := stat.MeanStdDev(values, nil)
			lower = mean - rule.Z*std
			upper = mean + rule.Z*std
		default:
			return nil, fmt.Errorf("%w: unknown outlier detector %q for column %q", domain.ErrConfiguration, rule.Detect, name)
		}

		switch rule.Action {
		case domain.ActionCap, domain.ActionRemove:
		default:
			return nil, fmt.Errorf("%w: column %q needs an explicit outlier action", domain.ErrConfiguration, name)
		}

		plans = append(plans, bounds{column: idx, lower: lower, upper: upper, action: rule.Action})
	}

	remove := make([]bool, len(out.Rows))
	for _, p := range plans {
		for i, row := range out.Rows {
			v, _ := strconv.ParseFloat(strings.TrimSpace(row[p.column]), 64)
			if v >= p.lower && v <= p.upper {
				continue
			}
			switch p.action {
			case domain.ActionCap:
				clipped := p.lower
				if v > p.upper {
					clipped = p.upper
				}
				row[p.column] = strconv.FormatFloat(clipped, 'g', -1, 64)
			case domain.ActionRemove:
				remove[i] = true
			}
		}
	}

	kept := out.Rows[:0]
	for i, row := range out.Rows {
		if !remove[i] {
			kept = append(kept, row)
		}
	}
	out.Rows = kept

	return out, nil
}

// ruledColumn parses a column covered by an outlier rule. Every cell must
// be a number here: missing or textual cells mean the cleaning stage did
// not cover this column.
func ruledColumn(ds *domain.Dataset, name string, idx int) ([]float64, error) {
	if len(ds.Rows) == 0 {
		return nil, fmt.Errorf("%w: column %q has no rows", domain.ErrDataQuality, name)
	}
	values := make([]float64, len(ds.Rows))
	for i, row := range ds.Rows {
		cell := row[idx]
		if domain.IsMissing(cell) {
			return nil, fmt.Errorf("%w: column %q row %d is missing; clean the dataset first", domain.ErrDataQuality, name, i)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: column %q row %d is not numeric: %q", domain.ErrDataQuality, name, i, cell)
		}
		values[i] = v
	}
	return values, nil
}
