package pipeline

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"

	"property-pricing-service/internal/domain"
)

// FeatureConfig pins down which columns feed the model and how. Declared
// order is preserved: selected features keep the Numeric-then-Categorical
// ordering given here, and that order is what the serving layer replays.
type FeatureConfig struct {
	Target      string
	IDColumn    string
	Numeric     []string
	Categorical []string

	// MustKeep columns bypass the correlation threshold. They are the
	// serving contract: callers always supply them.
	MustKeep []string

	// CorrThreshold is the minimum absolute Pearson correlation with the
	// target for a column to survive selection.
	CorrThreshold float64

	// LogTarget trains against log1p(price); the serving layer applies
	// expm1 on the way out.
	LogTarget bool
}

// DefaultFeatureConfig mirrors the columns of the Gurgaon property
// dataset this service was built around.
func DefaultFeatureConfig() FeatureConfig {
	return FeatureConfig{
		Target:   "price",
		IDColumn: "property_id",
		Numeric:  []string{"bedRoom", "bathroom", "built_up_area", "servant room", "store room"},
		Categorical: []string{
			"property_type", "sector", "balcony", "agePossession",
			"furnishing_type", "luxury_category", "floor_category",
		},
		MustKeep:      []string{"built_up_area", "bedRoom", "bathroom", "property_type", "sector"},
		CorrThreshold: 0.05,
		LogTarget:     true,
	}
}

// DerivePricePerSqft appends a price_per_sqft column computed from price
// and built-up area. Rows where either side is missing or the area is
// zero get a missing cell rather than an infinity. Already-derived
// datasets pass through unchanged.
func DerivePricePerSqft(ds *domain.Dataset, priceCol, areaCol string) (*domain.Dataset, error) {
	const derived = "price_per_sqft"
	if ds.ColumnIndex(derived) >= 0 {
		return ds.Clone(), nil
	}
	pIdx := ds.ColumnIndex(priceCol)
	aIdx := ds.ColumnIndex(areaCol)
	if pIdx < 0 || aIdx < 0 {
		return nil, fmt.Errorf("%w: deriving %s needs columns %q and %q", domain.ErrConfiguration, derived, priceCol, areaCol)
	}

	out := ds.Clone()
	out.Columns = append(out.Columns, derived)
	for i, row := range out.Rows {
		cell := ""
		price, errP := strconv.ParseFloat(strings.TrimSpace(row[pIdx]), 64)
		area, errA := strconv.ParseFloat(strings.TrimSpace(row[aIdx]), 64)
		if errP == nil && errA == nil && area > 0 {
			cell = strconv.FormatFloat(price/area, 'g', -1, 64)
		}
		out.Rows[i] = append(row, cell)
	}
	return out, nil
}

// SelectFeatures turns an outlier-treated dataset into the model-ready
// frame plus the fitted FeatureSet. Encoders and the scaler are fitted
// here exactly once; the returned FeatureSet is the only way the serving
// layer may transform input afterward.
func SelectFeatures(ds *domain.Dataset, cfg FeatureConfig) (*domain.FeatureFrame, *domain.FeatureSet, error) {
	for _, name := range append([]string{cfg.Target, cfg.IDColumn}, append(cfg.Numeric, cfg.Categorical...)...) {
		if ds.ColumnIndex(name) < 0 {
			return nil, nil, fmt.Errorf("%w: feature column %q not in dataset", domain.ErrConfiguration, name)
		}
	}
	if ds.NumRows() == 0 {
		return nil, nil, fmt.Errorf("%w: dataset is empty", domain.ErrDataQuality)
	}

	y, err := targetColumn(ds, cfg.Target, cfg.LogTarget)
	if err != nil {
		return nil, nil, err
	}

	type candidate struct {
		name    string
		values  []float64
		encoder *domain.LabelEncoder
	}
	candidates := make([]candidate, 0, len(cfg.Numeric)+len(cfg.Categorical))

	for _, name := range cfg.Numeric {
		values, err := strictNumericColumn(ds, name)
		if err != nil {
			return nil, nil, err
		}
		candidates = append(candidates, candidate{name: name, values: values})
	}
	for _, name := range cfg.Categorical {
		cells, err := ds.Column(name)
		if err != nil {
			return nil, nil, err
		}
		enc := &domain.LabelEncoder{Column: name}
		enc.Fit(cells)
		values := make([]float64, len(cells))
		for i, c := range cells {
			if domain.IsMissing(c) {
				return nil, nil, fmt.Errorf("%w: column %q row %d is missing; clean the dataset first", domain.ErrDataQuality, name, i)
			}
			code, err := enc.Encode(c)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: column %q row %d: %v", domain.ErrDataQuality, name, i, err)
			}
			values[i] = code
		}
		candidates = append(candidates, candidate{name: name, values: values, encoder: enc})
	}

	mustKeep := make(map[string]bool, len(cfg.MustKeep))
	for _, name := range cfg.MustKeep {
		mustKeep[name] = true
	}

	var selected []candidate
	for _, c := range candidates {
		if mustKeep[c.name] {
			selected = append(selected, c)
			continue
		}
		r := stat.Correlation(c.values, y, nil)
		if !math.IsNaN(r) && math.Abs(r) >= cfg.CorrThreshold {
			selected = append(selected, c)
		}
	}
	if len(selected) == 0 {
		return nil, nil, fmt.Errorf("%w: no feature passed selection", domain.ErrDataQuality)
	}

	n := ds.NumRows()
	columns := make([]string, len(selected))
	encoders := make(map[string]*domain.LabelEncoder)
	raw := make([][]float64, n)
	for i := range raw {
		raw[i] = make([]float64, len(selected))
	}
	for j, c := range selected {
		columns[j] = c.name
		if c.encoder != nil {
			encoders[c.name] = c.encoder
		}
		for i := 0; i < n; i++ {
			raw[i][j] = c.values[i]
		}
	}

	scaler := &domain.StandardScaler{}
	scaler.Fit(raw)
	x := make([][]float64, n)
	for i := range raw {
		x[i] = scaler.Transform(raw[i])
	}

	ids, err := ds.Column(cfg.IDColumn)
	if err != nil {
		return nil, nil, err
	}

	frame := &domain.FeatureFrame{IDs: ids, Columns: columns, X: x, Y: y}
	fs := &domain.FeatureSet{
		Target:    cfg.Target,
		LogTarget: cfg.LogTarget,
		Columns:   columns,
		Encoders:  encoders,
		Scaler:    scaler,
	}
	return frame, fs, nil
}

func targetColumn(ds *domain.Dataset, name string, logTarget bool) ([]float64, error) {
	values, err := strictNumericColumn(ds, name)
	if err != nil {
		return nil, err
	}
	for i, v := range values {
		if v <= 0 {
			return nil, fmt.Errorf("%w: target %q row %d is not positive: %g", domain.ErrDataQuality, name, i, v)
		}
		if logTarget {
			values[i] = math.Log1p(v)
		}
	}
	return values, nil
}

func strictNumericColumn(ds *domain.Dataset, name string) ([]float64, error) {
	idx := ds.ColumnIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("%w: column %q not in dataset", domain.ErrConfiguration, name)
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
