// Package testutil builds deterministic synthetic property datasets for
// the pipeline and serving tests.
package testutil

import (
	"fmt"
	"math/rand"
	"strconv"
	"testing"

	"property-pricing-service/internal/domain"
	"property-pricing-service/internal/pipeline"
)

var (
	sectors     = []string{"Sector 1", "Sector 2", "Sector 3", "Sector 4"}
	balconies   = []string{"1", "2", "3", "3+"}
	ages        = []string{"Under Construction", "New Property", "Relatively New", "Moderately Old", "Old Property"}
	furnishings = []string{"unfurnished", "semifurnished", "furnished"}
	luxuries    = []string{"Low", "Medium", "High"}
	floors      = []string{"Low Floor", "Mid Floor", "High Floor"}
)

// PropertyDataset generates n fully-populated rows with the production
// column schema. The price is an exact linear function of the numeric
// columns (area, bedrooms, bathrooms), so a least-squares fit recovers it
// and prediction assertions can be tight. Same n, same dataset.
func PropertyDataset(n int) *domain.Dataset {
	r := rand.New(rand.NewSource(7))
	columns := []string{
		"property_id", "property_type", "sector", "bedRoom", "bathroom",
		"balcony", "agePossession", "built_up_area", "servant room",
		"store room", "furnishing_type", "luxury_category", "floor_category",
		"price",
	}
	rows := make([][]string, n)
	for i := 0; i < n; i++ {
		area := 500 + r.Intn(2000)
		bed := 1 + r.Intn(5)
		bath := 1 + r.Intn(4)
		ptype := "flat"
		if r.Intn(2) == 1 {
			ptype = "house"
		}
		price := Price(float64(area), float64(bed), float64(bath))
		rows[i] = []string{
			fmt.Sprintf("P%03d", i),
			ptype,
			sectors[r.Intn(len(sectors))],
			strconv.Itoa(bed),
			strconv.Itoa(bath),
			balconies[r.Intn(len(balconies))],
			ages[r.Intn(len(ages))],
			strconv.Itoa(area),
			strconv.Itoa(r.Intn(2)),
			strconv.Itoa(r.Intn(2)),
			furnishings[r.Intn(len(furnishings))],
			luxuries[r.Intn(len(luxuries))],
			floors[r.Intn(len(floors))],
			strconv.FormatFloat(price, 'g', -1, 64),
		}
	}
	return domain.NewDataset(columns, rows)
}

// Price is the ground-truth pricing rule behind PropertyDataset, in Cr.
func Price(area, bed, bath float64) float64 {
	return 0.0015*area + 0.3*bed + 0.2*bath + 0.8
}

// Blank overwrites the named cells with empty strings to fake missing
// values. Rows are indices into ds.Rows.
func Blank(tb testing.TB, ds *domain.Dataset, column string, rowIdx ...int) {
	tb.Helper()
	idx := ds.ColumnIndex(column)
	if idx < 0 {
		tb.Fatalf("column %q not in dataset", column)
	}
	for _, i := range rowIdx {
		ds.Rows[i][idx] = ""
	}
}

// FeatureConfig is the production config with a linear-friendly target:
// no log transform and no correlation pruning, so fits on the synthetic
// data are exact.
func FeatureConfig() pipeline.FeatureConfig {
	cfg := pipeline.DefaultFeatureConfig()
	cfg.LogTarget = false
	cfg.CorrThreshold = 0
	return cfg
}

// TrainedArtifact runs feature selection and training over a synthetic
// dataset and returns the resulting artifact with its model-ready frame.
func TrainedArtifact(tb testing.TB, n int) (*domain.ModelArtifact, *domain.FeatureFrame) {
	tb.Helper()
	frame, fs, err := pipeline.SelectFeatures(PropertyDataset(n), FeatureConfig())
	if err != nil {
		tb.Fatalf("select features: %v", err)
	}
	artifact, err := pipeline.Train(frame, fs, pipeline.DefaultTrainConfig())
	if err != nil {
		tb.Fatalf("train: %v", err)
	}
	return artifact, frame
}
