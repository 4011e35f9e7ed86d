package pipeline_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"property-pricing-service/internal/domain"
	"property-pricing-service/internal/pipeline"
)

func numericDataset(t *testing.T, column string, values []float64) *domain.Dataset {
	t.Helper()
	rows := make([][]string, len(values))
	for i, v := range values {
		rows[i] = []string{strconv.Itoa(i), strconv.FormatFloat(v, 'g', -1, 64)}
	}
	return domain.NewDataset([]string{"property_id", column}, rows)
}

func TestTreatOutliersCapsToIQRBounds(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 100}
	ds := numericDataset(t, "price", values)

	out, err := pipeline.TreatOutliers(ds, domain.OutlierPolicy{
		"price": {Detect: domain.DetectIQR, K: 1.5, Action: domain.ActionCap},
	})
	require.NoError(t, err)
	assert.Equal(t, len(values), out.NumRows())

	// Empirical quartiles of the input are Q1=3, Q3=8, so the upper
	// fence is 8 + 1.5*5 = 15.5.
	prices, err := out.NumericColumn("price")
	require.NoError(t, err)
	for _, p := range prices {
		assert.GreaterOrEqual(t, p, -4.5)
		assert.LessOrEqual(t, p, 15.5)
	}
	assert.InDelta(t, 15.5, prices[len(prices)-1], 1e-12)
}

func TestTreatOutliersRemovesZScoreViolations(t *testing.T) {
	values := make([]float64, 21)
	for i := 0; i < 20; i++ {
		values[i] = 1
	}
	values[20] = 100
	ds := numericDataset(t, "bedRoom", values)

	out, err := pipeline.TreatOutliers(ds, domain.OutlierPolicy{
		"bedRoom": {Detect: domain.DetectZScore, Z: 2, Action: domain.ActionRemove},
	})
	require.NoError(t, err)
	assert.Equal(t, 20, out.NumRows())
	assert.LessOrEqual(t, out.NumRows(), ds.NumRows())

	kept, err := out.NumericColumn("bedRoom")
	require.NoError(t, err)
	for _, v := range kept {
		assert.Less(t, v, 50.0)
	}
}

func TestTreatOutliersNeverAddsColumns(t *testing.T) {
	ds := numericDataset(t, "price", []float64{1, 2, 3, 4, 5, 6, 7, 8})
	out, err := pipeline.TreatOutliers(ds, domain.OutlierPolicy{
		"price": {Detect: domain.DetectIQR, K: 1.5, Action: domain.ActionCap},
	})
	require.NoError(t, err)
	assert.Equal(t, ds.Columns, out.Columns)
}

func TestTreatOutliersUnknownColumn(t *testing.T) {
	ds := numericDataset(t, "price", []float64{1, 2, 3})
	_, err := pipeline.TreatOutliers(ds, domain.OutlierPolicy{
		"area": {Detect: domain.DetectIQR, K: 1.5, Action: domain.ActionCap},
	})
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestTreatOutliersRequiresExplicitAction(t *testing.T) {
	ds := numericDataset(t, "price", []float64{1, 2, 3, 4})
	_, err := pipeline.TreatOutliers(ds, domain.OutlierPolicy{
		"price": {Detect: domain.DetectIQR, K: 1.5},
	})
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestTreatOutliersRejectsMissingCells(t *testing.T) {
	ds := numericDataset(t, "price", []float64{1, 2, 3, 4})
	ds.Rows[2][1] = ""
	_, err := pipeline.TreatOutliers(ds, domain.OutlierPolicy{
		"price": {Detect: domain.DetectIQR, K: 1.5, Action: domain.ActionCap},
	})
	assert.ErrorIs(t, err, domain.ErrDataQuality)
}
