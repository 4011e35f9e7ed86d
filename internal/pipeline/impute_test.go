package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"property-pricing-service/internal/domain"
	"property-pricing-service/internal/pipeline"
	"property-pricing-service/internal/testutil"
)

func TestCleanFillsCoveredColumns(t *testing.T) {
	ds := testutil.PropertyDataset(40)
	testutil.Blank(t, ds, "bedRoom", 1, 5, 9)
	testutil.Blank(t, ds, "furnishing_type", 2, 7)
	testutil.Blank(t, ds, "sector", 3)

	policy := domain.ImputationPolicy{
		Columns: map[string]domain.ImputeStrategy{
			"bedRoom":         {Kind: domain.ImputeMedian},
			"furnishing_type": {Kind: domain.ImputeConstant, Constant: "unfurnished"},
			"sector":          {Kind: domain.ImputeMode},
		},
	}

	out, err := pipeline.Clean(ds, policy)
	require.NoError(t, err)
	assert.Equal(t, ds.NumRows(), out.NumRows())

	for _, col := range []string{"bedRoom", "furnishing_type", "sector"} {
		cells, err := out.Column(col)
		require.NoError(t, err)
		for i, c := range cells {
			assert.Falsef(t, domain.IsMissing(c), "column %s row %d still missing", col, i)
		}
	}

	furn, _ := out.Column("furnishing_type")
	assert.Equal(t, "unfurnished", furn[2])
}

func TestCleanLeavesUncoveredColumnsAlone(t *testing.T) {
	ds := testutil.PropertyDataset(20)
	testutil.Blank(t, ds, "luxury_category", 4)

	out, err := pipeline.Clean(ds, domain.ImputationPolicy{
		Columns: map[string]domain.ImputeStrategy{"bedRoom": {Kind: domain.ImputeMedian}},
	})
	require.NoError(t, err)

	lux, _ := out.Column("luxury_category")
	assert.True(t, domain.IsMissing(lux[4]))
}

func TestCleanDropRow(t *testing.T) {
	ds := testutil.PropertyDataset(30)
	testutil.Blank(t, ds, "price", 0, 11)

	out, err := pipeline.Clean(ds, domain.ImputationPolicy{
		Columns: map[string]domain.ImputeStrategy{"price": {Kind: domain.ImputeDropRow}},
	})
	require.NoError(t, err)
	assert.Equal(t, 28, out.NumRows())
}

func TestCleanPositiveColumns(t *testing.T) {
	ds := testutil.PropertyDataset(30)
	priceIdx := ds.ColumnIndex("price")
	ds.Rows[3][priceIdx] = "-2.5"
	ds.Rows[8][priceIdx] = "0"

	out, err := pipeline.Clean(ds, domain.ImputationPolicy{
		Columns:         map[string]domain.ImputeStrategy{"price": {Kind: domain.ImputeDropRow}},
		PositiveColumns: []string{"price"},
	})
	require.NoError(t, err)

	// Non-positive prices are demoted to missing, then dropped.
	assert.Equal(t, 28, out.NumRows())
	prices, err := out.NumericColumn("price")
	require.NoError(t, err)
	for _, p := range prices {
		assert.Greater(t, p, 0.0)
	}
}

func TestCleanUnknownColumn(t *testing.T) {
	ds := testutil.PropertyDataset(10)
	_, err := pipeline.Clean(ds, domain.ImputationPolicy{
		Columns: map[string]domain.ImputeStrategy{"parking": {Kind: domain.ImputeMedian}},
	})
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestCleanEmptyColumn(t *testing.T) {
	ds := testutil.PropertyDataset(10)
	rows := make([]int, ds.NumRows())
	for i := range rows {
		rows[i] = i
	}
	testutil.Blank(t, ds, "bathroom", rows...)

	_, err := pipeline.Clean(ds, domain.ImputationPolicy{
		Columns: map[string]domain.ImputeStrategy{"bathroom": {Kind: domain.ImputeMean}},
	})
	assert.ErrorIs(t, err, domain.ErrDataQuality)
}

func TestCleanIdempotent(t *testing.T) {
	ds := testutil.PropertyDataset(40)
	testutil.Blank(t, ds, "built_up_area", 2, 17, 33)
	testutil.Blank(t, ds, "balcony", 6)

	policy := domain.ImputationPolicy{
		Columns: map[string]domain.ImputeStrategy{
			"built_up_area": {Kind: domain.ImputeMedian},
			"balcony":       {Kind: domain.ImputeMode},
			"price":         {Kind: domain.ImputeDropRow},
		},
		PositiveColumns: []string{"price", "built_up_area"},
	}

	once, err := pipeline.Clean(ds, policy)
	require.NoError(t, err)
	twice, err := pipeline.Clean(once, policy)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}
