package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"property-pricing-service/internal/domain"
)

func statsDataset() *domain.Dataset {
	return domain.NewDataset(
		[]string{"property_id", "sector", "price", "price_per_sqft"},
		[][]string{
			{"P001", "Sector 1", "1.0", "8000"},
			{"P002", "Sector 2", "2.0", "10000"},
			{"P003", "Sector 1", "3.0", "12000"},
			{"P004", "Sector 3", "6.0", "20000"},
		},
	)
}

func TestMarketStats(t *testing.T) {
	uc := NewStatsUseCase(statsDataset())
	s := uc.Market()

	assert.Equal(t, 4, s.Rows)
	assert.Equal(t, 3, s.Sectors)
	assert.InDelta(t, 3.0, s.AvgPrice, 1e-9)
	assert.InDelta(t, 10000.0, s.MedianPricePerSqft, 1e-9)
}

func TestMarketStatsSkipsMissingCells(t *testing.T) {
	ds := statsDataset()
	ds.Rows[1][1] = ""
	ds.Rows[2][3] = "NA"

	s := NewStatsUseCase(ds).Market()
	assert.Equal(t, 2, s.Sectors)
	assert.InDelta(t, 10000.0, s.MedianPricePerSqft, 1e-9)
}

func TestMarketStatsWithoutDerivedColumns(t *testing.T) {
	ds := domain.NewDataset(
		[]string{"property_id", "price"},
		[][]string{{"P001", "1.5"}},
	)

	s := NewStatsUseCase(ds).Market()
	require.Equal(t, 1, s.Rows)
	assert.Zero(t, s.Sectors)
	assert.Zero(t, s.MedianPricePerSqft)
	assert.InDelta(t, 1.5, s.AvgPrice, 1e-9)
}
