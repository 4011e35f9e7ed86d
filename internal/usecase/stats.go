package usecase

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"property-pricing-service/internal/domain"
)

// MarketStats summarizes the loaded dataset for the dashboard home view.
type MarketStats struct {
	Rows               int
	Sectors            int
	AvgPrice           float64
	MedianPricePerSqft float64
}

// StatsUseCase computes the market summary once at construction; the
// dataset never changes after startup so there is nothing to recompute.
type StatsUseCase struct {
	stats MarketStats
}

func NewStatsUseCase(ds *domain.Dataset) *StatsUseCase {
	s := MarketStats{Rows: ds.NumRows()}

	if sectors, err := ds.Column("sector"); err == nil {
		distinct := make(map[string]bool)
		for _, v := range sectors {
			if !domain.IsMissing(v) {
				distinct[v] = true
			}
		}
		s.Sectors = len(distinct)
	}
	if prices, err := ds.NumericColumn("price"); err == nil && len(prices) > 0 {
		s.AvgPrice = stat.Mean(prices, nil)
	}
	if pps, err := ds.NumericColumn("price_per_sqft"); err == nil && len(pps) > 0 {
		sort.Float64s(pps)
		s.MedianPricePerSqft = stat.Quantile(0.5, stat.Empirical, pps, nil)
	}

	return &StatsUseCase{stats: s}
}

func (uc *StatsUseCase) Market() MarketStats { return uc.stats }
