package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"property-pricing-service/internal/domain"
	"property-pricing-service/internal/testutil"
)

func testDistances() *domain.DistanceMatrix {
	return &domain.DistanceMatrix{
		Locations:  []string{"Cyber Hub", "Airport"},
		Properties: []string{"P001", "P002", "P003", "P004"},
		Meters: [][]float64{
			{1200, 9000},
			{4800, 2500},
			{800, 30000},
			{6100, 2500},
		},
	}
}

func TestRecommendReturnsDistinctRankedIDs(t *testing.T) {
	_, frame := testutil.TrainedArtifact(t, 80)
	uc := NewRecommenderUseCase(frame, nil)

	recs, err := uc.Recommend("P010", 5)
	require.NoError(t, err)
	require.Len(t, recs, 5)

	seen := map[string]bool{"P010": true}
	for i, r := range recs {
		assert.Falsef(t, seen[r.PropertyID], "duplicate %s", r.PropertyID)
		seen[r.PropertyID] = true
		if i > 0 {
			assert.GreaterOrEqual(t, recs[i-1].Score, r.Score)
		}
	}
}

func TestRecommendCapsAtAvailableRows(t *testing.T) {
	_, frame := testutil.TrainedArtifact(t, 80)
	uc := NewRecommenderUseCase(frame, nil)

	recs, err := uc.Recommend("P000", 500)
	require.NoError(t, err)
	assert.Len(t, recs, 79)
}

func TestRecommendUnknownProperty(t *testing.T) {
	_, frame := testutil.TrainedArtifact(t, 40)
	uc := NewRecommenderUseCase(frame, nil)

	_, err := uc.Recommend("P999", 5)
	assert.ErrorIs(t, err, domain.ErrPropertyNotFound)
}

func TestRecommendRejectsBadK(t *testing.T) {
	_, frame := testutil.TrainedArtifact(t, 40)
	uc := NewRecommenderUseCase(frame, nil)

	_, err := uc.Recommend("P001", 0)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestNearbySortsByDistance(t *testing.T) {
	_, frame := testutil.TrainedArtifact(t, 40)
	uc := NewRecommenderUseCase(frame, testDistances())

	props, err := uc.Nearby("Cyber Hub", 5)
	require.NoError(t, err)
	require.Len(t, props, 3)
	assert.Equal(t, "P003", props[0].PropertyID)
	assert.Equal(t, "P001", props[1].PropertyID)
	assert.Equal(t, "P002", props[2].PropertyID)
}

func TestNearbyTiesKeepRowOrder(t *testing.T) {
	_, frame := testutil.TrainedArtifact(t, 40)
	uc := NewRecommenderUseCase(frame, testDistances())

	props, err := uc.Nearby("Airport", 3)
	require.NoError(t, err)
	require.Len(t, props, 2)
	assert.Equal(t, "P002", props[0].PropertyID)
	assert.Equal(t, "P004", props[1].PropertyID)
}

func TestNearbyUnknownLocation(t *testing.T) {
	_, frame := testutil.TrainedArtifact(t, 40)
	uc := NewRecommenderUseCase(frame, testDistances())

	_, err := uc.Nearby("Nowhere", 5)
	assert.ErrorIs(t, err, domain.ErrLocationNotFound)
}

func TestNearbyWithoutDistanceData(t *testing.T) {
	_, frame := testutil.TrainedArtifact(t, 40)
	uc := NewRecommenderUseCase(frame, nil)

	_, err := uc.Nearby("Cyber Hub", 5)
	assert.ErrorIs(t, err, domain.ErrLocationNotFound)
}
