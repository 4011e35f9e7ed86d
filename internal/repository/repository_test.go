package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"property-pricing-service/internal/domain"
	"property-pricing-service/internal/testutil"
)

func TestDatasetRoundTrip(t *testing.T) {
	repo := NewDatasetRepository()
	path := filepath.Join(t.TempDir(), "snapshot.csv")

	ds := testutil.PropertyDataset(20)
	require.NoError(t, repo.Save(ds, path))

	loaded, err := repo.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ds.Columns, loaded.Columns)
	assert.Equal(t, ds.Rows, loaded.Rows)
}

func TestDatasetLoadMissingFile(t *testing.T) {
	repo := NewDatasetRepository()
	_, err := repo.Load(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}

func TestDatasetLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := NewDatasetRepository().Load(path)
	assert.ErrorIs(t, err, domain.ErrDataQuality)
}

func TestArtifactRoundTripPreservesPredictions(t *testing.T) {
	repo := NewArtifactRepository()
	path := filepath.Join(t.TempDir(), "artifact.json")

	artifact, _ := testutil.TrainedArtifact(t, 60)
	require.NoError(t, repo.Save(artifact, path))

	loaded, err := repo.Load(path)
	require.NoError(t, err)
	assert.Equal(t, artifact.ID, loaded.ID)
	assert.Equal(t, artifact.ModelName, loaded.ModelName)
	assert.Equal(t, artifact.FeatureSet.Columns, loaded.FeatureSet.Columns)

	raw := map[string]string{
		"property_type":   "flat",
		"sector":          "Sector 1",
		"bedRoom":         "3",
		"bathroom":        "2",
		"balcony":         "2",
		"agePossession":   "Relatively New",
		"built_up_area":   "1500",
		"servant room":    "0",
		"store room":      "0",
		"furnishing_type": "semifurnished",
		"luxury_category": "Medium",
		"floor_category":  "Mid Floor",
	}
	want, err := artifact.Predict(raw)
	require.NoError(t, err)
	got, err := loaded.Predict(raw)
	require.NoError(t, err)
	assert.InDelta(t, want, got, 1e-12)
}

func TestArtifactLoadMissing(t *testing.T) {
	_, err := NewArtifactRepository().Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
}

func TestArtifactLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewArtifactRepository().Load(path)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrArtifactNotFound)
}

func TestLoadDistanceMatrix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "distances.csv")
	content := "property,Cyber Hub,Airport\nP001,1200,9000\nP002,4800,2500\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	matrix, err := NewDatasetRepository().LoadDistanceMatrix(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cyber Hub", "Airport"}, matrix.Locations)
	assert.Equal(t, []string{"P001", "P002"}, matrix.Properties)
	assert.Equal(t, [][]float64{{1200, 9000}, {4800, 2500}}, matrix.Meters)
}

func TestLoadDistanceMatrixBadCell(t *testing.T) {
	path := filepath.Join(t.TempDir(), "distances.csv")
	content := "property,Cyber Hub\nP001,near\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := NewDatasetRepository().LoadDistanceMatrix(path)
	assert.ErrorIs(t, err, domain.ErrDataQuality)
}
