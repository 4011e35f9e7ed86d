// Package repository reads and writes the flat-file stores behind the
// pipeline: CSV dataset snapshots, the location-distance matrix, and the
// serialized model artifact.
package repository

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"property-pricing-service/internal/domain"
)

// DatasetRepository loads and saves dataset snapshots as headered CSV.
type DatasetRepository struct{}

func NewDatasetRepository() *DatasetRepository { return &DatasetRepository{} }

// Load reads one dataset snapshot. The header row is required; every data
// row must match its width.
func (r *DatasetRepository) Load(path string) (*domain.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: dataset %s has no header row", domain.ErrDataQuality, path)
	}
	return domain.NewDataset(records[0], records[1:]), nil
}

// Save writes a dataset snapshot atomically via a temp file rename, so a
// crashed run never leaves a half-written snapshot behind.
func (r *DatasetRepository) Save(ds *domain.Dataset, path string) error {
	// Same directory as the target so the rename stays on one filesystem.
	tmp, err := os.CreateTemp(filepath.Dir(path), "dataset-*.csv")
	if err != nil {
		return fmt.Errorf("create temp dataset: %w", err)
	}
	defer os.Remove(tmp.Name())

	writer := csv.NewWriter(tmp)
	if err := writer.Write(ds.Columns); err != nil {
		tmp.Close()
		return fmt.Errorf("write dataset header: %w", err)
	}
	if err := writer.WriteAll(ds.Rows); err != nil {
		tmp.Close()
		return fmt.Errorf("write dataset rows: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush dataset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// LoadDistanceMatrix reads the property-to-location distance file. The
// first column holds property names, the header the location names, and
// the cells meters.
func (r *DatasetRepository) LoadDistanceMatrix(path string) (*domain.DistanceMatrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open distance matrix %s: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read distance matrix %s: %w", path, err)
	}
	if len(records) < 2 || len(records[0]) < 2 {
		return nil, fmt.Errorf("%w: distance matrix %s needs a header and at least one row", domain.ErrDataQuality, path)
	}

	matrix := &domain.DistanceMatrix{
		Locations:  records[0][1:],
		Properties: make([]string, 0, len(records)-1),
		Meters:     make([][]float64, 0, len(records)-1),
	}
	for i, rec := range records[1:] {
		if len(rec) != len(records[0]) {
			return nil, fmt.Errorf("%w: distance matrix row %d width mismatch", domain.ErrDataQuality, i+1)
		}
		row := make([]float64, len(rec)-1)
		for j, cell := range rec[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: distance matrix cell (%d,%d) is not numeric: %q", domain.ErrDataQuality, i+1, j+1, cell)
			}
			row[j] = v
		}
		matrix.Properties = append(matrix.Properties, rec[0])
		matrix.Meters = append(matrix.Meters, row)
	}
	return matrix, nil
}
