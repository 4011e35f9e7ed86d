package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"property-pricing-service/internal/domain"
)

// ArtifactRepository persists ModelArtifacts as JSON files. The format
// carries everything serving needs — weights, encoder mappings, scaler
// state, column order — so reload never depends on training memory.
type ArtifactRepository struct{}

func NewArtifactRepository() *ArtifactRepository { return &ArtifactRepository{} }

// Save writes the artifact atomically. Artifacts are immutable: callers
// saving to a new path per training run get the retrain-creates-new
// lifecycle for free.
func (r *ArtifactRepository) Save(artifact *domain.ModelArtifact, path string) error {
	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal artifact: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "artifact-*.json")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Load reads an artifact back. A missing file maps to the domain's
// not-found error so callers can distinguish it from corruption.
func (r *ArtifactRepository) Load(path string) (*domain.ModelArtifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, path)
		}
		return nil, fmt.Errorf("read artifact %s: %w", path, err)
	}
	var artifact domain.ModelArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("unmarshal artifact %s: %w", path, err)
	}
	return &artifact, nil
}
