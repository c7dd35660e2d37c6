package configstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Seed imports the file at path when no phases have been persisted yet. The
// file has the export shape and may be YAML or JSON. It reports whether the
// seed was applied.
func (s *Store) Seed(ctx context.Context, path string) (bool, error) {
	existing, err := s.get(ctx, KeyPhases)
	if err != nil {
		return false, err
	}
	if existing != nil {
		s.logger.Info("config already present, skipping seed", "file", path)
		return false, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reading seed file: %w", err)
	}

	// JSON is valid YAML, so both go through the same decoder.
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return false, fmt.Errorf("%w: seed file: %w", ErrMalformedInput, err)
	}
	asJSON, err := json.Marshal(doc)
	if err != nil {
		return false, fmt.Errorf("%w: seed file: %w", ErrMalformedInput, err)
	}

	if err := s.Import(ctx, asJSON); err != nil {
		return false, err
	}
	s.logger.Info("seeded config", "file", path, "phases", len(s.catalog.Phases()))
	return true, nil
}
