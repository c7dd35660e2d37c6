// Package configstore persists the phase catalog and the token rules to a
// kv.Store and moves the catalog in and out of the JSON export format.
package configstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/playperu/alfred0/internal/catalog"
	"github.com/playperu/alfred0/internal/kv"
	"github.com/playperu/alfred0/internal/tokens"
)

// Storage keys. They match the layout of earlier browser-only builds so
// exported local storage can be loaded as is.
const (
	KeyPhases        = "alfred0-phases"
	KeySettings      = "alfred0-game-settings"
	KeyTokenConfig   = "alfred0-token-config"
	KeyCurrentPreset = "alfred0-current-preset"
)

var ErrMalformedInput = errors.New("malformed input")

type Store struct {
	kv      kv.Store
	catalog *catalog.Catalog
	calc    *tokens.Calculator
	logger  *slog.Logger

	saveMu sync.Mutex
}

func New(store kv.Store, cat *catalog.Catalog, calc *tokens.Calculator, logger *slog.Logger) *Store {
	return &Store{kv: store, catalog: cat, calc: calc, logger: logger}
}

// Save writes the live state under all four keys in a single batch. A custom
// rule set deletes the preset key.
func (s *Store) Save(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	return s.saveLocked(ctx)
}

func (s *Store) saveLocked(ctx context.Context) error {
	snap := s.catalog.Snapshot()
	rules := s.calc.Rules()
	presetID := s.calc.PresetID()

	var b kv.Batch
	for _, e := range []struct {
		key string
		v   any
	}{
		{KeyPhases, snap.Phases},
		{KeySettings, snap.Settings},
		{KeyTokenConfig, rules},
	} {
		data, err := json.Marshal(e.v)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", e.key, err)
		}
		b.Put(e.key, data)
	}
	if presetID != "" {
		b.Put(KeyCurrentPreset, []byte(presetID))
	} else {
		b.Delete(KeyCurrentPreset)
	}

	if err := s.kv.Apply(ctx, &b); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	return nil
}

// Load replaces the live state with what is persisted. Each key is handled
// on its own: a missing key yields its default and a corrupt one yields its
// default plus a warning. Only substrate failures are returned.
func (s *Store) Load(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	snap := catalog.DefaultSnapshot()

	raw, err := s.get(ctx, KeyPhases)
	if err != nil {
		return err
	}
	if raw != nil {
		var phases []catalog.Phase
		if err := decodeValue(raw, &phases); err != nil {
			s.corrupt(KeyPhases, err)
		} else if err := catalog.ValidatePhases(phases); err != nil {
			s.corrupt(KeyPhases, err)
		} else {
			snap.Phases = phases
		}
	}

	raw, err = s.get(ctx, KeySettings)
	if err != nil {
		return err
	}
	if raw != nil {
		var settings catalog.Settings
		if err := decodeValue(raw, &settings); err != nil {
			s.corrupt(KeySettings, err)
		} else if err := settings.Validate(); err != nil {
			s.corrupt(KeySettings, err)
		} else {
			snap.Settings = settings
		}
	}

	if err := s.catalog.Replace(snap); err != nil {
		// Both halves were validated above.
		return fmt.Errorf("restoring catalog: %w", err)
	}

	return s.loadTokens(ctx)
}

func (s *Store) loadTokens(ctx context.Context) error {
	raw, err := s.get(ctx, KeyTokenConfig)
	if err != nil {
		return err
	}
	if raw == nil {
		s.calc.ResetToDefault()
		return nil
	}

	var rules tokens.RuleSet
	if err := decodeValue(raw, &rules); err != nil {
		s.corrupt(KeyTokenConfig, err)
		s.calc.ResetToDefault()
		return nil
	}
	if err := rules.Validate(); err != nil {
		s.corrupt(KeyTokenConfig, err)
		s.calc.ResetToDefault()
		return nil
	}

	preset, err := s.get(ctx, KeyCurrentPreset)
	if err != nil {
		return err
	}
	presetID := string(bytes.TrimSpace(preset))
	if presetID != "" {
		if _, err := tokens.PresetByID(presetID); err != nil {
			s.logger.Warn("unknown token preset, treating rules as custom", "preset", presetID)
			presetID = ""
		}
	}
	s.calc.Restore(rules, presetID)
	return nil
}

// Export renders the catalog as indented JSON. Token rules are not part of
// the export.
func (s *Store) Export() ([]byte, error) {
	return json.MarshalIndent(s.catalog.Snapshot(), "", "  ")
}

// Import replaces the catalog with an exported document and persists it.
// Invalid input leaves the live state untouched. If saving fails the
// previous catalog is put back.
func (s *Store) Import(ctx context.Context, data []byte) error {
	snap, err := parseExport(data)
	if err != nil {
		return err
	}

	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	prev := s.catalog.Snapshot()
	if err := s.catalog.Replace(snap); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	if err := s.saveLocked(ctx); err != nil {
		if rerr := s.catalog.Replace(prev); rerr != nil {
			s.logger.Error("restoring catalog after failed import", "error", rerr)
		}
		return err
	}
	return nil
}

// Reset drops everything persisted and saves the compiled-in defaults with
// the balanced preset.
func (s *Store) Reset(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	var b kv.Batch
	for _, k := range []string{KeyPhases, KeySettings, KeyTokenConfig, KeyCurrentPreset} {
		b.Delete(k)
	}
	if err := s.kv.Apply(ctx, &b); err != nil {
		return fmt.Errorf("clearing config: %w", err)
	}

	if err := s.catalog.Replace(catalog.DefaultSnapshot()); err != nil {
		return fmt.Errorf("restoring defaults: %w", err)
	}
	s.calc.ResetToDefault()
	return s.saveLocked(ctx)
}

func parseExport(data []byte) (catalog.Snapshot, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return catalog.Snapshot{}, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	for _, k := range []string{"phases", "settings"} {
		v, ok := doc[k]
		if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return catalog.Snapshot{}, fmt.Errorf("%w: missing %q", ErrMalformedInput, k)
		}
	}

	var snap catalog.Snapshot
	if err := json.Unmarshal(doc["phases"], &snap.Phases); err != nil {
		return catalog.Snapshot{}, fmt.Errorf("%w: phases: %w", ErrMalformedInput, err)
	}
	if err := json.Unmarshal(doc["settings"], &snap.Settings); err != nil {
		return catalog.Snapshot{}, fmt.Errorf("%w: settings: %w", ErrMalformedInput, err)
	}
	return snap, nil
}

// get returns nil, nil for a missing key.
func (s *Store) get(ctx context.Context, key string) ([]byte, error) {
	raw, err := s.kv.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	return raw, nil
}

func (s *Store) corrupt(key string, err error) {
	s.logger.Warn("stored config is corrupt, using defaults", "key", key, "error", err)
}

func decodeValue(raw []byte, v any) error {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return errors.New("null value")
	}
	return json.Unmarshal(raw, v)
}
