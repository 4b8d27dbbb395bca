package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// SchemaVersion is the current on-disk schema. Migrations run once at
// startup instead of patching defaults into every read.
const SchemaVersion = 2

const versionFile = "schema-version.json"

type schemaMarker struct {
	Version int `json:"version"`
}

// Migrate brings the data directory up to SchemaVersion. Files are
// rewritten as raw JSON so fields added after v1 can be backfilled
// before the typed collections ever decode them.
func (s *Store) Migrate() error {
	current, err := s.readSchemaVersion()
	if err != nil {
		return err
	}
	if current >= SchemaVersion {
		return nil
	}

	if current < 2 {
		if err := s.backfillMenuItemFields(); err != nil {
			return fmt.Errorf("migrate to v2: %w", err)
		}
	}

	s.logger.Info().Int("from", current).Int("to", SchemaVersion).Msg("Schema migrated")
	return s.writeSchemaVersion(SchemaVersion)
}

func (s *Store) readSchemaVersion() (int, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, versionFile))
	if errors.Is(err, os.ErrNotExist) {
		// A fresh directory starts at the latest schema; a directory
		// with pre-existing data but no marker is treated as v1.
		if s.hasLegacyData() {
			return 1, nil
		}
		return SchemaVersion, s.writeSchemaVersion(SchemaVersion)
	}
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}

	var m schemaMarker
	if err := json.Unmarshal(data, &m); err != nil {
		return 0, fmt.Errorf("parse schema version: %w", err)
	}
	return m.Version, nil
}

func (s *Store) writeSchemaVersion(v int) error {
	data, err := json.MarshalIndent(schemaMarker{Version: v}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.dir, versionFile), data, 0o644); err != nil {
		return fmt.Errorf("write schema version: %w", err)
	}
	return nil
}

func (s *Store) hasLegacyData() bool {
	_, err := os.Stat(filepath.Join(s.dir, "menu-items.json"))
	return err == nil
}

// backfillMenuItemFields fills in is_available and order_index on
// records written before those fields existed.
func (s *Store) backfillMenuItemFields() error {
	path := filepath.Join(s.dir, "menu-items.json")
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	var items []map[string]any
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}

	changed := false
	for _, item := range items {
		if _, ok := item["is_available"]; !ok {
			item["is_available"] = true
			changed = true
		}
		if _, ok := item["order_index"]; !ok {
			item["order_index"] = 0
			changed = true
		}
	}
	if !changed {
		return nil
	}

	out, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}
