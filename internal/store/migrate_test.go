package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestMigrate_FreshDirStartsAtLatest(t *testing.T) {
	dir := t.TempDir()
	st, err := Open(dir, zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, st.Migrate())

	data, err := os.ReadFile(filepath.Join(dir, versionFile))
	require.NoError(t, err)

	var m schemaMarker
	require.NoError(t, json.Unmarshal(data, &m))
	require.Equal(t, SchemaVersion, m.Version)
}

func TestMigrate_BackfillsLegacyMenuItems(t *testing.T) {
	dir := t.TempDir()

	// legacy v1 file: records written before is_available/order_index
	legacy := `[{"id":"x1","name":"اسپرسو","category":"coffee","price":45000},
		{"id":"x2","name":"لته","category":"coffee","price":42000,"is_available":false,"order_index":3}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "menu-items.json"), []byte(legacy), 0o644))

	st, err := Open(dir, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, st.Migrate())

	items := st.MenuItems.Read()
	require.Len(t, items, 2)

	byID := map[string]bool{}
	for _, item := range items {
		byID[item.ID] = item.IsAvailable
	}
	require.True(t, byID["x1"], "missing is_available should backfill to true")
	require.False(t, byID["x2"], "explicit is_available must be preserved")
}

func TestMigrate_Idempotent(t *testing.T) {
	dir := t.TempDir()
	st, err := Open(dir, zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, st.Migrate())
	require.NoError(t, st.Migrate())
}
