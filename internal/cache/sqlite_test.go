package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bone-renamer/internal/diagnostic"
	"bone-renamer/internal/preset"
)

func openTemp(t *testing.T) *SQLiteCache {
	t.Helper()

	c, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return c
}

func TestSQLiteCache_StoreLookup(t *testing.T) {
	c := openTemp(t)

	table, diags := preset.NewTable("bones", []preset.Preset{
		{Name: "PresetA", Slots: []string{"hip", "spine", "head"}},
		{Name: "PresetB", Slots: []string{"Hips", "", "Head"}},
	})
	diags.AddWarning("ragged_row", "row 3 has 2 slots", "bones", "row 3")

	_, _, ok, err := c.Lookup("k1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Store("k1", table, diags))

	got, gotDiags, ok, err := c.Lookup("k1")
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "bones", got.Name())
	assert.Equal(t, table.Presets(), got.Presets())
	require.Len(t, gotDiags.Warnings, 1)
	assert.Equal(t, "ragged_row", gotDiags.Warnings[0].Code)
	assert.Equal(t, diagnostic.DiagnosticWarning, gotDiags.Warnings[0].Severity)
}

func TestSQLiteCache_StoreReplaces(t *testing.T) {
	c := openTemp(t)

	first, _ := preset.NewTable("bones", []preset.Preset{{Name: "A", Slots: []string{"a"}}})
	second, _ := preset.NewTable("bones", []preset.Preset{{Name: "B", Slots: []string{"b"}}})

	require.NoError(t, c.Store("k", first, diagnostic.Diagnostics{}))
	require.NoError(t, c.Store("k", second, diagnostic.Diagnostics{}))

	got, _, ok, err := c.Lookup("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"B"}, got.Names())
}

func TestSQLiteCache_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	c, err := Open(path)
	require.NoError(t, err)

	table, _ := preset.NewTable("fingers", []preset.Preset{{Name: "A", Slots: []string{"thumb"}}})
	require.NoError(t, c.Store("k", table, diagnostic.Diagnostics{}))
	require.NoError(t, c.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	got, _, ok, err := reopened.Lookup("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "fingers", got.Name())
}

func TestSQLiteCache_Prune(t *testing.T) {
	c := openTemp(t)

	table, _ := preset.NewTable("bones", nil)
	require.NoError(t, c.Store("k", table, diagnostic.Diagnostics{}))

	n, err := c.Prune(time.Hour)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = c.Prune(-time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestOpen_WithMaxAgePrunes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	c, err := Open(path)
	require.NoError(t, err)

	table, _ := preset.NewTable("bones", []preset.Preset{{Name: "A", Slots: []string{"hip"}}})
	require.NoError(t, c.Store("k", table, diagnostic.Diagnostics{}))
	require.NoError(t, c.Close())

	kept, err := Open(path, WithMaxAge(DefaultMaxAge))
	require.NoError(t, err)

	_, _, ok, err := kept.Lookup("k")
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, kept.Close())

	pruned, err := Open(path, WithMaxAge(-time.Hour))
	require.NoError(t, err)
	defer func() { _ = pruned.Close() }()

	_, _, ok, err = pruned.Lookup("k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteCache_WithLoader(t *testing.T) {
	c := openTemp(t)

	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "bones.csv", []byte("PresetA,hip,spine\nPresetB,Hips,Spine\n"), 0o644))

	loader := preset.NewLoader(fs, preset.WithCache(c))
	src := preset.Source{Name: "bones", Path: "bones.csv"}

	first, diags, err := loader.Load(src)
	require.NoError(t, err)
	assert.Empty(t, diags.Infos)

	second, diags, err := loader.Load(src)
	require.NoError(t, err)
	require.Len(t, diags.Infos, 1)
	assert.Equal(t, "cache_hit", diags.Infos[0].Code)
	assert.Equal(t, first.Presets(), second.Presets())
}
