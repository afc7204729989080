package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "config.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStore_MissingKey(t *testing.T) {
	s := newTestSQLite(t)

	_, err := s.GetParam("extensions")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStore_Upsert(t *testing.T) {
	s := newTestSQLite(t)

	require.NoError(t, s.SetParam("extension_groups", map[string]any{"a": map[string]any{"name": "A"}}))
	require.NoError(t, s.SetParam("extension_groups", map[string]any{"b": map[string]any{"name": "B"}}))

	got, err := s.GetParam("extension_groups")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"b": map[string]any{"name": "B"}}, got)
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.db")

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.SetParam("extensions", []any{"x", 1.5, true, nil}))
	require.NoError(t, s.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetParam("extensions")
	require.NoError(t, err)
	assert.Equal(t, []any{"x", 1.5, true, nil}, got)
}
