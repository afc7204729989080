package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_MissingKey(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.GetParam("extensions")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, s.GetsFor("extensions"))
}

func TestMemoryStore_RoundTripUsesJSONShapes(t *testing.T) {
	s := NewMemoryStore()

	type payload struct {
		Enabled bool `json:"enabled"`
		Timeout int  `json:"timeout"`
	}
	require.NoError(t, s.SetParam("extensions", map[string]payload{"dev": {Enabled: true, Timeout: 300}}))

	got, err := s.GetParam("extensions")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"dev": map[string]any{"enabled": true, "timeout": float64(300)},
	}, got)
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.SetParam("k", map[string]any{"a": "b"}))

	first, err := s.GetParam("k")
	require.NoError(t, err)
	first.(map[string]any)["a"] = "mutated"

	second, err := s.GetParam("k")
	require.NoError(t, err)
	assert.Equal(t, "b", second.(map[string]any)["a"])
}

func TestMemoryStore_Counters(t *testing.T) {
	s := NewMemoryStore()
	s.PutRaw("extensions", `{}`)

	_, _ = s.GetParam("extensions")
	_, _ = s.GetParam("extension_groups")
	require.NoError(t, s.SetParam("extensions", map[string]any{}))

	assert.Equal(t, 2, s.Gets())
	assert.Equal(t, 1, s.Sets())
	assert.Equal(t, 1, s.GetsFor("extensions"))
	assert.Equal(t, 1, s.SetsFor("extensions"))
	assert.Equal(t, 0, s.SetsFor("extension_groups"))
}

func TestMemoryStore_FailureInjection(t *testing.T) {
	s := NewMemoryStore()
	boom := errors.New("boom")

	s.FailSet(boom)
	assert.ErrorIs(t, s.SetParam("k", 1), boom)
	assert.Equal(t, 1, s.SetsFor("k"), "failed writes are still counted")
	_, ok := s.Raw("k")
	assert.False(t, ok)

	s.FailSet(nil)
	require.NoError(t, s.SetParam("k", 1))

	s.FailGet(boom)
	_, err := s.GetParam("k")
	assert.ErrorIs(t, err, boom)
}

func TestMemoryStore_PutRawMalformed(t *testing.T) {
	s := NewMemoryStore()
	s.PutRaw("k", `{not json`)

	_, err := s.GetParam("k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_ResetCounters(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.SetParam("k", true))
	_, _ = s.GetParam("k")

	s.ResetCounters()
	assert.Equal(t, 0, s.Gets())
	assert.Equal(t, 0, s.Sets())

	v, err := s.GetParam("k")
	require.NoError(t, err)
	assert.Equal(t, true, v, "values survive a counter reset")
}
