package extension

import (
	"log/slog"
	"testing"

	"github.com/alexeyre/goose/internal/store"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// newTestRegistry returns a Registry with no platform extensions so tests
// see exactly what they stored.
func newTestRegistry(t *testing.T, opts ...Option) (*Registry, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	opts = append([]Option{WithLogger(quietLogger()), WithPlatformExtensions(nil)}, opts...)
	return NewRegistry(st, opts...), st
}

func newTestManager(t *testing.T, opts ...Option) (*Manager, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	opts = append([]Option{WithLogger(quietLogger()), WithPlatformExtensions(nil)}, opts...)
	return NewManager(st, opts...), st
}

func builtin(name string) Config {
	return Config{Type: TypeBuiltin, Name: name}
}

func stdio(name, cmd string, args ...string) Config {
	return Config{Type: TypeStdio, Name: name, Cmd: cmd, Args: args}
}

// seed stores entries under their config keys without touching counters.
func seed(t *testing.T, st *store.MemoryStore, entries ...Entry) {
	t.Helper()
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		m[e.Config.Key()] = e
	}
	if err := writeValue(st, ExtensionsConfigKey, m); err != nil {
		t.Fatalf("seeding extensions: %v", err)
	}
	st.ResetCounters()
}

func seedGroups(t *testing.T, st *store.MemoryStore, groups ...Group) {
	t.Helper()
	m := make(map[string]Group, len(groups))
	for _, g := range groups {
		m[g.Key()] = g
	}
	if err := writeValue(st, ExtensionGroupsConfigKey, m); err != nil {
		t.Fatalf("seeding groups: %v", err)
	}
	st.ResetCounters()
}
