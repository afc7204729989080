package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		opts    Options
		want    any
		wantErr bool
	}{
		{"default is yaml", Options{Path: filepath.Join(dir, "config.yaml")}, &FileStore{}, false},
		{"yaml", Options{Backend: BackendYAML, Path: filepath.Join(dir, "config.yaml")}, &FileStore{}, false},
		{"sqlite", Options{Backend: BackendSQLite, Path: filepath.Join(dir, "config.db")}, &SQLiteStore{}, false},
		{"redis", Options{Backend: BackendRedis, Redis: RedisOptions{Addr: "localhost:6379"}}, &RedisStore{}, false},
		{"memory", Options{Backend: BackendMemory}, &MemoryStore{}, false},
		{"yaml without path", Options{Backend: BackendYAML}, nil, true},
		{"sqlite without path", Options{Backend: BackendSQLite}, nil, true},
		{"redis without address", Options{Backend: BackendRedis}, nil, true},
		{"unknown", Options{Backend: "etcd"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, closeFn, err := Open(tt.opts)
			require.NotNil(t, closeFn)
			defer closeFn()

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, s)
		})
	}
}
