package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	viper.Reset()
	t.Cleanup(viper.Reset)
	return home
}

func TestDir(t *testing.T) {
	home := setupHome(t)
	assert.Equal(t, filepath.Join(home, ".config", "goose"), Dir())
	assert.Equal(t, filepath.Join(home, ".config", "goose", "settings.yaml"), FilePath())
	assert.Equal(t, filepath.Join(home, ".config", "goose", "config.yaml"), DefaultStorePath())
}

func TestLoad_Defaults(t *testing.T) {
	home := setupHome(t)
	Load()

	s := Current()
	assert.Equal(t, "yaml", s.Store)
	assert.Equal(t, filepath.Join(home, ".config", "goose", "config.yaml"), s.StorePath)
	assert.Equal(t, "warn", s.LogLevel)
	assert.Equal(t, "text", s.LogFormat)
	assert.Equal(t, "localhost:6379", s.RedisAddr)
	assert.Equal(t, 0, s.RedisDB)
}

func TestLoad_EnvOverrides(t *testing.T) {
	setupHome(t)
	t.Setenv("GOOSE_STORE", "sqlite")
	t.Setenv("GOOSE_REDIS_DB", "3")
	Load()

	s := Current()
	assert.Equal(t, "sqlite", s.Store)
	assert.Equal(t, 3, s.RedisDB)
}

func TestSet_PersistsAndReloads(t *testing.T) {
	setupHome(t)
	Load()

	require.NoError(t, Set(KeyLogLevel, "debug"))
	_, err := os.Stat(FilePath())
	require.NoError(t, err)

	viper.Reset()
	Load()
	assert.Equal(t, "debug", Get(KeyLogLevel))
	assert.Equal(t, "yaml", Get(KeyStore))
}

func TestSet_LeavesDefaultsAndEnvOutOfTheFile(t *testing.T) {
	setupHome(t)
	t.Setenv("GOOSE_REDIS_PASSWORD", "hunter2")
	Load()
	viper.Set(KeyStore, "memory")

	require.NoError(t, Set(KeyLogLevel, "debug"))
	assert.Equal(t, "debug", Get(KeyLogLevel))

	data, err := os.ReadFile(FilePath())
	require.NoError(t, err)
	var saved map[string]any
	require.NoError(t, yaml.Unmarshal(data, &saved))
	assert.Equal(t, map[string]any{"log_level": "debug"}, saved)
}
