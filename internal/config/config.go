package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexeyre/goose/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "settings"
	fileType = "yaml"
)

// Setting keys.
const (
	KeyStore         = "store"
	KeyStorePath     = "store_path"
	KeyLogLevel      = "log_level"
	KeyLogFormat     = "log_format"
	KeyRedisAddr     = "redis_addr"
	KeyRedisPassword = "redis_password"
	KeyRedisDB       = "redis_db"
)

// Settings is a typed snapshot of the loaded configuration.
type Settings struct {
	Store         string
	StorePath     string
	LogLevel      string
	LogFormat     string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Dir returns the path to the goose config directory (~/.config/goose/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the settings file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// DefaultStorePath returns where the YAML store keeps extension state unless
// store_path says otherwise.
func DefaultStorePath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the settings file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyStore, "yaml")
	viper.SetDefault(KeyStorePath, DefaultStorePath())
	viper.SetDefault(KeyLogLevel, "warn")
	viper.SetDefault(KeyLogFormat, "text")
	viper.SetDefault(KeyRedisAddr, "localhost:6379")
	viper.SetDefault(KeyRedisPassword, "")
	viper.SetDefault(KeyRedisDB, 0)

	// Ignore error if the settings file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Current returns the settings currently visible through Viper.
func Current() Settings {
	return Settings{
		Store:         viper.GetString(KeyStore),
		StorePath:     viper.GetString(KeyStorePath),
		LogLevel:      viper.GetString(KeyLogLevel),
		LogFormat:     viper.GetString(KeyLogFormat),
		RedisAddr:     viper.GetString(KeyRedisAddr),
		RedisPassword: viper.GetString(KeyRedisPassword),
		RedisDB:       viper.GetInt(KeyRedisDB),
	}
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair to the settings file. The file is edited
// on its own, so defaults and environment overrides never reach it.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	configFile := FilePath()
	file := viper.New()
	file.SetConfigFile(configFile)
	file.SetConfigType(fileType)
	if _, err := os.Stat(configFile); err == nil {
		if err := file.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file: %w", err)
		}
	}

	file.Set(key, value)
	if err := file.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	viper.Set(key, value)
	return nil
}
