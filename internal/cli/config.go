package cli

import (
	"fmt"
	"slices"

	"github.com/alexeyre/goose/internal/branding"
	"github.com/alexeyre/goose/internal/config"
	"github.com/alexeyre/goose/internal/logging"
	"github.com/alexeyre/goose/internal/store"
	"github.com/spf13/cobra"
)

var settingKeys = []string{
	config.KeyStore,
	config.KeyStorePath,
	config.KeyLogLevel,
	config.KeyLogFormat,
	config.KeyRedisAddr,
	config.KeyRedisPassword,
	config.KeyRedisDB,
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long: `Read and write goose settings stored at ~/.config/goose/settings.yaml.

Keys: store, store_path, log_level, log_format, redis_addr, redis_password, redis_db.
Each key can be overridden by an environment variable, e.g. ` + branding.EnvVar(config.KeyStore) + `.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := validateSetting(key, value); err != nil {
			return err
		}
		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !slices.Contains(settingKeys, args[0]) {
			return fmt.Errorf("unknown config key %q", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
		return nil
	},
}

func validateSetting(key, value string) error {
	switch key {
	case config.KeyStore:
		valid := []string{store.BackendYAML, store.BackendSQLite, store.BackendRedis, store.BackendMemory}
		if !slices.Contains(valid, value) {
			return fmt.Errorf("unknown store backend %q", value)
		}
	case config.KeyLogLevel:
		if _, err := logging.ParseLevel(value); err != nil {
			return err
		}
	case config.KeyLogFormat:
		if value != "text" && value != "json" {
			return fmt.Errorf("unknown log format %q", value)
		}
	default:
		if !slices.Contains(settingKeys, key) {
			return fmt.Errorf("unknown config key %q", key)
		}
	}
	return nil
}
