package cli

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/alexeyre/goose/internal/branding"
	"github.com/alexeyre/goose/internal/extension"
	"github.com/spf13/cobra"
)

var (
	extListEnabled bool
	extListJSON    bool

	extAddType        string
	extAddCmd         string
	extAddArgs        []string
	extAddEnvs        []string
	extAddURI         string
	extAddHeaders     []string
	extAddTimeout     int
	extAddDescription string
	extAddDisabled    bool
)

// addableTypes are the variants that can be fully described with flags.
var addableTypes = []extension.Type{
	extension.TypeStdio,
	extension.TypeSSE,
	extension.TypeStreamableHTTP,
	extension.TypeBuiltin,
}

func init() {
	extensionListCmd.Flags().BoolVar(&extListEnabled, "enabled", false, "Only show enabled extensions")
	extensionListCmd.Flags().BoolVar(&extListJSON, "json", false, "Output in JSON format")

	f := extensionAddCmd.Flags()
	f.StringVar(&extAddType, "type", string(extension.TypeStdio), "Extension type (stdio, sse, streamable_http, builtin)")
	f.StringVar(&extAddCmd, "cmd", "", "Command to run (stdio)")
	f.StringArrayVar(&extAddArgs, "arg", nil, "Command argument, repeatable (stdio)")
	f.StringArrayVar(&extAddEnvs, "env", nil, "Environment variable KEY=VALUE, repeatable (stdio)")
	f.StringVar(&extAddURI, "uri", "", "Endpoint URI (sse, streamable_http)")
	f.StringArrayVar(&extAddHeaders, "header", nil, "HTTP header Name=Value, repeatable (sse, streamable_http)")
	f.IntVar(&extAddTimeout, "timeout", extension.DefaultExtensionTimeout, "Timeout in seconds")
	f.StringVar(&extAddDescription, "description", extension.DefaultExtensionDescription, "Description")
	f.BoolVar(&extAddDisabled, "disabled", false, "Add the extension disabled")

	extensionCmd.AddCommand(extensionListCmd)
	extensionCmd.AddCommand(extensionShowCmd)
	extensionCmd.AddCommand(extensionEnableCmd)
	extensionCmd.AddCommand(extensionDisableCmd)
	extensionCmd.AddCommand(extensionAddCmd)
	extensionCmd.AddCommand(extensionRemoveCmd)
	rootCmd.AddCommand(extensionCmd)
}

var extensionCmd = &cobra.Command{
	Use:     "extension",
	Aliases: []string{"ext"},
	Short:   "Manage extensions",
	Long: `Manage configured extensions and their enabled state.

Extensions are addressed by key: the name with all whitespace removed,
lower-cased. "My GitHub" has the key "mygithub".`,
}

var extensionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List extensions and whether they are enabled",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *session) error {
			extensions := s.Extensions().Load()
			keys := slices.Sorted(maps.Keys(extensions))
			if extListEnabled {
				keys = slices.DeleteFunc(keys, func(k string) bool { return !extensions[k].Enabled })
			}

			if extListJSON {
				out := make([]extension.Entry, 0, len(keys))
				for _, k := range keys {
					out = append(out, extensions[k])
				}
				return printJSON(cmd, out)
			}

			if len(keys) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No extensions configured.")
				fmt.Fprintf(cmd.OutOrStdout(), "Use `%s extension add <name>` to add one.\n", branding.CLIName())
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "KEY\tNAME\tTYPE\tENABLED")
			for _, k := range keys {
				e := extensions[k]
				fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", k, e.Config.Name, e.Config.Type, e.Enabled)
			}
			return w.Flush()
		})
	},
}

var extensionShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show the stored configuration of an extension",
	Long: `Show the stored configuration of an extension as JSON.

The argument is matched against extension names first and then against keys.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *session) error {
			extensions := s.Extensions().Load()
			// Stored keys need not equal NameToKey(name), so match on the
			// entry itself rather than recomputing its key.
			for _, k := range slices.Sorted(maps.Keys(extensions)) {
				if extensions[k].Config.Name == args[0] {
					return printJSON(cmd, extensions[k])
				}
			}
			if entry, ok := extensions[extension.NameToKey(args[0])]; ok {
				return printJSON(cmd, entry)
			}
			return fmt.Errorf("extension %q not found", args[0])
		})
	},
}

var extensionEnableCmd = &cobra.Command{
	Use:   "enable <key>",
	Short: "Enable an extension",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setExtensionEnabled(cmd, args[0], true)
	},
}

var extensionDisableCmd = &cobra.Command{
	Use:   "disable <key>",
	Short: "Disable an extension",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setExtensionEnabled(cmd, args[0], false)
	},
}

func setExtensionEnabled(cmd *cobra.Command, key string, enabled bool) error {
	return withSession(func(s *session) error {
		if _, ok := s.Extensions().Load()[key]; !ok {
			return fmt.Errorf("extension %q not found", key)
		}
		s.Extensions().SetEnabled(key, enabled)
		fmt.Fprintf(cmd.OutOrStdout(), "Extension %q %s.\n", key, enabledWord(enabled))
		return nil
	})
}

var extensionAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add or replace an extension",
	Long: `Add an extension, replacing any extension with the same key.

Example:
  goose extension add github --cmd npx --arg -y --arg @modelcontextprotocol/server-github
  goose extension add "Remote Tools" --type streamable_http --uri https://mcp.example.com`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildExtensionConfig(args[0])
		if err != nil {
			return err
		}
		return withSession(func(s *session) error {
			s.Extensions().Set(extension.Entry{Enabled: !extAddDisabled, Config: cfg})
			fmt.Fprintf(cmd.OutOrStdout(), "Extension %q added with key %q.\n", cfg.Name, cfg.Key())
			return nil
		})
	},
}

func buildExtensionConfig(name string) (extension.Config, error) {
	typ := extension.Type(extAddType)
	if !slices.Contains(addableTypes, typ) {
		return extension.Config{}, fmt.Errorf("unsupported extension type %q", extAddType)
	}
	if extension.NameToKey(name) == "" {
		return extension.Config{}, fmt.Errorf("extension name %q has no key", name)
	}

	timeout := extAddTimeout
	cfg := extension.Config{
		Type:        typ,
		Name:        name,
		Description: extAddDescription,
		Timeout:     &timeout,
	}

	switch typ {
	case extension.TypeStdio:
		if extAddCmd == "" {
			return extension.Config{}, fmt.Errorf("--cmd is required for %s extensions", typ)
		}
		envs, err := parsePairs(extAddEnvs, "--env")
		if err != nil {
			return extension.Config{}, err
		}
		cfg.Cmd = extAddCmd
		cfg.Args = extAddArgs
		cfg.Envs = envs
	case extension.TypeSSE, extension.TypeStreamableHTTP:
		if extAddURI == "" {
			return extension.Config{}, fmt.Errorf("--uri is required for %s extensions", typ)
		}
		headers, err := parsePairs(extAddHeaders, "--header")
		if err != nil {
			return extension.Config{}, err
		}
		cfg.URI = extAddURI
		cfg.Headers = headers
	}
	return cfg, nil
}

// parsePairs splits KEY=VALUE flag values. No values yields a nil map.
func parsePairs(values []string, flag string) (map[string]string, error) {
	if len(values) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(values))
	for _, v := range values {
		k, val, ok := strings.Cut(v, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("%s %q: expected KEY=VALUE", flag, v)
		}
		out[k] = val
	}
	return out, nil
}

var extensionRemoveCmd = &cobra.Command{
	Use:   "remove <key>",
	Short: "Remove an extension",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *session) error {
			s.Extensions().Remove(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Extension %q removed.\n", args[0])
			return nil
		})
	},
}

func enabledWord(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
