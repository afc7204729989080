package cli

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/alexeyre/goose/internal/extension"
	"github.com/spf13/cobra"
)

var groupListJSON bool

func init() {
	groupListCmd.Flags().BoolVar(&groupListJSON, "json", false, "Output in JSON format")

	groupCmd.AddCommand(groupListCmd)
	groupCmd.AddCommand(groupCreateCmd)
	groupCmd.AddCommand(groupRemoveCmd)
	groupCmd.AddCommand(groupEnableCmd)
	groupCmd.AddCommand(groupDisableCmd)
	groupCmd.AddCommand(groupStateCmd)
	groupCmd.AddCommand(groupSetCmd)
	rootCmd.AddCommand(groupCmd)
}

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Manage extension groups",
	Long: `Manage named groups of extensions that are enabled or disabled together.

A group reports "Enabled" when all of its members are enabled, "Disabled"
when none are and "Mixed" otherwise. Members that name no configured
extension count as not enabled.`,
}

type groupRow struct {
	Key           string               `json:"key"`
	Name          string               `json:"name"`
	State         extension.GroupState `json:"state"`
	ExtensionKeys []string             `json:"extension_keys"`
}

var groupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List extension groups and their state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *session) error {
			var rows []groupRow
			for _, g := range s.Groups().ListAll() {
				state, _ := s.GroupState(g.Name)
				keys := g.ExtensionKeys
				if keys == nil {
					keys = []string{}
				}
				rows = append(rows, groupRow{Key: g.Key(), Name: g.Name, State: state, ExtensionKeys: keys})
			}

			if groupListJSON {
				if rows == nil {
					rows = []groupRow{}
				}
				return printJSON(cmd, rows)
			}

			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No extension groups configured.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "KEY\tNAME\tSTATE\tEXTENSIONS")
			for _, r := range rows {
				members := strings.Join(r.ExtensionKeys, ",")
				if members == "" {
					members = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Key, r.Name, r.State, members)
			}
			return w.Flush()
		})
	},
}

var groupCreateCmd = &cobra.Command{
	Use:   "create <name> [extension-key...]",
	Short: "Create or replace an extension group",
	Long: `Create an extension group, replacing any group with the same key.

Example:
  goose group create "Dev Tools" developer github`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		group := extension.Group{Name: args[0], ExtensionKeys: args[1:]}
		if group.Key() == "" {
			return fmt.Errorf("group name %q has no key", group.Name)
		}
		return withSession(func(s *session) error {
			// Unknown members are allowed and ignored by every group
			// operation, so this is only a hint.
			known := s.Extensions().Load()
			for _, k := range group.ExtensionKeys {
				if _, ok := known[k]; !ok {
					fmt.Fprintf(cmd.ErrOrStderr(), "Warning: no extension with key %q is configured.\n", k)
				}
			}
			s.Groups().Set(group)
			fmt.Fprintf(cmd.OutOrStdout(), "Group %q created with key %q.\n", group.Name, group.Key())
			return nil
		})
	},
}

var groupRemoveCmd = &cobra.Command{
	Use:   "remove <key>",
	Short: "Remove an extension group",
	Long:  `Remove an extension group. The member extensions are left as they are.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *session) error {
			s.Groups().Remove(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Group %q removed.\n", args[0])
			return nil
		})
	},
}

var groupEnableCmd = &cobra.Command{
	Use:   "enable <name>",
	Short: "Enable every extension in a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *session) error {
			if err := s.EnableGroup(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Group %q enabled.\n", args[0])
			return nil
		})
	},
}

var groupDisableCmd = &cobra.Command{
	Use:   "disable <name>",
	Short: "Disable every extension in a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *session) error {
			if err := s.DisableGroup(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Group %q disabled.\n", args[0])
			return nil
		})
	},
}

var groupStateCmd = &cobra.Command{
	Use:   "state <name>",
	Short: "Print the aggregate state of a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *session) error {
			state, ok := s.GroupState(args[0])
			if !ok {
				return &extension.GroupNotFoundError{Name: args[0]}
			}
			fmt.Fprintln(cmd.OutOrStdout(), state)
			return nil
		})
	},
}

var groupSetCmd = &cobra.Command{
	Use:   "set <key> <true|false>",
	Short: "Set every extension in a group by group key",
	Long: `Set the enabled flag of every extension in the group stored under key.

Unlike enable and disable, the group is addressed by its exact key.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		enabled, err := strconv.ParseBool(args[1])
		if err != nil {
			return fmt.Errorf("parsing %q as a boolean: %w", args[1], err)
		}
		return withSession(func(s *session) error {
			if _, ok := s.Groups().Load()[key]; !ok {
				return &extension.GroupNotFoundError{Name: key}
			}
			s.SetGroupEnabled(key, enabled)
			fmt.Fprintf(cmd.OutOrStdout(), "Group %q %s.\n", key, enabledWord(enabled))
			return nil
		})
	},
}
