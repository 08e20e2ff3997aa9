package cli

import (
	"fmt"

	"github.com/cmake-init/cmake-init/internal/branding"
	"github.com/cmake-init/cmake-init/internal/config"
	"github.com/cmake-init/cmake-init/internal/schema"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long: `Read and write ` + branding.DisplayName() + ` settings stored at ~/` + branding.HomeDir() + `/config.yaml.

Settings supply the toolchain defaults of generated projects. Each key can
also be overridden with a ` + branding.EnvPrefix() + `_<KEY> environment variable.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if !config.IsKnownKey(key) {
			return fmt.Errorf("unknown config key %q (known keys: %v)", key, config.Keys)
		}

		result, err := schema.Validate(schema.Settings, map[string]string{key: value})
		if err != nil {
			return fmt.Errorf("validating %s: %w", key, err)
		}
		if err := result.Err("setting " + key); err != nil {
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
		if !config.IsKnownKey(args[0]) {
			return fmt.Errorf("unknown config key %q (known keys: %v)", args[0], config.Keys)
		}
		fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, key := range config.Keys {
			fmt.Fprintf(out, "%s = %s\n", key, config.Get(key))
		}
		return nil
	},
}
