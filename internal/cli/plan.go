package cli

import (
	"encoding/json"
	"fmt"

	"github.com/cmake-init/cmake-init/internal/scaffold"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

var (
	planFlags  projectFlags
	planOutput string
)

func init() {
	planFlags.register(planCmd)
	planCmd.Flags().StringVarP(&planOutput, "output", "o", "yaml", "Output format: yaml or json")
	rootCmd.AddCommand(planCmd)
}

var planCmd = &cobra.Command{
	Use:   "plan <destination>",
	Short: "Print the files a project would get without writing them",
	Long: `Print the directories and files that would be generated for <destination>,
including file contents and which files are marked executable. Nothing is
written and the destination is not checked for existence.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := planFlags.config(args[0])
		if err != nil {
			return err
		}

		plan, err := scaffold.Generate(cfg)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch planOutput {
		case "yaml":
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(plan); err != nil {
				return fmt.Errorf("encoding plan: %w", err)
			}
			return enc.Close()
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(plan); err != nil {
				return fmt.Errorf("encoding plan: %w", err)
			}
			return nil
		default:
			return fmt.Errorf("unknown output format %q: must be yaml or json", planOutput)
		}
	},
}
