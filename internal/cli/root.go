package cli

import (
	"fmt"

	"github.com/cmake-init/cmake-init/internal/branding"
	"github.com/cmake-init/cmake-init/internal/config"
	"github.com/cmake-init/cmake-init/internal/platform"
	"github.com/cmake-init/cmake-init/internal/scaffold"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var generateFlags projectFlags

func init() {
	generateFlags.register(rootCmd)
	rootCmd.SetGlobalNormalizationFunc(normalizeFlagAliases)
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " <destination>",
	Short: branding.Description(),
	Long: branding.DisplayName() + ` creates a new CMake C++ project in a folder that must not exist yet.

The generated tree holds a root CMakeLists.txt, a run_build script, an
executable folder with its own CMakeLists.txt and main.cpp, and optionally a
shared library the executable links against.

A destination named like a subcommand (plan, config, doctor, version, help,
completion) runs that command instead; write it as ./plan to create the folder.`,
	Example: `  ` + branding.CLIName() + ` demo
  ` + branding.CLIName() + ` demo --lib mathlib
  ` + branding.CLIName() + ` game --flavor sfml --exe game`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
	},
	RunE: runGenerate,
}

// normalizeFlagAliases maps the long spellings of --exe and --lib onto
// their short forms.
func normalizeFlagAliases(f *pflag.FlagSet, name string) pflag.NormalizedName {
	switch name {
	case "executable":
		name = "exe"
	case "library":
		name = "lib"
	}
	return pflag.NormalizedName(name)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := generateFlags.config(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initializing project in %s\n", cfg.Destination)

	result, err := scaffold.Run(cfg, platform.NewOsFS(), out)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\nProject %s created (%d files).\n", result.Project, len(result.Files))
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintf(out, "  cd %s\n", result.OutputDir)
	fmt.Fprintln(out, "  ./run_build")
	return nil
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
