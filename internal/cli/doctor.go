package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/cmake-init/cmake-init/internal/branding"
	"github.com/cmake-init/cmake-init/internal/config"
	"github.com/cmake-init/cmake-init/internal/schema"
	"github.com/cmake-init/cmake-init/internal/toolchain"
	"github.com/spf13/cobra"
)

var (
	checkToolchain bool
	checkSettings  bool
)

// newChecker is swapped in tests.
var newChecker = toolchain.NewChecker

func init() {
	doctorCmd.Flags().BoolVar(&checkToolchain, "check-toolchain", false, "Verify bash, cmake and a C++ compiler are available")
	doctorCmd.Flags().BoolVar(&checkSettings, "check-settings", false, "Validate the settings file")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that generated projects can be built here",
	Long:  `Run diagnostic checks on the build toolchain and the ` + branding.DisplayName() + ` settings.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		// If no specific flag, run all checks.
		all := !checkToolchain && !checkSettings

		problems := 0
		if all || checkSettings {
			problems += runSettingsCheck(out)
		}
		if all || checkToolchain {
			problems += newChecker().Check(out, config.Current().CMakeMinimum)
		}

		if problems > 0 {
			return fmt.Errorf("doctor found %d problem(s)", problems)
		}
		return nil
	},
}

func runSettingsCheck(w io.Writer) int {
	path := config.FilePath()
	fmt.Fprintf(w, "Settings check: %s\n", path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintln(w, "  [INFO] No settings file, using defaults")
		return 0
	}

	result, err := schema.ValidateFile(schema.Settings, path)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return 1
	}
	if result.Valid {
		fmt.Fprintln(w, "  [ OK ] Valid settings")
		return 0
	}

	fmt.Fprintf(w, "  [FAIL] %d validation issue(s):\n", len(result.Issues))
	for _, issue := range result.Issues {
		if issue.Path != "" {
			fmt.Fprintf(w, "    - %s: %s\n", issue.Path, issue.Message)
		} else {
			fmt.Fprintf(w, "    - %s\n", issue.Message)
		}
	}
	return 1
}
