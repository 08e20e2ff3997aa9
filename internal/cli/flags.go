package cli

import (
	"fmt"

	"github.com/cmake-init/cmake-init/internal/config"
	"github.com/cmake-init/cmake-init/internal/scaffold"
	"github.com/cmake-init/cmake-init/internal/schema"
	"github.com/spf13/cobra"
)

// projectFlags are the flags shared by every command that describes a
// project to generate.
type projectFlags struct {
	project string
	exe     string
	lib     string
	flavor  string
}

func (f *projectFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.project, "project", "", "Project name (defaults to the destination folder name)")
	cmd.Flags().StringVar(&f.exe, "exe", "", "Executable folder and target name (alias --executable)")
	cmd.Flags().StringVar(&f.lib, "lib", "", "Add a shared library with this name (alias --library)")
	cmd.Flags().StringVar(&f.flavor, "flavor", "", "Template flavor: plain or sfml (defaults to the flavor setting)")
}

// config merges the flags with the user settings into a scaffold config.
// Flags win over settings.
func (f *projectFlags) config(destination string) (scaffold.Config, error) {
	settings := config.Current()

	result, err := schema.Validate(schema.Settings, settings)
	if err != nil {
		return scaffold.Config{}, fmt.Errorf("validating settings: %w", err)
	}
	if err := result.Err("settings in " + config.FilePath()); err != nil {
		return scaffold.Config{}, err
	}

	flavor := f.flavor
	if flavor == "" {
		flavor = settings.Flavor
	}

	return scaffold.Config{
		Destination:    destination,
		ProjectName:    f.project,
		ExecutableName: f.exe,
		LibraryName:    f.lib,
		Flavor:         scaffold.Flavor(flavor),
		CMakeMinimum:   settings.CMakeMinimum,
		CXXStandard:    settings.CXXStandard,
		SFMLVersion:    settings.SFMLVersion,
	}, nil
}
