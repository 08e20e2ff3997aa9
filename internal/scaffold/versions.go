package scaffold

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

var (
	// CMAKE_CXX_STANDARD 20 is understood from CMake 3.12 on.
	cmakeFloor = mustConstraint(">= 3.12")
	// C++23 needs CMake 3.20.
	cmakeFloorCXX23 = mustConstraint(">= 3.20")
	// The window template is written against the SFML 2 API.
	sfmlRange = mustConstraint(">= 2.0, < 3.0")
)

func mustConstraint(c string) *semver.Constraints {
	cs, err := semver.NewConstraint(c)
	if err != nil {
		panic(err)
	}
	return cs
}

// checkVersion parses raw and reports an error unless it satisfies c.
func checkVersion(kind, raw string, c *semver.Constraints) error {
	v, err := semver.NewVersion(raw)
	if err != nil {
		return fmt.Errorf("parsing %s version %q: %w", kind, raw, err)
	}
	if !c.Check(v) {
		return fmt.Errorf("%s version %s does not satisfy %s", kind, raw, c)
	}
	return nil
}

// checkToolchain validates the version settings of a resolved config.
func checkToolchain(r *resolved) error {
	if err := checkVersion("CMake", r.CMakeMinimum, cmakeFloor); err != nil {
		return err
	}
	if r.CXXStandard == "23" {
		if err := checkVersion("CMake", r.CMakeMinimum, cmakeFloorCXX23); err != nil {
			return fmt.Errorf("C++23 requires a newer CMake: %w", err)
		}
	}
	if r.Flavor == FlavorSFML {
		if err := checkVersion("SFML", r.SFMLVersion, sfmlRange); err != nil {
			return err
		}
	}
	return nil
}
