// Package toolchain checks that the programs a generated project needs to
// build are installed: bash for run_build, cmake at or above the configured
// minimum, and a C++ compiler.
package toolchain

import (
	"fmt"
	"io"
	"os/exec"
	"regexp"

	"github.com/Masterminds/semver/v3"
)

// Compilers are probed in order; the first one found is reported.
var Compilers = []string{"c++", "g++", "clang++"}

var cmakeVersionRe = regexp.MustCompile(`cmake version ([0-9]+\.[0-9]+(?:\.[0-9]+)?)`)

// Checker probes the host for build tools. The function fields default to
// os/exec and are replaced in tests.
type Checker struct {
	LookPath func(file string) (string, error)
	Output   func(name string, args ...string) ([]byte, error)
}

// NewChecker returns a Checker backed by os/exec.
func NewChecker() *Checker {
	return &Checker{
		LookPath: exec.LookPath,
		Output: func(name string, args ...string) ([]byte, error) {
			return exec.Command(name, args...).Output()
		},
	}
}

// ParseCMakeVersion extracts the version from `cmake --version` output.
func ParseCMakeVersion(output string) (*semver.Version, error) {
	m := cmakeVersionRe.FindStringSubmatch(output)
	if m == nil {
		return nil, fmt.Errorf("no version in cmake output %q", output)
	}
	return semver.NewVersion(m[1])
}

// Check writes one status line per tool to w and returns the number of
// problems found.
func (c *Checker) Check(w io.Writer, cmakeMinimum string) int {
	problems := 0
	fmt.Fprintln(w, "Toolchain check:")

	if !c.checkBinary(w, "bash") {
		problems++
	}
	if !c.checkCMake(w, cmakeMinimum) {
		problems++
	}
	if !c.checkCompiler(w) {
		problems++
	}
	return problems
}

func (c *Checker) checkBinary(w io.Writer, name string) bool {
	path, err := c.LookPath(name)
	if err != nil {
		fmt.Fprintf(w, "  [MISS] %s not found\n", name)
		return false
	}
	fmt.Fprintf(w, "  [ OK ] %s found at %s\n", name, path)
	return true
}

func (c *Checker) checkCMake(w io.Writer, minimum string) bool {
	if !c.checkBinary(w, "cmake") {
		return false
	}

	out, err := c.Output("cmake", "--version")
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] cmake --version: %v\n", err)
		return false
	}
	installed, err := ParseCMakeVersion(string(out))
	if err != nil {
		fmt.Fprintf(w, "  [WARN] %v\n", err)
		return false
	}

	required, err := semver.NewVersion(minimum)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] cmake_minimum %q is not a version: %v\n", minimum, err)
		return false
	}
	if installed.LessThan(required) {
		fmt.Fprintf(w, "  [FAIL] cmake %s is older than cmake_minimum %s\n", installed, minimum)
		return false
	}
	fmt.Fprintf(w, "  [ OK ] cmake %s satisfies cmake_minimum %s\n", installed, minimum)
	return true
}

func (c *Checker) checkCompiler(w io.Writer) bool {
	for _, name := range Compilers {
		if path, err := c.LookPath(name); err == nil {
			fmt.Fprintf(w, "  [ OK ] C++ compiler %s found at %s\n", name, path)
			return true
		}
	}
	fmt.Fprintf(w, "  [MISS] no C++ compiler found (tried %v)\n", Compilers)
	return false
}
