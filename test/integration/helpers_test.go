//go:build integration

package integration_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// requireToolchain skips the test unless bash, cmake and a C++ compiler are
// available to build a generated project.
func requireToolchain(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("run_build is a bash script")
	}
	for _, tool := range []string{"bash", "cmake"} {
		if _, err := exec.LookPath(tool); err != nil {
			t.Skipf("%s not found in PATH", tool)
		}
	}
	if !hasAny("c++", "g++", "clang++") {
		t.Skip("no C++ compiler found in PATH")
	}
}

func hasAny(tools ...string) bool {
	for _, tool := range tools {
		if _, err := exec.LookPath(tool); err == nil {
			return true
		}
	}
	return false
}

// runBuild executes ./run_build inside dir and returns its combined output.
func runBuild(t *testing.T, dir string) string {
	t.Helper()
	cmd := exec.Command("./run_build")
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("run_build failed: %v\n%s", err, out)
	}
	return string(out)
}

// runBinary executes a built binary and returns its trimmed stdout.
func runBinary(t *testing.T, path string) string {
	t.Helper()
	out, err := exec.Command(path).Output()
	if err != nil {
		t.Fatalf("running %s: %v", path, err)
	}
	return strings.TrimSpace(string(out))
}

// findBinary locates a built executable named name under the build tree.
// Multi-config generators nest it in a configuration folder.
func findBinary(t *testing.T, buildDir, name string) string {
	t.Helper()
	var found string
	_ = filepath.Walk(buildDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || found != "" {
			return nil
		}
		if !info.IsDir() && info.Name() == name && info.Mode().Perm()&0100 != 0 {
			found = path
		}
		return nil
	})
	if found == "" {
		t.Fatalf("binary %s not found under %s", name, buildDir)
	}
	return found
}
