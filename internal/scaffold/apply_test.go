package scaffold

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/cmake-init/cmake-init/internal/platform"
)

func TestRunWritesProjectTree(t *testing.T) {
	fsys := platform.NewMemFS()
	root := filepath.Join("/work", "demo")

	var out bytes.Buffer
	result, err := Run(Config{Destination: root, LibraryName: "mathlib"}, fsys, &out)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if result.OutputDir != root {
		t.Errorf("OutputDir = %q, want %q", result.OutputDir, root)
	}
	if len(result.Files) != 7 {
		t.Errorf("Files = %v, want 7 entries", result.Files)
	}

	assertFileContent(t, fsys.Afero(), filepath.Join(root, "CMakeLists.txt"),
		"add_subdirectory(src)\nadd_subdirectory(mathlib)\n")
	assertFileContent(t, fsys.Afero(), filepath.Join(root, "src", "main.cpp"), "mathlib::hello()")
	assertFileContent(t, fsys.Afero(), filepath.Join(root, "mathlib", "include", "mathlib.hpp"), "std::string hello();")
	assertFileContent(t, fsys.Afero(), filepath.Join(root, "mathlib", "src", "mathlib.cpp"), "Hello from mathlib!")

	for _, dir := range []string{"src", "mathlib", "mathlib/include", "mathlib/src"} {
		info, err := fsys.Afero().Stat(filepath.Join(root, filepath.FromSlash(dir)))
		if err != nil {
			t.Errorf("directory %s missing: %v", dir, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("%s is not a directory", dir)
		}
	}

	log := out.String()
	if !strings.Contains(log, "[ OK ] Created "+root) {
		t.Errorf("progress output missing root creation:\n%s", log)
	}
	if !strings.Contains(log, "[ OK ] Updated "+filepath.Join(root, "CMakeLists.txt")) {
		t.Errorf("progress output missing CMakeLists update:\n%s", log)
	}
}

func TestRunMarksBuildScriptExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("executable bits are not tracked on windows")
	}

	fsys := platform.NewMemFS()
	root := "/work/demo"
	result, err := Run(Config{Destination: root}, fsys, nil)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(result.Executables) != 1 || result.Executables[0] != "run_build" {
		t.Errorf("Executables = %v, want [run_build]", result.Executables)
	}

	info, err := fsys.Afero().Stat(filepath.Join(root, "run_build"))
	if err != nil {
		t.Fatalf("stat run_build: %v", err)
	}
	if info.Mode().Perm()&0100 == 0 {
		t.Errorf("run_build mode = %v, want owner execute bit", info.Mode().Perm())
	}
}

func TestRunOnDisk(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("executable bits are not tracked on windows")
	}

	root := filepath.Join(t.TempDir(), "demo")
	if _, err := Run(Config{Destination: root, Flavor: FlavorSFML}, platform.NewOsFS(), nil); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	info, err := os.Stat(filepath.Join(root, "run_build"))
	if err != nil {
		t.Fatalf("stat run_build: %v", err)
	}
	if info.Mode().Perm() != 0755 {
		t.Errorf("run_build mode = %v, want 0755", info.Mode().Perm())
	}

	data, err := os.ReadFile(filepath.Join(root, "CMakeLists.txt"))
	if err != nil {
		t.Fatalf("read CMakeLists.txt: %v", err)
	}
	if !strings.Contains(string(data), "find_package(SFML 2.5 COMPONENTS graphics REQUIRED)") {
		t.Errorf("root CMakeLists.txt missing find_package:\n%s", data)
	}
}

func TestRunExistingDestination(t *testing.T) {
	tests := []struct {
		name  string
		setup func(fs afero.Fs, root string) error
	}{
		{"existing directory", func(fs afero.Fs, root string) error {
			return fs.MkdirAll(root, 0755)
		}},
		{"existing file", func(fs afero.Fs, root string) error {
			return afero.WriteFile(fs, root, []byte("keep me"), 0644)
		}},
	}

	for _, tt := range tests {
		for _, root := range []string{"/work/demo", "/work/my project"} {
			t.Run(tt.name+" "+filepath.Base(root), func(t *testing.T) {
				runExistingDestination(t, tt.setup, root)
			})
		}
	}

	t.Run("file content untouched", func(t *testing.T) {
		fsys := platform.NewMemFS()
		root := "/work/demo"
		if err := afero.WriteFile(fsys.Afero(), root, []byte("keep me"), 0644); err != nil {
			t.Fatal(err)
		}
		_, _ = Run(Config{Destination: root}, fsys, nil)
		data, err := afero.ReadFile(fsys.Afero(), root)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "keep me" {
			t.Errorf("existing file changed to %q", data)
		}
	})
}

func TestRunTwiceFails(t *testing.T) {
	fsys := platform.NewMemFS()
	cfg := Config{Destination: "/work/demo"}

	if _, err := Run(cfg, fsys, nil); err != nil {
		t.Fatalf("first Run() error: %v", err)
	}
	before, err := afero.ReadFile(fsys.Afero(), "/work/demo/CMakeLists.txt")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Run(cfg, fsys, nil); !errors.Is(err, ErrDestinationExists) {
		t.Fatalf("second Run() error = %v, want ErrDestinationExists", err)
	}
	after, err := afero.ReadFile(fsys.Afero(), "/work/demo/CMakeLists.txt")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, after) {
		t.Error("second run changed the root CMakeLists.txt")
	}
}

func TestRunInvalidConfigWritesNothing(t *testing.T) {
	rec := &recordingFS{Filesystem: platform.NewMemFS()}
	if _, err := Run(Config{Destination: "/work/my project"}, rec, nil); err == nil {
		t.Fatal("expected error")
	}
	if len(rec.mutations) != 0 {
		t.Errorf("filesystem mutated for an invalid config: %v", rec.mutations)
	}
}

func TestApplyStopsOnWriteError(t *testing.T) {
	plan, err := Generate(Config{Destination: "/work/demo", LibraryName: "mathlib"})
	if err != nil {
		t.Fatal(err)
	}

	boom := errors.New("disk full")
	fsys := &failingFS{
		Filesystem: platform.NewMemFS(),
		failOn:     filepath.Join("/work/demo", "src", "main.cpp"),
		err:        boom,
	}

	result, err := Apply(plan, fsys, nil)
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want %v", err, boom)
	}
	if result == nil {
		t.Fatal("expected a partial result")
	}
	for _, f := range result.Files {
		if f == "src/main.cpp" || strings.HasPrefix(f, "mathlib/") {
			t.Errorf("file %s reported written after the failure", f)
		}
	}
}

func TestApplyRejectsInvalidPlan(t *testing.T) {
	plan := &Plan{
		Root:  "/work/demo",
		Files: []FileEntry{{Path: "src/main.cpp", Content: "x"}},
	}
	rec := &recordingFS{Filesystem: platform.NewMemFS()}
	if _, err := Apply(plan, rec, nil); err == nil {
		t.Fatal("expected error for a file with no planned parent")
	}
	if len(rec.mutations) != 0 {
		t.Errorf("filesystem was mutated: %v", rec.mutations)
	}
}

func TestPlanValidate(t *testing.T) {
	tests := []struct {
		name    string
		plan    Plan
		wantErr string
	}{
		{
			name:    "no root",
			plan:    Plan{},
			wantErr: "no root",
		},
		{
			name:    "dir before parent",
			plan:    Plan{Root: "r", Dirs: []string{"lib/include", "lib"}},
			wantErr: "before its parent",
		},
		{
			name:    "dir twice",
			plan:    Plan{Root: "r", Dirs: []string{"src", "src"}},
			wantErr: "planned twice",
		},
		{
			name:    "escaping path",
			plan:    Plan{Root: "r", Files: []FileEntry{{Path: "../x"}}},
			wantErr: "clean relative path",
		},
		{
			name:    "absolute path",
			plan:    Plan{Root: "r", Files: []FileEntry{{Path: "/etc/x"}}},
			wantErr: "clean relative path",
		},
		{
			name:    "append before write",
			plan:    Plan{Root: "r", Files: []FileEntry{{Path: "CMakeLists.txt", Append: true}}},
			wantErr: "appended to before",
		},
		{
			name: "written twice",
			plan: Plan{Root: "r", Files: []FileEntry{
				{Path: "CMakeLists.txt"},
				{Path: "CMakeLists.txt"},
			}},
			wantErr: "written twice",
		},
		{
			name: "file collides with dir",
			plan: Plan{Root: "r", Dirs: []string{"src"}, Files: []FileEntry{
				{Path: "src"},
			}},
			wantErr: "collides",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.plan.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

// ─── Test Helpers ──────────────────────────────────────────────────

func runExistingDestination(t *testing.T, setup func(fs afero.Fs, root string) error, root string) {
	t.Helper()
	fsys := platform.NewMemFS()
	if err := setup(fsys.Afero(), root); err != nil {
		t.Fatal(err)
	}

	rec := &recordingFS{Filesystem: fsys}
	_, err := Run(Config{Destination: root}, rec, nil)
	if !errors.Is(err, ErrDestinationExists) {
		t.Fatalf("error = %v, want ErrDestinationExists", err)
	}
	if len(rec.mutations) != 0 {
		t.Errorf("filesystem was mutated: %v", rec.mutations)
	}
}

type recordingFS struct {
	Filesystem
	mutations []string
}

func (r *recordingFS) Mkdir(path string, recursive bool) error {
	r.mutations = append(r.mutations, "mkdir "+path)
	return r.Filesystem.Mkdir(path, recursive)
}

func (r *recordingFS) WriteFile(path, content string) error {
	r.mutations = append(r.mutations, "write "+path)
	return r.Filesystem.WriteFile(path, content)
}

func (r *recordingFS) AppendFile(path, content string) error {
	r.mutations = append(r.mutations, "append "+path)
	return r.Filesystem.AppendFile(path, content)
}

func (r *recordingFS) SetExecutable(path string) error {
	r.mutations = append(r.mutations, "chmod "+path)
	return r.Filesystem.SetExecutable(path)
}

type failingFS struct {
	Filesystem
	failOn string
	err    error
}

func (f *failingFS) WriteFile(path, content string) error {
	if path == f.failOn {
		return f.err
	}
	return f.Filesystem.WriteFile(path, content)
}

func assertFileContent(t *testing.T, fs afero.Fs, path, substr string) {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Errorf("read %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("%s does not contain %q\n--- content ---\n%s", path, substr, data)
	}
}
