package scaffold

import (
	"fmt"
	"path"
	"strings"
)

// Flavor selects the template family used for the executable.
type Flavor string

const (
	FlavorPlain Flavor = "plain"
	FlavorSFML  Flavor = "sfml"
)

// ParseFlavor converts a flag or setting value into a Flavor.
// The empty string selects FlavorPlain.
func ParseFlavor(s string) (Flavor, error) {
	switch Flavor(strings.ToLower(strings.TrimSpace(s))) {
	case "", FlavorPlain:
		return FlavorPlain, nil
	case FlavorSFML:
		return FlavorSFML, nil
	default:
		return "", fmt.Errorf("unknown flavor %q: must be %q or %q", s, FlavorPlain, FlavorSFML)
	}
}

// Default toolchain values used when a Config leaves them empty.
const (
	DefaultCMakeMinimum  = "3.12"
	DefaultCXXStandard   = "20"
	DefaultSFMLVersion   = "2.5"
	DefaultExecutableDir = "src"
)

// Config describes the project to generate.
type Config struct {
	Destination    string // Directory to create; must not exist.
	ProjectName    string // Defaults to the final segment of Destination.
	ExecutableName string // Executable folder and target; folder defaults to "src".
	LibraryName    string // Optional shared library.
	Flavor         Flavor

	CMakeMinimum string // e.g., "3.12"
	CXXStandard  string // e.g., "20"
	SFMLVersion  string // e.g., "2.5" (sfml flavor only)
}

// FileEntry is one file operation in a Plan. Path is relative to the plan
// root and always uses forward slashes. An Append entry extends a file
// written earlier in the same plan.
type FileEntry struct {
	Path       string `json:"path" yaml:"path"`
	Content    string `json:"content" yaml:"content"`
	Executable bool   `json:"executable,omitempty" yaml:"executable,omitempty"`
	Append     bool   `json:"append,omitempty" yaml:"append,omitempty"`
}

// Plan is the full set of directories and files for one project. Dirs are
// created in order before any file is written.
type Plan struct {
	Root    string      `json:"root" yaml:"root"`
	Project string      `json:"project" yaml:"project"`
	Dirs    []string    `json:"dirs" yaml:"dirs"`
	Files   []FileEntry `json:"files" yaml:"files"`
}

// Paths returns the distinct file paths of the plan in first-write order.
func (p *Plan) Paths() []string {
	seen := make(map[string]bool, len(p.Files))
	var paths []string
	for _, f := range p.Files {
		if !seen[f.Path] {
			seen[f.Path] = true
			paths = append(paths, f.Path)
		}
	}
	return paths
}

// Contents folds append entries into their files and returns the final
// content of every file keyed by relative path.
func (p *Plan) Contents() map[string]string {
	out := make(map[string]string, len(p.Files))
	for _, f := range p.Files {
		if f.Append {
			out[f.Path] += f.Content
			continue
		}
		out[f.Path] = f.Content
	}
	return out
}

// Executables returns the relative paths marked executable.
func (p *Plan) Executables() []string {
	var out []string
	for _, f := range p.Files {
		if f.Executable {
			out = append(out, f.Path)
		}
	}
	return out
}

// Validate checks the structural invariants of the plan: every directory's
// parent is the root or an earlier directory, every file's parent is the
// root or a planned directory, each file is written once and only appended
// to after it was written.
func (p *Plan) Validate() error {
	if p.Root == "" {
		return fmt.Errorf("plan has no root")
	}

	dirs := map[string]bool{".": true}
	for _, d := range p.Dirs {
		if err := checkRelative(d); err != nil {
			return err
		}
		if !dirs[path.Dir(d)] {
			return fmt.Errorf("directory %s is planned before its parent", d)
		}
		if dirs[d] {
			return fmt.Errorf("directory %s is planned twice", d)
		}
		dirs[d] = true
	}

	written := make(map[string]bool, len(p.Files))
	for _, f := range p.Files {
		if err := checkRelative(f.Path); err != nil {
			return err
		}
		if !dirs[path.Dir(f.Path)] {
			return fmt.Errorf("file %s has no planned parent directory", f.Path)
		}
		if dirs[f.Path] {
			return fmt.Errorf("file %s collides with a planned directory", f.Path)
		}
		switch {
		case f.Append && !written[f.Path]:
			return fmt.Errorf("file %s is appended to before it is written", f.Path)
		case !f.Append && written[f.Path]:
			return fmt.Errorf("file %s is written twice", f.Path)
		}
		written[f.Path] = true
	}
	return nil
}

func checkRelative(p string) error {
	if p == "" || path.IsAbs(p) || path.Clean(p) != p || p == "." || strings.HasPrefix(p, "../") || p == ".." {
		return fmt.Errorf("plan path %q must be a clean relative path inside the root", p)
	}
	return nil
}
