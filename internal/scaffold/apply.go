package scaffold

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
)

// ErrDestinationExists is returned by Apply when the plan root is already
// present on the filesystem. Nothing is written in that case.
var ErrDestinationExists = errors.New("can't initialize a project in a folder that already exists")

// Filesystem is the storage a Plan is applied to.
type Filesystem interface {
	Mkdir(path string, recursive bool) error
	WriteFile(path, content string) error
	AppendFile(path, content string) error
	SetExecutable(path string) error
	Exists(path string) (bool, error)
}

// Result holds the outcome of applying a plan.
type Result struct {
	OutputDir   string
	Project     string
	Dirs        []string
	Files       []string
	Executables []string
}

// Apply materializes plan on fsys, printing progress to w (which may be nil).
// The existence check runs before any mutation. Writes are not
// transactional: an I/O failure part way leaves the files written so far.
func Apply(plan *Plan, fsys Filesystem, w io.Writer) (*Result, error) {
	if w == nil {
		w = io.Discard
	}
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}

	exists, err := fsys.Exists(plan.Root)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrDestinationExists, plan.Root)
	}

	result := &Result{OutputDir: plan.Root, Project: plan.Project}

	if err := fsys.Mkdir(plan.Root, true); err != nil {
		return result, err
	}
	fmt.Fprintf(w, "  [ OK ] Created %s\n", plan.Root)

	for _, d := range plan.Dirs {
		full := filepath.Join(plan.Root, filepath.FromSlash(d))
		if err := fsys.Mkdir(full, false); err != nil {
			return result, err
		}
		result.Dirs = append(result.Dirs, d)
		fmt.Fprintf(w, "  [ OK ] Created %s\n", full)
	}

	for _, f := range plan.Files {
		full := filepath.Join(plan.Root, filepath.FromSlash(f.Path))

		if f.Append {
			if err := fsys.AppendFile(full, f.Content); err != nil {
				return result, err
			}
			fmt.Fprintf(w, "  [ OK ] Updated %s\n", full)
			continue
		}

		if err := fsys.WriteFile(full, f.Content); err != nil {
			return result, err
		}
		result.Files = append(result.Files, f.Path)
		fmt.Fprintf(w, "  [ OK ] Created %s\n", full)

		if f.Executable {
			if err := fsys.SetExecutable(full); err != nil {
				return result, err
			}
			result.Executables = append(result.Executables, f.Path)
			fmt.Fprintf(w, "  [ OK ] Marked %s executable\n", full)
		}
	}

	return result, nil
}

// Run generates the plan for cfg and applies it to fsys. An existing
// destination is reported before the config is validated, so a folder
// whose name is not a valid project name still yields ErrDestinationExists.
func Run(cfg Config, fsys Filesystem, w io.Writer) (*Result, error) {
	if cfg.Destination != "" {
		exists, err := fsys.Exists(cfg.Destination)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("%w: %s", ErrDestinationExists, cfg.Destination)
		}
	}

	plan, err := Generate(cfg)
	if err != nil {
		return nil, err
	}
	return Apply(plan, fsys, w)
}
