package platform

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
)

// FS implements the five filesystem operations the scaffolder needs on top
// of an afero.Fs.
type FS struct {
	fs afero.Fs
}

// NewFS wraps an existing afero filesystem.
func NewFS(fsys afero.Fs) *FS {
	return &FS{fs: fsys}
}

// NewOsFS returns an FS backed by the real operating system filesystem.
func NewOsFS() *FS {
	return NewFS(afero.NewOsFs())
}

// NewMemFS returns an FS backed by an in-memory filesystem.
func NewMemFS() *FS {
	return NewFS(afero.NewMemMapFs())
}

// Afero exposes the underlying afero filesystem, mostly for tests.
func (f *FS) Afero() afero.Fs {
	return f.fs
}

// Mkdir creates a directory. With recursive set, missing parents are
// created as well and an existing directory is not an error.
func (f *FS) Mkdir(path string, recursive bool) error {
	if recursive {
		if err := f.fs.MkdirAll(path, DirPerm); err != nil {
			return fmt.Errorf("creating directory %s: %w", path, err)
		}
		return nil
	}
	if err := f.fs.Mkdir(path, DirPerm); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	return nil
}

// WriteFile creates or truncates path and writes content to it.
func (f *FS) WriteFile(path, content string) error {
	if err := afero.WriteFile(f.fs, path, []byte(content), FilePerm); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// AppendFile appends content to an existing file.
func (f *FS) AppendFile(path, content string) error {
	file, err := f.fs.OpenFile(path, os.O_APPEND|os.O_WRONLY, FilePerm)
	if err != nil {
		return fmt.Errorf("opening %s for append: %w", path, err)
	}
	if _, err := file.WriteString(content); err != nil {
		file.Close()
		return fmt.Errorf("appending to %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// SetExecutable marks path as executable by its owner (and group/other).
func (f *FS) SetExecutable(path string) error {
	if err := MakeExecutable(f.fs, path); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	return nil
}

// Exists reports whether anything (file or directory) exists at path.
func (f *FS) Exists(path string) (bool, error) {
	ok, err := afero.Exists(f.fs, path)
	if err != nil {
		return false, fmt.Errorf("checking %s: %w", path, err)
	}
	return ok, nil
}
