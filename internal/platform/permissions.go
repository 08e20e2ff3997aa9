package platform

import (
	"os"
	"runtime"

	"github.com/spf13/afero"
)

// Permission constants for generated trees.
const (
	DirPerm  os.FileMode = 0755
	FilePerm os.FileMode = 0644
)

// execBits grants execute to owner, group and other.
const execBits os.FileMode = 0111

// Chmod sets file permissions. On Windows this is a no-op because Windows
// does not support Unix-style permission bits.
func Chmod(fsys afero.Fs, path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return fsys.Chmod(path, mode)
}

// MakeExecutable adds the execute bits to the current permissions of path.
func MakeExecutable(fsys afero.Fs, path string) error {
	info, err := fsys.Stat(path)
	if err != nil {
		return err
	}
	return Chmod(fsys, path, info.Mode().Perm()|execBits)
}
