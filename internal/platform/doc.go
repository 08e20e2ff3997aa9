// Package platform provides the filesystem the scaffolder writes through.
// FS wraps an afero.Fs so the same code targets the real OS filesystem in
// the CLI and an in-memory filesystem in tests. Permission changes are a
// no-op on Windows, which has no Unix-style permission bits.
package platform
