// Package scaffold generates new CMake-based C++ projects. Generate turns a
// Config into an in-memory Plan of directories and rendered files without
// touching storage; Apply materializes a Plan through a Filesystem after
// refusing destinations that already exist.
package scaffold
