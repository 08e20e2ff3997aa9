// Package config manages user-level settings stored at ~/.cmake-init/config.yaml.
// Settings hold the toolchain defaults stamped into generated projects
// (minimum CMake version, C++ standard, SFML version, default flavor) and
// can be overridden with CMAKE_INIT_* environment variables.
package config
