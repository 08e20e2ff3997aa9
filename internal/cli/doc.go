// Package cli defines the Cobra command tree for the cmake-init CLI. The root
// command generates a project; plan, config and version are registered as
// subcommands from their own files. Commands delegate to internal packages
// and only handle flag parsing and output formatting.
package cli
