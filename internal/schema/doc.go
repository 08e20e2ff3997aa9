// Package schema validates scaffold configurations and user settings
// against JSON Schemas embedded in the binary. Validation failures are
// reported as a list of per-property issues rather than a single error.
package schema
