// Package debug provides a process-wide debug logging toggle.
package debug

// Enabled controls whether debug diagnostics are logged.
// It is set from the --debug CLI flag at startup.
var Enabled bool
