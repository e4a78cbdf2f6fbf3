// Package testreg provides public constants and utilities for external tools
// integrating with testreg.
package testreg

// Exit codes returned by the testreg CLI.
// These constants allow external tools to check exit codes symbolically
// rather than using magic numbers.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitFailure indicates a runtime failure (compile failed, internal error, etc.).
	ExitFailure = 1

	// ExitConfigError indicates a configuration or usage error (invalid manifest,
	// invalid test name, duplicate registration, etc.).
	ExitConfigError = 2

	// ExitEnvError indicates an environment error (test framework entry point
	// not found, etc.).
	ExitEnvError = 3
)
