// Package errors provides structured error types and exit codes for testreg.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Exit codes returned by the testreg CLI.
const (
	ExitSuccess          = 0 // Success
	ExitRuntimeError     = 1 // Runtime error (compile failed, internal graph error, etc.)
	ExitConfigError      = 2 // Configuration or usage error (invalid name, duplicate target, etc.)
	ExitEnvironmentError = 3 // Environment error (test framework entry point missing, etc.)
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindConfig
	KindInvalidName
	KindDuplicate
	KindUnknownTarget
	KindCycle
	KindMissingDependency
)

// RegError is the base error type for testreg.
type RegError struct {
	Kind    ErrorKind
	Message string
	Target  string // Target name if applicable
	Cause   error  // Underlying error
}

func (e *RegError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("[%s] %s", e.Target, e.Message)
	}
	return e.Message
}

func (e *RegError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *RegError) ExitCode() int {
	switch e.Kind {
	case KindConfig, KindInvalidName, KindDuplicate:
		return ExitConfigError
	case KindMissingDependency:
		return ExitEnvironmentError
	default:
		return ExitRuntimeError
	}
}

// New creates a new runtime error.
func New(message string) *RegError {
	return &RegError{
		Kind:    KindRuntime,
		Message: message,
	}
}

// Newf creates a new runtime error with formatting.
func Newf(format string, args ...interface{}) *RegError {
	return New(fmt.Sprintf(format, args...))
}

// Config creates a new configuration error.
func Config(message string) *RegError {
	return &RegError{
		Kind:    KindConfig,
		Message: message,
	}
}

// Configf creates a new configuration error with formatting.
func Configf(format string, args ...interface{}) *RegError {
	return Config(fmt.Sprintf(format, args...))
}

// InvalidName creates an error for a test name that fails naming constraints.
func InvalidName(name, reason string) *RegError {
	return &RegError{
		Kind:    KindInvalidName,
		Target:  name,
		Message: fmt.Sprintf("invalid test name: %s", reason),
	}
}

// Duplicate creates an error for a target name registered twice.
func Duplicate(name string) *RegError {
	return &RegError{
		Kind:    KindDuplicate,
		Target:  name,
		Message: "target already registered",
	}
}

// UnknownTarget creates an error for a dependency edge on an absent target.
func UnknownTarget(name string) *RegError {
	return &RegError{
		Kind:    KindUnknownTarget,
		Target:  name,
		Message: "target not registered",
	}
}

// Cycle creates an error for a dependency edge that would close a cycle.
func Cycle(from, to string) *RegError {
	return &RegError{
		Kind:    KindCycle,
		Target:  from,
		Message: fmt.Sprintf("dependency on %q would create a cycle", to),
	}
}

// MissingDependency creates an error for an absent external collaborator.
func MissingDependency(message string) *RegError {
	return &RegError{
		Kind:    KindMissingDependency,
		Message: message,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *RegError {
	return &RegError{
		Kind:    KindRuntime,
		Message: message,
		Cause:   err,
	}
}

// isKind reports whether err is or wraps a RegError of the given kind.
func isKind(err error, kind ErrorKind) bool {
	var re *RegError
	if stderrors.As(err, &re) {
		return re.Kind == kind
	}
	return false
}

// IsInvalidName reports whether err is an invalid-name error.
func IsInvalidName(err error) bool { return isKind(err, KindInvalidName) }

// IsDuplicate reports whether err is a duplicate-target error.
func IsDuplicate(err error) bool { return isKind(err, KindDuplicate) }

// IsUnknownTarget reports whether err is an unknown-target error.
func IsUnknownTarget(err error) bool { return isKind(err, KindUnknownTarget) }

// IsCycle reports whether err is a cycle error.
func IsCycle(err error) bool { return isKind(err, KindCycle) }

// IsMissingDependency reports whether err is a missing-dependency error.
func IsMissingDependency(err error) bool { return isKind(err, KindMissingDependency) }

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var re *RegError
	if stderrors.As(err, &re) {
		return re.ExitCode()
	}
	return ExitRuntimeError
}
