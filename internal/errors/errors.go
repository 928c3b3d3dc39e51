// Package errors provides centralized error definitions and error handling utilities
// for hookrun. It defines sentinel errors for each subsystem, domain error types
// that carry locating context, and classification helpers used by the CLI to
// decide how an error is reported and which exit code it maps to.
//
// # Error Types
//
// Domain-specific errors represent errors from specific subsystems:
//   - ConfigError: errors reading or validating a hook configuration file
//   - GitError: errors related to git operations (staged files, hook install)
//   - HookError: errors attributed to a single hook
//
// Structural graph errors (duplicate id, unknown dependency, cycle) are typed
// in package dag and match the graph sentinels below via errors.Is.
//
// # Usage
//
//	err := errors.NewConfigError("cannot parse hook file", cause).WithPath(".pre-commit-config.yaml")
//
//	if errors.Is(err, errors.ErrConfigInvalid) { ... }
//	if errors.IsStructural(err) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Graph-related sentinel errors. These are structural: they are detected
// before any hook runs and are always fatal to the run.
var (
	// ErrDuplicateID indicates that two hooks share an id.
	ErrDuplicateID = New("duplicate hook id")
	// ErrUnknownDependency indicates that a hook depends on an id that does not exist.
	ErrUnknownDependency = New("unknown dependency")
	// ErrDependencyCycle indicates a circular dependency between hooks.
	ErrDependencyCycle = New("dependency cycle detected")
)

// Configuration-related sentinel errors
var (
	// ErrConfigNotFound indicates that the hook configuration file does not exist.
	ErrConfigNotFound = New("hook config not found")
	// ErrConfigInvalid indicates that the hook configuration file is malformed.
	ErrConfigInvalid = New("hook config is invalid")
)

// Git-related sentinel errors
var (
	// ErrNotGitRepository indicates that the directory is not a git repository.
	ErrNotGitRepository = New("not a git repository")
	// ErrForeignHook indicates that an existing pre-commit hook was not written by hookrun.
	ErrForeignHook = New("pre-commit hook was not installed by hookrun")
	// ErrHookNotInstalled indicates that no hookrun pre-commit hook is present.
	ErrHookNotInstalled = New("pre-commit hook not installed")
)

// Run-related sentinel errors
var (
	// ErrHooksFailed indicates that at least one hook failed or was skipped.
	ErrHooksFailed = New("one or more hooks did not succeed")
	// ErrCanceled indicates that the run was canceled before all hooks were dispatched.
	ErrCanceled = New("run canceled")
)

// General sentinel errors
var (
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// HookrunError is the base interface for all hookrun domain errors.
type HookrunError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Is reports whether this error matches the target error.
	Is(target error) bool

	// Severity returns the severity level of this error.
	Severity() Severity
}

// baseError provides common functionality for all error types.
type baseError struct {
	message  string
	cause    error
	severity Severity
}

func newBase(message string, cause error) baseError {
	return baseError{
		message:  message,
		cause:    cause,
		severity: SeverityError,
	}
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// format renders "prefix [k=v, ...]: message: cause".
func (e *baseError) format(prefix string, parts []string) string {
	if len(parts) > 0 {
		prefix = fmt.Sprintf("%s [%s]", prefix, strings.Join(parts, ", "))
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// ConfigError represents errors reading or validating hook configuration.
//
// Example:
//
//	err := errors.NewConfigError("hook has no entry", errors.ErrConfigInvalid)
//	err = err.WithPath(".pre-commit-config.yaml").WithField("repos[0].hooks[2].entry")
//	fmt.Println(err) // "config error [path=.pre-commit-config.yaml, field=repos[0].hooks[2].entry]: hook has no entry: hook config is invalid"
type ConfigError struct {
	baseError
	Path  string
	Field string
}

// NewConfigError creates a new ConfigError.
func NewConfigError(message string, cause error) *ConfigError {
	return &ConfigError{baseError: newBase(message, cause)}
}

// WithPath adds the configuration file path to the error context.
func (e *ConfigError) WithPath(path string) *ConfigError {
	e.Path = path
	return e
}

// WithField adds the offending field path to the error context.
func (e *ConfigError) WithField(field string) *ConfigError {
	e.Field = field
	return e
}

// Error returns the formatted error message.
func (e *ConfigError) Error() string {
	var parts []string
	if e.Path != "" {
		parts = append(parts, fmt.Sprintf("path=%s", e.Path))
	}
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	return e.format("config error", parts)
}

// Is checks if this error matches the target.
func (e *ConfigError) Is(target error) bool {
	if _, ok := target.(*ConfigError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// GitError represents errors related to git operations.
//
// Example:
//
//	err := errors.NewGitError("failed to list staged files", cause)
//	err = err.WithRepository("/src/app").WithCommand("diff --cached --name-only")
type GitError struct {
	baseError
	Repository string
	Command    string
	GitOutput  string // Captured git command output
}

// NewGitError creates a new GitError.
func NewGitError(message string, cause error) *GitError {
	return &GitError{baseError: newBase(message, cause)}
}

// WithRepository adds a repository path to the error context.
func (e *GitError) WithRepository(path string) *GitError {
	e.Repository = path
	return e
}

// WithCommand adds the git subcommand to the error context.
func (e *GitError) WithCommand(command string) *GitError {
	e.Command = command
	return e
}

// WithGitOutput adds git command output to the error context.
func (e *GitError) WithGitOutput(output string) *GitError {
	e.GitOutput = output
	return e
}

// Error returns the formatted error message.
func (e *GitError) Error() string {
	var parts []string
	if e.Repository != "" {
		parts = append(parts, fmt.Sprintf("repo=%s", e.Repository))
	}
	if e.Command != "" {
		parts = append(parts, fmt.Sprintf("cmd=git %s", e.Command))
	}
	msg := e.format("git error", parts)
	if e.GitOutput != "" {
		msg = fmt.Sprintf("%s\ngit output: %s", msg, e.GitOutput)
	}
	return msg
}

// Is checks if this error matches the target.
func (e *GitError) Is(target error) bool {
	if _, ok := target.(*GitError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// HookError represents an error attributed to a single hook, such as a
// command that could not be launched.
type HookError struct {
	baseError
	HookID   string
	ExitCode *int
}

// NewHookError creates a new HookError.
func NewHookError(message string, cause error) *HookError {
	return &HookError{baseError: newBase(message, cause)}
}

// WithHookID adds the hook id to the error context.
func (e *HookError) WithHookID(id string) *HookError {
	e.HookID = id
	return e
}

// WithExitCode records the exit status of the hook process.
func (e *HookError) WithExitCode(code int) *HookError {
	e.ExitCode = &code
	return e
}

// WithSeverity sets the error severity.
func (e *HookError) WithSeverity(s Severity) *HookError {
	e.severity = s
	return e
}

// Error returns the formatted error message.
func (e *HookError) Error() string {
	var parts []string
	if e.HookID != "" {
		parts = append(parts, fmt.Sprintf("hook=%s", e.HookID))
	}
	if e.ExitCode != nil {
		parts = append(parts, fmt.Sprintf("exit=%d", *e.ExitCode))
	}
	return e.format("hook error", parts)
}

// Is checks if this error matches the target.
func (e *HookError) Is(target error) bool {
	if _, ok := target.(*HookError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Classification
// -----------------------------------------------------------------------------

// IsStructural reports whether err is a graph error (duplicate id, unknown
// dependency or cycle). Structural errors abort a run before any hook starts.
func IsStructural(err error) bool {
	if err == nil {
		return false
	}
	return Is(err, ErrDuplicateID) || Is(err, ErrUnknownDependency) || Is(err, ErrDependencyCycle)
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement HookrunError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}
	var he HookrunError
	if As(err, &he) {
		return he.Severity()
	}
	return SeverityError
}

// Wrap wraps an error with additional context message.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
