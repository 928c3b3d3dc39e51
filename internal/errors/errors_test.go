package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityDebug, "debug"},
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{SeverityCritical, "critical"},
		{Severity(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.severity.String(); got != tt.want {
				t.Errorf("Severity.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// ConfigError Tests
// -----------------------------------------------------------------------------

func TestNewConfigError(t *testing.T) {
	err := NewConfigError("hook has no entry", ErrConfigInvalid)

	if err.message != "hook has no entry" {
		t.Errorf("message = %q, want %q", err.message, "hook has no entry")
	}
	if err.Severity() != SeverityError {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityError)
	}
}

func TestConfigError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ConfigError
		want string
	}{
		{
			name: "no context",
			err:  NewConfigError("bad file", nil),
			want: "config error: bad file",
		},
		{
			name: "path only",
			err:  NewConfigError("bad file", nil).WithPath("hooks.yaml"),
			want: "config error [path=hooks.yaml]: bad file",
		},
		{
			name: "path, field and cause",
			err:  NewConfigError("hook has no entry", ErrConfigInvalid).WithPath("hooks.yaml").WithField("repos[0].hooks[1].entry"),
			want: "config error [path=hooks.yaml, field=repos[0].hooks[1].entry]: hook has no entry: hook config is invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfigError_Is(t *testing.T) {
	err := NewConfigError("missing", ErrConfigNotFound)

	if !errors.Is(err, ErrConfigNotFound) {
		t.Error("errors.Is(err, ErrConfigNotFound) = false, want true")
	}
	if !errors.Is(err, &ConfigError{}) {
		t.Error("errors.Is(err, &ConfigError{}) = false, want true")
	}
	if errors.Is(err, ErrConfigInvalid) {
		t.Error("errors.Is(err, ErrConfigInvalid) = true, want false")
	}
}

// -----------------------------------------------------------------------------
// GitError Tests
// -----------------------------------------------------------------------------

func TestGitError_Error(t *testing.T) {
	err := NewGitError("failed to list staged files", ErrNotGitRepository).
		WithRepository("/src/app").
		WithCommand("diff --cached").
		WithGitOutput("fatal: not a git repository")

	got := err.Error()
	for _, want := range []string{
		"git error [repo=/src/app, cmd=git diff --cached]",
		"failed to list staged files: not a git repository",
		"git output: fatal: not a git repository",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Error() = %q, want it to contain %q", got, want)
		}
	}
}

func TestGitError_Is(t *testing.T) {
	err := NewGitError("cannot install", ErrForeignHook)

	if !errors.Is(err, ErrForeignHook) {
		t.Error("errors.Is(err, ErrForeignHook) = false, want true")
	}
	if !errors.Is(err, &GitError{}) {
		t.Error("errors.Is(err, &GitError{}) = false, want true")
	}
	if errors.Is(err, &ConfigError{}) {
		t.Error("errors.Is(err, &ConfigError{}) = true, want false")
	}
}

// -----------------------------------------------------------------------------
// HookError Tests
// -----------------------------------------------------------------------------

func TestHookError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *HookError
		want string
	}{
		{
			name: "launch failure",
			err:  NewHookError("cannot launch command", fmt.Errorf("exec: \"nope\": not found")).WithHookID("lint"),
			want: `hook error [hook=lint]: cannot launch command: exec: "nope": not found`,
		},
		{
			name: "with exit code",
			err:  NewHookError("command failed", nil).WithHookID("test").WithExitCode(3),
			want: "hook error [hook=test, exit=3]: command failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHookError_WithSeverity(t *testing.T) {
	err := NewHookError("panic in runner", nil).WithSeverity(SeverityCritical)
	if got := GetSeverity(err); got != SeverityCritical {
		t.Errorf("GetSeverity() = %v, want %v", got, SeverityCritical)
	}
}

// -----------------------------------------------------------------------------
// Classification Tests
// -----------------------------------------------------------------------------

func TestIsStructural(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"duplicate id", ErrDuplicateID, true},
		{"wrapped unknown dependency", fmt.Errorf("build: %w", ErrUnknownDependency), true},
		{"cycle", ErrDependencyCycle, true},
		{"config error", NewConfigError("x", ErrConfigInvalid), false},
		{"hooks failed", ErrHooksFailed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsStructural(tt.err); got != tt.want {
				t.Errorf("IsStructural() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetSeverity(t *testing.T) {
	if got := GetSeverity(nil); got != SeverityDebug {
		t.Errorf("GetSeverity(nil) = %v, want %v", got, SeverityDebug)
	}
	if got := GetSeverity(errors.New("plain")); got != SeverityError {
		t.Errorf("GetSeverity(plain) = %v, want %v", got, SeverityError)
	}
	wrapped := fmt.Errorf("run: %w", NewHookError("failed", nil).WithSeverity(SeverityWarning))
	if got := GetSeverity(wrapped); got != SeverityWarning {
		t.Errorf("GetSeverity(wrapped) = %v, want %v", got, SeverityWarning)
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should return nil")
	}

	err := Wrap(ErrCanceled, "running hooks")
	if err.Error() != "running hooks: run canceled" {
		t.Errorf("Wrap() = %q", err.Error())
	}
	if !errors.Is(err, ErrCanceled) {
		t.Error("wrapped error should match ErrCanceled")
	}
}

func TestWrapf(t *testing.T) {
	if Wrapf(nil, "context %d", 1) != nil {
		t.Error("Wrapf(nil) should return nil")
	}

	err := Wrapf(ErrInvalidInput, "flag %q", "--jobs")
	if err.Error() != `flag "--jobs": invalid input` {
		t.Errorf("Wrapf() = %q", err.Error())
	}
}

func TestSentinelErrors(t *testing.T) {
	sentinels := []error{
		ErrDuplicateID, ErrUnknownDependency, ErrDependencyCycle,
		ErrConfigNotFound, ErrConfigInvalid,
		ErrNotGitRepository, ErrForeignHook, ErrHookNotInstalled,
		ErrHooksFailed, ErrCanceled, ErrInvalidInput,
	}

	seen := make(map[string]bool)
	for _, s := range sentinels {
		msg := s.Error()
		if msg == "" {
			t.Error("sentinel error has empty message")
		}
		if seen[msg] {
			t.Errorf("duplicate sentinel message %q", msg)
		}
		seen[msg] = true
	}
}
