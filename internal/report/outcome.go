// Package report defines per-hook outcomes and folds them into a run report.
package report

import (
	"encoding/json"
	"time"
)

// Kind classifies how a hook ended.
type Kind string

const (
	// KindSucceeded means the hook ran and exited zero.
	KindSucceeded Kind = "succeeded"
	// KindFailed means the hook ran and failed, or could not be launched.
	KindFailed Kind = "failed"
	// KindSkipped means the hook was never attempted.
	KindSkipped Kind = "skipped"
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// Skip reasons recorded on skipped outcomes.
const (
	// ReasonDependency marks a hook whose dependency failed or was skipped.
	ReasonDependency = "dependency"
	// ReasonCanceled marks a hook that was not dispatched because the run was canceled.
	ReasonCanceled = "canceled"
	// ReasonFailFast marks a hook that was not dispatched after an earlier failure.
	ReasonFailFast = "fail-fast"
)

// Outcome is the result of one hook in one run. It is not modified once
// recorded.
type Outcome struct {
	ID       string
	Kind     Kind
	ExitCode *int // nil when the hook never produced an exit status
	Duration time.Duration
	Stdout   string
	Stderr   string
	Error    string

	// SkippedBy names the dependency that caused a dependency skip.
	SkippedBy  string
	SkipReason string
}

// Succeeded builds a successful outcome.
func Succeeded(id string, d time.Duration) Outcome {
	zero := 0
	return Outcome{ID: id, Kind: KindSucceeded, ExitCode: &zero, Duration: d}
}

// Failed builds a failed outcome carrying err's message.
func Failed(id string, err error) Outcome {
	o := Outcome{ID: id, Kind: KindFailed}
	if err != nil {
		o.Error = err.Error()
	}
	return o
}

// Skipped builds a skipped outcome.
func Skipped(id, reason, by string) Outcome {
	return Outcome{ID: id, Kind: KindSkipped, SkipReason: reason, SkippedBy: by}
}

// WithExitCode returns a copy of o with the exit status set.
func (o Outcome) WithExitCode(code int) Outcome {
	o.ExitCode = &code
	return o
}

// Success reports whether the hook succeeded.
func (o Outcome) Success() bool {
	return o.Kind == KindSucceeded
}

// Blocking reports whether dependents of this hook must be skipped.
func (o Outcome) Blocking() bool {
	return o.Kind == KindFailed || o.Kind == KindSkipped
}

type outcomeJSON struct {
	ID         string `json:"id"`
	Outcome    Kind   `json:"outcome"`
	ExitCode   *int   `json:"exit_code,omitempty"`
	DurationMS int64  `json:"duration_ms"`
	Stdout     string `json:"stdout,omitempty"`
	Stderr     string `json:"stderr,omitempty"`
	Error      string `json:"error,omitempty"`
	SkippedBy  string `json:"skipped_by,omitempty"`
	SkipReason string `json:"skip_reason,omitempty"`
}

// MarshalJSON encodes the outcome with its duration in milliseconds.
func (o Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(outcomeJSON{
		ID:         o.ID,
		Outcome:    o.Kind,
		ExitCode:   o.ExitCode,
		DurationMS: o.Duration.Milliseconds(),
		Stdout:     o.Stdout,
		Stderr:     o.Stderr,
		Error:      o.Error,
		SkippedBy:  o.SkippedBy,
		SkipReason: o.SkipReason,
	})
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (o *Outcome) UnmarshalJSON(data []byte) error {
	var raw outcomeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*o = Outcome{
		ID:         raw.ID,
		Kind:       raw.Outcome,
		ExitCode:   raw.ExitCode,
		Duration:   time.Duration(raw.DurationMS) * time.Millisecond,
		Stdout:     raw.Stdout,
		Stderr:     raw.Stderr,
		Error:      raw.Error,
		SkippedBy:  raw.SkippedBy,
		SkipReason: raw.SkipReason,
	}
	return nil
}
