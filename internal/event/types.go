package event

import (
	"time"

	"github.com/Iron-Ham/hookrun/internal/report"
)

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "hook.started").
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

const wildcard = "*"

// Event type identifiers.
const (
	TypeRunStarted     = "run.started"
	TypeLevelStarted   = "level.started"
	TypeHookStarted    = "hook.started"
	TypeHookFinished   = "hook.finished"
	TypeLevelCompleted = "level.completed"
	TypeRunCompleted   = "run.completed"
)

// baseEvent provides common fields for all events.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// -----------------------------------------------------------------------------
// Run Events
// -----------------------------------------------------------------------------

// RunStartedEvent is emitted once before the first hook is dispatched.
type RunStartedEvent struct {
	baseEvent
	Strategy string   // "sequential" or "concurrent"
	Order    []string // Every hook id in plan order
	Levels   int      // Number of levels in the plan
}

// NewRunStartedEvent creates a RunStartedEvent.
func NewRunStartedEvent(strategy string, order []string, levels int) RunStartedEvent {
	return RunStartedEvent{
		baseEvent: newBaseEvent(TypeRunStarted),
		Strategy:  strategy,
		Order:     order,
		Levels:    levels,
	}
}

// RunCompletedEvent is emitted once with the final report.
type RunCompletedEvent struct {
	baseEvent
	Report *report.Report
}

// NewRunCompletedEvent creates a RunCompletedEvent.
func NewRunCompletedEvent(r *report.Report) RunCompletedEvent {
	return RunCompletedEvent{
		baseEvent: newBaseEvent(TypeRunCompleted),
		Report:    r,
	}
}

// -----------------------------------------------------------------------------
// Level Events
// -----------------------------------------------------------------------------

// LevelStartedEvent is emitted when a level begins dispatching.
type LevelStartedEvent struct {
	baseEvent
	Index int
	IDs   []string
}

// NewLevelStartedEvent creates a LevelStartedEvent.
func NewLevelStartedEvent(index int, ids []string) LevelStartedEvent {
	return LevelStartedEvent{
		baseEvent: newBaseEvent(TypeLevelStarted),
		Index:     index,
		IDs:       ids,
	}
}

// LevelCompletedEvent is emitted once every hook in a level has an outcome.
type LevelCompletedEvent struct {
	baseEvent
	Index     int
	Succeeded int
	Failed    int
	Skipped   int
}

// NewLevelCompletedEvent creates a LevelCompletedEvent from the outcomes of one level.
func NewLevelCompletedEvent(index int, outcomes []report.Outcome) LevelCompletedEvent {
	e := LevelCompletedEvent{
		baseEvent: newBaseEvent(TypeLevelCompleted),
		Index:     index,
	}
	for _, o := range outcomes {
		switch o.Kind {
		case report.KindSucceeded:
			e.Succeeded++
		case report.KindFailed:
			e.Failed++
		default:
			e.Skipped++
		}
	}
	return e
}

// -----------------------------------------------------------------------------
// Hook Events
// -----------------------------------------------------------------------------

// HookStartedEvent is emitted right before a hook is passed to the runner.
type HookStartedEvent struct {
	baseEvent
	HookID string
	Level  int
}

// NewHookStartedEvent creates a HookStartedEvent.
func NewHookStartedEvent(hookID string, level int) HookStartedEvent {
	return HookStartedEvent{
		baseEvent: newBaseEvent(TypeHookStarted),
		HookID:    hookID,
		Level:     level,
	}
}

// HookFinishedEvent is emitted once per hook with its outcome, including
// hooks that were skipped without running.
type HookFinishedEvent struct {
	baseEvent
	Outcome report.Outcome
	Level   int
}

// NewHookFinishedEvent creates a HookFinishedEvent.
func NewHookFinishedEvent(o report.Outcome, level int) HookFinishedEvent {
	return HookFinishedEvent{
		baseEvent: newBaseEvent(TypeHookFinished),
		Outcome:   o,
		Level:     level,
	}
}
