package tui

import (
	"github.com/Iron-Ham/hookrun/internal/event"
	"github.com/Iron-Ham/hookrun/internal/report"
)

// Messages delivered to the model from the event bus.

type runStartedMsg struct {
	strategy string
	order    []string
}

type hookStartedMsg struct {
	id string
}

type hookFinishedMsg struct {
	outcome report.Outcome
}

type runCompletedMsg struct {
	report *report.Report
}

// toMsg converts a bus event into a model message. Events the view does not
// display map to nil.
func toMsg(e event.Event) any {
	switch ev := e.(type) {
	case event.RunStartedEvent:
		return runStartedMsg{strategy: ev.Strategy, order: ev.Order}
	case event.HookStartedEvent:
		return hookStartedMsg{id: ev.HookID}
	case event.HookFinishedEvent:
		return hookFinishedMsg{outcome: ev.Outcome}
	case event.RunCompletedEvent:
		return runCompletedMsg{report: ev.Report}
	default:
		return nil
	}
}
