package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/Iron-Ham/hookrun/internal/dag"
	"github.com/Iron-Ham/hookrun/internal/event"
	"github.com/Iron-Ham/hookrun/internal/logging"
	"github.com/Iron-Ham/hookrun/internal/report"
)

// runState is the run-scoped outcome accumulator. It is only touched by the
// goroutine driving the run; concurrent workers never see it.
type runState struct {
	outcomes map[string]report.Outcome
	all      []report.Outcome
	failed   bool
}

func newRunState(n int) *runState {
	return &runState{
		outcomes: make(map[string]report.Outcome, n),
		all:      make([]report.Outcome, 0, n),
	}
}

func (s *runState) record(o report.Outcome) {
	s.outcomes[o.ID] = o
	s.all = append(s.all, o)
	if o.Kind == report.KindFailed {
		s.failed = true
	}
}

// gate decides whether id may be dispatched. It returns a skipped outcome
// and false when it may not. A failed or skipped dependency takes precedence
// over cancellation, which takes precedence over fail-fast.
//
// Dependencies always lie in earlier levels, so their outcomes are final by
// the time gate is called.
func (s *runState) gate(ctx context.Context, plan *dag.Plan, id string, failFast bool) (report.Outcome, bool) {
	for _, dep := range plan.Dependencies(id) {
		if o, ok := s.outcomes[dep]; ok && o.Blocking() {
			return report.Skipped(id, report.ReasonDependency, dep), false
		}
	}
	if ctx.Err() != nil {
		return report.Skipped(id, report.ReasonCanceled, ""), false
	}
	if failFast && s.failed {
		return report.Skipped(id, report.ReasonFailFast, ""), false
	}
	return report.Outcome{}, true
}

// invoke calls run and turns every way it can misbehave into a well-formed
// outcome for id: a panic becomes a failure, a foreign or empty id is
// replaced, and an unknown kind is treated as a failure.
func invoke(ctx context.Context, run RunFunc, id string) (o report.Outcome) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			o = report.Failed(id, fmt.Errorf("runner panicked: %v", r))
		}
		if o.Duration == 0 {
			o.Duration = time.Since(start)
		}
	}()

	o = run(ctx, id)
	o.ID = id
	switch o.Kind {
	case report.KindSucceeded, report.KindFailed, report.KindSkipped:
	default:
		kind := o.Kind
		o.Kind = report.KindFailed
		if o.Error == "" {
			o.Error = fmt.Sprintf("runner returned unknown outcome kind %q", kind)
		}
	}
	return o
}

// observer fans lifecycle notifications out to the bus and the log.
type observer struct {
	bus    *event.Bus
	logger *logging.Logger
}

func (ob observer) publish(e event.Event) {
	if ob.bus != nil {
		ob.bus.Publish(e)
	}
}

func (ob observer) runStarted(strategy string, plan *dag.Plan) {
	ob.logger.Info("run started", "hooks", plan.Len(), "levels", len(plan.Levels))
	ob.publish(event.NewRunStartedEvent(strategy, plan.Order(), len(plan.Levels)))
}

func (ob observer) levelStarted(lvl dag.Level) {
	ob.logger.Debug("level started", "level", lvl.Index, "hooks", lvl.IDs)
	ob.publish(event.NewLevelStartedEvent(lvl.Index, lvl.IDs))
}

func (ob observer) hookStarted(id string, level int) {
	ob.logger.WithHook(id).Debug("hook dispatched", "level", level)
	ob.publish(event.NewHookStartedEvent(id, level))
}

func (ob observer) hookFinished(o report.Outcome, level int) {
	log := ob.logger.WithHook(o.ID)
	switch o.Kind {
	case report.KindSkipped:
		log.Debug("hook skipped", "reason", o.SkipReason, "skipped_by", o.SkippedBy)
	case report.KindFailed:
		log.Info("hook failed", "duration_ms", o.Duration.Milliseconds(), "error", o.Error)
	default:
		log.Info("hook succeeded", "duration_ms", o.Duration.Milliseconds())
	}
	ob.publish(event.NewHookFinishedEvent(o, level))
}

func (ob observer) levelCompleted(index int, outcomes []report.Outcome) {
	ob.publish(event.NewLevelCompletedEvent(index, outcomes))
}

func (ob observer) runCompleted(r *report.Report) {
	ob.logger.Info("run completed",
		"success", r.Success,
		"succeeded", r.Summary.Succeeded,
		"failed", r.Summary.Failed,
		"skipped", r.Summary.Skipped,
		"elapsed_ms", r.Elapsed.Milliseconds(),
	)
	ob.publish(event.NewRunCompletedEvent(r))
}
