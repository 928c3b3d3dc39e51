package executor

import (
	"context"
	"time"

	"github.com/Iron-Ham/hookrun/internal/dag"
	"github.com/Iron-Ham/hookrun/internal/report"
)

// Sequential runs tasks one at a time in plan order on the calling goroutine.
type Sequential struct {
	cfg config
}

// NewSequential creates a sequential strategy.
func NewSequential(opts ...Option) *Sequential {
	return &Sequential{cfg: newConfig(opts)}
}

// Name returns "sequential".
func (s *Sequential) Name() string { return string(KindSequential) }

// Run executes the plan. A task whose dependency failed or was skipped is
// recorded as skipped and never run; independent branches keep going.
func (s *Sequential) Run(ctx context.Context, plan *dag.Plan, run RunFunc) *report.Report {
	start := time.Now()
	ob := observer{bus: s.cfg.bus, logger: s.cfg.logger.WithStrategy(s.Name())}
	state := newRunState(plan.Len())

	ob.runStarted(s.Name(), plan)
	for _, lvl := range plan.Levels {
		ob.levelStarted(lvl)
		outcomes := make([]report.Outcome, 0, len(lvl.IDs))
		for _, id := range lvl.IDs {
			o, ok := state.gate(ctx, plan, id, s.cfg.failFast)
			if ok {
				ob.hookStarted(id, lvl.Index)
				o = invoke(ctx, run, id)
			}
			state.record(o)
			ob.hookFinished(o, lvl.Index)
			outcomes = append(outcomes, o)
		}
		ob.levelCompleted(lvl.Index, outcomes)
	}

	r := report.Aggregate(s.Name(), state.all, time.Since(start))
	ob.runCompleted(r)
	return r
}
