package executor

import (
	"context"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/Iron-Ham/hookrun/internal/dag"
	"github.com/Iron-Ham/hookrun/internal/report"
)

// Concurrent runs each level on a bounded worker pool and waits for the
// whole level before starting the next one.
type Concurrent struct {
	cfg config
}

// NewConcurrent creates a concurrent strategy.
func NewConcurrent(opts ...Option) *Concurrent {
	return &Concurrent{cfg: newConfig(opts)}
}

// Name returns "concurrent".
func (c *Concurrent) Name() string { return string(KindConcurrent) }

// MaxWorkers returns the concurrency bound.
func (c *Concurrent) MaxWorkers() int { return c.cfg.maxWorkers }

// Run executes the plan level by level. Within a level every runnable task
// is submitted to the pool; excess tasks wait for a free worker. Siblings of
// a failed task always run. Skip decisions only consult outcomes from
// earlier levels, which are final once the previous barrier is crossed.
func (c *Concurrent) Run(ctx context.Context, plan *dag.Plan, run RunFunc) *report.Report {
	start := time.Now()
	ob := observer{bus: c.cfg.bus, logger: c.cfg.logger.WithStrategy(c.Name())}
	state := newRunState(plan.Len())

	ob.runStarted(c.Name(), plan)
	for _, lvl := range plan.Levels {
		ob.levelStarted(lvl)

		// One slot per task, written only by the worker that owns it.
		slots := make([]report.Outcome, len(lvl.IDs))
		p := pool.New().WithMaxGoroutines(c.cfg.maxWorkers)

		for i, id := range lvl.IDs {
			if o, ok := state.gate(ctx, plan, id, c.cfg.failFast); !ok {
				slots[i] = o
				ob.hookFinished(o, lvl.Index)
				continue
			}
			p.Go(func() {
				// The pool may have held this task back; cancellation
				// during that wait still counts as not dispatched.
				if ctx.Err() != nil {
					slots[i] = report.Skipped(id, report.ReasonCanceled, "")
				} else {
					ob.hookStarted(id, lvl.Index)
					slots[i] = invoke(ctx, run, id)
				}
				ob.hookFinished(slots[i], lvl.Index)
			})
		}
		p.Wait()

		for _, o := range slots {
			state.record(o)
		}
		ob.levelCompleted(lvl.Index, slots)
	}

	r := report.Aggregate(c.Name(), state.all, time.Since(start))
	ob.runCompleted(r)
	return r
}
