// Package executor runs a scheduled plan of hooks.
//
// Two strategies share one contract, [Strategy]: [Sequential] runs tasks
// one after another in plan order, [Concurrent] runs each level on a bounded
// worker pool with a barrier between levels. Callers pick one with [New]
// and a [Kind].
//
// Both strategies apply the same rules, so for a deterministic [RunFunc]
// they produce the same outcome for every task:
//
//   - A task whose dependency failed or was skipped is recorded as skipped,
//     naming that dependency, and is never passed to the RunFunc.
//   - Unrelated branches and same-level siblings keep running after a failure.
//   - Once ctx is done, tasks not yet dispatched are skipped as canceled.
//     Running tasks are never interrupted by the executor itself.
//   - A RunFunc panic is recovered and recorded as a failure of that task.
//
// With [WithFailFast], tasks not yet dispatched after the first failure are
// skipped. The sequential strategy reacts immediately; the concurrent
// strategy reacts at the next level barrier.
package executor
