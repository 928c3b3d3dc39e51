// Package logging provides structured logging for hookrun.
//
// It wraps Go's log/slog to write JSON lines, one per event, with
// persistent context attributes (run id, strategy, hook id) attached by
// child loggers.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger(".hookrun", "INFO")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	runLog := logger.WithRun(runID).WithStrategy("concurrent")
//	runLog.WithHook("lint").Info("hook finished", "outcome", "failed", "duration_ms", 812)
//
// Output:
//
//	{"time":"...","level":"INFO","msg":"hook finished","run_id":"...","strategy":"concurrent","hook_id":"lint","outcome":"failed","duration_ms":812}
//
// When logging is disabled the CLI passes [NopLogger] around instead, so
// callers never check for nil.
//
// # Log Levels
//
//   - [LevelDebug]: dispatch and skip decisions
//   - [LevelInfo]: run and level progress (default)
//   - [LevelWarn]: recovered runner panics
//   - [LevelError]: failures that abort the run
//
// # Configuration
//
//	logging:
//	  enabled: true
//	  level: debug
//	  dir: .hookrun
package logging
