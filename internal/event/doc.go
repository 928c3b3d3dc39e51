// Package event provides a pub-sub event bus for hook run lifecycle events.
//
// The executor publishes events as a run progresses; the live terminal view,
// the logger and tests subscribe to them. Publishers do not know who is
// listening.
//
// # Main Types
//
//   - [Event]: Interface that all events must implement, providing EventType() and Timestamp()
//   - [Bus]: Synchronous pub-sub event dispatcher with thread-safe operations
//   - [Handler]: Function type for event handlers (func(Event))
//
// # Event Types
//
// Run:
//   - [RunStartedEvent]: before the first hook is dispatched
//   - [RunCompletedEvent]: carries the final report
//
// Level:
//   - [LevelStartedEvent]: a level begins dispatching
//   - [LevelCompletedEvent]: every hook in the level has an outcome
//
// Hook:
//   - [HookStartedEvent]: a hook is handed to the runner
//   - [HookFinishedEvent]: a hook has an outcome (including skips)
//
// # Thread Safety
//
// The [Bus] type is safe for concurrent use. The concurrent executor
// publishes hook events from worker goroutines, so handlers must be safe to
// call concurrently. Handlers run synchronously on the publishing goroutine
// and a panicking handler does not prevent delivery to the others.
//
// # Basic Usage
//
//	bus := event.NewBus()
//	bus.Subscribe(event.TypeHookFinished, func(e event.Event) {
//	    fin := e.(event.HookFinishedEvent)
//	    fmt.Println(fin.Outcome.ID, fin.Outcome.Kind)
//	})
package event
