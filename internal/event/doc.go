// Package event provides a pub-sub event bus for decoupled inter-component
// communication in the capture engine.
//
// This package enables loose coupling between the CaptureEngine and the
// shells that drive it (CLI commands, a future status UI) by allowing them
// to communicate through events rather than direct method calls. The engine
// can publish events without knowing who will receive them, and shells can
// subscribe without knowing how the engine is implemented.
//
// # Main Types
//
//   - [Event]: Interface that all events must implement, providing EventType() and Timestamp()
//   - [Bus]: Synchronous pub-sub event dispatcher with thread-safe operations
//   - [Handler]: Function type for event handlers (func(Event))
//
// # Event Categories
//
// The package defines several categories of events:
//
// Session Lifecycle:
//   - [SessionStartedEvent]: Emitted once preflight succeeds, before the first tick
//   - [SessionStoppedEvent]: Emitted when the session stops before its deadline
//   - [SessionEndedEvent]: Emitted once, when the session reaches a terminal state
//
// Tick and Capture Events:
//   - [TickEvent]: Emitted once per scheduler fire
//   - [CaptureSucceededEvent]: Emitted when a screenshot was written to disk
//   - [CaptureSkippedEvent]: Emitted when a precondition gate withheld a capture
//   - [CaptureFailedEvent]: Emitted when an attempted capture did not complete (disk guard, provider, or context log)
//
// Analysis Events:
//   - [AnalysisSucceededEvent]: Emitted when the analyzer returned a usable summary
//   - [AnalysisFallbackEvent]: Emitted when a local fallback summary was substituted
//
// Pause/Resume Events:
//   - [AutoPausedEvent] / [AutoResumedEvent]: Emitted by watchdog-driven pause transitions
//   - [UserPausedEvent] / [UserResumedEvent]: Emitted by user-driven pause transitions
//
// Resource and Privacy Events:
//   - [ReclaimedEvent]: Emitted when the disk guard deletes oldest-first captures
//   - [PolicyReloadedEvent]: Emitted when the privacy policy file is hot-reloaded
//
// # Thread Safety
//
// The [Bus] type is safe for concurrent use. Multiple goroutines can publish
// and subscribe concurrently. Handlers are called synchronously and protected
// against panics - a panicking handler will not prevent other handlers from
// being called.
//
// # Basic Usage
//
//	bus := event.NewBus()
//
//	// Subscribe to specific event types
//	bus.Subscribe("capture.succeeded", func(e event.Event) {
//	    captured := e.(event.CaptureSucceededEvent)
//	    log.Printf("capture %d written to %s", captured.Artifact.CaptureIndex, captured.Artifact.Path)
//	})
//
//	// Subscribe to all events (useful for logging)
//	bus.SubscribeAll(func(e event.Event) {
//	    log.Printf("Event: %s at %v", e.EventType(), e.Timestamp())
//	})
//
//	// Publish events
//	bus.Publish(event.NewSessionStartedEvent("/captures", "30s", "1h"))
//
//	// Unsubscribe when done
//	id := bus.Subscribe("session.ended", handler)
//	bus.Unsubscribe(id)
//
// # Event Type Naming Convention
//
// Event types follow the pattern "category.action":
//   - session.started, session.stopped, session.ended, session.auto_paused, session.user_paused
//   - engine.tick
//   - capture.succeeded, capture.skipped, capture.failed
//   - analysis.succeeded, analysis.fallback
//   - diskguard.reclaimed
//   - privacy.policy_reloaded
package event
