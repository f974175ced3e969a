// Package event defines event types for decoupling components in the capture
// engine. These events enable communication between the CaptureEngine, shells,
// and other components without requiring direct dependencies.
package event

import "time"

// Event is the interface that all events must implement.
// It provides a common way to identify and timestamp events.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "session.started", "capture.succeeded")
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

// newBaseEvent creates a baseEvent with the current time.
func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// CaptureArtifact describes a single screenshot written to disk.
// Mirrors the engine's capture artifact record for decoupling.
type CaptureArtifact struct {
	Path         string    // Absolute path of the captured image
	Bytes        int64     // Size of the image file in bytes
	CapturedAt   time.Time // UTC capture timestamp
	CaptureIndex uint64    // Monotonic index of this capture within the session
}

// SessionCounters summarizes the outcome of a finished session.
// Mirrors the engine's counters for decoupling.
type SessionCounters struct {
	Captures       uint64
	Skipped        uint64
	Failures       uint64
	Analyzed       uint64
	ReclaimedFiles uint64
	BytesWritten   uint64
}

// -----------------------------------------------------------------------------
// Session Lifecycle Events
// -----------------------------------------------------------------------------

// SessionStartedEvent is emitted once, before the first tick, after
// preflight (config validation, permission check) has succeeded.
type SessionStartedEvent struct {
	baseEvent
	OutputDir string // Directory captures will be written to
	Every     string // Capture cadence, formatted as a Go duration string
	For       string // Total session duration, formatted as a Go duration string
}

// NewSessionStartedEvent creates a SessionStartedEvent.
func NewSessionStartedEvent(outputDir, every, forDuration string) SessionStartedEvent {
	return SessionStartedEvent{
		baseEvent: newBaseEvent("session.started"),
		OutputDir: outputDir,
		Every:     every,
		For:       forDuration,
	}
}

// SessionStoppedEvent is emitted when the session is stopped before its
// scheduled deadline, either by a Stop command or by cancellation of the
// context passed to Run.
type SessionStoppedEvent struct {
	baseEvent
	Reason string // "user" | "context_cancelled"
}

// NewSessionStoppedEvent creates a SessionStoppedEvent.
func NewSessionStoppedEvent(reason string) SessionStoppedEvent {
	return SessionStoppedEvent{
		baseEvent: newBaseEvent("session.stopped"),
		Reason:    reason,
	}
}

// SessionEndedEvent is emitted exactly once, when the session reaches a
// terminal state (Done or Error), carrying the final counters.
type SessionEndedEvent struct {
	baseEvent
	Counters SessionCounters
}

// NewSessionEndedEvent creates a SessionEndedEvent.
func NewSessionEndedEvent(counters SessionCounters) SessionEndedEvent {
	return SessionEndedEvent{
		baseEvent: newBaseEvent("session.ended"),
		Counters:  counters,
	}
}

// -----------------------------------------------------------------------------
// Tick Events
// -----------------------------------------------------------------------------

// TickEvent is emitted once per scheduler fire, before any capture decision
// is made, regardless of whether the tick results in a capture attempt.
type TickEvent struct {
	baseEvent
	Index uint64 // Monotonic tick counter
}

// NewTickEvent creates a TickEvent.
func NewTickEvent(index uint64) TickEvent {
	return TickEvent{
		baseEvent: newBaseEvent("engine.tick"),
		Index:     index,
	}
}

// -----------------------------------------------------------------------------
// Capture Events
// -----------------------------------------------------------------------------

// CaptureSucceededEvent is emitted when a screenshot was captured and
// written to disk successfully.
type CaptureSucceededEvent struct {
	baseEvent
	Artifact CaptureArtifact
}

// NewCaptureSucceededEvent creates a CaptureSucceededEvent.
func NewCaptureSucceededEvent(artifact CaptureArtifact) CaptureSucceededEvent {
	return CaptureSucceededEvent{
		baseEvent: newBaseEvent("capture.succeeded"),
		Artifact:  artifact,
	}
}

// CaptureSkippedEvent is emitted when a tick's capture was intentionally
// withheld by the privacy gate. Disk guard rejections are reported as
// CaptureFailedEvent, and ticks do not fire while the session is paused.
type CaptureSkippedEvent struct {
	baseEvent
	RuleLabel string // e.g. "privacy:deny_app", "privacy:private_window", "privacy:detector_unavailable"
}

// NewCaptureSkippedEvent creates a CaptureSkippedEvent.
func NewCaptureSkippedEvent(ruleLabel string) CaptureSkippedEvent {
	return CaptureSkippedEvent{
		baseEvent: newBaseEvent("capture.skipped"),
		RuleLabel: ruleLabel,
	}
}

// CaptureFailedEvent is emitted when a tick attempted a capture but could
// not complete it: the disk guard rejected it, the screenshot provider
// failed or hung past its watchdog deadline, or the capture succeeded but
// could not be durably recorded. This is distinct from a skip: the engine
// attempted the capture rather than withholding it before trying.
type CaptureFailedEvent struct {
	baseEvent
	Kind string // e.g. "watchdog_timeout", "provider_error", "disk_below_min", "session_cap_exceeded", "context_log_write_failed"
}

// NewCaptureFailedEvent creates a CaptureFailedEvent.
func NewCaptureFailedEvent(kind string) CaptureFailedEvent {
	return CaptureFailedEvent{
		baseEvent: newBaseEvent("capture.failed"),
		Kind:      kind,
	}
}

// -----------------------------------------------------------------------------
// Analysis Events
// -----------------------------------------------------------------------------

// AnalysisSucceededEvent is emitted when the analyzer returned a usable
// one-line summary for the most recent capture.
type AnalysisSucceededEvent struct {
	baseEvent
	Summary string
}

// NewAnalysisSucceededEvent creates an AnalysisSucceededEvent.
func NewAnalysisSucceededEvent(summary string) AnalysisSucceededEvent {
	return AnalysisSucceededEvent{
		baseEvent: newBaseEvent("analysis.succeeded"),
		Summary:   summary,
	}
}

// AnalysisFallbackEvent is emitted when the analyzer could not produce a
// usable summary and the local metadata-derived fallback was substituted.
type AnalysisFallbackEvent struct {
	baseEvent
	Reason string // e.g. "non_retryable", "malformed_payload", "deadline_exceeded"
}

// NewAnalysisFallbackEvent creates an AnalysisFallbackEvent.
func NewAnalysisFallbackEvent(reason string) AnalysisFallbackEvent {
	return AnalysisFallbackEvent{
		baseEvent: newBaseEvent("analysis.fallback"),
		Reason:    reason,
	}
}

// -----------------------------------------------------------------------------
// Pause/Resume Events
// -----------------------------------------------------------------------------

// AutoPausedEvent is emitted each time a watchdog adds a pause reason that
// was not already active, even when other reasons already hold the session
// paused.
type AutoPausedEvent struct {
	baseEvent
	Reason string // "permission_revoked" | "screen_locked" | "display_asleep"
}

// NewAutoPausedEvent creates an AutoPausedEvent.
func NewAutoPausedEvent(reason string) AutoPausedEvent {
	return AutoPausedEvent{
		baseEvent: newBaseEvent("session.auto_paused"),
		Reason:    reason,
	}
}

// AutoResumedEvent is emitted when a watchdog clears its pause reason and
// the session's pause-reason set becomes empty as a result.
type AutoResumedEvent struct {
	baseEvent
	Reason string // the reason that was cleared
}

// NewAutoResumedEvent creates an AutoResumedEvent.
func NewAutoResumedEvent(reason string) AutoResumedEvent {
	return AutoResumedEvent{
		baseEvent: newBaseEvent("session.auto_resumed"),
		Reason:    reason,
	}
}

// UserPausedEvent is emitted when a user-initiated pause command adds the
// User pause reason while it is not already active, even when watchdog
// reasons already hold the session paused.
type UserPausedEvent struct {
	baseEvent
}

// NewUserPausedEvent creates a UserPausedEvent.
func NewUserPausedEvent() UserPausedEvent {
	return UserPausedEvent{baseEvent: newBaseEvent("session.user_paused")}
}

// UserResumedEvent is emitted when a user-initiated resume command clears
// the User pause reason and the set becomes empty as a result.
type UserResumedEvent struct {
	baseEvent
}

// NewUserResumedEvent creates a UserResumedEvent.
func NewUserResumedEvent() UserResumedEvent {
	return UserResumedEvent{baseEvent: newBaseEvent("session.user_resumed")}
}

// -----------------------------------------------------------------------------
// Disk Guard Events
// -----------------------------------------------------------------------------

// ReclaimedEvent is emitted when the disk guard deletes oldest-first
// captures to bring free space back above the configured minimum.
type ReclaimedEvent struct {
	baseEvent
	Files          int    // Number of files deleted
	FreedBytes     uint64 // Total bytes freed by deletion
	RemainingBytes uint64 // Free space remaining after reclaim
}

// NewReclaimedEvent creates a ReclaimedEvent.
func NewReclaimedEvent(files int, freedBytes, remainingBytes uint64) ReclaimedEvent {
	return ReclaimedEvent{
		baseEvent:      newBaseEvent("diskguard.reclaimed"),
		Files:          files,
		FreedBytes:     freedBytes,
		RemainingBytes: remainingBytes,
	}
}

// -----------------------------------------------------------------------------
// Privacy Events
// -----------------------------------------------------------------------------

// PolicyReloadedEvent is emitted when the privacy policy file is detected to
// have changed on disk and is successfully reparsed. This is a supplemented
// feature: it surfaces the fsnotify-driven hot reload to shells so they can
// display the active rule summary without polling.
type PolicyReloadedEvent struct {
	baseEvent
	RuleSummary string // human-readable summary of the active policy
}

// NewPolicyReloadedEvent creates a PolicyReloadedEvent.
func NewPolicyReloadedEvent(ruleSummary string) PolicyReloadedEvent {
	return PolicyReloadedEvent{
		baseEvent:   newBaseEvent("privacy.policy_reloaded"),
		RuleSummary: ruleSummary,
	}
}
