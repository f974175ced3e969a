// Package engine drives a single capture session: it owns the scheduler,
// the disk and privacy gates, the screenshot provider, the analyzer, and
// the context log, and serializes every state change onto one goroutine.
package engine

import "github.com/lucidtrace/recall/internal/watchdog"

// State is the lifecycle state of a capture session.
type State int

const (
	// StateIdle indicates the engine has been constructed but Run has not
	// yet been called.
	StateIdle State = iota

	// StateRunning indicates the engine is actively capturing on schedule.
	StateRunning

	// StatePaused indicates at least one pause reason is active; no
	// captures are attempted until the set is empty again.
	StatePaused

	// StateDone indicates the session ended normally: the schedule was
	// exhausted, or a Stop command was handled.
	StateDone

	// StateError indicates the session ended because of an unrecoverable
	// error, such as invalid configuration.
	StateError
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateDone:
		return "done"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// pauseReasonSet tracks which reasons are currently withholding captures.
// Adds and clears of the same reason are idempotent: the set records
// presence, not a count, so a reason raised twice by mistake clears on the
// first Clear.
type pauseReasonSet struct {
	reasons map[watchdog.Reason]struct{}
}

func newPauseReasonSet() *pauseReasonSet {
	return &pauseReasonSet{reasons: make(map[watchdog.Reason]struct{})}
}

// add records reason as active and reports whether it was newly added
// (false if it was already present, i.e. a duplicate add). A newly added
// reason always gets its own AutoPaused/UserPaused event, even when the
// set was already non-empty; the caller sets the state to Paused on every
// newly added reason, which is a no-op when the session is already paused.
func (s *pauseReasonSet) add(reason watchdog.Reason) bool {
	if _, ok := s.reasons[reason]; ok {
		return false
	}
	s.reasons[reason] = struct{}{}
	return true
}

// clear removes reason and reports whether the set became empty as a
// result. Unlike add, a clear only produces an event when it is the one
// that empties the set entirely: clearing one reason while others remain
// active is silent, per the spec's stacked-pause semantics.
func (s *pauseReasonSet) clear(reason watchdog.Reason) bool {
	if _, ok := s.reasons[reason]; !ok {
		return false
	}
	delete(s.reasons, reason)
	return len(s.reasons) == 0
}

func (s *pauseReasonSet) empty() bool {
	return len(s.reasons) == 0
}

func (s *pauseReasonSet) snapshot() []watchdog.Reason {
	out := make([]watchdog.Reason, 0, len(s.reasons))
	for r := range s.reasons {
		out = append(out, r)
	}
	return out
}
