// Package scheduler decides when the capture engine should attempt its next
// screenshot, based on a fixed cadence and an overall session deadline.
package scheduler

import (
	"fmt"
	"time"
)

// Schedule describes a capture cadence: fire every Every, for a total of
// For. Every must be positive. For zero yields a schedule that is already
// finished at elapsed 0: a normal Done session with zero captures.
type Schedule struct {
	Every time.Duration
	For   time.Duration
}

// Validate reports whether the schedule has a usable interval and deadline.
func (s Schedule) Validate() error {
	if s.Every <= 0 {
		return fmt.Errorf("scheduler: every must be greater than 0")
	}
	if s.For < 0 {
		return fmt.Errorf("scheduler: for must not be negative")
	}
	return nil
}

// Scheduler tracks the next due capture time relative to a session's start.
// It is not safe for concurrent use; callers serialize access (typically from
// a single engine run loop).
type Scheduler struct {
	every   time.Duration
	forDur  time.Duration
	nextDue time.Duration
}

// New constructs a Scheduler from a validated Schedule.
func New(schedule Schedule) (*Scheduler, error) {
	if err := schedule.Validate(); err != nil {
		return nil, err
	}
	return &Scheduler{
		every:  schedule.Every,
		forDur: schedule.For,
	}, nil
}

// IsFinished reports whether elapsed has reached the schedule's deadline.
func (s *Scheduler) IsFinished(elapsed time.Duration) bool {
	return elapsed >= s.forDur
}

// ShouldCapture reports whether a capture is due at elapsed.
func (s *Scheduler) ShouldCapture(elapsed time.Duration) bool {
	return elapsed >= s.nextDue && !s.IsFinished(elapsed)
}

// TimeUntilNextCapture returns the delay remaining before the next capture is
// due, or false if the schedule has already finished.
func (s *Scheduler) TimeUntilNextCapture(elapsed time.Duration) (time.Duration, bool) {
	if s.IsFinished(elapsed) {
		return 0, false
	}
	remaining := s.nextDue - elapsed
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}

// MarkCaptured advances the next due time by one interval.
func (s *Scheduler) MarkCaptured() {
	s.nextDue += s.every
}

// AlignNextDue discards any accumulated lag and resets the next due time to
// elapsed+Every, so that resuming after a pause waits one full interval
// before the next capture rather than bursting through every interval
// missed while paused.
func (s *Scheduler) AlignNextDue(elapsed time.Duration) {
	if !s.IsFinished(elapsed) {
		s.nextDue = elapsed + s.every
	}
}
