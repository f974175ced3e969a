package engine

import (
	"context"
	"os"
	"time"

	"github.com/lucidtrace/recall/internal/errors"
	"github.com/lucidtrace/recall/internal/event"
	"github.com/lucidtrace/recall/internal/watchdog"
)

// Run drives the session to completion: it blocks until the schedule is
// exhausted, a Stop command is handled, ctx is cancelled, or an
// unrecoverable error occurs. It returns nil for a normal Done outcome and
// a non-nil error only when the session ends in StateError.
func (e *Engine) Run(ctx context.Context) error {
	defer close(e.done)

	if err := e.preflight(ctx); err != nil {
		e.setState(StateError)
		e.logger.Error("preflight failed", "error", err)
		e.bus.Publish(event.NewSessionEndedEvent(e.Counters()))
		return err
	}

	if err := os.MkdirAll(e.session.OutputDir, 0o755); err != nil {
		wrapped := errors.NewConfigError("failed to create capture output directory", err)
		e.setState(StateError)
		e.bus.Publish(event.NewSessionEndedEvent(e.Counters()))
		return wrapped
	}

	watchCtx, cancelWatch := context.WithCancel(ctx)
	e.stopWatchdogs = cancelWatch
	defer cancelWatch()

	if !e.session.UseMock {
		go watchdog.RunPermissionWatch(watchCtx, watchdog.Interval, watchdogPermissionStatus(), e.signals)
		go watchdog.RunScreenLockWatch(watchCtx, watchdog.Interval, watchdogSystemActivity(), e.signals)
		go watchdog.RunDisplaySleepWatch(watchCtx, watchdog.Interval, watchdogSystemActivity(), e.signals)
	}

	if fg, ok := e.guard.(interface {
		Watch(onReload func(string)) (func(), error)
	}); ok {
		stop, err := fg.Watch(func(ruleSummary string) {
			e.bus.Publish(event.NewPolicyReloadedEvent(ruleSummary))
		})
		if err != nil {
			e.logger.Warn("failed to start privacy policy watch", "error", err)
		} else {
			e.stopGuardWatch = stop
		}
	}
	defer func() {
		if e.stopGuardWatch != nil {
			e.stopGuardWatch()
		}
	}()

	e.startedAt = time.Now()
	e.setState(StateRunning)
	e.bus.Publish(event.NewSessionStartedEvent(
		e.session.OutputDir,
		e.session.Every().String(),
		e.session.For().String(),
	))

	return e.loop(ctx)
}

// preflight validates the conditions that must hold before a session may
// start at all. A failure here never produces a SessionStarted event: the
// session refuses to start.
func (e *Engine) preflight(ctx context.Context) error {
	if e.session.UseMock {
		return nil
	}
	state, err := watchdogPermissionStatus().ScreenRecording(ctx)
	if err != nil {
		// The probe itself being unavailable is not grounds to refuse a
		// start: it is treated the same as the watchdog that uses it,
		// which never raises a reason it cannot evaluate.
		return nil
	}
	if state == watchdog.PermissionDenied {
		return errors.NewPermissionError("screen recording permission not granted", errors.ErrPermissionMissing).
			WithPermission("screen_recording")
	}
	return nil
}

// loop is the engine's single run goroutine: it waits for the next
// scheduler fire, a command, or a watchdog signal, handles whichever
// arrives first, and repeats until the session ends.
func (e *Engine) loop(ctx context.Context) error {
	for {
		elapsed := time.Since(e.startedAt)
		if e.scheduler.IsFinished(elapsed) {
			e.finish(StateDone, "schedule_exhausted")
			return nil
		}

		wait, ok := e.scheduler.TimeUntilNextCapture(elapsed)
		if !ok {
			e.finish(StateDone, "schedule_exhausted")
			return nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			e.finish(StateDone, "context_cancelled")
			return nil

		case cmd := <-e.commands:
			timer.Stop()
			if cmd.Kind == CmdStop {
				e.finish(StateDone, "user")
				return nil
			}
			e.handleCommand(cmd)

		case sig := <-e.signals:
			timer.Stop()
			e.handleSignal(sig)

		case <-timer.C:
			elapsed = time.Since(e.startedAt)
			if e.scheduler.ShouldCapture(elapsed) {
				e.scheduler.MarkCaptured()
				e.handleTick(ctx, elapsed)
			}
		}
	}
}

func (e *Engine) handleCommand(cmd Command) {
	switch cmd.Kind {
	case CmdPause:
		e.applyPauseEdit(watchdog.ReasonUser, true)
	case CmdResume:
		e.applyPauseEdit(watchdog.ReasonUser, false)
	case CmdReloadPrivacyPolicy:
		if err := e.guard.Reload(); err != nil {
			e.logger.Warn("failed to reload privacy policy", "error", err)
			return
		}
		e.bus.Publish(event.NewPolicyReloadedEvent(e.guard.Status().RuleSummary))
	}
}

func (e *Engine) handleSignal(sig watchdog.Signal) {
	e.applyPauseEdit(sig.Reason, sig.Active)
}

// applyPauseEdit adds or clears reason in the pause-reason set and emits
// the corresponding event and transition log entry. A duplicate add of an
// already-active reason, or a clear of a reason that isn't active, is a
// no-op. Otherwise every add gets its own AutoPaused/UserPaused event even
// when the set was already non-empty (so stacked reasons each announce
// themselves), while a clear only emits AutoResumed/UserResumed when it is
// the one that empties the set entirely.
func (e *Engine) applyPauseEdit(reason watchdog.Reason, add bool) {
	e.mu.Lock()
	state := e.state
	e.mu.Unlock()
	if state == StateDone || state == StateError {
		return
	}

	if add {
		if !e.pauseReasons.add(reason) {
			return
		}
		e.setState(StatePaused)
		if reason == watchdog.ReasonUser {
			e.bus.Publish(event.NewUserPausedEvent())
			e.appendTransition("paused", "user")
		} else {
			e.bus.Publish(event.NewAutoPausedEvent(string(reason)))
			e.appendTransition("paused", string(reason))
		}
		return
	}

	if !e.pauseReasons.clear(reason) {
		return
	}
	e.setState(StateRunning)
	e.scheduler.AlignNextDue(time.Since(e.startedAt))
	if reason == watchdog.ReasonUser {
		e.bus.Publish(event.NewUserResumedEvent())
		e.appendTransition("resumed", "user")
	} else {
		e.bus.Publish(event.NewAutoResumedEvent(string(reason)))
		e.appendTransition("resumed", string(reason))
	}
}

func (e *Engine) finish(final State, trigger string) {
	e.mu.Lock()
	if e.state == StateDone || e.state == StateError {
		e.mu.Unlock()
		return
	}
	e.state = final
	counters := e.counters
	e.mu.Unlock()

	if trigger != "schedule_exhausted" {
		e.bus.Publish(event.NewSessionStoppedEvent(trigger))
	}
	e.appendTransition(final.String(), trigger)
	e.bus.Publish(event.NewSessionEndedEvent(counters))
}

func (e *Engine) appendTransition(state, trigger string) {
	if err := e.contextLog.AppendSessionTransition(time.Now(), state, trigger); err != nil {
		e.bumpFailure()
		e.logger.Warn("failed to append session transition", "error", err)
	}
}

func (e *Engine) setState(s State) {
	e.mu.Lock()
	e.state = s
	e.mu.Unlock()
}

func (e *Engine) bumpFailure() {
	e.mu.Lock()
	e.counters.Failures++
	e.mu.Unlock()
}

// watchdogPermissionStatus and watchdogSystemActivity are package-level
// indirections so tests can swap the platform probes; production code
// always resolves to the OS-backed implementations in this file's package.
var (
	watchdogPermissionStatusFn = watchdog.NewOSPermissionStatus
	watchdogSystemActivityFn   = watchdog.NewOSSystemActivity
)

func watchdogPermissionStatus() watchdog.PermissionStatus {
	return watchdogPermissionStatusFn()
}

func watchdogSystemActivity() watchdog.SystemActivity {
	return watchdogSystemActivityFn()
}
