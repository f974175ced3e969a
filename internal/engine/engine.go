package engine

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lucidtrace/recall/internal/analyzer"
	"github.com/lucidtrace/recall/internal/config"
	"github.com/lucidtrace/recall/internal/contextlog"
	"github.com/lucidtrace/recall/internal/errors"
	"github.com/lucidtrace/recall/internal/event"
	"github.com/lucidtrace/recall/internal/logging"
	"github.com/lucidtrace/recall/internal/privacy"
	"github.com/lucidtrace/recall/internal/scheduler"
	"github.com/lucidtrace/recall/internal/screenshot"
	"github.com/lucidtrace/recall/internal/watchdog"
)

// fallbackExpectedCaptureBytes seeds the disk-guard session-cap estimate
// before this session has produced a single capture to learn a real size
// from. It is a conservative guess for a single full-screen PNG.
const fallbackExpectedCaptureBytes = 512 * 1024

// commandQueueDepth and signalQueueDepth bound the channels a running
// Engine listens on. Both are shallow: a shell or watchdog that outpaces
// the engine's single run loop should block rather than buffer unboundedly.
const (
	commandQueueDepth = 8
	signalQueueDepth  = 16
)

// Engine drives one capture session end to end. All mutable state is owned
// by the goroutine running Run; every other method communicates with it
// exclusively through the commands channel, or reads state behind mu.
type Engine struct {
	sessionID string

	session config.SessionConfig

	scheduler  *scheduler.Scheduler
	guard      privacy.Guard
	provider   screenshot.Provider
	an         analyzer.Analyzer // nil means analysis is disabled outright
	contextLog *contextlog.Log
	bus        *event.Bus
	logger     *logging.Logger

	commands chan Command
	signals  chan watchdog.Signal
	done     chan struct{}

	mu               sync.Mutex
	state            State
	pauseReasons     *pauseReasonSet
	tickIndex        uint64
	bytesWritten     uint64
	lastCaptureBytes uint64
	counters         event.SessionCounters

	startedAt      time.Time
	stopWatchdogs  context.CancelFunc
	stopGuardWatch func()
}

// New constructs an Engine from a validated session configuration. It does
// not start any goroutines or create capture output; call Run to do that.
// When a privacy policy path is set outside mock mode, New reads that file,
// writing a sample policy there first if none exists.
func New(cfg *config.RecallConfig, bus *event.Bus, logger *logging.Logger) (*Engine, error) {
	if bus == nil {
		bus = event.NewBus()
	}
	if logger == nil {
		logger = logging.NopLogger()
	}

	sched, err := scheduler.New(scheduler.Schedule{
		Every: cfg.Session.Every(),
		For:   cfg.Session.For(),
	})
	if err != nil {
		return nil, errors.NewConfigError("invalid session schedule", errors.ErrConfigInvalid)
	}

	guard, err := buildGuard(&cfg.Session)
	if err != nil {
		return nil, err
	}

	var provider screenshot.Provider
	if cfg.Session.UseMock {
		provider = screenshot.NewMockProvider()
	} else {
		provider = screenshot.NewOSProvider()
	}

	an := buildAnalyzer(&cfg.Session, &cfg.Analyzer)

	e := &Engine{
		sessionID:    uuid.NewString(),
		session:      cfg.Session,
		scheduler:    sched,
		guard:        guard,
		provider:     provider,
		an:           an,
		contextLog:   contextlog.New(cfg.Session.ContextPath),
		bus:          bus,
		logger:       logger.WithComponent("engine"),
		commands:     make(chan Command, commandQueueDepth),
		signals:      make(chan watchdog.Signal, signalQueueDepth),
		done:         make(chan struct{}),
		state:        StateIdle,
		pauseReasons: newPauseReasonSet(),
	}
	return e, nil
}

// buildGuard resolves the privacy gate from configuration. UseMock selects
// AllowAllGuard regardless of PrivacyPolicyPath: the foreground-app probe a
// FileGuard depends on is a platform shell-out, and a mock session is
// meant to be deterministic and host-independent.
func buildGuard(cfg *config.SessionConfig) (privacy.Guard, error) {
	if cfg.UseMock || cfg.PrivacyPolicyPath == "" {
		return privacy.AllowAllGuard{ConfigPath: cfg.PrivacyPolicyPath}, nil
	}
	guard, err := privacy.NewFileGuard(cfg.PrivacyPolicyPath, privacy.NewOSForegroundProvider())
	if err != nil {
		return nil, err
	}
	return guard, nil
}

// buildAnalyzer resolves the Analyzer implementation from configuration.
// A nil return means analysis is disabled outright: the engine then never
// calls into the Analyzer interface and records only a locally-derived
// summary for each capture.
func buildAnalyzer(session *config.SessionConfig, cfg *config.AnalyzerConfig) analyzer.Analyzer {
	if !session.Analyze {
		return nil
	}
	if session.UseMock {
		return analyzer.NewFallbackAnalyzer("mock_mode")
	}

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return analyzer.NewFallbackAnalyzer("no_api_key")
	}
	return analyzer.NewOpenAIAnalyzer(apiKey,
		analyzer.WithBaseURL(cfg.BaseURL),
		analyzer.WithMaxRetries(cfg.MaxRetries),
		analyzer.WithTimeout(cfg.Timeout()),
	)
}

// SessionID returns the session's generated identifier.
func (e *Engine) SessionID() string { return e.sessionID }

// Bus returns the event bus this engine publishes to. Shells subscribe to
// it before calling Run.
func (e *Engine) Bus() *event.Bus { return e.bus }

// State returns a snapshot of the session's current lifecycle state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Counters returns a snapshot of the session's running counters.
func (e *Engine) Counters() event.SessionCounters {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.counters
}

// PrivacyStatus returns a snapshot of the active privacy policy.
func (e *Engine) PrivacyStatus() privacy.Status {
	return e.guard.Status()
}
