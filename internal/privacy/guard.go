package privacy

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/lucidtrace/recall/internal/errors"
)

// foregroundTimeout bounds how long a single foreground-app probe may take,
// so a hung AppleScript call can never stall the capture loop.
const foregroundTimeout = 300 * time.Millisecond

// reasonDetectorUnavailable is returned when the foreground-app probe fails
// or times out. Detection failures fail closed: a tick we cannot evaluate is
// withheld, not allowed.
const reasonDetectorUnavailable = "privacy:detector_unavailable"

// Guard decides, for each capture attempt, whether the screenshot should be
// allowed or withheld, and reports the active policy's configuration.
type Guard interface {
	Decision(ctx context.Context) Decision
	Status() Status
	Reload() error
}

// AllowAllGuard never withholds a capture. It is used when privacy
// enforcement is disabled outright.
type AllowAllGuard struct {
	ConfigPath string
}

func (g AllowAllGuard) Decision(context.Context) Decision { return allow() }

func (g AllowAllGuard) Status() Status {
	return Status{ConfigPath: g.ConfigPath, Enabled: false, RuleSummary: "disabled"}
}

func (g AllowAllGuard) Reload() error { return nil }

// FileGuard evaluates a TOML-backed policy loaded from disk, reloading it
// whenever the file changes on disk (detected via fsnotify rather than the
// mtime polling the policy format was originally prototyped with).
type FileGuard struct {
	configPath string
	provider   ForegroundProvider

	mu     sync.RWMutex
	policy policy

	onReload func(ruleSummary string)

	watcher *fsnotify.Watcher
	stopCh  chan struct{}
}

// NewFileGuard constructs a FileGuard and performs an initial load. If no
// file exists at configPath, a commented sample policy is written there
// first so the session starts from a documented policy rather than a silent
// empty one.
func NewFileGuard(configPath string, provider ForegroundProvider) (*FileGuard, error) {
	g := &FileGuard{configPath: configPath, provider: provider}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := EnsureSampleConfig(configPath); err != nil {
			return nil, err
		}
	}

	if err := g.load(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *FileGuard) load() error {
	data, err := os.ReadFile(g.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			g.mu.Lock()
			g.policy = defaultPolicy()
			g.mu.Unlock()
			return nil
		}
		return errors.NewPrivacyError("failed to read privacy config", err).WithConfigPath(g.configPath)
	}

	p, err := parsePolicy(data)
	if err != nil {
		return errors.NewPrivacyError("failed to parse privacy config", err).WithConfigPath(g.configPath)
	}

	g.mu.Lock()
	g.policy = p
	g.mu.Unlock()
	return nil
}

// Decision evaluates the current policy against the foreground application.
// A single detector call serves both the deny-apps and private-window
// checks. If the detector fails or exceeds its budget, the tick fails
// closed: it is withheld, not allowed.
func (g *FileGuard) Decision(ctx context.Context) Decision {
	g.mu.RLock()
	p := g.policy
	g.mu.RUnlock()

	if !p.enabled() {
		return allow()
	}

	ctx, cancel := context.WithTimeout(ctx, foregroundTimeout)
	defer cancel()

	app, err := g.provider.ForegroundApp(ctx)
	if err != nil {
		return skip(reasonDetectorUnavailable)
	}

	return p.decisionFor(app)
}

// Status reports the active policy's configuration for display by shells.
func (g *FileGuard) Status() Status {
	g.mu.RLock()
	p := g.policy
	g.mu.RUnlock()

	return Status{
		ConfigPath:  g.configPath,
		Enabled:     p.enabled(),
		RuleSummary: p.ruleSummary(),
	}
}

// Reload force-reparses the config file regardless of whether it has
// changed, used by the CLI's reload-privacy command.
func (g *FileGuard) Reload() error {
	if err := g.load(); err != nil {
		return err
	}
	if g.onReload != nil {
		g.onReload(g.Status().RuleSummary)
	}
	return nil
}

// Watch starts an fsnotify watch on the config file's directory, calling
// onReload with the newly active rule summary whenever the file is written
// and successfully reparsed. It returns a stop function; callers must call
// it to release the watcher. A failed reparse is ignored so a transient
// editor save (e.g. a temp-file rename) does not clear a good policy.
func (g *FileGuard) Watch(onReload func(ruleSummary string)) (stop func(), err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.NewPrivacyError("failed to start privacy config watcher", err).WithConfigPath(g.configPath)
	}

	dir := filepath.Dir(g.configPath)
	if dir == "" {
		dir = "."
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, errors.NewPrivacyError("failed to watch privacy config directory", err).WithConfigPath(g.configPath)
	}

	g.watcher = watcher
	g.onReload = onReload
	g.stopCh = make(chan struct{})

	go g.watchLoop()

	return func() {
		close(g.stopCh)
		_ = watcher.Close()
	}, nil
}

func (g *FileGuard) watchLoop() {
	for {
		select {
		case <-g.stopCh:
			return
		case ev, ok := <-g.watcher.Events:
			if !ok {
				return
			}
			if ev.Name != g.configPath {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := g.load(); err == nil && g.onReload != nil {
				g.onReload(g.Status().RuleSummary)
			}
		case _, ok := <-g.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}
