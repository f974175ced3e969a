// Package privacy decides, per capture attempt, whether the foreground
// application is sensitive enough that the screenshot should be withheld.
package privacy

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/lucidtrace/recall/internal/errors"
)

// Decision is the outcome of evaluating a policy against the current
// foreground application.
type Decision struct {
	Allow  bool
	Reason string // populated when Allow is false
}

func allow() Decision { return Decision{Allow: true} }

func skip(reason string) Decision { return Decision{Allow: false, Reason: reason} }

// Status summarizes a policy's configuration for display by shells (the
// CLI's status command, a future doctor command).
type Status struct {
	ConfigPath  string
	Enabled     bool
	RuleSummary string
}

// ForegroundApp describes the application currently in focus.
type ForegroundApp struct {
	AppName              string
	BundleID             string // empty if unavailable
	BrowserPrivateWindow *bool  // nil if not a known browser or undetectable
}

// configFile mirrors the on-disk TOML schema documented in SPEC_FULL.md: a
// deny list of apps/bundle IDs, a browser-private-window toggle, and an
// allow-list that overrides the private-window denial (never a deny_apps
// match).
type configFile struct {
	Deny  denySection  `toml:"deny"`
	Allow allowSection `toml:"allow"`
}

type denySection struct {
	Apps                  []string `toml:"apps"`
	BrowserPrivateWindows *bool    `toml:"browser_private_windows"`
	Domains               []string `toml:"domains"` // parsed, not yet enforced
}

type allowSection struct {
	OverrideApps []string `toml:"override"`
}

// policy is the parsed, evaluatable form of a privacy configuration.
type policy struct {
	denyApps                  []string
	allowOverride             []string
	denyBrowserPrivateWindows bool
}

func defaultPolicy() policy {
	return policy{denyBrowserPrivateWindows: true}
}

// parsePolicy parses raw TOML bytes into a policy. An empty file parses to
// the default policy (deny nothing, exclude private browser windows).
func parsePolicy(data []byte) (policy, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return defaultPolicy(), nil
	}

	var cf configFile
	if err := toml.Unmarshal(data, &cf); err != nil {
		return policy{}, fmt.Errorf("parse privacy config: %w", err)
	}

	browserPrivate := true
	if cf.Deny.BrowserPrivateWindows != nil {
		browserPrivate = *cf.Deny.BrowserPrivateWindows
	}

	return policy{
		denyApps:                  cf.Deny.Apps,
		allowOverride:             cf.Allow.OverrideApps,
		denyBrowserPrivateWindows: browserPrivate,
	}, nil
}

// ruleDenyApp and ruleDenyPrivateWindow are the only two rule labels a
// policy decision can produce. Per the memory log's format contract these
// are stable tokens that never embed window titles, URLs, or foreground app
// names.
const (
	ruleDenyApp           = "privacy:deny_app"
	ruleDenyPrivateWindow = "privacy:private_window"
)

// decisionFor evaluates the policy against a foreground app snapshot.
// Allow-override rules win even over a matching deny rule, but never over an
// explicit deny_apps match.
func (p policy) decisionFor(app ForegroundApp) Decision {
	if matchesAny(p.denyApps, app) {
		return skip(ruleDenyApp)
	}
	if p.denyBrowserPrivateWindows && app.BrowserPrivateWindow != nil && *app.BrowserPrivateWindow {
		if matchesAny(p.allowOverride, app) {
			return allow()
		}
		return skip(ruleDenyPrivateWindow)
	}
	return allow()
}

// matchesAny reports whether any rule matches the foreground app. A rule
// containing a '.' is matched against the bundle ID; otherwise it is matched
// against the app name. Matching is case-insensitive.
func matchesAny(rules []string, app ForegroundApp) bool {
	for _, rule := range rules {
		if rule == "" {
			continue
		}
		if strings.Contains(rule, ".") {
			if app.BundleID != "" && strings.EqualFold(rule, app.BundleID) {
				return true
			}
			continue
		}
		if strings.EqualFold(rule, app.AppName) {
			return true
		}
	}
	return false
}

func (p policy) enabled() bool {
	return len(p.denyApps) > 0 || p.denyBrowserPrivateWindows
}

func (p policy) ruleSummary() string {
	if !p.enabled() {
		return "disabled"
	}
	parts := make([]string, 0, 2)
	if n := len(p.denyApps); n > 0 {
		if n == 1 {
			parts = append(parts, "1 denied app rule")
		} else {
			parts = append(parts, fmt.Sprintf("%d denied app rules", n))
		}
	}
	if p.denyBrowserPrivateWindows {
		parts = append(parts, "private windows excluded")
	}
	return strings.Join(parts, ", ")
}

// EnsureSampleConfig writes a commented sample privacy configuration to path
// if no file exists there yet, creating parent directories as needed.
func EnsureSampleConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return errors.NewPrivacyError("failed to stat privacy config", err).WithConfigPath(path)
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.NewPrivacyError("failed to create privacy config directory", err).WithConfigPath(path)
		}
	}

	const sample = `# Applications and bundle IDs that should never be captured.
[deny]
apps = ["1Password", "com.apple.KeychainAccess"]
browser_private_windows = true

# Apps that override a deny rule (useful for carving out exceptions).
[allow]
override = []
`
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		return errors.NewPrivacyError("failed to write sample privacy config", err).WithConfigPath(path)
	}
	return nil
}
