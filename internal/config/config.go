package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// RecallConfig represents the complete engine configuration.
type RecallConfig struct {
	Session  SessionConfig  `mapstructure:"session"`
	Analyzer AnalyzerConfig `mapstructure:"analyzer"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// SessionConfig controls the capture session's cadence, storage, and
// analysis behavior. Mirrors the engine's SessionConfig data model (§3).
type SessionConfig struct {
	// EveryMs is the capture cadence, in milliseconds. Must be >= 1.
	EveryMs int64 `mapstructure:"every_ms"`
	// ForMs is the total session duration, in milliseconds. 0 yields a
	// schedule that is already finished at start: a Done session with zero
	// captures.
	ForMs int64 `mapstructure:"for_ms"`
	// OutputDir is the directory captured PNGs are written to.
	// If empty, defaults to a "captures" subdirectory of DefaultDataDir().
	OutputDir string `mapstructure:"output_dir"`
	// ContextPath is the path to the append-only memory log (context.md).
	// If empty, defaults to a "context.md" file inside DefaultDataDir().
	ContextPath string `mapstructure:"context_path"`
	// FilenamePrefix prefixes every captured PNG's filename (default: "recall").
	FilenamePrefix string `mapstructure:"filename_prefix"`
	// CaptureStride throttles capture attempts: a capture is attempted every
	// CaptureStride-th tick (must be >= 1; default: 1, i.e. every tick).
	CaptureStride uint32 `mapstructure:"capture_stride"`
	// MinFreeBytes is the minimum free disk space the disk guard must keep
	// available in OutputDir's filesystem before a capture is attempted.
	MinFreeBytes uint64 `mapstructure:"min_free_bytes"`
	// MaxSessionBytes caps the total bytes this session may write to
	// OutputDir. 0 means unlimited. Unlike MinFreeBytes, exceeding this cap
	// never triggers reclaim of this session's own files.
	MaxSessionBytes uint64 `mapstructure:"max_session_bytes"`
	// Analyze enables analyzer-assisted summarization of each capture.
	Analyze bool `mapstructure:"analyze"`
	// Model is the analyzer model name (e.g. "gpt-4o").
	Model string `mapstructure:"model"`
	// Prompt is the instruction sent to the analyzer alongside each capture.
	Prompt string `mapstructure:"prompt"`
	// PrivacyPolicyPath points at a privacy.toml file (§6.2). Empty means no
	// privacy policy file is loaded; the privacy gate then allows every
	// capture, browser private windows included.
	PrivacyPolicyPath string `mapstructure:"privacy_policy_path"`
	// UseMock selects the in-process mock ScreenshotProvider instead of the
	// real OS-level capture path, and skips the permission, screen-lock and
	// display-sleep watchdogs (the screenshot hard timeout still applies). Intended
	// for CI and local development without screen-recording permission.
	UseMock bool `mapstructure:"use_mock"`
}

// Every returns the capture cadence as a time.Duration.
func (s *SessionConfig) Every() time.Duration {
	return time.Duration(s.EveryMs) * time.Millisecond
}

// For returns the total session duration as a time.Duration (0 yields a
// schedule with zero ticks).
func (s *SessionConfig) For() time.Duration {
	return time.Duration(s.ForMs) * time.Millisecond
}

// AnalyzerConfig controls the analyzer's HTTP client and retry behavior.
type AnalyzerConfig struct {
	// BaseURL is the OpenAI-compatible Chat Completions endpoint. Defaults to
	// https://api.openai.com/v1; overridable for local/self-hosted
	// vision-capable models.
	BaseURL string `mapstructure:"base_url"`
	// APIKey authenticates requests. If empty, the analyzer falls back to the
	// OPENAI_API_KEY environment variable at construction time.
	APIKey string `mapstructure:"api_key"`
	// TimeoutMs bounds a single analysis call, end to end, including retries.
	TimeoutMs int `mapstructure:"timeout_ms"`
	// MaxRetries is the number of retry attempts for transient failure
	// classes (rate limits, 5xx, connection resets) before falling back.
	MaxRetries int `mapstructure:"max_retries"`
}

// Timeout returns the analyzer deadline as a time.Duration.
func (a *AnalyzerConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutMs) * time.Millisecond
}

// LoggingConfig controls debug logging behavior.
type LoggingConfig struct {
	// Enabled controls whether debug logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation (default: 10)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of backup log files to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups"`
}

// Default returns a RecallConfig with sensible default values.
func Default() *RecallConfig {
	dataDir := DefaultDataDir()
	return &RecallConfig{
		Session: SessionConfig{
			EveryMs:           30000,              // 30s between captures
			ForMs:             8 * 60 * 60 * 1000, // 8h workday session
			OutputDir:         filepath.Join(dataDir, "captures"),
			ContextPath:       filepath.Join(dataDir, "context.md"),
			FilenamePrefix:    "recall",
			CaptureStride:     1,
			MinFreeBytes:      1 << 30, // 1GiB
			MaxSessionBytes:   0,       // unlimited
			Analyze:           true,
			Model:             "gpt-4o",
			Prompt:            "Describe what is visible on screen in one concise sentence.",
			PrivacyPolicyPath: DefaultPrivacyConfigPath(),
			UseMock:           false,
		},
		Analyzer: AnalyzerConfig{
			BaseURL:    "https://api.openai.com/v1",
			APIKey:     "",
			TimeoutMs:  30000,
			MaxRetries: 3,
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// SetDefaults registers default values with viper.
func SetDefaults() {
	defaults := Default()

	// Session defaults
	viper.SetDefault("session.every_ms", defaults.Session.EveryMs)
	viper.SetDefault("session.for_ms", defaults.Session.ForMs)
	viper.SetDefault("session.output_dir", defaults.Session.OutputDir)
	viper.SetDefault("session.context_path", defaults.Session.ContextPath)
	viper.SetDefault("session.filename_prefix", defaults.Session.FilenamePrefix)
	viper.SetDefault("session.capture_stride", defaults.Session.CaptureStride)
	viper.SetDefault("session.min_free_bytes", defaults.Session.MinFreeBytes)
	viper.SetDefault("session.max_session_bytes", defaults.Session.MaxSessionBytes)
	viper.SetDefault("session.analyze", defaults.Session.Analyze)
	viper.SetDefault("session.model", defaults.Session.Model)
	viper.SetDefault("session.prompt", defaults.Session.Prompt)
	viper.SetDefault("session.privacy_policy_path", defaults.Session.PrivacyPolicyPath)
	viper.SetDefault("session.use_mock", defaults.Session.UseMock)

	// Analyzer defaults
	viper.SetDefault("analyzer.base_url", defaults.Analyzer.BaseURL)
	viper.SetDefault("analyzer.api_key", defaults.Analyzer.APIKey)
	viper.SetDefault("analyzer.timeout_ms", defaults.Analyzer.TimeoutMs)
	viper.SetDefault("analyzer.max_retries", defaults.Analyzer.MaxRetries)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
}

// Load reads the configuration from viper into a RecallConfig struct and
// validates it.
func Load() (*RecallConfig, error) {
	var cfg RecallConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function). Falls back
// to Default() if unmarshaling or validation fails.
func Get() *RecallConfig {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "recall")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".recall"
	}
	return filepath.Join(home, ".config", "recall")
}

// ConfigFile returns the path to the config file.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DefaultDataDir returns the default directory captures, the context log,
// and the privacy policy live in when left unconfigured. Grounded on
// original_source/src/paths.rs's default_data_dir: macOS resolves to
// "$HOME/Library/Application Support/recall", falling back to "." if the
// home directory cannot be determined. Other platforms fall back to
// ConfigDir(), since the Application Support convention is macOS-specific.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Application Support", "recall")
	}
	return ConfigDir()
}

// DefaultPrivacyConfigPath returns the default path of the privacy policy
// file, grounded on original_source/src/paths.rs's
// default_privacy_config_path (DefaultDataDir() joined with "privacy.toml").
func DefaultPrivacyConfigPath() string {
	return filepath.Join(DefaultDataDir(), "privacy.toml")
}

// ExpandHome expands a leading "~" in path to the user's home directory.
// Paths without a leading "~" are returned unchanged.
func ExpandHome(path string) string {
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
