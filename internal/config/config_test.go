package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}

	if cfg.Session.EveryMs != 30000 {
		t.Errorf("Session.EveryMs = %d, want 30000", cfg.Session.EveryMs)
	}
	if cfg.Session.ForMs != 8*60*60*1000 {
		t.Errorf("Session.ForMs = %d, want %d (8h)", cfg.Session.ForMs, 8*60*60*1000)
	}
	if cfg.Session.FilenamePrefix != "recall" {
		t.Errorf("Session.FilenamePrefix = %q, want %q", cfg.Session.FilenamePrefix, "recall")
	}
	if cfg.Session.CaptureStride != 1 {
		t.Errorf("Session.CaptureStride = %d, want 1", cfg.Session.CaptureStride)
	}
	if cfg.Session.MinFreeBytes != 1<<30 {
		t.Errorf("Session.MinFreeBytes = %d, want %d", cfg.Session.MinFreeBytes, uint64(1)<<30)
	}
	if cfg.Session.MaxSessionBytes != 0 {
		t.Errorf("Session.MaxSessionBytes = %d, want 0 (unlimited)", cfg.Session.MaxSessionBytes)
	}
	if !cfg.Session.Analyze {
		t.Error("Session.Analyze should be true by default")
	}
	if cfg.Session.UseMock {
		t.Error("Session.UseMock should be false by default")
	}
	if cfg.Session.OutputDir == "" {
		t.Error("Session.OutputDir should not be empty")
	}
	if cfg.Session.ContextPath == "" {
		t.Error("Session.ContextPath should not be empty")
	}
	if cfg.Session.PrivacyPolicyPath == "" {
		t.Error("Session.PrivacyPolicyPath should not be empty")
	}

	if cfg.Analyzer.BaseURL != "https://api.openai.com/v1" {
		t.Errorf("Analyzer.BaseURL = %q, want %q", cfg.Analyzer.BaseURL, "https://api.openai.com/v1")
	}
	if cfg.Analyzer.TimeoutMs != 30000 {
		t.Errorf("Analyzer.TimeoutMs = %d, want 30000", cfg.Analyzer.TimeoutMs)
	}
	if cfg.Analyzer.MaxRetries != 3 {
		t.Errorf("Analyzer.MaxRetries = %d, want 3", cfg.Analyzer.MaxRetries)
	}

	if !cfg.Logging.Enabled {
		t.Error("Logging.Enabled should be true by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
}

func TestSessionConfig_Every(t *testing.T) {
	tests := []struct {
		ms       int64
		expected time.Duration
	}{
		{100, 100 * time.Millisecond},
		{30000, 30 * time.Second},
		{1000, 1 * time.Second},
		{0, 0},
	}

	for _, tt := range tests {
		cfg := SessionConfig{EveryMs: tt.ms}
		result := cfg.Every()
		if result != tt.expected {
			t.Errorf("Every() with %dms = %v, want %v", tt.ms, result, tt.expected)
		}
	}
}

func TestSessionConfig_For(t *testing.T) {
	cfg := SessionConfig{ForMs: 3600000}
	if cfg.For() != time.Hour {
		t.Errorf("For() = %v, want %v", cfg.For(), time.Hour)
	}

	zero := SessionConfig{ForMs: 0}
	if zero.For() != 0 {
		t.Errorf("For() with ForMs=0 = %v, want 0", zero.For())
	}
}

func TestAnalyzerConfig_Timeout(t *testing.T) {
	cfg := AnalyzerConfig{TimeoutMs: 30000}
	if cfg.Timeout() != 30*time.Second {
		t.Errorf("Timeout() = %v, want %v", cfg.Timeout(), 30*time.Second)
	}
}

func TestConfigDir(t *testing.T) {
	t.Run("with XDG_CONFIG_HOME", func(t *testing.T) {
		original := os.Getenv("XDG_CONFIG_HOME")
		defer func() { _ = os.Setenv("XDG_CONFIG_HOME", original) }()

		_ = os.Setenv("XDG_CONFIG_HOME", "/custom/config")
		result := ConfigDir()
		expected := "/custom/config/recall"
		if result != expected {
			t.Errorf("ConfigDir() = %q, want %q", result, expected)
		}
	})

	t.Run("without XDG_CONFIG_HOME", func(t *testing.T) {
		original := os.Getenv("XDG_CONFIG_HOME")
		defer func() { _ = os.Setenv("XDG_CONFIG_HOME", original) }()

		_ = os.Setenv("XDG_CONFIG_HOME", "")
		result := ConfigDir()

		home, _ := os.UserHomeDir()
		expected := filepath.Join(home, ".config", "recall")
		if result != expected {
			t.Errorf("ConfigDir() = %q, want %q", result, expected)
		}
	})
}

func TestConfigFile(t *testing.T) {
	original := os.Getenv("XDG_CONFIG_HOME")
	defer func() { _ = os.Setenv("XDG_CONFIG_HOME", original) }()

	_ = os.Setenv("XDG_CONFIG_HOME", "/custom/config")
	result := ConfigFile()
	expected := "/custom/config/recall/config.yaml"
	if result != expected {
		t.Errorf("ConfigFile() = %q, want %q", result, expected)
	}
}

func TestGet(t *testing.T) {
	SetDefaults()

	cfg := Get()
	if cfg == nil {
		t.Fatal("Get() returned nil")
	}

	if cfg.Session.FilenamePrefix != "recall" {
		t.Errorf("Get().Session.FilenamePrefix = %q, want %q", cfg.Session.FilenamePrefix, "recall")
	}
}

func TestDefaultDataDir(t *testing.T) {
	dir := DefaultDataDir()
	if dir == "" {
		t.Error("DefaultDataDir() should not be empty")
	}
}

func TestDefaultPrivacyConfigPath(t *testing.T) {
	path := DefaultPrivacyConfigPath()
	if filepath.Base(path) != "privacy.toml" {
		t.Errorf("DefaultPrivacyConfigPath() = %q, want a path ending in privacy.toml", path)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home directory")
	}

	tests := []struct {
		input    string
		expected string
	}{
		{"~", home},
		{"~/captures", filepath.Join(home, "captures")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}

	for _, tt := range tests {
		result := ExpandHome(tt.input)
		if result != tt.expected {
			t.Errorf("ExpandHome(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}
