package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "session.capture_stride")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the RecallConfig for invalid values and returns all
// validation errors found. Corresponds to the ConfigInvalid error class
// (§7): any non-empty result is terminal before a session starts.
func (c *RecallConfig) Validate() []ValidationError {
	var errs []ValidationError

	errs = append(errs, c.validateSession()...)
	errs = append(errs, c.validateAnalyzer()...)
	errs = append(errs, c.validateLogging()...)

	return errs
}

// validateSession validates the SessionConfig
func (c *RecallConfig) validateSession() []ValidationError {
	var errs []ValidationError
	s := &c.Session

	if s.EveryMs < 1 {
		errs = append(errs, ValidationError{
			Field:   "session.every_ms",
			Value:   s.EveryMs,
			Message: "must be at least 1 millisecond",
		})
	}

	if s.ForMs < 0 {
		errs = append(errs, ValidationError{
			Field:   "session.for_ms",
			Value:   s.ForMs,
			Message: "must be non-negative (0 yields a session with zero ticks)",
		})
	}

	if strings.TrimSpace(s.OutputDir) == "" {
		errs = append(errs, ValidationError{
			Field:   "session.output_dir",
			Value:   s.OutputDir,
			Message: "cannot be empty",
		})
	}

	if strings.TrimSpace(s.ContextPath) == "" {
		errs = append(errs, ValidationError{
			Field:   "session.context_path",
			Value:   s.ContextPath,
			Message: "cannot be empty",
		})
	}

	if strings.TrimSpace(s.FilenamePrefix) == "" {
		errs = append(errs, ValidationError{
			Field:   "session.filename_prefix",
			Value:   s.FilenamePrefix,
			Message: "cannot be empty",
		})
	} else if strings.ContainsAny(s.FilenamePrefix, "/\\\x00") {
		errs = append(errs, ValidationError{
			Field:   "session.filename_prefix",
			Value:   s.FilenamePrefix,
			Message: "cannot contain path separators or null characters",
		})
	}

	if s.CaptureStride < 1 {
		errs = append(errs, ValidationError{
			Field:   "session.capture_stride",
			Value:   s.CaptureStride,
			Message: "must be at least 1 (capture attempted on every tick)",
		})
	}

	if s.Analyze {
		if strings.TrimSpace(s.Model) == "" {
			errs = append(errs, ValidationError{
				Field:   "session.model",
				Value:   s.Model,
				Message: "cannot be empty when session.analyze is true",
			})
		}
		if strings.TrimSpace(s.Prompt) == "" {
			errs = append(errs, ValidationError{
				Field:   "session.prompt",
				Value:   s.Prompt,
				Message: "cannot be empty when session.analyze is true",
			})
		}
	}

	return errs
}

// validateAnalyzer validates the AnalyzerConfig
func (c *RecallConfig) validateAnalyzer() []ValidationError {
	var errs []ValidationError
	a := &c.Analyzer

	if c.Session.Analyze && strings.TrimSpace(a.BaseURL) == "" {
		errs = append(errs, ValidationError{
			Field:   "analyzer.base_url",
			Value:   a.BaseURL,
			Message: "cannot be empty when session.analyze is true",
		})
	}

	if a.TimeoutMs < 1 {
		errs = append(errs, ValidationError{
			Field:   "analyzer.timeout_ms",
			Value:   a.TimeoutMs,
			Message: "must be at least 1 millisecond",
		})
	}

	if a.MaxRetries < 0 {
		errs = append(errs, ValidationError{
			Field:   "analyzer.max_retries",
			Value:   a.MaxRetries,
			Message: "must be non-negative",
		})
	}

	const maxRetriesLimit = 10
	if a.MaxRetries > maxRetriesLimit {
		errs = append(errs, ValidationError{
			Field:   "analyzer.max_retries",
			Value:   a.MaxRetries,
			Message: fmt.Sprintf("exceeds maximum of %d", maxRetriesLimit),
		})
	}

	return errs
}

// validateLogging validates the LoggingConfig
func (c *RecallConfig) validateLogging() []ValidationError {
	var errs []ValidationError
	l := &c.Logging

	if l.Level != "" && !slices.Contains(ValidLogLevels(), l.Level) {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Value:   l.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	if l.MaxSizeMB <= 0 {
		errs = append(errs, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   l.MaxSizeMB,
			Message: "must be positive",
		})
	}

	const maxLogSizeMB = 1000 // 1GB
	if l.MaxSizeMB > maxLogSizeMB {
		errs = append(errs, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   l.MaxSizeMB,
			Message: fmt.Sprintf("exceeds maximum of %dMB", maxLogSizeMB),
		})
	}

	if l.MaxBackups < 0 {
		errs = append(errs, ValidationError{
			Field:   "logging.max_backups",
			Value:   l.MaxBackups,
			Message: "must be non-negative",
		})
	}

	return errs
}
