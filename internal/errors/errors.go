// Package errors provides centralized error definitions and error handling utilities
// for the recall engine. It defines domain-specific errors, semantic error types,
// error constructors with context wrapping, and error classification helpers.
//
// # Error Types
//
// The package provides two categories of errors:
//
// Domain-specific errors represent errors from specific engine subsystems, one per
// row of the error taxonomy:
//   - ConfigError: invalid SessionConfig/RecallConfig values, surfaced before session start
//   - PermissionError: missing screen-recording entitlement, surfaced by preflight
//   - ScreenshotError: ScreenshotProvider failures (hung watchdog, capture failure)
//   - DiskGuardError: pre-capture free-space/session-cap failures
//   - ContextLogError: append/fsync failures on the memory log
//   - AnalyzerError: non-retryable/malformed/timeout analyzer outcomes
//   - PrivacyError: privacy policy load/parse/detector failures
//   - WatchdogError: a watchdog's underlying OS probe is unavailable
//
// Semantic errors represent common error conditions:
//   - NotFoundError: resource not found
//   - AlreadyExistsError: resource already exists
//   - ValidationError: invalid input or state
//   - TimeoutError: operation timed out
//
// # Usage
//
// Creating errors:
//
//	// Domain-specific error
//	err := errors.NewAnalyzerError("malformed payload", errors.ErrAnalyzerMalformed)
//
//	// Semantic error
//	err := errors.NewNotFoundError("capture", "capture-000007.png")
//
//	// With context wrapping
//	err := errors.NewDiskGuardError("free space below minimum", nil).WithOutputDir("/captures")
//
// Checking errors:
//
//	// Check for specific sentinel errors
//	if errors.Is(err, errors.ErrDiskBelowMin) { ... }
//
//	// Check for error types
//	var analyzerErr *errors.AnalyzerError
//	if errors.As(err, &analyzerErr) { ... }
//
//	// Use classification helpers
//	if errors.IsRetryable(err) { ... }
//	if errors.IsUserFacing(err) { ... }
//
// # Error Classification
//
// Errors can be classified by severity and behavior:
//   - Retryable: transient errors that may succeed on retry
//   - UserFacing: errors safe to display to users (vs internal errors)
//   - Severity: Debug, Info, Warning, Error, Critical
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Config/permission sentinel errors
var (
	// ErrConfigInvalid indicates the session configuration failed validation.
	ErrConfigInvalid = New("config invalid")
	// ErrPermissionMissing indicates the screen-recording entitlement is not granted.
	ErrPermissionMissing = New("screen recording permission missing")
)

// Capture-path sentinel errors
var (
	// ErrScreenshotHung indicates the screenshot provider exceeded its hard watchdog timeout.
	ErrScreenshotHung = New("screenshot provider hung")
	// ErrScreenshotFailed indicates the screenshot provider returned an error.
	ErrScreenshotFailed = New("screenshot capture failed")
	// ErrDiskBelowMin indicates free space remained below the configured minimum after reclaim.
	ErrDiskBelowMin = New("disk free space below minimum")
	// ErrSessionCapExceeded indicates the session storage cap would be exceeded by this capture.
	ErrSessionCapExceeded = New("session byte cap exceeded")
	// ErrLogIO indicates a write or fsync failure on the context log.
	ErrLogIO = New("context log write failed")
)

// Analyzer sentinel errors
var (
	// ErrAnalyzerTransient indicates a retryable analyzer failure class (internal; never surfaced).
	ErrAnalyzerTransient = New("analyzer transient failure")
	// ErrAnalyzerNonRetryable indicates a non-retryable analyzer failure class.
	ErrAnalyzerNonRetryable = New("analyzer non-retryable failure")
	// ErrAnalyzerMalformed indicates the analyzer's success payload was missing the summary field.
	ErrAnalyzerMalformed = New("analyzer malformed payload")
	// ErrAnalyzerTimeout indicates the analyzer exceeded its total deadline.
	ErrAnalyzerTimeout = New("analyzer deadline exceeded")
)

// Privacy/watchdog sentinel errors
var (
	// ErrPrivacyDetectorUnavailable indicates the foreground-app probe failed or timed out.
	ErrPrivacyDetectorUnavailable = New("privacy detector unavailable")
	// ErrWatchdogUnavailable indicates a watchdog's underlying OS probe could not be queried.
	ErrWatchdogUnavailable = New("watchdog probe unavailable")
)

// General sentinel errors
var (
	// ErrTimeout indicates that an operation timed out.
	ErrTimeout = New("operation timed out")
	// ErrCanceled indicates that an operation was canceled.
	ErrCanceled = New("operation canceled")
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
	// ErrOperationFailed indicates a general operation failure.
	ErrOperationFailed = New("operation failed")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// RecallError is the base interface for all engine errors. It extends the
// standard error interface with additional methods for error handling and
// classification.
type RecallError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Is reports whether this error matches the target error.
	// This is used by errors.Is() for error comparison.
	Is(target error) bool

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsRetryable returns true if the error is transient and the operation
	// may succeed on retry.
	IsRetryable() bool

	// IsUserFacing returns true if the error message is safe to display
	// to end users.
	IsUserFacing() bool
}

// -----------------------------------------------------------------------------
// Base Error Implementation
// -----------------------------------------------------------------------------

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	retryable  bool
	userFacing bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsRetryable returns whether the error is retryable.
func (e *baseError) IsRetryable() bool {
	return e.retryable
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// ConfigError represents an invalid SessionConfig or RecallConfig. It is always
// terminal: the engine refuses to start its first tick.
//
// Example:
//
//	err := errors.NewConfigError("capture_stride must be >= 1", errors.ErrConfigInvalid)
//	err = err.WithField("capture_stride")
type ConfigError struct {
	baseError
	Field string
}

// NewConfigError creates a new ConfigError.
func NewConfigError(message string, cause error) *ConfigError {
	return &ConfigError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityCritical,
			retryable:  false,
			userFacing: true,
		},
	}
}

// WithField adds the offending config field path to the error context.
func (e *ConfigError) WithField(field string) *ConfigError {
	e.Field = field
	return e
}

// Error returns the formatted error message.
func (e *ConfigError) Error() string {
	prefix := "config error"
	if e.Field != "" {
		prefix = fmt.Sprintf("config error [field=%s]", e.Field)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ConfigError) Is(target error) bool {
	if _, ok := target.(*ConfigError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// PermissionError represents a missing or revoked OS-level capture permission.
//
// Example:
//
//	err := errors.NewPermissionError("screen recording not granted", errors.ErrPermissionMissing)
type PermissionError struct {
	baseError
	Permission string
}

// NewPermissionError creates a new PermissionError.
func NewPermissionError(message string, cause error) *PermissionError {
	return &PermissionError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityCritical,
			retryable:  false,
			userFacing: true,
		},
	}
}

// WithPermission adds the name of the missing permission to the error context.
func (e *PermissionError) WithPermission(permission string) *PermissionError {
	e.Permission = permission
	return e
}

// Error returns the formatted error message.
func (e *PermissionError) Error() string {
	prefix := "permission error"
	if e.Permission != "" {
		prefix = fmt.Sprintf("permission error [permission=%s]", e.Permission)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *PermissionError) Is(target error) bool {
	if _, ok := target.(*PermissionError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// ScreenshotError represents a ScreenshotProvider failure: a hung capture past the
// 10s hard watchdog, or a capture call that returned an error.
//
// Example:
//
//	err := errors.NewScreenshotError("capture watchdog fired", errors.ErrScreenshotHung)
//	err = err.WithTargetPath("/captures/recall-20260806T120000Z-3.png")
type ScreenshotError struct {
	baseError
	TargetPath string
}

// NewScreenshotError creates a new ScreenshotError.
func NewScreenshotError(message string, cause error) *ScreenshotError {
	return &ScreenshotError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: false,
		},
	}
}

// WithTargetPath adds the intended capture path to the error context.
func (e *ScreenshotError) WithTargetPath(path string) *ScreenshotError {
	e.TargetPath = path
	return e
}

// Error returns the formatted error message.
func (e *ScreenshotError) Error() string {
	prefix := "screenshot error"
	if e.TargetPath != "" {
		prefix = fmt.Sprintf("screenshot error [path=%s]", e.TargetPath)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ScreenshotError) Is(target error) bool {
	if _, ok := target.(*ScreenshotError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// DiskGuardError represents a pre-capture free-space or session-cap failure.
//
// Example:
//
//	err := errors.NewDiskGuardError("free space below minimum after reclaim", errors.ErrDiskBelowMin)
//	err = err.WithOutputDir("/captures").WithFreeBytes(1024)
type DiskGuardError struct {
	baseError
	OutputDir string
	FreeBytes uint64
}

// NewDiskGuardError creates a new DiskGuardError.
func NewDiskGuardError(message string, cause error) *DiskGuardError {
	return &DiskGuardError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: false,
		},
	}
}

// WithOutputDir adds the capture output directory to the error context.
func (e *DiskGuardError) WithOutputDir(dir string) *DiskGuardError {
	e.OutputDir = dir
	return e
}

// WithFreeBytes records the observed free-byte count at failure time.
func (e *DiskGuardError) WithFreeBytes(bytes uint64) *DiskGuardError {
	e.FreeBytes = bytes
	return e
}

// Error returns the formatted error message.
func (e *DiskGuardError) Error() string {
	var parts []string
	if e.OutputDir != "" {
		parts = append(parts, fmt.Sprintf("dir=%s", e.OutputDir))
	}
	if e.FreeBytes > 0 {
		parts = append(parts, fmt.Sprintf("free=%d", e.FreeBytes))
	}

	prefix := "disk guard error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("disk guard error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *DiskGuardError) Is(target error) bool {
	if _, ok := target.(*DiskGuardError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// ContextLogError represents a write or fsync failure on the append-only memory log.
//
// Example:
//
//	err := errors.NewContextLogError("fsync failed", ioErr).WithPath("/data/context.md")
type ContextLogError struct {
	baseError
	Path string
}

// NewContextLogError creates a new ContextLogError.
func NewContextLogError(message string, cause error) *ContextLogError {
	return &ContextLogError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: false,
		},
	}
}

// WithPath adds the context log path to the error context.
func (e *ContextLogError) WithPath(path string) *ContextLogError {
	e.Path = path
	return e
}

// Error returns the formatted error message.
func (e *ContextLogError) Error() string {
	prefix := "context log error"
	if e.Path != "" {
		prefix = fmt.Sprintf("context log error [path=%s]", e.Path)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ContextLogError) Is(target error) bool {
	if _, ok := target.(*ContextLogError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// AnalyzerError represents a non-retryable, malformed, or timed-out analyzer
// outcome. The engine never treats these as session failures — they always
// resolve to an AnalysisFallback — but they are still modeled as errors for
// logging and classification purposes.
//
// Example:
//
//	err := errors.NewAnalyzerError("missing summary field", errors.ErrAnalyzerMalformed)
//	err = err.WithModel("gpt-4o")
type AnalyzerError struct {
	baseError
	Model      string
	StatusCode int
}

// NewAnalyzerError creates a new AnalyzerError.
func NewAnalyzerError(message string, cause error) *AnalyzerError {
	return &AnalyzerError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityInfo,
			retryable:  errors.Is(cause, ErrAnalyzerTransient),
			userFacing: false,
		},
	}
}

// WithModel adds the analyzer model name to the error context.
func (e *AnalyzerError) WithModel(model string) *AnalyzerError {
	e.Model = model
	return e
}

// WithStatusCode adds the HTTP status code (if any) to the error context.
func (e *AnalyzerError) WithStatusCode(code int) *AnalyzerError {
	e.StatusCode = code
	return e
}

// Error returns the formatted error message.
func (e *AnalyzerError) Error() string {
	var parts []string
	if e.Model != "" {
		parts = append(parts, fmt.Sprintf("model=%s", e.Model))
	}
	if e.StatusCode != 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}

	prefix := "analyzer error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("analyzer error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *AnalyzerError) Is(target error) bool {
	if _, ok := target.(*AnalyzerError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// PrivacyError represents a privacy-policy load/parse failure or a foreground
// detector probe that failed or timed out. Per §4.3, these always fail closed
// (Deny), never Allow.
//
// Example:
//
//	err := errors.NewPrivacyError("foreground probe timed out", errors.ErrPrivacyDetectorUnavailable)
type PrivacyError struct {
	baseError
	ConfigPath string
}

// NewPrivacyError creates a new PrivacyError.
func NewPrivacyError(message string, cause error) *PrivacyError {
	return &PrivacyError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: false,
		},
	}
}

// WithConfigPath adds the privacy policy path to the error context.
func (e *PrivacyError) WithConfigPath(path string) *PrivacyError {
	e.ConfigPath = path
	return e
}

// Error returns the formatted error message.
func (e *PrivacyError) Error() string {
	prefix := "privacy error"
	if e.ConfigPath != "" {
		prefix = fmt.Sprintf("privacy error [config=%s]", e.ConfigPath)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *PrivacyError) Is(target error) bool {
	if _, ok := target.(*PrivacyError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// WatchdogError represents a watchdog whose underlying OS probe could not be
// queried. Per §7, the corresponding auto-pause reason is simply never raised;
// this is logged, not surfaced to the session state machine.
//
// Example:
//
//	err := errors.NewWatchdogError("ioreg probe failed", errors.ErrWatchdogUnavailable)
//	err = err.WithWatch("display_sleep")
type WatchdogError struct {
	baseError
	Watch string
}

// NewWatchdogError creates a new WatchdogError.
func NewWatchdogError(message string, cause error) *WatchdogError {
	return &WatchdogError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityInfo,
			retryable:  false,
			userFacing: false,
		},
	}
}

// WithWatch adds the watchdog name (permission/display_sleep/screen_lock) to
// the error context.
func (e *WatchdogError) WithWatch(watch string) *WatchdogError {
	e.Watch = watch
	return e
}

// Error returns the formatted error message.
func (e *WatchdogError) Error() string {
	prefix := "watchdog error"
	if e.Watch != "" {
		prefix = fmt.Sprintf("watchdog error [watch=%s]", e.Watch)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *WatchdogError) Is(target error) bool {
	if _, ok := target.(*WatchdogError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// NotFoundError represents a resource that could not be found.
//
// Example:
//
//	err := errors.NewNotFoundError("session", "abc123")
//	fmt.Println(err) // "session 'abc123' not found"
type NotFoundError struct {
	baseError
	ResourceType string
	ResourceID   string
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resourceType, resourceID string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			message:    fmt.Sprintf("%s '%s' not found", resourceType, resourceID),
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: true,
		},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

// WithCause adds a cause to the error.
func (e *NotFoundError) WithCause(cause error) *NotFoundError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *NotFoundError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s '%s' not found: %v", e.ResourceType, e.ResourceID, e.cause)
	}
	return fmt.Sprintf("%s '%s' not found", e.ResourceType, e.ResourceID)
}

// Is checks if this error matches the target.
func (e *NotFoundError) Is(target error) bool {
	if _, ok := target.(*NotFoundError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// AlreadyExistsError represents a resource that already exists.
//
// Example:
//
//	err := errors.NewAlreadyExistsError("capture", "recall-20260806T120000Z-3.png")
type AlreadyExistsError struct {
	baseError
	ResourceType string
	ResourceID   string
}

// NewAlreadyExistsError creates a new AlreadyExistsError.
func NewAlreadyExistsError(resourceType, resourceID string) *AlreadyExistsError {
	return &AlreadyExistsError{
		baseError: baseError{
			message:    fmt.Sprintf("%s '%s' already exists", resourceType, resourceID),
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: true,
		},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

// WithCause adds a cause to the error.
func (e *AlreadyExistsError) WithCause(cause error) *AlreadyExistsError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *AlreadyExistsError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s '%s' already exists: %v", e.ResourceType, e.ResourceID, e.cause)
	}
	return fmt.Sprintf("%s '%s' already exists", e.ResourceType, e.ResourceID)
}

// Is checks if this error matches the target.
func (e *AlreadyExistsError) Is(target error) bool {
	if _, ok := target.(*AlreadyExistsError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// ValidationError represents invalid input or state.
//
// Example:
//
//	err := errors.NewValidationError("capture_stride must be >= 1")
//	err = err.WithField("capture_stride").WithValue(0)
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "validation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("validation error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if errors.Is(target, ErrInvalidInput) {
		return true
	}
	return e.baseError.Is(target)
}

// TimeoutError represents an operation that timed out.
//
// Example:
//
//	err := errors.NewTimeoutError("analyzer call", 30*time.Second)
//	fmt.Println(err) // "timeout error: analyzer call (timeout: 30s)"
type TimeoutError struct {
	baseError
	Operation string
	Duration  time.Duration
}

// NewTimeoutError creates a new TimeoutError.
func NewTimeoutError(operation string, duration time.Duration) *TimeoutError {
	return &TimeoutError{
		baseError: baseError{
			message:    operation,
			severity:   SeverityWarning,
			retryable:  true, // Timeouts are generally retryable
			userFacing: true,
		},
		Operation: operation,
		Duration:  duration,
	}
}

// WithCause adds a cause to the error.
func (e *TimeoutError) WithCause(cause error) *TimeoutError {
	e.cause = cause
	return e
}

// WithRetryable sets whether the error is retryable (default true for timeouts).
func (e *TimeoutError) WithRetryable(r bool) *TimeoutError {
	e.retryable = r
	return e
}

// Error returns the formatted error message.
func (e *TimeoutError) Error() string {
	base := fmt.Sprintf("timeout error: %s (timeout: %s)", e.Operation, e.Duration)
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", base, e.cause)
	}
	return base
}

// Is checks if this error matches the target.
func (e *TimeoutError) Is(target error) bool {
	if _, ok := target.(*TimeoutError); ok {
		return true
	}
	if errors.Is(target, ErrTimeout) {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsRetryable returns true if the error represents a transient condition
// that may succeed on retry. This checks for:
//   - Errors implementing RecallError with IsRetryable() returning true
//   - TimeoutError instances
//   - Errors wrapping ErrTimeout
//
// Example:
//
//	if errors.IsRetryable(err) {
//	    time.Sleep(backoff)
//	    return retry(operation)
//	}
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	// Check if error implements RecallError
	var recallErr RecallError
	if As(err, &recallErr) {
		return recallErr.IsRetryable()
	}

	// Check for known retryable sentinel errors
	if Is(err, ErrTimeout) {
		return true
	}

	return false
}

// IsUserFacing returns true if the error message is safe to display to end users.
// This checks for:
//   - Errors implementing RecallError with IsUserFacing() returning true
//   - Semantic errors (NotFoundError, AlreadyExistsError, ValidationError, TimeoutError)
//
// Example:
//
//	if errors.IsUserFacing(err) {
//	    displayToUser(err.Error())
//	} else {
//	    displayToUser("An internal error occurred")
//	    log.Error("internal error", "err", err)
//	}
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	// Check if error implements RecallError
	var recallErr RecallError
	if As(err, &recallErr) {
		return recallErr.IsUserFacing()
	}

	// Semantic errors are always user-facing
	var notFound *NotFoundError
	var alreadyExists *AlreadyExistsError
	var validation *ValidationError
	var timeout *TimeoutError

	if As(err, &notFound) || As(err, &alreadyExists) ||
		As(err, &validation) || As(err, &timeout) {
		return true
	}

	return false
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement RecallError.
//
// Example:
//
//	switch errors.GetSeverity(err) {
//	case errors.SeverityCritical:
//	    stopSession(err)
//	case errors.SeverityError:
//	    log.Error("error occurred", "err", err)
//	case errors.SeverityWarning:
//	    log.Warn("warning", "err", err)
//	}
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	// Check if error implements RecallError
	var recallErr RecallError
	if As(err, &recallErr) {
		return recallErr.Severity()
	}

	// Default to Error severity for unknown errors
	return SeverityError
}

// IsDomainError returns true if the error is one of the engine's domain-specific
// error types (ConfigError, PermissionError, ScreenshotError, DiskGuardError,
// ContextLogError, AnalyzerError, PrivacyError, or WatchdogError).
func IsDomainError(err error) bool {
	if err == nil {
		return false
	}

	var configErr *ConfigError
	var permissionErr *PermissionError
	var screenshotErr *ScreenshotError
	var diskGuardErr *DiskGuardError
	var contextLogErr *ContextLogError
	var analyzerErr *AnalyzerError
	var privacyErr *PrivacyError
	var watchdogErr *WatchdogError

	return As(err, &configErr) || As(err, &permissionErr) || As(err, &screenshotErr) ||
		As(err, &diskGuardErr) || As(err, &contextLogErr) || As(err, &analyzerErr) ||
		As(err, &privacyErr) || As(err, &watchdogErr)
}

// IsSemanticError returns true if the error is a semantic error
// (NotFoundError, AlreadyExistsError, ValidationError, or TimeoutError).
func IsSemanticError(err error) bool {
	if err == nil {
		return false
	}

	var notFound *NotFoundError
	var alreadyExists *AlreadyExistsError
	var validation *ValidationError
	var timeout *TimeoutError

	return As(err, &notFound) || As(err, &alreadyExists) ||
		As(err, &validation) || As(err, &timeout)
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
// Unlike fmt.Errorf with %w, this preserves the RecallError interface.
//
// Example:
//
//	err := errors.Wrap(baseErr, "failed to process capture")
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
//
// Example:
//
//	err := errors.Wrapf(baseErr, "failed to process tick %d", idx)
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
