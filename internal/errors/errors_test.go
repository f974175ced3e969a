package errors

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

// -----------------------------------------------------------------------------
// Severity Tests
// -----------------------------------------------------------------------------

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityDebug, "debug"},
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{SeverityCritical, "critical"},
		{Severity(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.severity.String(); got != tt.want {
				t.Errorf("Severity.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// ConfigError Tests
// -----------------------------------------------------------------------------

func TestNewConfigError(t *testing.T) {
	cause := ErrConfigInvalid
	err := NewConfigError("capture_stride must be >= 1", cause)

	if err.message != "capture_stride must be >= 1" {
		t.Errorf("message = %q, want %q", err.message, "capture_stride must be >= 1")
	}
	if err.cause != cause {
		t.Errorf("cause = %v, want %v", err.cause, cause)
	}
	if err.Severity() != SeverityCritical {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityCritical)
	}
	if err.IsRetryable() {
		t.Error("IsRetryable() = true, want false")
	}
	if !err.IsUserFacing() {
		t.Error("IsUserFacing() = false, want true")
	}
}

func TestConfigError_WithMethods(t *testing.T) {
	err := NewConfigError("test", nil).WithField("session.capture_stride")

	if err.Field != "session.capture_stride" {
		t.Errorf("Field = %q, want %q", err.Field, "session.capture_stride")
	}
}

func TestConfigError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ConfigError
		want string
	}{
		{
			name: "basic error",
			err:  NewConfigError("test error", nil),
			want: "config error: test error",
		},
		{
			name: "with cause",
			err:  NewConfigError("test error", ErrConfigInvalid),
			want: "config error: test error: config invalid",
		},
		{
			name: "with field",
			err:  NewConfigError("test error", nil).WithField("session.every"),
			want: "config error [field=session.every]: test error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfigError_Is(t *testing.T) {
	err := NewConfigError("test", ErrConfigInvalid).WithField("session.every")

	if !Is(err, &ConfigError{}) {
		t.Error("Is(ConfigError{}) = false, want true")
	}
	if !Is(err, ErrConfigInvalid) {
		t.Error("Is(ErrConfigInvalid) = false, want true")
	}
	if Is(err, ErrPermissionMissing) {
		t.Error("Is(ErrPermissionMissing) = true, want false")
	}
}

func TestConfigError_Unwrap(t *testing.T) {
	cause := ErrConfigInvalid
	err := NewConfigError("test", cause)

	if unwrapped := Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}
}

// -----------------------------------------------------------------------------
// PermissionError Tests
// -----------------------------------------------------------------------------

func TestNewPermissionError(t *testing.T) {
	cause := ErrPermissionMissing
	err := NewPermissionError("screen recording not granted", cause)

	if err.message != "screen recording not granted" {
		t.Errorf("message = %q, want %q", err.message, "screen recording not granted")
	}
}

func TestPermissionError_WithMethods(t *testing.T) {
	err := NewPermissionError("test", nil).
		WithPermission("screen_recording").
		WithSeverity(SeverityWarning).
		WithRetryable(true)

	if err.Permission != "screen_recording" {
		t.Errorf("Permission = %q, want %q", err.Permission, "screen_recording")
	}
	if err.Severity() != SeverityWarning {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityWarning)
	}
}

func TestPermissionError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *PermissionError
		want string
	}{
		{
			name: "basic error",
			err:  NewPermissionError("test error", nil),
			want: "permission error: test error",
		},
		{
			name: "with permission",
			err:  NewPermissionError("not granted", nil).WithPermission("screen_recording"),
			want: "permission error [permission=screen_recording]: not granted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPermissionError_Is(t *testing.T) {
	err := NewPermissionError("test", ErrPermissionMissing)

	if !Is(err, &PermissionError{}) {
		t.Error("Is(PermissionError{}) = false, want true")
	}
	if !Is(err, ErrPermissionMissing) {
		t.Error("Is(ErrPermissionMissing) = false, want true")
	}
	if Is(err, &ConfigError{}) {
		t.Error("Is(ConfigError{}) = true, want false")
	}
}

// -----------------------------------------------------------------------------
// ScreenshotError Tests
// -----------------------------------------------------------------------------

func TestNewScreenshotError(t *testing.T) {
	cause := ErrScreenshotHung
	err := NewScreenshotError("watchdog fired", cause)

	if err.message != "watchdog fired" {
		t.Errorf("message = %q, want %q", err.message, "watchdog fired")
	}
	if err.Severity() != SeverityWarning {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityWarning)
	}
}

func TestScreenshotError_WithMethods(t *testing.T) {
	err := NewScreenshotError("test", nil).
		WithTargetPath("/captures/recall-20260806T120000Z-3.png").
		WithSeverity(SeverityError)

	if err.TargetPath != "/captures/recall-20260806T120000Z-3.png" {
		t.Errorf("TargetPath = %q, want %q", err.TargetPath, "/captures/recall-20260806T120000Z-3.png")
	}
}

func TestScreenshotError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ScreenshotError
		want string
	}{
		{
			name: "basic error",
			err:  NewScreenshotError("test error", nil),
			want: "screenshot error: test error",
		},
		{
			name: "with target path",
			err:  NewScreenshotError("capture failed", ErrScreenshotFailed).WithTargetPath("/out/1.png"),
			want: "screenshot error [path=/out/1.png]: capture failed: screenshot capture failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScreenshotError_Is(t *testing.T) {
	err := NewScreenshotError("test", ErrScreenshotHung)

	if !Is(err, &ScreenshotError{}) {
		t.Error("Is(ScreenshotError{}) = false, want true")
	}
	if !Is(err, ErrScreenshotHung) {
		t.Error("Is(ErrScreenshotHung) = false, want true")
	}
}

// -----------------------------------------------------------------------------
// DiskGuardError Tests
// -----------------------------------------------------------------------------

func TestNewDiskGuardError(t *testing.T) {
	cause := ErrDiskBelowMin
	err := NewDiskGuardError("free space below minimum", cause)

	if err.message != "free space below minimum" {
		t.Errorf("message = %q, want %q", err.message, "free space below minimum")
	}
}

func TestDiskGuardError_WithMethods(t *testing.T) {
	err := NewDiskGuardError("test", nil).
		WithOutputDir("/captures").
		WithFreeBytes(1024).
		WithSeverity(SeverityCritical)

	if err.OutputDir != "/captures" {
		t.Errorf("OutputDir = %q, want %q", err.OutputDir, "/captures")
	}
	if err.FreeBytes != 1024 {
		t.Errorf("FreeBytes = %d, want 1024", err.FreeBytes)
	}
}

func TestDiskGuardError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *DiskGuardError
		want string
	}{
		{
			name: "basic error",
			err:  NewDiskGuardError("test error", nil),
			want: "disk guard error: test error",
		},
		{
			name: "with all fields",
			err:  NewDiskGuardError("failed", ErrDiskBelowMin).WithOutputDir("/captures").WithFreeBytes(512),
			want: "disk guard error [dir=/captures, free=512]: failed: disk free space below minimum",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDiskGuardError_Is(t *testing.T) {
	err := NewDiskGuardError("test", ErrSessionCapExceeded)

	if !Is(err, &DiskGuardError{}) {
		t.Error("Is(DiskGuardError{}) = false, want true")
	}
	if !Is(err, ErrSessionCapExceeded) {
		t.Error("Is(ErrSessionCapExceeded) = false, want true")
	}
}

// -----------------------------------------------------------------------------
// ContextLogError Tests
// -----------------------------------------------------------------------------

func TestNewContextLogError(t *testing.T) {
	cause := ErrLogIO
	err := NewContextLogError("fsync failed", cause)

	if err.message != "fsync failed" {
		t.Errorf("message = %q, want %q", err.message, "fsync failed")
	}
}

func TestContextLogError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ContextLogError
		want string
	}{
		{
			name: "basic error",
			err:  NewContextLogError("test error", nil),
			want: "context log error: test error",
		},
		{
			name: "with path",
			err:  NewContextLogError("write failed", ErrLogIO).WithPath("/data/context.md"),
			want: "context log error [path=/data/context.md]: write failed: context log write failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContextLogError_Is(t *testing.T) {
	err := NewContextLogError("test", ErrLogIO)

	if !Is(err, &ContextLogError{}) {
		t.Error("Is(ContextLogError{}) = false, want true")
	}
	if !Is(err, ErrLogIO) {
		t.Error("Is(ErrLogIO) = false, want true")
	}
}

// -----------------------------------------------------------------------------
// AnalyzerError Tests
// -----------------------------------------------------------------------------

func TestNewAnalyzerError(t *testing.T) {
	err := NewAnalyzerError("missing summary field", ErrAnalyzerMalformed)

	if err.message != "missing summary field" {
		t.Errorf("message = %q, want %q", err.message, "missing summary field")
	}
	if err.IsRetryable() {
		t.Error("IsRetryable() = true, want false for malformed payload")
	}
}

func TestAnalyzerError_RetryableForTransient(t *testing.T) {
	err := NewAnalyzerError("rate limited", ErrAnalyzerTransient)

	if !err.IsRetryable() {
		t.Error("IsRetryable() = false, want true for transient failure class")
	}
}

func TestAnalyzerError_WithMethods(t *testing.T) {
	err := NewAnalyzerError("test", nil).
		WithModel("gpt-4o").
		WithStatusCode(429)

	if err.Model != "gpt-4o" {
		t.Errorf("Model = %q, want %q", err.Model, "gpt-4o")
	}
	if err.StatusCode != 429 {
		t.Errorf("StatusCode = %d, want 429", err.StatusCode)
	}
}

func TestAnalyzerError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AnalyzerError
		want string
	}{
		{
			name: "basic error",
			err:  NewAnalyzerError("test error", nil),
			want: "analyzer error: test error",
		},
		{
			name: "with model and status",
			err:  NewAnalyzerError("timed out", ErrAnalyzerTimeout).WithModel("gpt-4o").WithStatusCode(504),
			want: "analyzer error [model=gpt-4o, status=504]: timed out: analyzer deadline exceeded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAnalyzerError_Is(t *testing.T) {
	err := NewAnalyzerError("test", ErrAnalyzerMalformed)

	if !Is(err, &AnalyzerError{}) {
		t.Error("Is(AnalyzerError{}) = false, want true")
	}
	if !Is(err, ErrAnalyzerMalformed) {
		t.Error("Is(ErrAnalyzerMalformed) = false, want true")
	}
}

// -----------------------------------------------------------------------------
// PrivacyError Tests
// -----------------------------------------------------------------------------

func TestNewPrivacyError(t *testing.T) {
	err := NewPrivacyError("foreground probe timed out", ErrPrivacyDetectorUnavailable)

	if err.message != "foreground probe timed out" {
		t.Errorf("message = %q, want %q", err.message, "foreground probe timed out")
	}
}

func TestPrivacyError_WithMethods(t *testing.T) {
	err := NewPrivacyError("test", nil).WithConfigPath("/etc/recall/privacy.toml")

	if err.ConfigPath != "/etc/recall/privacy.toml" {
		t.Errorf("ConfigPath = %q, want %q", err.ConfigPath, "/etc/recall/privacy.toml")
	}
}

func TestPrivacyError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *PrivacyError
		want string
	}{
		{
			name: "basic error",
			err:  NewPrivacyError("test error", nil),
			want: "privacy error: test error",
		},
		{
			name: "with config path",
			err:  NewPrivacyError("malformed toml", nil).WithConfigPath("/etc/privacy.toml"),
			want: "privacy error [config=/etc/privacy.toml]: malformed toml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrivacyError_Is(t *testing.T) {
	err := NewPrivacyError("test", ErrPrivacyDetectorUnavailable)

	if !Is(err, &PrivacyError{}) {
		t.Error("Is(PrivacyError{}) = false, want true")
	}
	if !Is(err, ErrPrivacyDetectorUnavailable) {
		t.Error("Is(ErrPrivacyDetectorUnavailable) = false, want true")
	}
}

// -----------------------------------------------------------------------------
// WatchdogError Tests
// -----------------------------------------------------------------------------

func TestNewWatchdogError(t *testing.T) {
	err := NewWatchdogError("ioreg probe failed", ErrWatchdogUnavailable)

	if err.message != "ioreg probe failed" {
		t.Errorf("message = %q, want %q", err.message, "ioreg probe failed")
	}
}

func TestWatchdogError_WithMethods(t *testing.T) {
	err := NewWatchdogError("test", nil).WithWatch("display_sleep")

	if err.Watch != "display_sleep" {
		t.Errorf("Watch = %q, want %q", err.Watch, "display_sleep")
	}
}

func TestWatchdogError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *WatchdogError
		want string
	}{
		{
			name: "basic error",
			err:  NewWatchdogError("test error", nil),
			want: "watchdog error: test error",
		},
		{
			name: "with watch name",
			err:  NewWatchdogError("probe failed", ErrWatchdogUnavailable).WithWatch("screen_lock"),
			want: "watchdog error [watch=screen_lock]: probe failed: watchdog probe unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWatchdogError_Is(t *testing.T) {
	err := NewWatchdogError("test", ErrWatchdogUnavailable)

	if !Is(err, &WatchdogError{}) {
		t.Error("Is(WatchdogError{}) = false, want true")
	}
	if !Is(err, ErrWatchdogUnavailable) {
		t.Error("Is(ErrWatchdogUnavailable) = false, want true")
	}
}

// -----------------------------------------------------------------------------
// NotFoundError Tests
// -----------------------------------------------------------------------------

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("capture", "recall-20260806T120000Z-3.png")

	if err.ResourceType != "capture" {
		t.Errorf("ResourceType = %q, want %q", err.ResourceType, "capture")
	}
	if err.ResourceID != "recall-20260806T120000Z-3.png" {
		t.Errorf("ResourceID = %q, want %q", err.ResourceID, "recall-20260806T120000Z-3.png")
	}
	if err.Severity() != SeverityWarning {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityWarning)
	}
}

func TestNotFoundError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *NotFoundError
		want string
	}{
		{
			name: "basic error",
			err:  NewNotFoundError("session", "abc"),
			want: "session 'abc' not found",
		},
		{
			name: "with cause",
			err:  NewNotFoundError("capture", "/path").WithCause(fmt.Errorf("IO error")),
			want: "capture '/path' not found: IO error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNotFoundError_Is(t *testing.T) {
	err := NewNotFoundError("session", "abc")

	if !Is(err, &NotFoundError{}) {
		t.Error("Is(NotFoundError{}) = false, want true")
	}
	// NotFoundError does not wrap sentinel errors by default
	if Is(err, ErrConfigInvalid) {
		t.Error("Is(ErrConfigInvalid) = true, want false (not wrapped)")
	}
}

// -----------------------------------------------------------------------------
// AlreadyExistsError Tests
// -----------------------------------------------------------------------------

func TestNewAlreadyExistsError(t *testing.T) {
	err := NewAlreadyExistsError("session", "session-abc123")

	if err.ResourceType != "session" {
		t.Errorf("ResourceType = %q, want %q", err.ResourceType, "session")
	}
	if err.ResourceID != "session-abc123" {
		t.Errorf("ResourceID = %q, want %q", err.ResourceID, "session-abc123")
	}
}

func TestAlreadyExistsError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AlreadyExistsError
		want string
	}{
		{
			name: "basic error",
			err:  NewAlreadyExistsError("capture", "3"),
			want: "capture '3' already exists",
		},
		{
			name: "with cause",
			err:  NewAlreadyExistsError("file", "test.txt").WithCause(fmt.Errorf("disk error")),
			want: "file 'test.txt' already exists: disk error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAlreadyExistsError_Is(t *testing.T) {
	err := NewAlreadyExistsError("session", "abc")

	if !Is(err, &AlreadyExistsError{}) {
		t.Error("Is(AlreadyExistsError{}) = false, want true")
	}
}

// -----------------------------------------------------------------------------
// ValidationError Tests
// -----------------------------------------------------------------------------

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("capture_stride must be >= 1")

	if err.message != "capture_stride must be >= 1" {
		t.Errorf("message = %q, want %q", err.message, "capture_stride must be >= 1")
	}
	if err.Severity() != SeverityWarning {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityWarning)
	}
}

func TestValidationError_WithMethods(t *testing.T) {
	err := NewValidationError("invalid value").
		WithField("capture_stride").
		WithValue(0).
		WithCause(fmt.Errorf("must be positive"))

	if err.Field != "capture_stride" {
		t.Errorf("Field = %q, want %q", err.Field, "capture_stride")
	}
	if err.Value != 0 {
		t.Errorf("Value = %v, want 0", err.Value)
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "basic error",
			err:  NewValidationError("invalid input"),
			want: "validation error: invalid input",
		},
		{
			name: "with field",
			err:  NewValidationError("cannot be empty").WithField("name"),
			want: "validation error [field=name]: cannot be empty",
		},
		{
			name: "with field and value",
			err:  NewValidationError("must be positive").WithField("count").WithValue(-1),
			want: "validation error [field=count, value=-1]: must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError_Is(t *testing.T) {
	err := NewValidationError("test")

	if !Is(err, &ValidationError{}) {
		t.Error("Is(ValidationError{}) = false, want true")
	}
	// ValidationError should match ErrInvalidInput
	if !Is(err, ErrInvalidInput) {
		t.Error("Is(ErrInvalidInput) = false, want true")
	}
}

// -----------------------------------------------------------------------------
// TimeoutError Tests
// -----------------------------------------------------------------------------

func TestNewTimeoutError(t *testing.T) {
	err := NewTimeoutError("waiting for analyzer", 30*time.Second)

	if err.Operation != "waiting for analyzer" {
		t.Errorf("Operation = %q, want %q", err.Operation, "waiting for analyzer")
	}
	if err.Duration != 30*time.Second {
		t.Errorf("Duration = %v, want %v", err.Duration, 30*time.Second)
	}
	// Timeouts are retryable by default
	if !err.IsRetryable() {
		t.Error("IsRetryable() = false, want true")
	}
}

func TestTimeoutError_WithMethods(t *testing.T) {
	err := NewTimeoutError("test", time.Second).
		WithCause(fmt.Errorf("context deadline exceeded")).
		WithRetryable(false)

	if err.IsRetryable() {
		t.Error("IsRetryable() = true, want false")
	}
}

func TestTimeoutError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *TimeoutError
		want string
	}{
		{
			name: "basic error",
			err:  NewTimeoutError("waiting for response", 5*time.Second),
			want: "timeout error: waiting for response (timeout: 5s)",
		},
		{
			name: "with cause",
			err:  NewTimeoutError("connecting", time.Minute).WithCause(fmt.Errorf("network unreachable")),
			want: "timeout error: connecting (timeout: 1m0s): network unreachable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTimeoutError_Is(t *testing.T) {
	err := NewTimeoutError("test", time.Second)

	if !Is(err, &TimeoutError{}) {
		t.Error("Is(TimeoutError{}) = false, want true")
	}
	// TimeoutError should match ErrTimeout
	if !Is(err, ErrTimeout) {
		t.Error("Is(ErrTimeout) = false, want true")
	}
}

// -----------------------------------------------------------------------------
// Classification Helper Tests
// -----------------------------------------------------------------------------

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
		{
			name: "timeout error",
			err:  NewTimeoutError("test", time.Second),
			want: true,
		},
		{
			name: "config error not retryable",
			err:  NewConfigError("test", nil),
			want: false,
		},
		{
			name: "config error set retryable",
			err:  NewConfigError("test", nil).WithRetryable(true),
			want: true,
		},
		{
			name: "wrapped timeout sentinel",
			err:  fmt.Errorf("operation failed: %w", ErrTimeout),
			want: true,
		},
		{
			name: "standard error",
			err:  errors.New("standard error"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
		{
			name: "config error",
			err:  NewConfigError("test", nil),
			want: true,
		},
		{
			name: "not found error",
			err:  NewNotFoundError("session", "abc"),
			want: true,
		},
		{
			name: "validation error",
			err:  NewValidationError("invalid input"),
			want: true,
		},
		{
			name: "timeout error",
			err:  NewTimeoutError("waiting", time.Second),
			want: true,
		},
		{
			name: "standard error",
			err:  errors.New("internal error"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetSeverity(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Severity
	}{
		{
			name: "nil error",
			err:  nil,
			want: SeverityDebug,
		},
		{
			name: "config error default",
			err:  NewConfigError("test", nil),
			want: SeverityCritical,
		},
		{
			name: "config error overridden",
			err:  NewConfigError("test", nil).WithSeverity(SeverityWarning),
			want: SeverityWarning,
		},
		{
			name: "not found error",
			err:  NewNotFoundError("session", "abc"),
			want: SeverityWarning,
		},
		{
			name: "standard error",
			err:  errors.New("standard"),
			want: SeverityError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetSeverity(tt.err); got != tt.want {
				t.Errorf("GetSeverity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsDomainError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
		{
			name: "config error",
			err:  NewConfigError("test", nil),
			want: true,
		},
		{
			name: "permission error",
			err:  NewPermissionError("test", nil),
			want: true,
		},
		{
			name: "screenshot error",
			err:  NewScreenshotError("test", nil),
			want: true,
		},
		{
			name: "disk guard error",
			err:  NewDiskGuardError("test", nil),
			want: true,
		},
		{
			name: "context log error",
			err:  NewContextLogError("test", nil),
			want: true,
		},
		{
			name: "analyzer error",
			err:  NewAnalyzerError("test", nil),
			want: true,
		},
		{
			name: "privacy error",
			err:  NewPrivacyError("test", nil),
			want: true,
		},
		{
			name: "watchdog error",
			err:  NewWatchdogError("test", nil),
			want: true,
		},
		{
			name: "not found error (semantic)",
			err:  NewNotFoundError("session", "abc"),
			want: false,
		},
		{
			name: "standard error",
			err:  errors.New("test"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDomainError(tt.err); got != tt.want {
				t.Errorf("IsDomainError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsSemanticError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
		{
			name: "not found error",
			err:  NewNotFoundError("session", "abc"),
			want: true,
		},
		{
			name: "already exists error",
			err:  NewAlreadyExistsError("session", "abc"),
			want: true,
		},
		{
			name: "validation error",
			err:  NewValidationError("invalid"),
			want: true,
		},
		{
			name: "timeout error",
			err:  NewTimeoutError("waiting", time.Second),
			want: true,
		},
		{
			name: "config error (domain)",
			err:  NewConfigError("test", nil),
			want: false,
		},
		{
			name: "standard error",
			err:  errors.New("test"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSemanticError(tt.err); got != tt.want {
				t.Errorf("IsSemanticError() = %v, want %v", got, tt.want)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// Wrap/Wrapf Tests
// -----------------------------------------------------------------------------

func TestWrap(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
		want    string
	}{
		{
			name:    "nil error",
			err:     nil,
			message: "context",
			want:    "",
		},
		{
			name:    "wrap standard error",
			err:     errors.New("base error"),
			message: "failed to process",
			want:    "failed to process: base error",
		},
		{
			name:    "wrap config error",
			err:     NewConfigError("config failed", nil),
			message: "operation failed",
			want:    "operation failed: config error: config failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.err, tt.message)
			if tt.err == nil {
				if got != nil {
					t.Errorf("Wrap(nil) = %v, want nil", got)
				}
				return
			}
			if got.Error() != tt.want {
				t.Errorf("Wrap().Error() = %q, want %q", got.Error(), tt.want)
			}
		})
	}
}

func TestWrapf(t *testing.T) {
	baseErr := errors.New("base error")
	err := Wrapf(baseErr, "failed to process %s", "request")

	want := "failed to process request: base error"
	if err.Error() != want {
		t.Errorf("Wrapf().Error() = %q, want %q", err.Error(), want)
	}

	// Wrapf with nil should return nil
	if got := Wrapf(nil, "test"); got != nil {
		t.Errorf("Wrapf(nil) = %v, want nil", got)
	}
}

// -----------------------------------------------------------------------------
// Re-exported Functions Tests
// -----------------------------------------------------------------------------

func TestReexportedFunctions(t *testing.T) {
	// Test that re-exported functions work correctly
	baseErr := New("base error")
	wrappedErr := fmt.Errorf("wrapped: %w", baseErr)

	// Test Is
	if !Is(wrappedErr, baseErr) {
		t.Error("Is() should return true for wrapped error")
	}

	// Test Unwrap
	if Unwrap(wrappedErr) == nil {
		t.Error("Unwrap() should return the base error")
	}

	// Test As
	var configErr *ConfigError
	testErr := NewConfigError("test", nil)
	if !As(testErr, &configErr) {
		t.Error("As() should extract ConfigError")
	}

	// Test Join
	err1 := New("error 1")
	err2 := New("error 2")
	joined := Join(err1, err2)
	if !Is(joined, err1) || !Is(joined, err2) {
		t.Error("Join() should combine errors")
	}
}

// -----------------------------------------------------------------------------
// Error Chain Tests
// -----------------------------------------------------------------------------

func TestErrorChain(t *testing.T) {
	// Create a chain of errors
	baseErr := ErrDiskBelowMin
	diskErr := NewDiskGuardError("free space too low", baseErr).WithOutputDir("/captures")
	wrappedErr := Wrap(diskErr, "operation failed")

	// Should be able to find all errors in the chain
	if !Is(wrappedErr, ErrDiskBelowMin) {
		t.Error("Should find ErrDiskBelowMin in chain")
	}

	var extracted *DiskGuardError
	if !As(wrappedErr, &extracted) {
		t.Error("Should extract DiskGuardError from chain")
	}
	if extracted.OutputDir != "/captures" {
		t.Errorf("OutputDir = %q, want %q", extracted.OutputDir, "/captures")
	}
}

// -----------------------------------------------------------------------------
// Sentinel Error Tests
// -----------------------------------------------------------------------------

func TestSentinelErrors(t *testing.T) {
	// Verify all sentinel errors are distinct
	sentinels := []error{
		ErrConfigInvalid,
		ErrPermissionMissing,
		ErrScreenshotHung,
		ErrScreenshotFailed,
		ErrDiskBelowMin,
		ErrSessionCapExceeded,
		ErrLogIO,
		ErrAnalyzerTransient,
		ErrAnalyzerNonRetryable,
		ErrAnalyzerMalformed,
		ErrAnalyzerTimeout,
		ErrPrivacyDetectorUnavailable,
		ErrWatchdogUnavailable,
		ErrTimeout,
		ErrCanceled,
		ErrInvalidInput,
		ErrOperationFailed,
	}

	// Check that each sentinel is distinct from all others
	for i, err1 := range sentinels {
		for j, err2 := range sentinels {
			if i != j && Is(err1, err2) {
				t.Errorf("Sentinel error %v should not match %v", err1, err2)
			}
		}
	}
}
