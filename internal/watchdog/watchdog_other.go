//go:build !darwin

package watchdog

import (
	"context"

	"github.com/lucidtrace/recall/internal/errors"
)

var errUnsupportedPlatform = errors.NewWatchdogError("watchdog probing is not implemented on this platform", errors.ErrWatchdogUnavailable)

// unsupportedPermissionStatus always fails its probe. Per the
// WatchdogUnavailable taxonomy entry, callers treat the error as "never
// raise this reason" rather than as a denial.
type unsupportedPermissionStatus struct{}

// NewOSPermissionStatus returns the platform's PermissionStatus probe.
func NewOSPermissionStatus() PermissionStatus {
	return unsupportedPermissionStatus{}
}

func (unsupportedPermissionStatus) ScreenRecording(context.Context) (PermissionState, error) {
	return PermissionUnknown, errUnsupportedPlatform
}

type unsupportedSystemActivity struct{}

// NewOSSystemActivity returns the platform's SystemActivity probe.
func NewOSSystemActivity() SystemActivity {
	return unsupportedSystemActivity{}
}

func (unsupportedSystemActivity) ScreenLocked(context.Context) (bool, error) {
	return false, errUnsupportedPlatform
}

func (unsupportedSystemActivity) DisplayAsleep(context.Context) (bool, error) {
	return false, errUnsupportedPlatform
}
