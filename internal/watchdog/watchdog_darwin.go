//go:build darwin

package watchdog

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// macOSPermissionStatus infers screen-recording entitlement by attempting a
// throwaway capture with the same screencapture binary the real
// ScreenshotProvider uses: a denied process fails or produces no file,
// while a granted one always succeeds.
type macOSPermissionStatus struct{}

// NewOSPermissionStatus returns the platform's PermissionStatus probe.
func NewOSPermissionStatus() PermissionStatus {
	return macOSPermissionStatus{}
}

func (macOSPermissionStatus) ScreenRecording(ctx context.Context) (PermissionState, error) {
	probePath := filepath.Join(os.TempDir(), "recall-permission-probe.png")
	defer os.Remove(probePath)

	if err := exec.CommandContext(ctx, "screencapture", "-x", "-t", "png", probePath).Run(); err != nil {
		return PermissionDenied, nil
	}
	info, err := os.Stat(probePath)
	if err != nil || info.Size() == 0 {
		return PermissionDenied, nil
	}
	return PermissionGranted, nil
}

// macOSSystemActivity queries screen-lock state via osascript (the session
// counts as locked while loginwindow is the frontmost process) and
// display-sleep state via pmset.
type macOSSystemActivity struct{}

// NewOSSystemActivity returns the platform's SystemActivity probe.
func NewOSSystemActivity() SystemActivity {
	return macOSSystemActivity{}
}

func (macOSSystemActivity) ScreenLocked(ctx context.Context) (bool, error) {
	out, err := exec.CommandContext(ctx, "osascript", "-e",
		`tell application "System Events" to get name of first process whose frontmost is true`).Output()
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(string(out)) == "loginwindow", nil
}

func (macOSSystemActivity) DisplayAsleep(ctx context.Context) (bool, error) {
	out, err := exec.CommandContext(ctx, "pmset", "-g", "powerstate", "IODisplayWrangler").Output()
	if err != nil {
		return false, err
	}
	return parseDisplayWranglerAsleep(string(out))
}

// parseDisplayWranglerAsleep reads the power-state digit from pmset's
// "IODisplayWrangler ... N" output line. A state of 0 means the display is
// fully off; anything else is considered awake.
func parseDisplayWranglerAsleep(output string) (bool, error) {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	last := lines[len(lines)-1]
	fields := strings.Fields(last)
	if len(fields) == 0 {
		return false, nil
	}
	state, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return false, nil
	}
	return state == 0, nil
}
