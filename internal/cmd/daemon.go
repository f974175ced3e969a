package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/lucidtrace/recall/internal/config"
)

// pidFilePath is where a running `recall start` records its process ID, so
// the pause/resume/stop/reload-privacy subcommands have something to signal
// without a separate transport of their own.
func pidFilePath() string {
	return filepath.Join(config.DefaultDataDir(), "recall.pid")
}

func writePIDFile(pid int) error {
	path := pidFilePath()
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create pid file directory: %w", err)
		}
	}
	return os.WriteFile(path, []byte(strconv.Itoa(pid)), 0o644)
}

func removePIDFile() {
	_ = os.Remove(pidFilePath())
}

// readRunningPID returns the PID of the running session, or an error if no
// session appears to be running.
func readRunningPID() (int, error) {
	data, err := os.ReadFile(pidFilePath())
	if err != nil {
		return 0, fmt.Errorf("no running session found: %w", err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("pid file is corrupt: %w", err)
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return 0, fmt.Errorf("no running session found: %w", err)
	}
	if err := proc.Signal(syscall.Signal(0)); err != nil {
		return 0, fmt.Errorf("session process %d is not running", pid)
	}
	return pid, nil
}

// signalRunningSession sends sig to the running session's process, as
// recorded by the pid file start writes.
func signalRunningSession(sig syscall.Signal) error {
	pid, err := readRunningPID()
	if err != nil {
		return err
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("failed to locate session process %d: %w", pid, err)
	}
	return proc.Signal(sig)
}
