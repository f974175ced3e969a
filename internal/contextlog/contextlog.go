// Package contextlog appends a running, human-readable record of a capture
// session to a single append-only Markdown file. Every entry is flushed and
// fsynced before Append/AppendSkipped return success, and entries are never
// rewritten once written.
package contextlog

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/lucidtrace/recall/internal/errors"
)

// Entry is a single successful capture recorded in the log.
type Entry struct {
	CaptureIndex uint64
	Timestamp    time.Time
	ImagePath    string
	Summary      string
}

// SkippedEntry is a tick that was withheld by a precondition gate before any
// screenshot was taken.
type SkippedEntry struct {
	CaptureIndex uint64
	Timestamp    time.Time
	RuleLabel    string
}

// TransitionEntry records a session-state change (paused/resumed/stopped/
// ended). It carries no capture index; it narrates the session rather than
// a tick.
type TransitionEntry struct {
	Timestamp time.Time
	State     string
	Trigger   string
}

// ParsedEntry is a capture, a skip, or a transition, as recovered by Parse.
// Exactly one field is non-nil.
type ParsedEntry struct {
	Capture    *Entry
	Skipped    *SkippedEntry
	Transition *TransitionEntry
}

// Log appends Markdown entries to a single append-only file, creating parent
// directories as needed. The zero value is not usable; construct with New.
type Log struct {
	path string
}

// New returns a Log that appends to path.
func New(path string) *Log {
	return &Log{path: path}
}

// Path returns the configured log file path.
func (l *Log) Path() string {
	return l.path
}

func (l *Log) openAppend() (*os.File, error) {
	dir := filepath.Dir(l.path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.NewContextLogError("failed to create context log directory", err).WithPath(l.path)
		}
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.NewContextLogError("failed to open context log", err).WithPath(l.path)
	}
	return f, nil
}

// flatten collapses newlines to spaces and trims surrounding whitespace so a
// single logical field always occupies exactly one rendered line.
func flatten(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
}

func writeAndSync(f *os.File, path string, write func() error) error {
	if err := write(); err != nil {
		f.Close()
		return errors.NewContextLogError("failed to write context log entry", err).WithPath(path)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return errors.NewContextLogError("failed to fsync context log", err).WithPath(path)
	}
	return f.Close()
}

// Append records a successful capture. The entry is flushed and fsynced
// before this returns; on success the bytes are durable.
func (l *Log) Append(entry Entry) error {
	f, err := l.openAppend()
	if err != nil {
		return err
	}
	return writeAndSync(f, l.path, func() error {
		_, err := fmt.Fprintf(f, "## Capture %d at %s\n- Image: %s\n- Summary: %s\n\n",
			entry.CaptureIndex,
			entry.Timestamp.UTC().Format(time.RFC3339),
			entry.ImagePath,
			flatten(entry.Summary),
		)
		return err
	})
}

// AppendSkipped records a tick that was withheld by a precondition gate
// before any screenshot was taken. ruleLabel must be a stable token (see
// privacy/diskguard rule labels) and must never contain window titles, URLs,
// or foreground app names.
func (l *Log) AppendSkipped(tickIndex uint64, timestamp time.Time, ruleLabel string) error {
	f, err := l.openAppend()
	if err != nil {
		return err
	}
	return writeAndSync(f, l.path, func() error {
		_, err := fmt.Fprintf(f, "## Capture %d at %s\n- Skipped: %s\n\n",
			tickIndex,
			timestamp.UTC().Format(time.RFC3339),
			flatten(ruleLabel),
		)
		return err
	})
}

// AppendSessionTransition records a pause/resume/stop/end transition so the
// log reads as a complete session narrative, not just a capture ledger. This
// is a supplemented entry shape: it carries no capture index.
func (l *Log) AppendSessionTransition(timestamp time.Time, state, trigger string) error {
	f, err := l.openAppend()
	if err != nil {
		return err
	}
	return writeAndSync(f, l.path, func() error {
		_, err := fmt.Fprintf(f, "## Session %s at %s\n- Trigger: %s\n\n",
			flatten(state),
			timestamp.UTC().Format(time.RFC3339),
			flatten(trigger),
		)
		return err
	})
}

// Parse reads back every entry previously appended to path, in order. It is
// used to verify the round-trip invariant: the sequence of entries recovered
// from disk matches the sequence that was emitted. A log that was never
// written (no file at path) parses as zero entries.
func Parse(path string) ([]ParsedEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.NewContextLogError("failed to open context log for parsing", err).WithPath(path)
	}
	defer f.Close()

	var entries []ParsedEntry
	scanner := bufio.NewScanner(f)
	var header string
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "## Capture "):
			header = line
		case strings.HasPrefix(line, "## Session "):
			header = line
		case strings.HasPrefix(line, "- Trigger: "):
			state, ts, err := parseSessionHeader(header)
			if err != nil {
				return nil, err
			}
			trigger := strings.TrimPrefix(line, "- Trigger: ")
			entries = append(entries, ParsedEntry{Transition: &TransitionEntry{
				Timestamp: ts,
				State:     state,
				Trigger:   trigger,
			}})
		case strings.HasPrefix(line, "- Image: "):
			idx, ts, err := parseCaptureHeader(header)
			if err != nil {
				return nil, err
			}
			image := strings.TrimPrefix(line, "- Image: ")
			if !scanner.Scan() {
				return nil, errors.NewContextLogError("truncated capture entry: missing Summary line", nil).WithPath(path)
			}
			summaryLine := scanner.Text()
			summary := strings.TrimPrefix(summaryLine, "- Summary: ")
			entries = append(entries, ParsedEntry{Capture: &Entry{
				CaptureIndex: idx,
				Timestamp:    ts,
				ImagePath:    image,
				Summary:      summary,
			}})
		case strings.HasPrefix(line, "- Skipped: "):
			idx, ts, err := parseCaptureHeader(header)
			if err != nil {
				return nil, err
			}
			rule := strings.TrimPrefix(line, "- Skipped: ")
			entries = append(entries, ParsedEntry{Skipped: &SkippedEntry{
				CaptureIndex: idx,
				Timestamp:    ts,
				RuleLabel:    rule,
			}})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewContextLogError("failed to scan context log", err).WithPath(path)
	}
	return entries, nil
}

func parseSessionHeader(header string) (string, time.Time, error) {
	const prefix = "## Session "
	const sep = " at "
	if !strings.HasPrefix(header, prefix) {
		return "", time.Time{}, errors.NewContextLogError("malformed session header: "+header, nil)
	}
	rest := strings.TrimPrefix(header, prefix)
	sepIdx := strings.LastIndex(rest, sep)
	if sepIdx < 0 {
		return "", time.Time{}, errors.NewContextLogError("malformed session header: "+header, nil)
	}
	state := rest[:sepIdx]
	ts, err := time.Parse(time.RFC3339, rest[sepIdx+len(sep):])
	if err != nil {
		return "", time.Time{}, errors.NewContextLogError("malformed timestamp in header: "+header, err)
	}
	return state, ts.UTC(), nil
}

func parseCaptureHeader(header string) (uint64, time.Time, error) {
	const prefix = "## Capture "
	const sep = " at "
	if !strings.HasPrefix(header, prefix) {
		return 0, time.Time{}, errors.NewContextLogError("malformed capture header: "+header, nil)
	}
	rest := strings.TrimPrefix(header, prefix)
	sepIdx := strings.Index(rest, sep)
	if sepIdx < 0 {
		return 0, time.Time{}, errors.NewContextLogError("malformed capture header: "+header, nil)
	}
	idx, err := strconv.ParseUint(rest[:sepIdx], 10, 64)
	if err != nil {
		return 0, time.Time{}, errors.NewContextLogError("malformed capture index in header: "+header, err)
	}
	ts, err := time.Parse(time.RFC3339, rest[sepIdx+len(sep):])
	if err != nil {
		return 0, time.Time{}, errors.NewContextLogError("malformed timestamp in header: "+header, err)
	}
	return idx, ts.UTC(), nil
}
