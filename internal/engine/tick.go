package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/lucidtrace/recall/internal/analyzer"
	"github.com/lucidtrace/recall/internal/contextlog"
	"github.com/lucidtrace/recall/internal/diskguard"
	"github.com/lucidtrace/recall/internal/errors"
	"github.com/lucidtrace/recall/internal/event"
)

// handleTick runs one scheduler fire to completion. It always advances the
// tick index and publishes a Tick event first; everything after that is a
// sequence of gates, any of which can end the tick early without writing a
// capture entry.
func (e *Engine) handleTick(ctx context.Context, elapsed time.Duration) {
	e.mu.Lock()
	e.tickIndex++
	tickIndex := e.tickIndex
	paused := !e.pauseReasons.empty()
	e.mu.Unlock()

	e.logger.Debug("tick", "index", tickIndex, "elapsed", elapsed, "paused", paused)
	e.bus.Publish(event.NewTickEvent(tickIndex))

	if paused {
		return
	}

	if e.session.CaptureStride > 1 && (tickIndex-1)%uint64(e.session.CaptureStride) != 0 {
		return
	}

	now := time.Now()

	decision := e.guard.Decision(ctx)
	if !decision.Allow {
		e.recordSkip(tickIndex, now, decision.Reason)
		return
	}

	if kind, failErr := e.checkDiskGuard(); failErr != nil {
		e.recordFailure(kind)
		e.logger.Warn("disk guard rejected capture", "error", failErr)
		return
	}

	targetPath := e.captureTargetPath(tickIndex, now)
	artifact, err := e.provider.Capture(ctx, targetPath)
	if err != nil {
		e.recordFailure(screenshotFailureKind(err))
		e.logger.Warn("screenshot capture failed", "error", err)
		return
	}

	summary, analyzed, fallbackReason := e.summarize(ctx, targetPath, artifact.CapturedAt)

	if err := e.contextLog.Append(contextlog.Entry{
		CaptureIndex: tickIndex,
		Timestamp:    artifact.CapturedAt,
		ImagePath:    targetPath,
		Summary:      summary,
	}); err != nil {
		e.recordFailure("context_log_write_failed")
		e.logger.Warn("failed to append capture entry", "error", err)
		return
	}

	e.mu.Lock()
	e.counters.Captures++
	e.bytesWritten += uint64(artifact.Bytes)
	e.lastCaptureBytes = uint64(artifact.Bytes)
	if analyzed {
		e.counters.Analyzed++
	}
	e.counters.BytesWritten = e.bytesWritten
	e.mu.Unlock()

	e.bus.Publish(event.NewCaptureSucceededEvent(event.CaptureArtifact{
		Path:         targetPath,
		Bytes:        artifact.Bytes,
		CapturedAt:   artifact.CapturedAt,
		CaptureIndex: tickIndex,
	}))
	if analyzed {
		e.bus.Publish(event.NewAnalysisSucceededEvent(summary))
	} else if fallbackReason != "" {
		e.bus.Publish(event.NewAnalysisFallbackEvent(fallbackReason))
	}
}

// summarize produces the one-line summary recorded for a capture. A nil
// Analyzer means analysis is disabled outright: the engine never calls
// into the Analyzer interface at all, and records only the
// metadata-derived local summary.
func (e *Engine) summarize(ctx context.Context, path string, capturedAt time.Time) (summary string, analyzed bool, fallbackReason string) {
	if e.an == nil {
		return analyzer.LocalSummary(path, capturedAt), false, ""
	}
	result := e.an.Analyze(ctx, path, e.session.Model, e.session.Prompt)
	if result.FallbackReason != "" {
		return result.Summary, false, result.FallbackReason
	}
	return result.Summary, true, ""
}

// checkDiskGuard runs the precapture headroom and session-cap checks. It
// estimates the next capture's size from the most recent capture, falling
// back to a conservative constant before the session has written one,
// since the cap must be evaluated before the screenshot is taken.
func (e *Engine) checkDiskGuard() (kind string, err error) {
	outcome, err := diskguard.EnsureHeadroomWithReclaim(e.session.OutputDir, e.session.MinFreeBytes)
	if outcome != nil {
		e.mu.Lock()
		e.counters.ReclaimedFiles += uint64(outcome.DeletedFiles)
		e.mu.Unlock()
		e.bus.Publish(event.NewReclaimedEvent(outcome.DeletedFiles, outcome.FreedBytes, outcome.RemainingBytes))
	}
	if err != nil {
		return "disk_below_min", err
	}

	e.mu.Lock()
	bytesWritten := e.bytesWritten
	expected := e.lastCaptureBytes
	e.mu.Unlock()
	if expected == 0 {
		expected = fallbackExpectedCaptureBytes
	}

	if err := diskguard.EnsureSessionCap(bytesWritten, expected, e.session.MaxSessionBytes); err != nil {
		return "session_cap_exceeded", err
	}
	return "", nil
}

func (e *Engine) recordSkip(tickIndex uint64, at time.Time, ruleLabel string) {
	e.mu.Lock()
	e.counters.Skipped++
	e.mu.Unlock()
	if err := e.contextLog.AppendSkipped(tickIndex, at, ruleLabel); err != nil {
		e.bumpFailure()
		e.logger.Warn("failed to append skipped entry", "error", err)
	}
	e.bus.Publish(event.NewCaptureSkippedEvent(ruleLabel))
}

func (e *Engine) recordFailure(kind string) {
	e.bumpFailure()
	e.bus.Publish(event.NewCaptureFailedEvent(kind))
}

// screenshotFailureKind classifies a ScreenshotProvider error into the
// short labels CaptureFailedEvent.Kind documents.
func screenshotFailureKind(err error) string {
	if errors.Is(err, errors.ErrScreenshotHung) {
		return "watchdog_timeout"
	}
	return "provider_error"
}

// captureTargetPath builds the path a capture at tickIndex will be written
// to, following the <prefix>-<YYYYMMDDTHHMMSSZ>-<seq>.png naming scheme.
func (e *Engine) captureTargetPath(tickIndex uint64, at time.Time) string {
	ts := at.UTC().Format("20060102T150405Z")
	name := fmt.Sprintf("%s-%s-%06d.png", e.session.FilenamePrefix, ts, tickIndex)
	return filepath.Join(e.session.OutputDir, name)
}
