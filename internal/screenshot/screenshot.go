// Package screenshot produces a single PNG capture of the screen at a
// caller-supplied path. Concrete OS invocation is abstracted behind the
// Provider interface so the capture engine never depends on a particular
// screen-capture mechanism; this package owns only the hard 10s watchdog
// that bounds every call regardless of which platform implementation runs
// underneath it.
package screenshot

import (
	"context"
	"fmt"
	"time"

	"github.com/lucidtrace/recall/internal/errors"
)

// HardTimeout bounds a single capture call end to end. A capture that has
// not completed within this window is abandoned and reported as
// ErrScreenshotHung, never left to block the engine's tick loop.
const HardTimeout = 10 * time.Second

// Artifact describes a single screenshot written to disk. CaptureIndex is
// deliberately absent here: the provider does not know the engine's tick
// numbering, so the engine stamps it on afterward.
type Artifact struct {
	Path       string
	Bytes      int64
	CapturedAt time.Time
}

// Provider produces a single screenshot at targetPath.
type Provider interface {
	Capture(ctx context.Context, targetPath string) (Artifact, error)
}

// capturer is the part of a platform Provider that does the actual work,
// without the hard-timeout wrapping. watchdog applies HardTimeout uniformly
// to every Provider implementation in this package.
type capturer interface {
	captureNow(ctx context.Context, targetPath string) (Artifact, error)
}

// watchdog wraps a capturer so that any call exceeding HardTimeout returns
// ErrScreenshotHung instead of blocking the caller indefinitely. The
// underlying call is not forcibly killed — its own ctx is cancelled so a
// well-behaved capturer can tear down early — but the watchdog reports Hung
// as soon as the deadline passes regardless of whether the goroutine has
// actually exited yet.
func watchdog(ctx context.Context, c capturer, targetPath string) (Artifact, error) {
	ctx, cancel := context.WithTimeout(ctx, HardTimeout)
	defer cancel()

	type result struct {
		artifact Artifact
		err      error
	}
	done := make(chan result, 1)

	go func() {
		artifact, err := c.captureNow(ctx, targetPath)
		done <- result{artifact, err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return Artifact{}, errors.NewScreenshotError(
				fmt.Sprintf("screenshot capture failed: %v", r.err),
				errors.ErrScreenshotFailed,
			).WithTargetPath(targetPath)
		}
		return r.artifact, nil
	case <-ctx.Done():
		return Artifact{}, errors.NewScreenshotError("screenshot capture exceeded hard watchdog", errors.ErrScreenshotHung).
			WithTargetPath(targetPath)
	}
}
