// Package analyzer produces a one-line natural-language summary of a
// captured screenshot. It never returns an error to its caller: every
// failure mode (timeout, malformed response, missing credentials) resolves
// to a locally computed fallback summary instead, so a flaky or unreachable
// vision endpoint can never turn into a failed capture.
package analyzer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Result is the outcome of a single Analyze call. Summary is always
// populated. FallbackReason is empty when Summary came from a real model
// response; otherwise it names why the local fallback was used, in the
// same stable-token style as privacy rule labels (e.g. "non_retryable:401",
// "malformed_payload", "deadline_exceeded", "no_api_key").
type Result struct {
	Summary        string
	FallbackReason string
}

// Analyzer produces a Result for the capture at path.
type Analyzer interface {
	Analyze(ctx context.Context, path, model, prompt string) Result
}

// LocalSummary computes the metadata-derived fallback summary used whenever
// no real analysis is available: "image=<basename> size=<bytes>
// captured=<ts>". Stat failures degrade to a "size=unknown" summary rather
// than propagating an error, since this function itself never fails its
// caller.
func LocalSummary(path string, capturedAt time.Time) string {
	base := filepath.Base(path)
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Sprintf("image=%s size=unknown captured=%s", base, capturedAt.UTC().Format(time.RFC3339))
	}
	return fmt.Sprintf("image=%s size=%d captured=%s", base, info.Size(), capturedAt.UTC().Format(time.RFC3339))
}

// flatten collapses newlines in a model-produced summary to spaces, mirroring
// the context log's own flattening rule so a summary is always one line.
func flatten(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
}
