package analyzer

import (
	"context"
	"time"
)

// FallbackAnalyzer always returns a local metadata summary, never attempting
// a network call. It is selected when analysis is requested but no API key
// is configured, and for mock-mode sessions where a deterministic,
// host-independent analyzer is required.
type FallbackAnalyzer struct {
	// Reason is the stable token recorded on every Result, e.g. "no_api_key".
	Reason string
}

// NewFallbackAnalyzer returns a FallbackAnalyzer that reports reason on
// every call.
func NewFallbackAnalyzer(reason string) FallbackAnalyzer {
	return FallbackAnalyzer{Reason: reason}
}

func (a FallbackAnalyzer) Analyze(_ context.Context, path, _, _ string) Result {
	return Result{
		Summary:        LocalSummary(path, time.Now()),
		FallbackReason: a.Reason,
	}
}
