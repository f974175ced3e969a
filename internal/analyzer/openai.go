package analyzer

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/openai/openai-go"
)

// defaultBaseURL is the OpenAI API base URL used when none is configured.
const defaultBaseURL = "https://api.openai.com/v1"

// OpenAIAnalyzer sends each capture to a vision-capable Chat Completions
// endpoint and returns the model's one-line description. It dispatches the
// request over net/http directly rather than through the SDK's high-level
// client, so base_url can point at any OpenAI-compatible vision endpoint,
// not only api.openai.com — the SDK's typed message constructors are still
// used for the text half of the request, since they marshal correctly for
// every such endpoint.
type OpenAIAnalyzer struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	maxRetries int
	timeout    time.Duration
}

// Option configures an OpenAIAnalyzer.
type Option func(*OpenAIAnalyzer)

// WithBaseURL overrides the default OpenAI API base URL.
func WithBaseURL(baseURL string) Option {
	return func(a *OpenAIAnalyzer) {
		if baseURL != "" {
			a.baseURL = baseURL
		}
	}
}

// WithMaxRetries overrides the number of retry attempts for transient
// failure classes.
func WithMaxRetries(n int) Option {
	return func(a *OpenAIAnalyzer) {
		if n >= 0 {
			a.maxRetries = n
		}
	}
}

// WithTimeout overrides the total deadline for a single Analyze call,
// including all retries.
func WithTimeout(d time.Duration) Option {
	return func(a *OpenAIAnalyzer) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// NewOpenAIAnalyzer constructs an OpenAIAnalyzer. apiKey must be non-empty;
// callers select FallbackAnalyzer instead when no key is configured.
func NewOpenAIAnalyzer(apiKey string, opts ...Option) *OpenAIAnalyzer {
	a := &OpenAIAnalyzer{
		httpClient: &http.Client{},
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		maxRetries: 3,
		timeout:    30 * time.Second,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

type imageContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type visionUserMessage struct {
	Role    string             `json:"role"`
	Content []imageContentPart `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Analyze sends path's image bytes to the configured endpoint alongside
// prompt, retrying transient failures before falling back to a local
// metadata summary. It never returns an error.
func (a *OpenAIAnalyzer) Analyze(ctx context.Context, path, model, prompt string) Result {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	data, err := os.ReadFile(path)
	if err != nil {
		return Result{Summary: LocalSummary(path, time.Now()), FallbackReason: "read_failed"}
	}
	encoded := base64.StdEncoding.EncodeToString(data)

	body, err := json.Marshal(map[string]any{
		"model": model,
		"messages": []any{
			openai.SystemMessage("You describe screenshots in one concise, factual sentence."),
			visionUserMessage{
				Role: "user",
				Content: []imageContentPart{
					{Type: "text", Text: prompt},
					{Type: "image_url", ImageURL: &imageURL{URL: "data:image/png;base64," + encoded}},
				},
			},
		},
	})
	if err != nil {
		return Result{Summary: LocalSummary(path, time.Now()), FallbackReason: "malformed_payload"}
	}

	var lastReason string
	for attempt := 0; attempt <= a.maxRetries; attempt++ {
		if attempt > 0 {
			if err := sleepWithBackoff(ctx, attempt); err != nil {
				return Result{Summary: LocalSummary(path, time.Now()), FallbackReason: "deadline_exceeded"}
			}
		}

		summary, reason, retryable := a.attempt(ctx, body)
		if reason == "" {
			return Result{Summary: summary}
		}
		lastReason = reason
		if !retryable {
			return Result{Summary: LocalSummary(path, time.Now()), FallbackReason: reason}
		}
		if ctx.Err() != nil {
			return Result{Summary: LocalSummary(path, time.Now()), FallbackReason: "deadline_exceeded"}
		}
	}

	return Result{Summary: LocalSummary(path, time.Now()), FallbackReason: lastReason}
}

// attempt performs a single HTTP round trip, classifying the outcome into a
// fallback reason (empty on success) and whether that reason is retryable.
func (a *OpenAIAnalyzer) attempt(ctx context.Context, body []byte) (summary, reason string, retryable bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", "malformed_payload", false
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", "deadline_exceeded", false
		}
		return "", "connect_error", true
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "connect_error", true
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", fmt.Sprintf("transient:%d", resp.StatusCode), true
	case resp.StatusCode >= 500:
		return "", fmt.Sprintf("transient:%d", resp.StatusCode), true
	case resp.StatusCode >= 400:
		return "", fmt.Sprintf("non_retryable:%d", resp.StatusCode), false
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil || len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", "malformed_payload", false
	}

	return flatten(parsed.Choices[0].Message.Content), "", false
}

// sleepWithBackoff waits an exponentially growing, jittered delay before a
// retry, bounded by ctx's own deadline.
func sleepWithBackoff(ctx context.Context, attempt int) error {
	base := time.Duration(1<<uint(attempt-1)) * 200 * time.Millisecond
	jitter := time.Duration(rand.Int63n(int64(base) + 1))
	delay := base + jitter

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
