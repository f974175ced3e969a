package screenshot

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/lucidtrace/recall/internal/errors"
)

// stubPNG is the smallest valid PNG: a 1x1 transparent pixel. MockProvider
// writes these bytes instead of shelling out to the OS, so sessions can run
// end to end in CI without a real display or screen-recording permission.
var stubPNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
	0x89, 0x00, 0x00, 0x00, 0x0a, 0x49, 0x44, 0x41,
	0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00,
	0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae,
	0x42, 0x60, 0x82,
}

// MockProvider writes a deterministic stub PNG instead of capturing the
// real screen. It is used for tests and for mock-mode sessions, which also
// disable the watchdogs that would otherwise gate on real OS state.
type MockProvider struct{}

// NewMockProvider returns a Provider that never touches the display.
func NewMockProvider() Provider {
	return MockProvider{}
}

func (p MockProvider) Capture(ctx context.Context, targetPath string) (Artifact, error) {
	return watchdog(ctx, p, targetPath)
}

func (MockProvider) captureNow(_ context.Context, targetPath string) (Artifact, error) {
	dir := filepath.Dir(targetPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Artifact{}, errors.Wrap(err, "failed to create capture directory")
		}
	}
	if err := os.WriteFile(targetPath, stubPNG, 0o644); err != nil {
		return Artifact{}, err
	}
	return Artifact{
		Path:       targetPath,
		Bytes:      int64(len(stubPNG)),
		CapturedAt: time.Now().UTC(),
	}, nil
}
