//go:build !darwin

package screenshot

import (
	"context"

	"github.com/lucidtrace/recall/internal/errors"
)

// unsupportedProvider reports that screen capture has no implementation on
// this platform. Callers should run in mock mode instead of starting a
// session against this provider.
type unsupportedProvider struct{}

// NewOSProvider returns the platform's screenshot Provider.
func NewOSProvider() Provider {
	return unsupportedProvider{}
}

func (unsupportedProvider) Capture(_ context.Context, targetPath string) (Artifact, error) {
	return Artifact{}, errors.NewScreenshotError("screenshot capture is not implemented on this platform", errors.ErrScreenshotFailed).
		WithTargetPath(targetPath)
}
