//go:build !darwin

package privacy

import "context"

// noOSForegroundProvider reports that foreground-app detection is not
// supported on this platform. The guard treats this error like any other
// detector failure and fails closed (deny), never allow.
type noOSForegroundProvider struct{}

// NewOSForegroundProvider returns the platform's ForegroundProvider.
func NewOSForegroundProvider() ForegroundProvider {
	return noOSForegroundProvider{}
}

func (noOSForegroundProvider) ForegroundApp(ctx context.Context) (ForegroundApp, error) {
	return ForegroundApp{}, errUnsupportedPlatform
}
