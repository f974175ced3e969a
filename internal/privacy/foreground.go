package privacy

import (
	"context"
	"errors"
)

// ForegroundProvider reports which application currently has focus. It is
// abstracted behind an interface so tests can inject a fake rather than
// depend on OS window-management APIs.
type ForegroundProvider interface {
	ForegroundApp(ctx context.Context) (ForegroundApp, error)
}

var errUnsupportedPlatform = errors.New("privacy: foreground app detection is not supported on this platform")
