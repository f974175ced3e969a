//go:build darwin

package privacy

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// chromiumFamily lists the browsers whose private/incognito window mode we
// know how to probe without reading window titles or URLs. We keep the
// AppleScript narrow and avoid querying titles/URLs to reduce sensitivity.
var chromiumFamily = map[string]bool{
	"Google Chrome":        true,
	"Google Chrome Canary": true,
	"Brave Browser":        true,
	"Microsoft Edge":       true,
	"Chromium":             true,
}

const foregroundAppScript = `
tell application "System Events"
	set frontApp to first application process whose frontmost is true
	set appName to name of frontApp
	set bundleID to bundle identifier of frontApp
end tell
return appName & "\n" & bundleID
`

// macOSForegroundProvider queries the frontmost application via osascript.
type macOSForegroundProvider struct{}

// NewOSForegroundProvider returns the platform's ForegroundProvider.
func NewOSForegroundProvider() ForegroundProvider {
	return macOSForegroundProvider{}
}

func (macOSForegroundProvider) ForegroundApp(ctx context.Context) (ForegroundApp, error) {
	out, err := exec.CommandContext(ctx, "osascript", "-e", foregroundAppScript).Output()
	if err != nil {
		return ForegroundApp{}, err
	}

	lines := strings.SplitN(strings.TrimSpace(string(out)), "\n", 2)
	app := ForegroundApp{AppName: lines[0]}
	if len(lines) > 1 {
		app.BundleID = lines[1]
	}

	if chromiumFamily[app.AppName] {
		if priv, ok := queryBrowserPrivateWindow(ctx, app.AppName); ok {
			app.BrowserPrivateWindow = &priv
		}
	}

	return app, nil
}

const browserModeScriptTemplate = `
tell application "%s"
	if (count of windows) is 0 then
		return "unknown"
	end if
	return mode of front window
end tell
`

func queryBrowserPrivateWindow(ctx context.Context, appName string) (bool, bool) {
	script := fmt.Sprintf(browserModeScriptTemplate, appName)
	out, err := exec.CommandContext(ctx, "osascript", "-e", script).Output()
	if err != nil {
		return false, false
	}
	mode := strings.TrimSpace(string(out))
	switch mode {
	case "incognito":
		return true, true
	case "normal":
		return false, true
	default:
		return false, false
	}
}
