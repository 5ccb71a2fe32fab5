//go:build darwin && cgo

package darwin

import (
	"runtime"

	"github.com/mj1618/focus-border/internal/platform"
)

func init() {
	// AppKit requires the main thread; keep main() on it for runMain.
	runtime.LockOSThread()

	platform.NewProviderFunc = func() (*platform.Provider, error) {
		focus := NewFocusSource()
		windows := NewWindowManager(focus)
		displays := NewDisplays()
		return &platform.Provider{
			Name:          "darwin",
			Focus:         focus,
			Windows:       windows,
			Displays:      displays,
			Overlay:       NewOverlay(displays),
			Accent:        DarwinAccent{},
			WindowManager: windows,
		}, nil
	}
	platform.RequestPermissionsFunc = RequestAccessibilityPermission
	platform.RunMainFunc = runMain
}
