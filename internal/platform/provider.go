package platform

import (
	"context"
	"fmt"
	"runtime"
)

// Provider bundles all platform backends for the current OS.
type Provider struct {
	Name          string
	Focus         FocusSource
	Windows       WindowLocator
	Displays      DisplayProvider
	Overlay       OverlayRenderer
	Accent        AccentColorSource
	WindowManager WindowManager

	// Close releases backend resources. May be nil.
	Close func() error
}

// ErrUnsupported is returned on unsupported platforms.
var ErrUnsupported = fmt.Errorf("focus-border is not supported on %s/%s; supported: darwin (cgo), linux/X11", runtime.GOOS, runtime.GOARCH)

// NewProviderFunc is set by platform-specific packages via init().
// See internal/platform/darwin/init.go and internal/platform/x11/init.go.
var NewProviderFunc func() (*Provider, error)

// RequestPermissionsFunc is set by platform-specific packages via init().
// It triggers OS permission prompts (e.g. accessibility) at startup.
var RequestPermissionsFunc func()

// RunMainFunc is set by backends whose UI toolkit must own the main thread.
// It pumps the native event loop until ctx is done.
var RunMainFunc func(ctx context.Context) error

// NewProvider returns a Provider for the current OS.
func NewProvider() (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc()
}

// RunMain blocks until ctx is done, pumping the native event loop when the
// backend needs one.
func RunMain(ctx context.Context) error {
	if RunMainFunc != nil {
		return RunMainFunc(ctx)
	}
	<-ctx.Done()
	return nil
}
