package platform

import (
	"errors"

	"github.com/mj1618/focus-border/internal/geometry"
	"github.com/mj1618/focus-border/internal/model"
)

var (
	// ErrPermission is returned when the OS refuses accessibility access.
	ErrPermission = errors.New("accessibility permission not granted")

	// ErrStale is returned when a window went away between a signal and
	// the query that followed it.
	ErrStale = errors.New("window no longer available")
)

// Subscription is an owned handle to an OS signal subscription.
type Subscription interface {
	Unsubscribe()
}

// FocusSource delivers focus-change signals and answers focus queries.
// Callbacks may arrive on any goroutine.
type FocusSource interface {
	// SubscribeActivation calls fn with the PID of every newly activated
	// application.
	SubscribeActivation(fn func(pid int)) (Subscription, error)

	// SubscribeFocusChanged calls fn whenever the focused window of the
	// application with the given PID changes.
	SubscribeFocusChanged(pid int, fn func()) (Subscription, error)

	// FrontmostPID returns the PID of the frontmost application.
	FrontmostPID() (int, error)

	// FocusedWindow returns the focused window of the given application.
	FocusedWindow(pid int) (model.WindowRef, error)
}

// WindowLocator resolves window geometry in window-server space.
type WindowLocator interface {
	WindowFrame(ref model.WindowRef) (geometry.Rect, error)
	ListWindows() ([]model.Window, error)
}

// DisplayProvider enumerates displays in window-server space.
type DisplayProvider interface {
	Displays() ([]geometry.Display, error)
}

// OverlayHandle identifies an overlay created by an OverlayRenderer.
type OverlayHandle interface{}

// OverlayRenderer creates and destroys the border overlay. Frames are in the
// overlay space of the given display. Created overlays are non-activating,
// always on top, click-through and visible on every workspace.
type OverlayRenderer interface {
	Show(frame geometry.Rect, display geometry.DisplayRef, style model.Style) (OverlayHandle, error)
	Hide(h OverlayHandle)
}

// AccentColorSource reports the user's system accent color.
type AccentColorSource interface {
	AccentColor() (model.Color, bool)
}

// WindowManager raises windows on behalf of the tool's own commands.
type WindowManager interface {
	RaiseWindow(ref model.WindowRef) error
}
