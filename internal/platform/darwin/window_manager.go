//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework AppKit -framework ApplicationServices -framework CoreFoundation -framework Foundation
#import <AppKit/AppKit.h>
#include <ApplicationServices/ApplicationServices.h>
#include <stdint.h>

extern AXError _AXUIElementGetWindow(AXUIElementRef element, CGWindowID *out);

// Returns a retained AX element for window id of pid, or NULL with status
// -1 (accessibility not granted) or -3 (no such window).
static AXUIElementRef ax_find_window(pid_t pid, uint32_t id, int *status) {
    AXUIElementRef app = AXUIElementCreateApplication(pid);
    CFArrayRef windows = NULL;
    AXError err = AXUIElementCopyAttributeValue(app, kAXWindowsAttribute, (CFTypeRef *)&windows);
    CFRelease(app);
    if (err == kAXErrorAPIDisabled) {
        *status = -1;
        return NULL;
    }
    if (err != kAXErrorSuccess || windows == NULL) {
        *status = -3;
        return NULL;
    }

    AXUIElementRef found = NULL;
    CFIndex n = CFArrayGetCount(windows);
    for (CFIndex i = 0; i < n; i++) {
        AXUIElementRef w = (AXUIElementRef)CFArrayGetValueAtIndex(windows, i);
        CGWindowID wid = 0;
        if (_AXUIElementGetWindow(w, &wid) == kAXErrorSuccess && wid == id) {
            found = (AXUIElementRef)CFRetain(w);
            break;
        }
    }
    CFRelease(windows);
    *status = found != NULL ? 0 : -3;
    return found;
}

static int ax_window_frame(int pid, uint32_t id, double *x, double *y, double *w, double *h) {
    int status = 0;
    AXUIElementRef win = ax_find_window((pid_t)pid, id, &status);
    if (win == NULL) return status;

    CFTypeRef posVal = NULL;
    CFTypeRef sizeVal = NULL;
    CGPoint pos;
    CGSize size;
    int rc = -3;
    if (AXUIElementCopyAttributeValue(win, kAXPositionAttribute, &posVal) == kAXErrorSuccess &&
        AXUIElementCopyAttributeValue(win, kAXSizeAttribute, &sizeVal) == kAXErrorSuccess &&
        AXValueGetValue((AXValueRef)posVal, kAXValueCGPointType, &pos) &&
        AXValueGetValue((AXValueRef)sizeVal, kAXValueCGSizeType, &size)) {
        *x = pos.x;
        *y = pos.y;
        *w = size.width;
        *h = size.height;
        rc = 0;
    }
    if (posVal != NULL) CFRelease(posVal);
    if (sizeVal != NULL) CFRelease(sizeVal);
    CFRelease(win);
    return rc;
}

static int ax_raise_window(int pid, uint32_t id) {
    int status = 0;
    AXUIElementRef win = ax_find_window((pid_t)pid, id, &status);
    if (win == NULL) return status;
    AXError err = AXUIElementPerformAction(win, kAXRaiseAction);
    AXUIElementSetAttributeValue(win, kAXMainAttribute, kCFBooleanTrue);
    CFRelease(win);
    return err == kAXErrorSuccess ? 0 : -2;
}

static int ns_activate_app(int pid) {
    @autoreleasepool {
        NSRunningApplication *app = [NSRunningApplication runningApplicationWithProcessIdentifier:(pid_t)pid];
        if (app == nil) return -3;
        return [app activateWithOptions:NSApplicationActivateIgnoringOtherApps] ? 0 : -2;
    }
}
*/
import "C"
import (
	"fmt"

	"github.com/mj1618/focus-border/internal/geometry"
	"github.com/mj1618/focus-border/internal/model"
	"github.com/mj1618/focus-border/internal/platform"
)

// DarwinWindowManager implements platform.WindowLocator and
// platform.WindowManager for macOS. Frames come from the window's AX
// position and size, which are already in top-left global coordinates.
type DarwinWindowManager struct {
	focus *DarwinFocusSource
}

// NewWindowManager creates a new macOS window manager.
func NewWindowManager(focus *DarwinFocusSource) *DarwinWindowManager {
	return &DarwinWindowManager{focus: focus}
}

func (wm *DarwinWindowManager) WindowFrame(ref model.WindowRef) (geometry.Rect, error) {
	ref, err := wm.withPID(ref)
	if err != nil {
		return geometry.Rect{}, err
	}

	var x, y, w, h C.double
	switch C.ax_window_frame(C.int(ref.PID), C.uint32_t(ref.ID), &x, &y, &w, &h) {
	case 0:
		return geometry.Rect{X: float64(x), Y: float64(y), Width: float64(w), Height: float64(h)}, nil
	case -1:
		return geometry.Rect{}, errNotTrusted()
	default:
		return geometry.Rect{}, fmt.Errorf("window %d: %w", ref.ID, platform.ErrStale)
	}
}

func (wm *DarwinWindowManager) RaiseWindow(ref model.WindowRef) error {
	if err := CheckAccessibilityPermission(); err != nil {
		return err
	}
	ref, err := wm.withPID(ref)
	if err != nil {
		return err
	}

	switch C.ax_raise_window(C.int(ref.PID), C.uint32_t(ref.ID)) {
	case 0:
	case -3:
		return fmt.Errorf("window %d: %w", ref.ID, platform.ErrStale)
	default:
		return fmt.Errorf("failed to raise window %d of PID %d", ref.ID, ref.PID)
	}

	if C.ns_activate_app(C.int(ref.PID)) != 0 {
		return fmt.Errorf("failed to activate app with PID %d", ref.PID)
	}
	return nil
}

// withPID fills in a missing PID from the on-screen window list.
func (wm *DarwinWindowManager) withPID(ref model.WindowRef) (model.WindowRef, error) {
	if ref.PID != 0 {
		return ref, nil
	}
	windows, err := wm.ListWindows()
	if err != nil {
		return ref, err
	}
	for _, w := range windows {
		if w.Ref.ID == ref.ID {
			return w.Ref, nil
		}
	}
	return ref, fmt.Errorf("window %d: %w", ref.ID, platform.ErrStale)
}
