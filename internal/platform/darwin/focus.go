//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c -fobjc-arc
#cgo LDFLAGS: -framework AppKit -framework ApplicationServices -framework Foundation
#import <AppKit/AppKit.h>
#include <ApplicationServices/ApplicationServices.h>
#include <stdint.h>

// Defined with //export in focus_exports.go.
void goAppActivated(uintptr_t token, int pid);
void goFocusChanged(int pid);

// Private, but the only way from an AX element to its CGWindowID.
extern AXError _AXUIElementGetWindow(AXUIElementRef element, CGWindowID *out);

static uintptr_t subscribe_activation(uintptr_t token) {
    NSNotificationCenter *nc = [[NSWorkspace sharedWorkspace] notificationCenter];
    id obs = [nc addObserverForName:NSWorkspaceDidActivateApplicationNotification
                             object:nil
                              queue:[NSOperationQueue mainQueue]
                         usingBlock:^(NSNotification *note) {
        NSRunningApplication *app = note.userInfo[NSWorkspaceApplicationKey];
        if (app != nil) {
            goAppActivated(token, (int)app.processIdentifier);
        }
    }];
    return (uintptr_t)CFBridgingRetain(obs);
}

static void unsubscribe_activation(uintptr_t ref) {
    id obs = CFBridgingRelease((CFTypeRef)ref);
    [[[NSWorkspace sharedWorkspace] notificationCenter] removeObserver:obs];
}

static void focus_changed(AXObserverRef observer, AXUIElementRef element,
                          CFStringRef notification, void *refcon) {
    goFocusChanged((int)(intptr_t)refcon);
}

// Status: 0 ok, -1 accessibility not granted, -2 other failure.
static uintptr_t subscribe_focus(int pid, int *status) {
    AXObserverRef observer = NULL;
    AXError err = AXObserverCreate((pid_t)pid, focus_changed, &observer);
    if (err != kAXErrorSuccess) {
        *status = err == kAXErrorAPIDisabled ? -1 : -2;
        return 0;
    }

    AXUIElementRef app = AXUIElementCreateApplication((pid_t)pid);
    err = AXObserverAddNotification(observer, app, kAXFocusedWindowChangedNotification,
                                    (void *)(intptr_t)pid);
    CFRelease(app);
    if (err != kAXErrorSuccess && err != kAXErrorNotificationAlreadyRegistered) {
        CFRelease(observer);
        *status = err == kAXErrorAPIDisabled ? -1 : -2;
        return 0;
    }

    CFRunLoopAddSource(CFRunLoopGetMain(), AXObserverGetRunLoopSource(observer), kCFRunLoopDefaultMode);
    *status = 0;
    return (uintptr_t)observer;
}

static void unsubscribe_focus(uintptr_t ref) {
    AXObserverRef observer = (AXObserverRef)ref;
    CFRunLoopRemoveSource(CFRunLoopGetMain(), AXObserverGetRunLoopSource(observer), kCFRunLoopDefaultMode);
    CFRelease(observer);
}

static int frontmost_pid(void) {
    @autoreleasepool {
        NSRunningApplication *app = [[NSWorkspace sharedWorkspace] frontmostApplication];
        return app != nil ? (int)app.processIdentifier : -1;
    }
}

// Status as for subscribe_focus; -3 when the app has no focused window.
static int focused_window(int pid, uint32_t *out) {
    AXUIElementRef app = AXUIElementCreateApplication((pid_t)pid);
    CFTypeRef win = NULL;
    AXError err = AXUIElementCopyAttributeValue(app, kAXFocusedWindowAttribute, &win);
    CFRelease(app);
    if (err == kAXErrorAPIDisabled) return -1;
    if (err != kAXErrorSuccess || win == NULL) return -3;

    CGWindowID wid = 0;
    err = _AXUIElementGetWindow((AXUIElementRef)win, &wid);
    CFRelease(win);
    if (err != kAXErrorSuccess || wid == 0) return -2;
    *out = wid;
    return 0;
}
*/
import "C"
import (
	"errors"
	"fmt"
	"sync"

	"github.com/mj1618/focus-border/internal/model"
	"github.com/mj1618/focus-border/internal/platform"
)

// OS callbacks carry only an integer, so subscribers are found through
// these tables. Activation observers are keyed by token, focus observers by PID.
var (
	registryMu  sync.RWMutex
	activations = map[uintptr]func(pid int){}
	nextToken   uintptr
	observers   = map[int]*axObserver{}
)

type axObserver struct {
	ref  C.uintptr_t
	fn   func()
	once sync.Once
}

func (o *axObserver) release() {
	o.once.Do(func() { C.unsubscribe_focus(o.ref) })
}

// DarwinFocusSource implements platform.FocusSource with NSWorkspace activation
// notifications and per-application AXObservers. Callbacks are delivered on
// the main thread, which RunMain must be pumping.
type DarwinFocusSource struct{}

// NewFocusSource creates a new macOS focus source.
func NewFocusSource() *DarwinFocusSource {
	return &DarwinFocusSource{}
}

type activationSub struct {
	token uintptr
	ref   C.uintptr_t
	once  sync.Once
}

func (s *activationSub) Unsubscribe() {
	s.once.Do(func() {
		registryMu.Lock()
		delete(activations, s.token)
		registryMu.Unlock()
		C.unsubscribe_activation(s.ref)
	})
}

func (f *DarwinFocusSource) SubscribeActivation(fn func(pid int)) (platform.Subscription, error) {
	if err := CheckAccessibilityPermission(); err != nil {
		return nil, err
	}

	registryMu.Lock()
	nextToken++
	token := nextToken
	activations[token] = fn
	registryMu.Unlock()

	ref := C.subscribe_activation(C.uintptr_t(token))
	return &activationSub{token: token, ref: ref}, nil
}

type focusSub struct {
	pid int
	obs *axObserver
}

func (s *focusSub) Unsubscribe() {
	registryMu.Lock()
	if observers[s.pid] == s.obs {
		delete(observers, s.pid)
	}
	registryMu.Unlock()
	s.obs.release()
}

// SubscribeFocusChanged observes kAXFocusedWindowChangedNotification for pid.
// A second subscription for the same PID replaces the first.
func (f *DarwinFocusSource) SubscribeFocusChanged(pid int, fn func()) (platform.Subscription, error) {
	var status C.int
	ref := C.subscribe_focus(C.int(pid), &status)
	switch status {
	case 0:
	case -1:
		return nil, errNotTrusted()
	default:
		return nil, fmt.Errorf("observe focus of PID %d: AXObserver failed", pid)
	}

	obs := &axObserver{ref: ref, fn: fn}
	registryMu.Lock()
	prev := observers[pid]
	observers[pid] = obs
	registryMu.Unlock()
	if prev != nil {
		prev.release()
	}
	return &focusSub{pid: pid, obs: obs}, nil
}

func (f *DarwinFocusSource) FrontmostPID() (int, error) {
	pid := int(C.frontmost_pid())
	if pid < 0 {
		return 0, errors.New("no frontmost application")
	}
	return pid, nil
}

func (f *DarwinFocusSource) FocusedWindow(pid int) (model.WindowRef, error) {
	var id C.uint32_t
	switch C.focused_window(C.int(pid), &id) {
	case 0:
		return model.WindowRef{ID: uint32(id), PID: pid}, nil
	case -1:
		return model.WindowRef{}, errNotTrusted()
	case -3:
		return model.WindowRef{}, fmt.Errorf("PID %d has no focused window: %w", pid, platform.ErrStale)
	default:
		return model.WindowRef{}, fmt.Errorf("focused window of PID %d has no window ID", pid)
	}
}
