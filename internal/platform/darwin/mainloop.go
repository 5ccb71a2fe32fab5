//go:build darwin && cgo

package darwin

/*
#cgo LDFLAGS: -framework AppKit
#import <AppKit/AppKit.h>

static void app_run(void) {
    @autoreleasepool {
        [NSApplication sharedApplication];
        [NSApp setActivationPolicy:NSApplicationActivationPolicyAccessory];
        [NSApp run];
    }
}

// [NSApp stop:] only takes effect once another event is processed.
static void app_stop(void) {
    dispatch_async(dispatch_get_main_queue(), ^{
        [NSApp stop:nil];
        NSEvent *wake = [NSEvent otherEventWithType:NSEventTypeApplicationDefined
                                           location:NSZeroPoint
                                      modifierFlags:0
                                          timestamp:0
                                       windowNumber:0
                                            context:nil
                                            subtype:0
                                              data1:0
                                              data2:0];
        [NSApp postEvent:wake atStart:YES];
    });
}
*/
import "C"
import "context"

// runMain pumps the AppKit event loop on the main thread until ctx is done.
// Workspace notifications, AX observer callbacks and overlay panels all
// depend on it.
func runMain(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			C.app_stop()
		case <-done:
		}
	}()
	C.app_run()
	return nil
}
