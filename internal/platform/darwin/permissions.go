//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework ApplicationServices -framework Foundation
#import <Foundation/Foundation.h>
#include <ApplicationServices/ApplicationServices.h>

static int is_trusted() {
    return AXIsProcessTrusted();
}

static void prompt_trust() {
    NSDictionary *opts = @{(__bridge id)kAXTrustedCheckOptionPrompt: @YES};
    AXIsProcessTrustedWithOptions((__bridge CFDictionaryRef)opts);
}
*/
import "C"
import (
	"fmt"

	"github.com/mj1618/focus-border/internal/platform"
)

// CheckAccessibilityPermission checks if the process has macOS accessibility permission.
// The returned error wraps platform.ErrPermission and carries instructions.
func CheckAccessibilityPermission() error {
	if C.is_trusted() == 0 {
		return fmt.Errorf("%w\n\n"+
			"Grant permission at: System Settings > Privacy & Security > Accessibility\n"+
			"Add your terminal app (e.g. Terminal.app, iTerm2, or the IDE running this command).\n"+
			"Then restart the terminal and try again.", platform.ErrPermission)
	}
	return nil
}

// IsAccessibilityTrusted returns true if the process has accessibility permission.
func IsAccessibilityTrusted() bool {
	return C.is_trusted() != 0
}

// RequestAccessibilityPermission shows the system prompt when the process is
// not yet trusted. It does not wait for the user.
func RequestAccessibilityPermission() {
	if C.is_trusted() == 0 {
		C.prompt_trust()
	}
}

// errNotTrusted is returned when an AX call reports the API disabled.
func errNotTrusted() error {
	if err := CheckAccessibilityPermission(); err != nil {
		return err
	}
	return platform.ErrPermission
}
