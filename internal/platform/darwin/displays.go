//go:build darwin && cgo

package darwin

/*
#cgo LDFLAGS: -framework AppKit -framework Foundation
#import <AppKit/AppKit.h>
#include <stdint.h>

typedef struct {
    uint32_t num;
    double x, y, w, h;
} fb_screen;

// Fills out with NSScreen frames in AppKit coordinates. The first entry is
// the primary display.
static int ns_screens(fb_screen *out, int max) {
    @autoreleasepool {
        int n = 0;
        for (NSScreen *s in [NSScreen screens]) {
            if (n >= max) break;
            NSNumber *num = s.deviceDescription[@"NSScreenNumber"];
            NSRect f = s.frame;
            out[n].num = num.unsignedIntValue;
            out[n].x = f.origin.x;
            out[n].y = f.origin.y;
            out[n].w = f.size.width;
            out[n].h = f.size.height;
            n++;
        }
        return n;
    }
}
*/
import "C"
import (
	"errors"

	"github.com/mj1618/focus-border/internal/geometry"
)

const maxScreens = 32

// DarwinDisplays implements platform.DisplayProvider from NSScreen.
type DarwinDisplays struct{}

// NewDisplays creates a new macOS display provider.
func NewDisplays() *DarwinDisplays {
	return &DarwinDisplays{}
}

func (d *DarwinDisplays) Displays() ([]geometry.Display, error) {
	var buf [maxScreens]C.fb_screen
	n := int(C.ns_screens(&buf[0], maxScreens))
	if n == 0 {
		return nil, errors.New("no screens attached")
	}

	primaryHeight := float64(buf[0].h)
	displays := make([]geometry.Display, n)
	for i, s := range buf[:n] {
		displays[i] = geometry.Display{
			ID: geometry.DisplayRef(s.num),
			Frame: topLeftFrame(geometry.Rect{
				X:      float64(s.x),
				Y:      float64(s.y),
				Width:  float64(s.w),
				Height: float64(s.h),
			}, primaryHeight),
			Primary: i == 0,
		}
	}
	return displays, nil
}
