//go:build darwin && cgo

package darwin

/*
#cgo LDFLAGS: -framework AppKit
#import <AppKit/AppKit.h>

static int accent_color(double *r, double *g, double *b, double *a) {
    @autoreleasepool {
        NSColor *c = [[NSColor controlAccentColor] colorUsingColorSpace:[NSColorSpace sRGBColorSpace]];
        if (c == nil) return -1;
        *r = c.redComponent;
        *g = c.greenComponent;
        *b = c.blueComponent;
        *a = c.alphaComponent;
        return 0;
    }
}
*/
import "C"

import "github.com/mj1618/focus-border/internal/model"

// DarwinAccent reads NSColor.controlAccentColor.
type DarwinAccent struct{}

func (DarwinAccent) AccentColor() (model.Color, bool) {
	var r, g, b, a C.double
	if C.accent_color(&r, &g, &b, &a) != 0 {
		return model.Color{}, false
	}
	return rgba(float64(r), float64(g), float64(b), float64(a)), true
}
