//go:build darwin && cgo

package darwin

/*
#cgo LDFLAGS: -framework AppKit -framework QuartzCore
#import <AppKit/AppKit.h>
#import <QuartzCore/QuartzCore.h>

static NSMutableDictionary<NSNumber *, NSPanel *> *overlays;

// Creates a borderless, non-activating, click-through panel on every space
// and strokes a rounded rect inside it. Runs on the main queue.
static void overlay_show(long key, double x, double y, double w, double h,
                         double width, double radius,
                         double r, double g, double b, double a) {
    dispatch_async(dispatch_get_main_queue(), ^{
        if (overlays == nil) {
            overlays = [NSMutableDictionary dictionary];
        }

        NSPanel *panel = [[NSPanel alloc] initWithContentRect:NSMakeRect(x, y, w, h)
                                                    styleMask:NSWindowStyleMaskBorderless | NSWindowStyleMaskNonactivatingPanel
                                                      backing:NSBackingStoreBuffered
                                                        defer:NO];
        panel.level = NSStatusWindowLevel;
        panel.backgroundColor = [NSColor clearColor];
        panel.opaque = NO;
        panel.hasShadow = NO;
        panel.ignoresMouseEvents = YES;
        panel.hidesOnDeactivate = NO;
        panel.releasedWhenClosed = NO;
        panel.collectionBehavior = NSWindowCollectionBehaviorCanJoinAllSpaces |
                                   NSWindowCollectionBehaviorStationary |
                                   NSWindowCollectionBehaviorFullScreenAuxiliary |
                                   NSWindowCollectionBehaviorIgnoresCycle;

        NSView *view = [[NSView alloc] initWithFrame:NSMakeRect(0, 0, w, h)];
        view.wantsLayer = YES;

        CGRect inner = CGRectInset(CGRectMake(0, 0, w, h), width / 2, width / 2);
        if (inner.size.width > 0 && inner.size.height > 0) {
            CGFloat rr = MIN(radius, MIN(inner.size.width, inner.size.height) / 2);
            if (rr < 0) rr = 0;
            CGPathRef path = CGPathCreateWithRoundedRect(inner, rr, rr, NULL);

            CAShapeLayer *shape = [CAShapeLayer layer];
            shape.path = path;
            shape.fillColor = nil;
            shape.strokeColor = [NSColor colorWithSRGBRed:r green:g blue:b alpha:a].CGColor;
            shape.lineWidth = width;
            [view.layer addSublayer:shape];
            CGPathRelease(path);
        }

        panel.contentView = view;
        [panel orderFrontRegardless];
        overlays[@(key)] = panel;
    });
}

static void overlay_hide(long key) {
    dispatch_async(dispatch_get_main_queue(), ^{
        NSPanel *panel = overlays[@(key)];
        if (panel != nil) {
            [panel orderOut:nil];
            [overlays removeObjectForKey:@(key)];
        }
    });
}
*/
import "C"
import (
	"fmt"
	"sync/atomic"

	"github.com/mj1618/focus-border/internal/geometry"
	"github.com/mj1618/focus-border/internal/model"
	"github.com/mj1618/focus-border/internal/platform"
)

// DarwinOverlay implements platform.OverlayRenderer with one NSPanel per
// highlight. Panels are created and destroyed on the main queue, so Show
// returns before the panel is on screen.
type DarwinOverlay struct {
	displays platform.DisplayProvider
	next     atomic.Int64
}

// NewOverlay creates a new macOS overlay renderer.
func NewOverlay(displays platform.DisplayProvider) *DarwinOverlay {
	return &DarwinOverlay{displays: displays}
}

type overlayHandle int64

func (o *DarwinOverlay) Show(frame geometry.Rect, display geometry.DisplayRef, style model.Style) (platform.OverlayHandle, error) {
	if frame.Empty() {
		return nil, fmt.Errorf("empty overlay frame %s", frame)
	}
	displays, err := o.displays.Displays()
	if err != nil {
		return nil, err
	}
	d, ok := geometry.Find(displays, display)
	if !ok {
		return nil, fmt.Errorf("display %d is not attached", display)
	}
	f := cocoaFrame(frame, d, geometry.Primary(displays))
	c := style.Color
	key := o.next.Add(1)
	C.overlay_show(C.long(key),
		C.double(f.X), C.double(f.Y), C.double(f.Width), C.double(f.Height),
		C.double(style.BorderWidth), C.double(style.CornerRadius),
		C.double(float64(c.R)/255), C.double(float64(c.G)/255), C.double(float64(c.B)/255), C.double(float64(c.A)/255))
	return overlayHandle(key), nil
}

func (o *DarwinOverlay) Hide(h platform.OverlayHandle) {
	if key, ok := h.(overlayHandle); ok {
		C.overlay_hide(C.long(key))
	}
}
