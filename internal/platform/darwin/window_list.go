//go:build darwin && cgo

package darwin

/*
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation
#include <CoreGraphics/CoreGraphics.h>
#include <stdint.h>
#include <stdlib.h>
#include <string.h>

typedef struct {
    uint32_t wid;
    int pid;
    double x, y, w, h;
    char *app;
    char *title;
} fb_window;

static char *copy_cfstring(CFStringRef s) {
    if (s == NULL) return strdup("");
    CFIndex len = CFStringGetMaximumSizeForEncoding(CFStringGetLength(s), kCFStringEncodingUTF8) + 1;
    char *buf = malloc(len);
    if (!CFStringGetCString(s, buf, len, kCFStringEncodingUTF8)) buf[0] = 0;
    return buf;
}

// Lists on-screen layer-0 windows, front to back.
static int cg_list_windows(fb_window **out, int *count) {
    CFArrayRef list = CGWindowListCopyWindowInfo(
        kCGWindowListOptionOnScreenOnly | kCGWindowListExcludeDesktopElements, kCGNullWindowID);
    if (list == NULL) return -1;

    CFIndex n = CFArrayGetCount(list);
    fb_window *ws = calloc(n > 0 ? n : 1, sizeof(fb_window));
    int k = 0;
    for (CFIndex i = 0; i < n; i++) {
        CFDictionaryRef d = CFArrayGetValueAtIndex(list, i);

        int layer = 0;
        CFNumberRef num = CFDictionaryGetValue(d, kCGWindowLayer);
        if (num != NULL) CFNumberGetValue(num, kCFNumberIntType, &layer);
        if (layer != 0) continue;

        CGRect b;
        CFDictionaryRef bounds = CFDictionaryGetValue(d, kCGWindowBounds);
        if (bounds == NULL || !CGRectMakeWithDictionaryRepresentation(bounds, &b)) continue;

        fb_window *w = &ws[k++];
        num = CFDictionaryGetValue(d, kCGWindowNumber);
        if (num != NULL) CFNumberGetValue(num, kCFNumberSInt32Type, &w->wid);
        num = CFDictionaryGetValue(d, kCGWindowOwnerPID);
        if (num != NULL) CFNumberGetValue(num, kCFNumberIntType, &w->pid);
        w->x = b.origin.x;
        w->y = b.origin.y;
        w->w = b.size.width;
        w->h = b.size.height;
        w->app = copy_cfstring(CFDictionaryGetValue(d, kCGWindowOwnerName));
        w->title = copy_cfstring(CFDictionaryGetValue(d, kCGWindowName));
    }
    CFRelease(list);

    *out = ws;
    *count = k;
    return 0;
}

static void cg_free_windows(fb_window *ws, int count) {
    for (int i = 0; i < count; i++) {
        free(ws[i].app);
        free(ws[i].title);
    }
    free(ws);
}
*/
import "C"
import (
	"fmt"
	"unsafe"

	"github.com/mj1618/focus-border/internal/geometry"
	"github.com/mj1618/focus-border/internal/model"
)

// ListWindows returns all on-screen application windows using
// CGWindowListCopyWindowInfo. The focused window of the frontmost app is
// flagged.
func (wm *DarwinWindowManager) ListWindows() ([]model.Window, error) {
	var cWindows *C.fb_window
	var cCount C.int

	if C.cg_list_windows(&cWindows, &cCount) != 0 {
		return nil, fmt.Errorf("failed to enumerate windows")
	}
	defer C.cg_free_windows(cWindows, cCount)

	count := int(cCount)
	if count == 0 {
		return []model.Window{}, nil
	}

	var focused model.WindowRef
	if pid, err := wm.focus.FrontmostPID(); err == nil {
		focused, _ = wm.focus.FocusedWindow(pid)
	}

	cSlice := unsafe.Slice(cWindows, count)
	windows := make([]model.Window, 0, count)
	for _, cw := range cSlice {
		ref := model.WindowRef{ID: uint32(cw.wid), PID: int(cw.pid)}
		windows = append(windows, model.Window{
			App:     C.GoString(cw.app),
			Ref:     ref,
			Title:   C.GoString(cw.title),
			Frame:   geometry.Rect{X: float64(cw.x), Y: float64(cw.y), Width: float64(cw.w), Height: float64(cw.h)},
			Focused: !focused.IsZero() && ref == focused,
		})
	}
	return windows, nil
}
