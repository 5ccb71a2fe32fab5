//go:build linux || freebsd || netbsd || openbsd

package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/shape"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/mj1618/focus-border/internal/geometry"
	"github.com/mj1618/focus-border/internal/model"
	"github.com/mj1618/focus-border/internal/platform"
)

// X11Overlay implements platform.OverlayRenderer with four override-redirect
// strip windows per highlight. Override-redirect windows are ignored by the
// window manager, so they never take focus and show on every workspace. With
// the SHAPE extension their input region is emptied to pass clicks through.
// Corners are square and alpha is ignored.
type X11Overlay struct {
	c        *conn
	displays platform.DisplayProvider
}

type overlayHandle struct {
	windows []xproto.Window
}

func (o *X11Overlay) Show(frame geometry.Rect, display geometry.DisplayRef, style model.Style) (platform.OverlayHandle, error) {
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

	h := &overlayHandle{}
	for _, r := range strips(geometry.FromOverlaySpace(frame, d), style.BorderWidth) {
		win, err := o.strip(r, pixel(style.Color))
		if err != nil {
			o.Hide(h)
			return nil, err
		}
		h.windows = append(h.windows, win)
	}
	return h, nil
}

func (o *X11Overlay) strip(r xproto.Rectangle, color uint32) (xproto.Window, error) {
	c := o.c
	win, err := xproto.NewWindowId(c.x)
	if err != nil {
		return 0, fmt.Errorf("allocate window id: %w", err)
	}
	err = xproto.CreateWindowChecked(c.x, c.screen.RootDepth, win, c.root,
		r.X, r.Y, r.Width, r.Height, 0,
		xproto.WindowClassInputOutput, c.screen.RootVisual,
		xproto.CwBackPixel|xproto.CwOverrideRedirect, []uint32{color, 1}).Check()
	if err != nil {
		return 0, fmt.Errorf("create overlay window: %w", err)
	}
	if c.shape {
		shape.Rectangles(c.x, shape.SoSet, shape.SkInput, xproto.ClipOrderingUnsorted, win, 0, 0, nil)
	}
	if err := xproto.MapWindowChecked(c.x, win).Check(); err != nil {
		xproto.DestroyWindow(c.x, win)
		return 0, fmt.Errorf("map overlay window: %w", err)
	}
	return win, nil
}

func (o *X11Overlay) Hide(h platform.OverlayHandle) {
	oh, ok := h.(*overlayHandle)
	if !ok {
		return
	}
	for _, win := range oh.windows {
		xproto.DestroyWindow(o.c.x, win)
	}
	oh.windows = nil
}
