//go:build linux || freebsd || netbsd || openbsd

package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/mj1618/focus-border/internal/geometry"
	"github.com/mj1618/focus-border/internal/model"
	"github.com/mj1618/focus-border/internal/platform"
)

// X11WindowManager implements platform.WindowLocator and
// platform.WindowManager over EWMH.
type X11WindowManager struct {
	c *conn
}

func newWindowManager(c *conn) *X11WindowManager {
	return &X11WindowManager{c: c}
}

// WindowFrame returns the client's root-relative geometry, grown by the
// window manager's frame extents when it publishes them. A BadWindow reply
// means the window is gone.
func (wm *X11WindowManager) WindowFrame(ref model.WindowRef) (geometry.Rect, error) {
	win := xproto.Window(ref.ID)
	geom, err := xproto.GetGeometry(wm.c.x, xproto.Drawable(win)).Reply()
	if err != nil {
		return geometry.Rect{}, staleOr(ref, err)
	}
	abs, err := xproto.TranslateCoordinates(wm.c.x, win, wm.c.root, 0, 0).Reply()
	if err != nil {
		return geometry.Rect{}, staleOr(ref, err)
	}

	r := geometry.Rect{
		X:      float64(abs.DstX),
		Y:      float64(abs.DstY),
		Width:  float64(geom.Width),
		Height: float64(geom.Height),
	}
	if reply, err := wm.c.property(win, netFrameExtents, xproto.AtomCardinal, 4); err == nil {
		r = withExtents(r, cardinals(reply.Value, reply.Format))
	}
	return r, nil
}

// staleOr maps BadWindow and BadDrawable replies to platform.ErrStale.
func staleOr(ref model.WindowRef, err error) error {
	switch err.(type) {
	case xproto.WindowError, xproto.DrawableError:
		return fmt.Errorf("window 0x%x: %w", ref.ID, platform.ErrStale)
	}
	return fmt.Errorf("window 0x%x: %w", ref.ID, err)
}

// ListWindows returns the managed client windows in _NET_CLIENT_LIST order.
func (wm *X11WindowManager) ListWindows() ([]model.Window, error) {
	clients, err := wm.c.clientList()
	if err != nil {
		return nil, err
	}
	active, _ := wm.c.activeWindow()

	windows := make([]model.Window, 0, len(clients))
	for _, win := range clients {
		ref := model.WindowRef{ID: uint32(win), PID: wm.c.windowPID(win)}
		frame, err := wm.WindowFrame(ref)
		if err != nil {
			continue
		}
		windows = append(windows, model.Window{
			App:     wm.c.windowClass(win),
			Ref:     ref,
			Title:   wm.c.windowTitle(win),
			Frame:   frame,
			Focused: win == active,
		})
	}
	return windows, nil
}

// RaiseWindow asks the window manager to activate the window, as a pager
// would.
func (wm *X11WindowManager) RaiseWindow(ref model.WindowRef) error {
	win := xproto.Window(ref.ID)
	if _, err := xproto.GetGeometry(wm.c.x, xproto.Drawable(win)).Reply(); err != nil {
		return staleOr(ref, err)
	}

	const sourcePager = 2
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   wm.c.atoms[netActiveWindow],
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{sourcePager, xproto.TimeCurrentTime, 0, 0, 0}),
	}
	mask := uint32(xproto.EventMaskSubstructureNotify | xproto.EventMaskSubstructureRedirect)
	return xproto.SendEventChecked(wm.c.x, false, wm.c.root, mask, string(ev.Bytes())).Check()
}
