//go:build linux || freebsd || netbsd || openbsd

package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/shape"
	"github.com/BurntSushi/xgb/xinerama"
	"github.com/BurntSushi/xgb/xproto"
)

const (
	netActiveWindow = "_NET_ACTIVE_WINDOW"
	netClientList   = "_NET_CLIENT_LIST"
	netWMPID        = "_NET_WM_PID"
	netWMName       = "_NET_WM_NAME"
	netFrameExtents = "_NET_FRAME_EXTENTS"
	utf8String      = "UTF8_STRING"
)

var atomNames = []string{netActiveWindow, netClientList, netWMPID, netWMName, netFrameExtents, utf8String}

// conn is the shared X connection. xgb serializes requests internally, so it
// is used from the event goroutine and the callers' goroutines alike.
type conn struct {
	x      *xgb.Conn
	screen *xproto.ScreenInfo
	root   xproto.Window
	atoms  map[string]xproto.Atom

	xinerama bool
	shape    bool
}

func dial() (*conn, error) {
	x, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}
	screen := xproto.Setup(x).DefaultScreen(x)
	c := &conn{
		x:      x,
		screen: screen,
		root:   screen.Root,
		atoms:  make(map[string]xproto.Atom, len(atomNames)),
	}
	for _, name := range atomNames {
		reply, err := xproto.InternAtom(x, false, uint16(len(name)), name).Reply()
		if err != nil {
			x.Close()
			return nil, fmt.Errorf("intern atom %s: %w", name, err)
		}
		c.atoms[name] = reply.Atom
	}
	c.xinerama = xinerama.Init(x) == nil
	c.shape = shape.Init(x) == nil
	return c, nil
}

func (c *conn) close() {
	c.x.Close()
}

// property reads up to n 32-bit items of a window property.
func (c *conn) property(win xproto.Window, name string, typ xproto.Atom, n uint32) (*xproto.GetPropertyReply, error) {
	return xproto.GetProperty(c.x, false, win, c.atoms[name], typ, 0, n).Reply()
}

// activeWindow returns the root's _NET_ACTIVE_WINDOW, or 0 when none.
func (c *conn) activeWindow() (xproto.Window, error) {
	reply, err := c.property(c.root, netActiveWindow, xproto.AtomWindow, 1)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", netActiveWindow, err)
	}
	ids := cardinals(reply.Value, reply.Format)
	if len(ids) == 0 {
		return 0, nil
	}
	return xproto.Window(ids[0]), nil
}

// clientList returns the windows managed by the window manager.
func (c *conn) clientList() ([]xproto.Window, error) {
	reply, err := c.property(c.root, netClientList, xproto.AtomWindow, 1<<16)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", netClientList, err)
	}
	ids := cardinals(reply.Value, reply.Format)
	windows := make([]xproto.Window, len(ids))
	for i, id := range ids {
		windows[i] = xproto.Window(id)
	}
	return windows, nil
}

// windowPID returns _NET_WM_PID, or 0 when the client does not set it.
func (c *conn) windowPID(win xproto.Window) int {
	reply, err := c.property(win, netWMPID, xproto.AtomCardinal, 1)
	if err != nil {
		return 0
	}
	vals := cardinals(reply.Value, reply.Format)
	if len(vals) == 0 {
		return 0
	}
	return int(vals[0])
}

func (c *conn) windowTitle(win xproto.Window) string {
	if reply, err := c.property(win, netWMName, c.atoms[utf8String], 256); err == nil && len(reply.Value) > 0 {
		return string(reply.Value)
	}
	if reply, err := xproto.GetProperty(c.x, false, win, xproto.AtomWmName, xproto.AtomString, 0, 256).Reply(); err == nil {
		return string(reply.Value)
	}
	return ""
}

// windowClass returns the class half of WM_CLASS, which names the application.
func (c *conn) windowClass(win xproto.Window) string {
	reply, err := xproto.GetProperty(c.x, false, win, xproto.AtomWmClass, xproto.AtomString, 0, 256).Reply()
	if err != nil {
		return ""
	}
	parts := nulStrings(reply.Value)
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}
