//go:build linux || freebsd || netbsd || openbsd

package x11

import (
	"errors"
	"fmt"
	"sync"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/mj1618/focus-border/internal/model"
	"github.com/mj1618/focus-border/internal/platform"
)

// X11FocusSource implements platform.FocusSource from PropertyNotify events
// on the root window's _NET_ACTIVE_WINDOW. X has no per-application focus
// notification, so one event feeds both signals: activation when the owning
// PID changes, focus-changed for the PID that owns the new active window.
type X11FocusSource struct {
	c *conn

	mu          sync.Mutex
	activations map[int]func(pid int)
	nextToken   int
	focus       map[int]*focusSub
	lastPID     int
}

func newFocusSource(c *conn) (*X11FocusSource, error) {
	err := xproto.ChangeWindowAttributesChecked(c.x, c.root, xproto.CwEventMask,
		[]uint32{xproto.EventMaskPropertyChange}).Check()
	if err != nil {
		return nil, fmt.Errorf("select root property events: %w", err)
	}
	f := &X11FocusSource{
		c:           c,
		activations: make(map[int]func(int)),
		focus:       make(map[int]*focusSub),
	}
	go f.run()
	return f, nil
}

// run dispatches X events until the connection is closed.
func (f *X11FocusSource) run() {
	for {
		ev, xerr := f.c.x.WaitForEvent()
		if ev == nil && xerr == nil {
			return
		}
		if xerr != nil {
			continue
		}
		pn, ok := ev.(xproto.PropertyNotifyEvent)
		if !ok || pn.Window != f.c.root || pn.Atom != f.c.atoms[netActiveWindow] {
			continue
		}
		f.activeChanged()
	}
}

func (f *X11FocusSource) activeChanged() {
	win, err := f.c.activeWindow()
	if err != nil || win == 0 {
		return
	}
	pid := f.c.windowPID(win)
	if pid == 0 {
		return
	}

	f.mu.Lock()
	var notify []func(int)
	if pid != f.lastPID {
		for _, fn := range f.activations {
			notify = append(notify, fn)
		}
	}
	f.lastPID = pid
	sub := f.focus[pid]
	f.mu.Unlock()

	for _, fn := range notify {
		fn(pid)
	}
	if sub != nil {
		sub.fn()
	}
}

type activationSub struct {
	f     *X11FocusSource
	token int
}

func (s *activationSub) Unsubscribe() {
	s.f.mu.Lock()
	delete(s.f.activations, s.token)
	s.f.mu.Unlock()
}

func (f *X11FocusSource) SubscribeActivation(fn func(pid int)) (platform.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextToken++
	f.activations[f.nextToken] = fn
	return &activationSub{f: f, token: f.nextToken}, nil
}

type focusSub struct {
	f   *X11FocusSource
	pid int
	fn  func()
}

func (s *focusSub) Unsubscribe() {
	s.f.mu.Lock()
	if s.f.focus[s.pid] == s {
		delete(s.f.focus, s.pid)
	}
	s.f.mu.Unlock()
}

// SubscribeFocusChanged replaces any earlier subscription for the same PID.
func (f *X11FocusSource) SubscribeFocusChanged(pid int, fn func()) (platform.Subscription, error) {
	sub := &focusSub{f: f, pid: pid, fn: fn}
	f.mu.Lock()
	f.focus[pid] = sub
	f.mu.Unlock()
	return sub, nil
}

func (f *X11FocusSource) FrontmostPID() (int, error) {
	win, err := f.c.activeWindow()
	if err != nil {
		return 0, err
	}
	if win == 0 {
		return 0, errors.New("no active window")
	}
	pid := f.c.windowPID(win)
	if pid == 0 {
		return 0, fmt.Errorf("active window 0x%x has no %s", uint32(win), netWMPID)
	}
	return pid, nil
}

// FocusedWindow returns the active window when pid owns it. Other
// applications have no focused window as far as X is concerned.
func (f *X11FocusSource) FocusedWindow(pid int) (model.WindowRef, error) {
	win, err := f.c.activeWindow()
	if err != nil {
		return model.WindowRef{}, err
	}
	if win == 0 || f.c.windowPID(win) != pid {
		return model.WindowRef{}, fmt.Errorf("PID %d has no focused window: %w", pid, platform.ErrStale)
	}
	return model.WindowRef{ID: uint32(win), PID: pid}, nil
}
