// Package watch turns OS focus signals into highlight requests. It follows
// the frontmost application, waits for focus to settle, drops repeats of the
// last highlighted window and hands the rest to a Highlighter.
package watch

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/mj1618/focus-border/internal/config"
	"github.com/mj1618/focus-border/internal/geometry"
	"github.com/mj1618/focus-border/internal/logging"
	"github.com/mj1618/focus-border/internal/loop"
	"github.com/mj1618/focus-border/internal/model"
	"github.com/mj1618/focus-border/internal/platform"
)

// State is the watcher's observation state.
type State int

const (
	// Stopped holds no focus or activation subscriptions.
	Stopped State = iota
	// Observing follows the frontmost application and its focused window.
	Observing
)

func (s State) String() string {
	if s == Observing {
		return "observing"
	}
	return "stopped"
}

// MarshalText lets State print by name in YAML and JSON output.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Highlighter receives resolved highlight requests. frame is in the overlay
// space of display.
type Highlighter interface {
	ShowHighlight(frame geometry.Rect, display geometry.DisplayRef)
}

// Status is a point-in-time view of the watcher.
type Status struct {
	State State           `yaml:"state"                      json:"state"`
	PID   int             `yaml:"pid,omitempty"              json:"pid,omitempty"`
	Last  model.WindowRef `yaml:"last_highlighted,omitempty" json:"last_highlighted,omitempty"`
}

// Watcher observes focus changes while the configuration asks for it.
// Every method must run on the loop.
type Watcher struct {
	loop     *loop.Loop
	focus    platform.FocusSource
	windows  platform.WindowLocator
	displays platform.DisplayProvider
	target   Highlighter
	cfg      config.Provider
	log      *slog.Logger

	cfgSub     config.Subscription
	state      State
	activation platform.Subscription
	focusSub   platform.Subscription
	pid        int
	settle     *loop.Task
	last       model.WindowRef
	warned     bool
	observers  []func(model.FocusEvent)
}

// New creates a stopped watcher.
func New(l *loop.Loop, focus platform.FocusSource, windows platform.WindowLocator, displays platform.DisplayProvider, target Highlighter, cfg config.Provider, log *slog.Logger) *Watcher {
	return &Watcher{
		loop:     l,
		focus:    focus,
		windows:  windows,
		displays: displays,
		target:   target,
		cfg:      cfg,
		log:      logging.WithComponent(log, "watch"),
	}
}

// Start begins following configuration changes and observes focus if the
// configuration wants the watcher running.
func (w *Watcher) Start() {
	if w.cfgSub == nil {
		w.cfgSub = w.cfg.Subscribe(func(config.Config) {
			w.loop.Post(w.reconcile)
		})
	}
	w.reconcile()
}

// Stop tears down every subscription and stops following configuration.
func (w *Watcher) Stop() {
	if w.cfgSub != nil {
		w.cfgSub.Unsubscribe()
		w.cfgSub = nil
	}
	w.teardown()
}

// State returns the observation state.
func (w *Watcher) State() State { return w.state }

// Status returns the state, the followed application and the last
// highlighted window.
func (w *Watcher) Status() Status {
	return Status{State: w.state, PID: w.pid, Last: w.last}
}

// OnFocus registers fn to be called for every focus change that produced a
// highlight request.
func (w *Watcher) OnFocus(fn func(model.FocusEvent)) {
	w.observers = append(w.observers, fn)
}

// ResetLastHighlighted forgets the last highlighted window so the next focus
// event for it is let through.
func (w *Watcher) ResetLastHighlighted() {
	w.last = model.WindowRef{}
}

// HighlightWindow highlights ref directly, bypassing the settle delay and
// the ambient subscriptions. It works whether or not the watcher observes.
func (w *Watcher) HighlightWindow(ref model.WindowRef) error {
	w.ResetLastHighlighted()
	return w.highlight(ref)
}

func (w *Watcher) reconcile() {
	want := w.cfg.Current().WatcherWanted()
	switch {
	case want && w.state == Stopped:
		w.observe()
	case !want && w.state == Observing:
		w.log.Debug("focus watching disabled by configuration")
		w.teardown()
	}
}

func (w *Watcher) observe() {
	sub, err := w.focus.SubscribeActivation(func(pid int) {
		w.loop.Post(func() { w.activated(pid) })
	})
	if err != nil {
		if !w.warned {
			w.warned = true
			w.log.Warn("cannot observe application activation; focus highlighting is inactive", "error", err)
		} else {
			w.log.Debug("activation subscription failed", "error", err)
		}
		return
	}
	w.activation = sub
	w.state = Observing
	w.log.Debug("observing focus changes")

	pid, err := w.focus.FrontmostPID()
	if err != nil {
		w.log.Debug("no frontmost application", "error", err)
		return
	}
	w.attach(pid)
}

func (w *Watcher) teardown() {
	w.settle.Cancel()
	w.settle = nil
	if w.focusSub != nil {
		w.focusSub.Unsubscribe()
		w.focusSub = nil
	}
	if w.activation != nil {
		w.activation.Unsubscribe()
		w.activation = nil
	}
	w.pid = 0
	w.state = Stopped
}

// attach moves the per-application focus subscription to pid.
func (w *Watcher) attach(pid int) {
	if w.focusSub != nil {
		w.focusSub.Unsubscribe()
		w.focusSub = nil
	}
	w.pid = pid

	sub, err := w.focus.SubscribeFocusChanged(pid, func() {
		w.loop.Post(func() { w.focusChanged(pid) })
	})
	if err != nil {
		w.log.Debug("focus subscription failed", "pid", pid, "error", err)
		return
	}
	w.focusSub = sub
}

func (w *Watcher) activated(pid int) {
	if w.state != Observing {
		return
	}
	if pid != w.pid || w.focusSub == nil {
		w.attach(pid)
	}
	w.scheduleSettle()
}

func (w *Watcher) focusChanged(pid int) {
	// Signals from a replaced subscription may still be queued.
	if w.state != Observing || pid != w.pid {
		return
	}
	w.scheduleSettle()
}

func (w *Watcher) scheduleSettle() {
	w.settle.Cancel()
	w.settle = w.loop.After("settle", w.cfg.Current().Timing.SettleDelay.Duration, w.settled)
}

func (w *Watcher) settled() {
	w.settle = nil

	ref, err := w.focus.FocusedWindow(w.pid)
	if err != nil {
		w.log.Debug("focused window query failed", "pid", w.pid, "error", err)
		return
	}
	if ref == w.last {
		return
	}
	w.last = ref

	if err := w.highlight(ref); err != nil {
		w.log.Debug("highlight dropped", "window", ref.ID, "pid", ref.PID, "error", err)
	}
}

// highlight resolves ref's geometry and forwards the request.
func (w *Watcher) highlight(ref model.WindowRef) error {
	if ref.IsZero() {
		return errors.New("no window")
	}
	frame, err := w.windows.WindowFrame(ref)
	if err != nil {
		return fmt.Errorf("window frame: %w", err)
	}
	displays, err := w.displays.Displays()
	if err != nil {
		return fmt.Errorf("list displays: %w", err)
	}

	target, display := geometry.ToOverlaySpace(frame, displays)
	w.target.ShowHighlight(target, display.ID)

	ev := model.FocusEvent{Window: ref, Frame: frame, Display: display.ID}
	for _, fn := range w.observers {
		fn(ev)
	}
	return nil
}
