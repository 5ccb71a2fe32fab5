// Package app wires the loop, coordinator and watcher around a platform
// provider. Commands build one App per process.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mj1618/focus-border/internal/config"
	"github.com/mj1618/focus-border/internal/highlight"
	"github.com/mj1618/focus-border/internal/logging"
	"github.com/mj1618/focus-border/internal/loop"
	"github.com/mj1618/focus-border/internal/model"
	"github.com/mj1618/focus-border/internal/platform"
	"github.com/mj1618/focus-border/internal/watch"
)

// DefaultDisplayTTL bounds how long a display layout is reused.
const DefaultDisplayTTL = 2 * time.Second

// Options configures New.
type Options struct {
	Provider *platform.Provider
	Config   config.Provider
	Clock    loop.Clock // nil means the real clock
	Log      *slog.Logger

	// Watch starts the ambient focus watcher when the app runs. One-shot
	// commands leave it off and only use the direct highlight path.
	Watch bool

	// DisplayTTL overrides DefaultDisplayTTL. Negative disables caching.
	DisplayTTL time.Duration
}

// App owns one loop and everything that runs on it.
type App struct {
	Loop        *loop.Loop
	Provider    *platform.Provider
	Config      config.Provider
	Displays    *platform.DisplayCache
	Coordinator *highlight.Coordinator
	Watcher     *watch.Watcher

	log     *slog.Logger
	watch   bool
	waiters []chan struct{}
	shows   uint64
}

// Status is reported by the status command and MCP tool.
type Status struct {
	Platform  string             `yaml:"platform"  json:"platform"`
	Enabled   bool               `yaml:"enabled"   json:"enabled"`
	Restrict  bool               `yaml:"restrict_to_internal" json:"restrict_to_internal"`
	Watcher   watch.Status       `yaml:"watcher"   json:"watcher"`
	Highlight highlight.Snapshot `yaml:"highlight" json:"highlight"`
}

// New builds an App. The provider must supply focus, window, display and
// overlay backends.
func New(opts Options) (*App, error) {
	p := opts.Provider
	if p == nil {
		return nil, errors.New("no platform provider")
	}
	if p.Focus == nil || p.Windows == nil || p.Displays == nil || p.Overlay == nil {
		return nil, fmt.Errorf("platform %q lacks focus, window, display or overlay support", p.Name)
	}
	if opts.Config == nil {
		opts.Config = config.NewStatic(config.Default())
	}
	ttl := opts.DisplayTTL
	switch {
	case ttl == 0:
		ttl = DefaultDisplayTTL
	case ttl < 0:
		ttl = 0
	}

	log := logging.WithComponent(opts.Log, "app")
	l := loop.New(opts.Clock, log)
	displays := platform.NewDisplayCache(p.Displays, ttl)
	coord := highlight.New(l, p.Overlay, p.Accent, opts.Config, opts.Log)
	w := watch.New(l, p.Focus, p.Windows, displays, coord, opts.Config, opts.Log)

	a := &App{
		Loop:        l,
		Provider:    p,
		Config:      opts.Config,
		Displays:    displays,
		Coordinator: coord,
		Watcher:     w,
		log:         log,
		watch:       opts.Watch,
	}
	coord.OnStateChange(a.stateChanged)
	w.OnFocus(func(ev model.FocusEvent) {
		log.Debug("focus changed", "window", ev.Window.ID, "pid", ev.Window.PID, "frame", ev.Frame, "display", ev.Display)
	})
	return a, nil
}

// Run starts the watcher (if enabled) and serves the loop until ctx is
// cancelled, then tears everything down.
func (a *App) Run(ctx context.Context) error {
	// The loop is not running yet, so this goroutine owns loop state.
	a.Start()
	err := a.Loop.Run(ctx)
	// The loop goroutine has exited; this goroutine now owns loop state.
	a.Stop()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Start must run on the loop or before it runs.
func (a *App) Start() {
	if a.watch {
		a.Watcher.Start()
	}
}

// Stop must run on the loop or after it has exited.
func (a *App) Stop() {
	a.Watcher.Stop()
	a.Coordinator.Close()
	a.releaseWaiters()
}

// Highlight shows the border around ref without waiting for focus signals.
func (a *App) Highlight(ctx context.Context, ref model.WindowRef) error {
	var herr error
	if err := a.Loop.Do(ctx, func() { herr = a.Watcher.HighlightWindow(ref) }); err != nil {
		return err
	}
	return herr
}

// Raise brings ref to the front and highlights it. The raise is the tool's
// own action, so the highlight goes through the direct path.
func (a *App) Raise(ctx context.Context, ref model.WindowRef) error {
	if a.Provider.WindowManager == nil {
		return fmt.Errorf("window management not available on %s", a.Provider.Name)
	}
	if err := a.Provider.WindowManager.RaiseWindow(ref); err != nil {
		return fmt.Errorf("raise window %d: %w", ref.ID, err)
	}
	return a.Highlight(ctx, ref)
}

// ResolveWindow finds a window by ID. pid narrows the search and may be 0.
func (a *App) ResolveWindow(id uint32, pid int) (model.Window, error) {
	if id == 0 {
		return model.Window{}, errors.New("window ID is required")
	}
	windows, err := a.Provider.Windows.ListWindows()
	if err != nil {
		return model.Window{}, fmt.Errorf("list windows: %w", err)
	}
	for _, w := range windows {
		if w.Ref.ID == id && (pid == 0 || w.Ref.PID == pid) {
			return w, nil
		}
	}
	return model.Window{}, fmt.Errorf("window %d: %w", id, platform.ErrStale)
}

// Status snapshots the watcher and coordinator.
func (a *App) Status(ctx context.Context) (Status, error) {
	cfg := a.Config.Current()
	s := Status{
		Platform: a.Provider.Name,
		Enabled:  cfg.Highlight.Enabled,
		Restrict: cfg.Highlight.RestrictToInternal,
	}
	err := a.Loop.Do(ctx, func() {
		s.Watcher = a.Watcher.Status()
		s.Highlight = a.Coordinator.Snapshot()
	})
	return s, err
}

// WaitIdle blocks until no highlight is pending or visible.
func (a *App) WaitIdle(ctx context.Context) error {
	var ch chan struct{}
	err := a.Loop.Do(ctx, func() {
		if a.Coordinator.State() == highlight.Idle {
			return
		}
		ch = make(chan struct{})
		a.waiters = append(a.waiters, ch)
	})
	if err != nil || ch == nil {
		return err
	}
	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shows counts the overlays that became visible since the app was built.
// Compare counts taken before and after WaitIdle to learn whether a request
// was drawn.
func (a *App) Shows(ctx context.Context) (uint64, error) {
	var n uint64
	err := a.Loop.Do(ctx, func() { n = a.shows })
	return n, err
}

func (a *App) stateChanged(s highlight.State) {
	a.log.Debug("highlight state", "state", s)
	switch s {
	case highlight.Visible:
		a.shows++
	case highlight.Idle:
		a.releaseWaiters()
	}
}

func (a *App) releaseWaiters() {
	for _, ch := range a.waiters {
		close(ch)
	}
	a.waiters = nil
}
