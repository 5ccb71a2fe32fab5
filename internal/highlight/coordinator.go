// Package highlight schedules the focus border: a debounced show followed
// by an automatic hide, with at most one overlay alive at a time.
package highlight

import (
	"log/slog"

	"github.com/mj1618/focus-border/internal/config"
	"github.com/mj1618/focus-border/internal/geometry"
	"github.com/mj1618/focus-border/internal/logging"
	"github.com/mj1618/focus-border/internal/loop"
	"github.com/mj1618/focus-border/internal/model"
	"github.com/mj1618/focus-border/internal/platform"
)

// Coordinator owns the overlay state machine. All methods except New and
// OnStateChange registration must run on the loop.
type Coordinator struct {
	loop     *loop.Loop
	renderer platform.OverlayRenderer
	accent   platform.AccentColorSource
	cfg      config.Provider
	log      *slog.Logger
	cfgSub   config.Subscription

	state     State
	request   model.HighlightRequest
	showTask  *loop.Task
	hideTask  *loop.Task
	handle    platform.OverlayHandle
	observers []func(State)
}

// Snapshot is a point-in-time view of the coordinator.
type Snapshot struct {
	State   State                  `yaml:"state"             json:"state"`
	Request *model.HighlightRequest `yaml:"request,omitempty" json:"request,omitempty"`
}

// New creates a coordinator. accent may be nil. The coordinator cancels
// itself when the configuration disables highlighting.
func New(l *loop.Loop, renderer platform.OverlayRenderer, accent platform.AccentColorSource, cfg config.Provider, log *slog.Logger) *Coordinator {
	c := &Coordinator{
		loop:     l,
		renderer: renderer,
		accent:   accent,
		cfg:      cfg,
		log:      logging.WithComponent(log, "highlight"),
	}
	c.cfgSub = cfg.Subscribe(func(next config.Config) {
		if next.Highlight.Enabled {
			return
		}
		// Re-check on the loop; a later update may have re-enabled.
		l.Post(func() {
			if !c.cfg.Current().Highlight.Enabled {
				c.Cancel()
			}
		})
	})
	return c
}

// ShowHighlight requests a border around frame, which is in the overlay
// space of display. Any pending or visible highlight is superseded.
func (c *Coordinator) ShowHighlight(frame geometry.Rect, display geometry.DisplayRef) {
	cfg := c.cfg.Current()
	if !cfg.Highlight.Enabled {
		c.log.Debug("highlight disabled, request dropped", "frame", frame)
		return
	}

	c.clear()
	c.request = model.HighlightRequest{
		TargetFrame: frame,
		Display:     display,
		RequestedAt: c.loop.Now(),
	}
	c.setState(PendingShow)
	c.showTask = c.loop.After("show", cfg.Timing.ShowDelay.Duration, c.show)
}

// Cancel drops any pending show, hides the overlay and returns to Idle.
func (c *Coordinator) Cancel() {
	c.clear()
	c.setState(Idle)
}

// Close unsubscribes from configuration changes and cancels.
func (c *Coordinator) Close() {
	if c.cfgSub != nil {
		c.cfgSub.Unsubscribe()
		c.cfgSub = nil
	}
	c.Cancel()
}

// State returns the current state.
func (c *Coordinator) State() State { return c.state }

// Snapshot returns the state and, unless idle, the active request.
func (c *Coordinator) Snapshot() Snapshot {
	s := Snapshot{State: c.state}
	if c.state != Idle {
		req := c.request
		s.Request = &req
	}
	return s
}

// OnStateChange registers fn to be called on the loop after every state
// transition.
func (c *Coordinator) OnStateChange(fn func(State)) {
	c.observers = append(c.observers, fn)
}

func (c *Coordinator) show() {
	c.showTask = nil

	cfg := c.cfg.Current()
	if !cfg.Highlight.Enabled {
		c.setState(Idle)
		return
	}

	style := cfg.Style(c.accentColor(cfg))
	frame := c.request.TargetFrame.Expand(style.BorderWidth / 2)
	h, err := c.renderer.Show(frame, c.request.Display, style)
	if err != nil {
		c.log.Warn("failed to show overlay", "frame", frame, "error", err)
		c.setState(Idle)
		return
	}

	c.handle = h
	c.setState(Visible)
	c.hideTask = c.loop.After("hide", cfg.Timing.VisibleDuration.Duration, c.hide)
}

func (c *Coordinator) hide() {
	c.hideTask = nil
	c.hideOverlay()
	c.setState(Idle)
}

// clear cancels both tasks and destroys the overlay without a transition.
func (c *Coordinator) clear() {
	c.showTask.Cancel()
	c.showTask = nil
	c.hideTask.Cancel()
	c.hideTask = nil
	c.hideOverlay()
}

func (c *Coordinator) hideOverlay() {
	if c.handle == nil {
		return
	}
	c.renderer.Hide(c.handle)
	c.handle = nil
}

func (c *Coordinator) accentColor(cfg config.Config) *model.Color {
	if cfg.Highlight.UseCustomColor || c.accent == nil {
		return nil
	}
	if col, ok := c.accent.AccentColor(); ok {
		return &col
	}
	return nil
}

func (c *Coordinator) setState(s State) {
	if s == c.state {
		return
	}
	c.log.Debug("state change", "from", c.state, "to", s)
	c.state = s
	for _, fn := range c.observers {
		fn(s)
	}
}
