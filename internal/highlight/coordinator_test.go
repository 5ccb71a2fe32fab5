package highlight_test

import (
	"errors"
	"testing"
	"time"

	"github.com/mj1618/focus-border/internal/config"
	"github.com/mj1618/focus-border/internal/geometry"
	"github.com/mj1618/focus-border/internal/highlight"
	"github.com/mj1618/focus-border/internal/logging"
	"github.com/mj1618/focus-border/internal/loop/looptest"
	"github.com/mj1618/focus-border/internal/model"
	"github.com/mj1618/focus-border/internal/platform/fake"
	"github.com/mj1618/focus-border/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	h      *looptest.Harness
	cfg    *config.Static
	rec    *render.Recorder
	plat   *fake.Platform
	coord  *highlight.Coordinator
	states []highlight.State
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		h:    looptest.New(logging.Discard()),
		cfg:  config.NewStatic(config.Default()),
		plat: fake.New(),
	}
	f.rec = render.NewRecorder("", nil)
	f.rec.Now = f.h.Clock.Now
	f.coord = highlight.New(f.h.Loop, f.rec, f.plat, f.cfg, logging.Discard())
	f.coord.OnStateChange(func(s highlight.State) {
		f.states = append(f.states, s)
		if f.rec.Visible() > 1 {
			t.Errorf("%d overlays visible at once", f.rec.Visible())
		}
	})
	return f
}

var frame = geometry.Rect{X: 100, Y: 580, Width: 400, Height: 300}

func TestShowThenAutoHide(t *testing.T) {
	f := newFixture(t)

	f.coord.ShowHighlight(frame, 1)
	assert.Equal(t, highlight.PendingShow, f.coord.State())

	f.h.Advance(99 * time.Millisecond)
	assert.Equal(t, highlight.PendingShow, f.coord.State())
	assert.Empty(t, f.rec.Shots())

	f.h.Advance(time.Millisecond)
	require.Equal(t, highlight.Visible, f.coord.State())
	require.Len(t, f.rec.Shots(), 1)
	assert.Equal(t, 100*time.Millisecond, f.rec.Shots()[0].Shown.Sub(looptest.Epoch))

	f.h.Advance(299 * time.Millisecond)
	assert.Equal(t, highlight.Visible, f.coord.State())

	f.h.Advance(time.Millisecond)
	assert.Equal(t, highlight.Idle, f.coord.State())
	assert.Zero(t, f.rec.Visible())
	assert.Equal(t, 400*time.Millisecond, f.rec.Shots()[0].Hidden.Sub(looptest.Epoch))

	assert.Equal(t, []highlight.State{highlight.PendingShow, highlight.Visible, highlight.Idle}, f.states)
	assert.Zero(t, f.h.Clock.Pending(), "no timers left behind")
}

func TestFrameExpandedByHalfBorder(t *testing.T) {
	f := newFixture(t)

	f.coord.ShowHighlight(frame, 7)
	f.h.Advance(100 * time.Millisecond)

	shots := f.rec.Shots()
	require.Len(t, shots, 1)
	assert.Equal(t, geometry.Rect{X: 98.5, Y: 578.5, Width: 403, Height: 303}, shots[0].Frame)
	assert.Equal(t, geometry.DisplayRef(7), shots[0].Display)
	assert.Equal(t, 3.0, shots[0].Style.BorderWidth)
	assert.Equal(t, 10.0, shots[0].Style.CornerRadius)
}

func TestRapidRequestsDebounce(t *testing.T) {
	f := newFixture(t)

	var last geometry.Rect
	for i := 0; i < 5; i++ {
		last = geometry.Rect{X: float64(i * 10), Y: 0, Width: 200, Height: 100}
		f.coord.ShowHighlight(last, 1)
		f.h.Advance(20 * time.Millisecond)
	}

	f.h.Advance(time.Second)

	shots := f.rec.Shots()
	require.Len(t, shots, 1, "only the last request is shown")
	assert.Equal(t, last.Expand(1.5), shots[0].Frame)
	// The last request came at 80ms; its show fires 100ms later.
	assert.Equal(t, 180*time.Millisecond, shots[0].Shown.Sub(looptest.Epoch))
	assert.Zero(t, f.h.Clock.Pending(), "no stray timers")
}

func TestRequestWhileVisibleReplacesOverlay(t *testing.T) {
	f := newFixture(t)

	f.coord.ShowHighlight(frame, 1)
	f.h.Advance(150 * time.Millisecond)
	require.Equal(t, highlight.Visible, f.coord.State())

	f.coord.ShowHighlight(geometry.Rect{X: 10, Y: 10, Width: 50, Height: 50}, 1)
	assert.Equal(t, highlight.PendingShow, f.coord.State())
	assert.Zero(t, f.rec.Visible(), "old overlay hidden immediately")

	f.h.Advance(100 * time.Millisecond)
	assert.Equal(t, highlight.Visible, f.coord.State())
	assert.Equal(t, 1, f.rec.Visible())

	f.h.Advance(300 * time.Millisecond)
	assert.Equal(t, highlight.Idle, f.coord.State())
	assert.Len(t, f.rec.Shots(), 2)
	assert.Equal(t, 1, f.rec.MaxVisible())
}

func TestDisableWhilePending(t *testing.T) {
	f := newFixture(t)

	f.coord.ShowHighlight(frame, 1)
	f.cfg.Update(func(c *config.Config) { c.Highlight.Enabled = false })
	f.h.Advance(time.Second)

	assert.Empty(t, f.rec.Shots(), "overlay never appears")
	assert.Equal(t, highlight.Idle, f.coord.State())
}

func TestReenableBeforeCancelRuns(t *testing.T) {
	f := newFixture(t)

	// Both notifications land before the loop runs the queued cancel.
	f.cfg.Update(func(c *config.Config) { c.Highlight.Enabled = false })
	f.cfg.Update(func(c *config.Config) { c.Highlight.Enabled = true })
	f.coord.ShowHighlight(frame, 1)
	require.Equal(t, highlight.PendingShow, f.coord.State())

	f.h.Advance(time.Second)

	require.Len(t, f.rec.Shots(), 1, "stale cancel must not drop the request")
	assert.Equal(t, highlight.Idle, f.coord.State())
	assert.Equal(t, []highlight.State{highlight.PendingShow, highlight.Visible, highlight.Idle}, f.states)
}

func TestDisableWhileVisible(t *testing.T) {
	f := newFixture(t)

	f.coord.ShowHighlight(frame, 1)
	f.h.Advance(120 * time.Millisecond)
	require.Equal(t, 1, f.rec.Visible())

	f.cfg.Update(func(c *config.Config) { c.Highlight.Enabled = false })
	f.h.Flush()

	assert.Equal(t, highlight.Idle, f.coord.State())
	assert.Zero(t, f.rec.Visible())
	assert.Equal(t, 120*time.Millisecond, f.rec.Shots()[0].Hidden.Sub(looptest.Epoch))
}

func TestShowRechecksEnabled(t *testing.T) {
	f := newFixture(t)
	f.coord.Close()

	f.coord.ShowHighlight(frame, 1)
	// Closed coordinators no longer hear about config changes, so only the
	// show-time check can stop this one.
	f.cfg.Update(func(c *config.Config) { c.Highlight.Enabled = false })
	f.h.Advance(time.Second)

	assert.Empty(t, f.rec.Shots())
	assert.Equal(t, highlight.Idle, f.coord.State())
}

func TestRequestIgnoredWhenDisabled(t *testing.T) {
	f := newFixture(t)
	f.cfg.Update(func(c *config.Config) { c.Highlight.Enabled = false })
	f.h.Flush()

	f.coord.ShowHighlight(frame, 1)
	assert.Equal(t, highlight.Idle, f.coord.State())
	f.h.Advance(time.Second)
	assert.Empty(t, f.rec.Shots())
	assert.Empty(t, f.states)
}

func TestRendererFailureReturnsToIdle(t *testing.T) {
	f := newFixture(t)
	f.rec.Fail = errors.New("no window server")

	f.coord.ShowHighlight(frame, 1)
	f.h.Advance(100 * time.Millisecond)
	assert.Equal(t, highlight.Idle, f.coord.State())
	assert.Zero(t, f.h.Clock.Pending(), "no hide scheduled")

	f.rec.Fail = nil
	f.coord.ShowHighlight(frame, 1)
	f.h.Advance(100 * time.Millisecond)
	assert.Equal(t, highlight.Visible, f.coord.State())
}

func TestCancel(t *testing.T) {
	f := newFixture(t)

	f.coord.ShowHighlight(frame, 1)
	f.h.Advance(100 * time.Millisecond)
	require.Equal(t, highlight.Visible, f.coord.State())

	f.coord.Cancel()
	assert.Equal(t, highlight.Idle, f.coord.State())
	assert.Zero(t, f.rec.Visible())

	f.h.Advance(time.Second)
	assert.Len(t, f.rec.Shots(), 1)
	assert.Equal(t, highlight.Idle, f.coord.State())
}

func TestSnapshot(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, highlight.Snapshot{State: highlight.Idle}, f.coord.Snapshot())

	f.h.Advance(5 * time.Millisecond)
	f.coord.ShowHighlight(frame, 2)
	snap := f.coord.Snapshot()
	assert.Equal(t, highlight.PendingShow, snap.State)
	require.NotNil(t, snap.Request)
	assert.Equal(t, frame, snap.Request.TargetFrame)
	assert.Equal(t, geometry.DisplayRef(2), snap.Request.Display)
	assert.Equal(t, looptest.Epoch.Add(5*time.Millisecond), snap.Request.RequestedAt)
}

func TestBorderColor(t *testing.T) {
	orange := model.Color{R: 0xFF, G: 0x95, A: 0xFF}
	purple := model.Color{R: 0x95, G: 0x3D, B: 0x96, A: 0xFF}

	tests := []struct {
		name      string
		accent    *model.Color
		useCustom bool
		want      model.Color
	}{
		{"system blue fallback", nil, false, model.SystemBlue},
		{"accent color", &purple, false, purple},
		{"custom beats accent", &purple, true, orange},
		{"custom without accent", nil, true, orange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.accent != nil {
				f.plat.SetAccent(*tt.accent)
			}
			f.cfg.Update(func(c *config.Config) {
				c.Highlight.UseCustomColor = tt.useCustom
				c.Highlight.CustomColor = "#FF9500"
			})

			f.coord.ShowHighlight(frame, 1)
			f.h.Advance(100 * time.Millisecond)

			shots := f.rec.Shots()
			require.Len(t, shots, 1)
			assert.Equal(t, tt.want, shots[0].Style.Color)
		})
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", highlight.Idle.String())
	assert.Equal(t, "pending_show", highlight.PendingShow.String())
	assert.Equal(t, "visible", highlight.Visible.String())
	assert.Equal(t, "unknown", highlight.State(9).String())
}
