package looptest

import (
	"log/slog"
	"time"

	"github.com/mj1618/focus-border/internal/loop"
)

// Harness pairs a loop with a fake clock. The test goroutine plays the role
// of the loop goroutine: code under test may be called directly.
type Harness struct {
	Clock *FakeClock
	Loop  *loop.Loop
}

// New builds a harness whose loop logs to log (nil = slog.Default()).
func New(log *slog.Logger) *Harness {
	c := NewFakeClock()
	return &Harness{Clock: c, Loop: loop.New(c, log)}
}

// Advance moves time forward by d, firing due timers in deadline order and
// running the loop after each one so that callbacks may schedule more work
// inside the same window.
func (h *Harness) Advance(d time.Duration) {
	target := h.Clock.Now().Add(d)
	h.Loop.RunPending()
	for h.Clock.FireNext(target) {
		h.Loop.RunPending()
	}
	h.Clock.Set(target)
	h.Loop.RunPending()
}

// Flush runs whatever is queued on the loop without moving time.
func (h *Harness) Flush() { h.Loop.RunPending() }

// Elapsed returns the time passed since Epoch.
func (h *Harness) Elapsed() time.Duration { return h.Clock.Now().Sub(Epoch) }
