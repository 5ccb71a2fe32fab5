// Package loop provides the single serialized execution context that owns
// all highlight state. Every posted function and every task callback runs on
// one goroutine, so state confined to the loop needs no locking.
package loop

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrStopped is returned by Do when the loop is no longer running.
var ErrStopped = errors.New("loop: stopped")

// Loop runs functions one at a time in FIFO order.
type Loop struct {
	clock Clock
	log   *slog.Logger

	mu      sync.Mutex
	queue   []func()
	wake    chan struct{}
	stopped chan struct{}
	running bool
}

// New creates a loop. A nil clock means the real clock.
func New(clock Clock, log *slog.Logger) *Loop {
	if clock == nil {
		clock = RealClock()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Loop{
		clock:   clock,
		log:     log,
		wake:    make(chan struct{}, 1),
		stopped: make(chan struct{}),
	}
}

// Now returns the loop clock's current time.
func (l *Loop) Now() time.Time { return l.clock.Now() }

// Post queues fn to run on the loop. It never blocks.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Run processes queued functions until ctx is cancelled.
// Functions still queued when Run returns are dropped.
func (l *Loop) Run(ctx context.Context) error {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return errors.New("loop: already running")
	}
	l.running = true
	l.mu.Unlock()
	defer close(l.stopped)

	for {
		l.RunPending()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// RunPending runs everything queued so far, including functions queued by
// the functions it runs, and returns how many ran. Run calls it internally;
// tests call it directly to step the loop on their own goroutine.
func (l *Loop) RunPending() int {
	n := 0
	for {
		l.mu.Lock()
		batch := l.queue
		l.queue = nil
		l.mu.Unlock()

		if len(batch) == 0 {
			return n
		}
		for _, fn := range batch {
			l.call(fn)
			n++
		}
	}
}

func (l *Loop) call(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.log.Error("loop callback panicked", "panic", r)
		}
	}()
	fn()
}

// Do runs fn on the loop and waits for it to finish.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	l.Post(func() {
		defer close(done)
		fn()
	})
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.stopped:
		return ErrStopped
	}
}

// After schedules fn to run on the loop after d. The returned task must be
// cancelled from the loop.
func (l *Loop) After(name string, d time.Duration, fn func()) *Task {
	t := &Task{name: name}
	t.timer = l.clock.AfterFunc(d, func() {
		l.Post(func() {
			if t.done {
				return
			}
			t.done = true
			fn()
		})
	})
	return t
}

// Task is a cancellable, named delayed action. Its fields are confined to
// the loop goroutine.
type Task struct {
	name      string
	timer     Timer
	done      bool
	cancelled bool
}

// Name returns the name the task was scheduled with.
func (t *Task) Name() string { return t.name }

// Pending reports whether the task has neither run nor been cancelled.
func (t *Task) Pending() bool { return t != nil && !t.done }

// Cancelled reports whether Cancel stopped the task before it ran.
func (t *Task) Cancelled() bool { return t != nil && t.cancelled }

// Cancel prevents the task from running. A callback whose timer already
// expired but has not run yet is dropped. Cancelling a finished or nil task
// is a no-op.
func (t *Task) Cancel() {
	if t == nil || t.done {
		return
	}
	t.done = true
	t.cancelled = true
	t.timer.Stop()
}
