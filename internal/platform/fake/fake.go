// Package fake is an in-memory platform backend for tests and headless runs.
package fake

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/mj1618/focus-border/internal/geometry"
	"github.com/mj1618/focus-border/internal/model"
	"github.com/mj1618/focus-border/internal/platform"
)

// Platform simulates applications, windows and displays. Signals fire
// synchronously on the goroutine that calls Activate or ChangeFocus.
type Platform struct {
	mu sync.Mutex

	nextSub    int
	activation map[int]func(int)
	focus      map[int]map[int]func()
	frontmost  int
	focused    map[int]model.WindowRef
	frames     map[model.WindowRef]geometry.Rect
	titles     map[model.WindowRef]string
	displays   []geometry.Display
	accent     *model.Color
	raised     []model.WindowRef
	queries    int
	frameReads int

	// SubscribeErr, when set, makes every subscription attempt fail.
	SubscribeErr error
}

// New returns a platform with one 1920x1080 primary display.
func New() *Platform {
	return &Platform{
		activation: make(map[int]func(int)),
		focus:      make(map[int]map[int]func()),
		focused:    make(map[int]model.WindowRef),
		frames:     make(map[model.WindowRef]geometry.Rect),
		titles:     make(map[model.WindowRef]string),
		displays: []geometry.Display{
			{ID: 1, Frame: geometry.Rect{Width: 1920, Height: 1080}, Primary: true},
		},
	}
}

// Provider bundles p with the given overlay renderer.
func (p *Platform) Provider(overlay platform.OverlayRenderer) *platform.Provider {
	return &platform.Provider{
		Name:          "fake",
		Focus:         p,
		Windows:       p,
		Displays:      p,
		Overlay:       overlay,
		Accent:        p,
		WindowManager: p,
	}
}

// SetDisplays replaces the display layout.
func (p *Platform) SetDisplays(displays ...geometry.Display) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.displays = displays
}

// SetAccent sets the accent color reported by AccentColor.
func (p *Platform) SetAccent(c model.Color) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.accent = &c
}

// AddWindow registers a window and makes it the focused window of its app.
func (p *Platform) AddWindow(ref model.WindowRef, title string, frame geometry.Rect) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frames[ref] = frame
	p.titles[ref] = title
	p.focused[ref.PID] = ref
}

// CloseWindow removes a window; later queries for it fail with ErrStale.
func (p *Platform) CloseWindow(ref model.WindowRef) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.frames, ref)
	delete(p.titles, ref)
}

// SetFrontmost changes the frontmost app without signalling.
func (p *Platform) SetFrontmost(pid int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frontmost = pid
}

// Activate makes pid frontmost and fires the activation signal.
func (p *Platform) Activate(pid int) {
	p.mu.Lock()
	p.frontmost = pid
	fns := make([]func(int), 0, len(p.activation))
	for _, id := range sortedKeys(p.activation) {
		fns = append(fns, p.activation[id])
	}
	p.mu.Unlock()

	for _, fn := range fns {
		fn(pid)
	}
}

// ChangeFocus focuses ref within its app and fires that app's focus signal.
func (p *Platform) ChangeFocus(ref model.WindowRef) {
	p.mu.Lock()
	p.focused[ref.PID] = ref
	subs := p.focus[ref.PID]
	fns := make([]func(), 0, len(subs))
	for _, id := range sortedKeys(subs) {
		fns = append(fns, subs[id])
	}
	p.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// FocusSubscriptions returns how many per-app focus subscriptions are live.
func (p *Platform) FocusSubscriptions() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, subs := range p.focus {
		n += len(subs)
	}
	return n
}

// FocusSubscribed reports whether pid has a live focus subscription.
func (p *Platform) FocusSubscribed(pid int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.focus[pid]) > 0
}

// ActivationSubscriptions returns how many activation subscriptions are live.
func (p *Platform) ActivationSubscriptions() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.activation)
}

// Queries returns how many FocusedWindow calls were made.
func (p *Platform) Queries() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.queries
}

// FrameReads returns how many WindowFrame calls were made.
func (p *Platform) FrameReads() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frameReads
}

// Raised returns the windows passed to RaiseWindow.
func (p *Platform) Raised() []model.WindowRef {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]model.WindowRef(nil), p.raised...)
}

// SubscribeActivation implements platform.FocusSource.
func (p *Platform) SubscribeActivation(fn func(pid int)) (platform.Subscription, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.SubscribeErr != nil {
		return nil, p.SubscribeErr
	}
	p.nextSub++
	id := p.nextSub
	p.activation[id] = fn
	return subFunc(func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.activation, id)
	}), nil
}

// SubscribeFocusChanged implements platform.FocusSource.
func (p *Platform) SubscribeFocusChanged(pid int, fn func()) (platform.Subscription, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.SubscribeErr != nil {
		return nil, p.SubscribeErr
	}
	p.nextSub++
	id := p.nextSub
	if p.focus[pid] == nil {
		p.focus[pid] = make(map[int]func())
	}
	p.focus[pid][id] = fn
	return subFunc(func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.focus[pid], id)
		if len(p.focus[pid]) == 0 {
			delete(p.focus, pid)
		}
	}), nil
}

// FrontmostPID implements platform.FocusSource.
func (p *Platform) FrontmostPID() (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.frontmost == 0 {
		return 0, errors.New("no frontmost application")
	}
	return p.frontmost, nil
}

// FocusedWindow implements platform.FocusSource.
func (p *Platform) FocusedWindow(pid int) (model.WindowRef, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queries++
	ref, ok := p.focused[pid]
	if !ok {
		return model.WindowRef{}, fmt.Errorf("pid %d: %w", pid, platform.ErrStale)
	}
	return ref, nil
}

// WindowFrame implements platform.WindowLocator.
func (p *Platform) WindowFrame(ref model.WindowRef) (geometry.Rect, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frameReads++
	frame, ok := p.frames[ref]
	if !ok {
		return geometry.Rect{}, fmt.Errorf("window %d: %w", ref.ID, platform.ErrStale)
	}
	return frame, nil
}

// ListWindows implements platform.WindowLocator.
func (p *Platform) ListWindows() ([]model.Window, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	windows := make([]model.Window, 0, len(p.frames))
	for ref, frame := range p.frames {
		windows = append(windows, model.Window{
			App:     fmt.Sprintf("app-%d", ref.PID),
			Ref:     ref,
			Title:   p.titles[ref],
			Frame:   frame,
			Focused: ref.PID == p.frontmost && p.focused[ref.PID] == ref,
		})
	}
	sort.Slice(windows, func(i, j int) bool { return windows[i].Ref.ID < windows[j].Ref.ID })
	return windows, nil
}

// Displays implements platform.DisplayProvider.
func (p *Platform) Displays() ([]geometry.Display, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]geometry.Display(nil), p.displays...), nil
}

// AccentColor implements platform.AccentColorSource.
func (p *Platform) AccentColor() (model.Color, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.accent == nil {
		return model.Color{}, false
	}
	return *p.accent, true
}

// RaiseWindow implements platform.WindowManager. It focuses the window
// without firing any signal, like a raise the tool performs itself.
func (p *Platform) RaiseWindow(ref model.WindowRef) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.frames[ref]; !ok {
		return fmt.Errorf("window %d: %w", ref.ID, platform.ErrStale)
	}
	p.raised = append(p.raised, ref)
	p.frontmost = ref.PID
	p.focused[ref.PID] = ref
	return nil
}

type subFunc func()

func (f subFunc) Unsubscribe() { f() }

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
