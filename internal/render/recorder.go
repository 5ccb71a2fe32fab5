package render

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mj1618/focus-border/internal/geometry"
	"github.com/mj1618/focus-border/internal/model"
	"github.com/mj1618/focus-border/internal/platform"
)

// Shot is one overlay the Recorder was asked to show.
type Shot struct {
	Frame   geometry.Rect       `yaml:"frame"   json:"frame"`
	Display geometry.DisplayRef `yaml:"display" json:"display"`
	Style   model.Style         `yaml:"-"       json:"-"`
	Color   string              `yaml:"color"   json:"color"`
	Shown   time.Time           `yaml:"shown"   json:"shown"`
	Hidden  time.Time           `yaml:"hidden"  json:"hidden"`
	File    string              `yaml:"file,omitempty" json:"file,omitempty"`
}

type handle int

// Recorder is an OverlayRenderer that draws nothing on screen. It records
// every show and hide and, when Dir is set, writes each shown border as a
// PNG the size of its display.
type Recorder struct {
	// Dir receives one PNG per shown overlay. Empty disables writing.
	Dir string

	// Displays sizes the PNG canvas. Nil sizes the canvas to the frame.
	Displays platform.DisplayProvider

	// Fail makes Show return this error.
	Fail error

	// Now stamps shots. Nil means time.Now.
	Now func() time.Time

	mu         sync.Mutex
	shots      []Shot
	visible    map[handle]int
	next       handle
	maxVisible int
}

// NewRecorder returns a recorder writing PNGs to dir (may be empty).
func NewRecorder(dir string, displays platform.DisplayProvider) *Recorder {
	return &Recorder{Dir: dir, Displays: displays}
}

// Show implements platform.OverlayRenderer.
func (r *Recorder) Show(frame geometry.Rect, display geometry.DisplayRef, style model.Style) (platform.OverlayHandle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Fail != nil {
		return nil, r.Fail
	}
	if r.visible == nil {
		r.visible = make(map[handle]int)
	}

	r.next++
	h := r.next
	shot := Shot{
		Frame:   frame,
		Display: display,
		Style:   style,
		Color:   style.Color.Hex(),
		Shown:   r.now(),
	}
	if r.Dir != "" {
		file, err := r.write(int(h), frame, display, style)
		if err != nil {
			return nil, err
		}
		shot.File = file
	}

	r.shots = append(r.shots, shot)
	r.visible[h] = len(r.shots) - 1
	if len(r.visible) > r.maxVisible {
		r.maxVisible = len(r.visible)
	}
	return h, nil
}

// Hide implements platform.OverlayRenderer. Unknown handles are ignored.
func (r *Recorder) Hide(h platform.OverlayHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	hh, ok := h.(handle)
	if !ok {
		return
	}
	idx, ok := r.visible[hh]
	if !ok {
		return
	}
	r.shots[idx].Hidden = r.now()
	delete(r.visible, hh)
}

// Shots returns every overlay shown so far.
func (r *Recorder) Shots() []Shot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Shot(nil), r.shots...)
}

// Visible returns how many overlays are currently shown.
func (r *Recorder) Visible() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.visible)
}

// MaxVisible returns the most overlays that were ever shown at once.
func (r *Recorder) MaxVisible() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.maxVisible
}

func (r *Recorder) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// write renders the overlay onto a canvas in image space (top-left origin).
func (r *Recorder) write(n int, frame geometry.Rect, id geometry.DisplayRef, style model.Style) (string, error) {
	canvas, target := r.canvas(frame, id)
	img := image.NewRGBA(canvas)
	DrawBorder(img, target, style)

	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(r.Dir, fmt.Sprintf("overlay-%04d.png", n))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("encode %s: %w", path, err)
	}
	return path, nil
}

// canvas picks the image bounds and the frame in image coordinates.
func (r *Recorder) canvas(frame geometry.Rect, id geometry.DisplayRef) (image.Rectangle, geometry.Rect) {
	if r.Displays != nil {
		if displays, err := r.Displays.Displays(); err == nil {
			if d, ok := geometry.Find(displays, id); ok {
				top := geometry.FromOverlaySpace(frame, d)
				target := geometry.Rect{
					X:      top.X - d.Frame.X,
					Y:      top.Y - d.Frame.Y,
					Width:  top.Width,
					Height: top.Height,
				}
				return image.Rect(0, 0, int(d.Frame.Width), int(d.Frame.Height)), target
			}
		}
	}
	target := geometry.Rect{Width: frame.Width, Height: frame.Height}
	return image.Rect(0, 0, int(frame.Width+0.5), int(frame.Height+0.5)), target
}
