// Package geometry holds rectangle math and the conversion between the
// window-server coordinate space (origin at the top-left of the primary
// display) and per-display overlay space (origin at the bottom-left).
package geometry

import "fmt"

// Rect is an axis-aligned rectangle in points.
type Rect struct {
	X      float64 `yaml:"x"      json:"x"`
	Y      float64 `yaml:"y"      json:"y"`
	Width  float64 `yaml:"width"  json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.X + r.Width }

// MaxY returns the far edge on the Y axis.
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Intersects reports whether r and o share any area. Touching edges do not count.
func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.MaxX() && o.X < r.MaxX() && r.Y < o.MaxY() && o.Y < r.MaxY()
}

// Expand grows the rect outward by d on every side. A negative d shrinks it.
func (r Rect) Expand(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, Width: r.Width + 2*d, Height: r.Height + 2*d}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.X, r.Y, r.Width, r.Height)
}

// DisplayRef identifies a physical display.
type DisplayRef uint32

// Display is a screen and its frame in window-server space.
type Display struct {
	ID      DisplayRef `yaml:"id"      json:"id"`
	Frame   Rect       `yaml:"frame"   json:"frame"`
	Primary bool       `yaml:"primary" json:"primary"`
}
