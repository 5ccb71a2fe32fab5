package darwin

import (
	"math"

	"github.com/mj1618/focus-border/internal/geometry"
	"github.com/mj1618/focus-border/internal/model"
)

// cocoaFrame converts a rect in the overlay space of d into AppKit global
// coordinates, whose origin is the bottom-left of the primary display.
func cocoaFrame(frame geometry.Rect, d, primary geometry.Display) geometry.Rect {
	ws := geometry.FromOverlaySpace(frame, d)
	return geometry.Rect{
		X:      ws.X,
		Y:      primary.Frame.Height - ws.MaxY(),
		Width:  ws.Width,
		Height: ws.Height,
	}
}

// topLeftFrame converts an AppKit screen frame into window-server space.
func topLeftFrame(f geometry.Rect, primaryHeight float64) geometry.Rect {
	return geometry.Rect{
		X:      f.X,
		Y:      primaryHeight - f.MaxY(),
		Width:  f.Width,
		Height: f.Height,
	}
}

// rgba converts sRGB components in [0,1] to a Color.
func rgba(r, g, b, a float64) model.Color {
	c := func(v float64) uint8 {
		return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
	}
	return model.Color{R: c(r), G: c(g), B: c(b), A: c(a)}
}
