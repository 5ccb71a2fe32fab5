package darwin

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mj1618/focus-border/internal/geometry"
	"github.com/mj1618/focus-border/internal/model"
)

var (
	mainDisplay = geometry.Display{ID: 1, Frame: geometry.Rect{Width: 1440, Height: 900}, Primary: true}
	// Below the main display in window-server space.
	lowerDisplay = geometry.Display{ID: 2, Frame: geometry.Rect{Y: 900, Width: 1920, Height: 1080}}
)

func TestCocoaFrame_PrimaryDisplayIsIdentity(t *testing.T) {
	frame := geometry.Rect{X: 100, Y: 580, Width: 400, Height: 300}
	assert.Equal(t, frame, cocoaFrame(frame, mainDisplay, mainDisplay))
}

func TestCocoaFrame_SecondaryDisplay(t *testing.T) {
	ws := geometry.Rect{X: 50, Y: 1000, Width: 400, Height: 300}
	overlay, d := geometry.ToOverlaySpace(ws, []geometry.Display{mainDisplay, lowerDisplay})
	assert.Equal(t, lowerDisplay.ID, d.ID)

	got := cocoaFrame(overlay, d, mainDisplay)
	// The lower display sits at negative Cocoa Y.
	assert.Equal(t, geometry.Rect{X: 50, Y: -400, Width: 400, Height: 300}, got)
}

func TestTopLeftFrame(t *testing.T) {
	assert.Equal(t, mainDisplay.Frame, topLeftFrame(geometry.Rect{Width: 1440, Height: 900}, 900))
	assert.Equal(t, lowerDisplay.Frame, topLeftFrame(geometry.Rect{Y: -1080, Width: 1920, Height: 1080}, 900))
}

func TestRGBA(t *testing.T) {
	assert.Equal(t, model.Color{R: 0, G: 122, B: 255, A: 255}, rgba(0, 0.478, 1, 1))
	assert.Equal(t, model.Color{R: 255, G: 0, B: 0, A: 0}, rgba(1.2, -0.1, 0, 0))
}
