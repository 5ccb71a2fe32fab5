package render

import (
	"image"
	"testing"

	"github.com/mj1618/focus-border/internal/geometry"
	"github.com/mj1618/focus-border/internal/model"
	"github.com/stretchr/testify/assert"
)

var red = model.Color{R: 0xFF, A: 0xFF}

func alphaAt(img *image.RGBA, x, y int) uint8 {
	return img.RGBAAt(x, y).A
}

func TestBorderSquareCorners(t *testing.T) {
	img := Border(image.Pt(100, 100), geometry.Rect{X: 10, Y: 10, Width: 80, Height: 60}, model.Style{
		BorderWidth: 4,
		Color:       red,
	})

	assert.Greater(t, alphaAt(img, 11, 40), uint8(200), "left edge is stroked")
	assert.Greater(t, alphaAt(img, 88, 40), uint8(200), "right edge is stroked")
	assert.Greater(t, alphaAt(img, 50, 11), uint8(200), "top edge is stroked")
	assert.Greater(t, alphaAt(img, 50, 68), uint8(200), "bottom edge is stroked")
	assert.Greater(t, alphaAt(img, 10, 10), uint8(200), "square corner is filled")

	assert.Zero(t, alphaAt(img, 50, 40), "interior stays clear")
	assert.Zero(t, alphaAt(img, 5, 5), "outside stays clear")
	assert.Zero(t, alphaAt(img, 95, 95), "outside stays clear")

	c := img.RGBAAt(11, 40)
	assert.Greater(t, c.R, uint8(200))
	assert.Zero(t, c.G)
	assert.Zero(t, c.B)
}

func TestBorderRoundedCorners(t *testing.T) {
	img := Border(image.Pt(100, 100), geometry.Rect{X: 10, Y: 10, Width: 80, Height: 80}, model.Style{
		BorderWidth:  4,
		CornerRadius: 20,
		Color:        red,
	})

	assert.Zero(t, alphaAt(img, 10, 10), "corner outside the arc stays clear")
	assert.Zero(t, alphaAt(img, 89, 89), "corner outside the arc stays clear")
	assert.Greater(t, alphaAt(img, 11, 50), uint8(200), "straight edge is stroked")
	assert.Zero(t, alphaAt(img, 50, 50), "interior stays clear")
}

func TestBorderRadiusClamped(t *testing.T) {
	// A radius larger than half the short side must not invert the path.
	img := Border(image.Pt(60, 60), geometry.Rect{X: 10, Y: 10, Width: 40, Height: 20}, model.Style{
		BorderWidth:  2,
		CornerRadius: 500,
		Color:        red,
	})
	assert.Greater(t, alphaAt(img, 30, 11), uint8(100))
	assert.Zero(t, alphaAt(img, 30, 20))
}

func TestBorderNothingToDraw(t *testing.T) {
	tests := []struct {
		name  string
		rect  geometry.Rect
		style model.Style
	}{
		{"empty rect", geometry.Rect{X: 10, Y: 10}, model.Style{BorderWidth: 4, Color: red}},
		{"zero width", geometry.Rect{X: 10, Y: 10, Width: 20, Height: 20}, model.Style{Color: red}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := Border(image.Pt(50, 50), tt.rect, tt.style)
			for y := 0; y < 50; y++ {
				for x := 0; x < 50; x++ {
					if alphaAt(img, x, y) != 0 {
						t.Fatalf("pixel (%d,%d) drawn", x, y)
					}
				}
			}
		})
	}
}

func TestBorderThickerThanRect(t *testing.T) {
	// The inner hole vanishes and the whole rect is filled.
	img := Border(image.Pt(40, 40), geometry.Rect{X: 10, Y: 10, Width: 10, Height: 10}, model.Style{
		BorderWidth: 8,
		Color:       red,
	})
	assert.Greater(t, alphaAt(img, 15, 15), uint8(200))
}
