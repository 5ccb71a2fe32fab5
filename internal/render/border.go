// Package render rasterises the focus border with x/image. It backs the
// preview command and the headless overlay renderer.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/mj1618/focus-border/internal/geometry"
	"github.com/mj1618/focus-border/internal/model"
	"golang.org/x/image/vector"
)

// cornerSteps is the number of line segments per rounded corner.
const cornerSteps = 12

// DrawBorder strokes a rounded-rect border inside r onto dst. r is in image
// coordinates (origin top-left). The stroke covers the band between r and r
// inset by the border width, so callers that want the stroke centred on a
// window edge pass the window frame expanded by half the width.
func DrawBorder(dst draw.Image, r geometry.Rect, style model.Style) {
	b := dst.Bounds()
	if r.Empty() || b.Empty() || style.BorderWidth <= 0 {
		return
	}

	z := vector.NewRasterizer(b.Dx(), b.Dy())
	origin := geometry.Rect{X: r.X - float64(b.Min.X), Y: r.Y - float64(b.Min.Y), Width: r.Width, Height: r.Height}

	outer := roundedRect(origin, style.CornerRadius)
	addPath(z, outer, false)

	inner := origin.Expand(-style.BorderWidth)
	if !inner.Empty() {
		addPath(z, roundedRect(inner, math.Max(style.CornerRadius-style.BorderWidth, 0)), true)
	}

	src := image.NewUniform(toRGBA(style.Color))
	z.Draw(dst, b, src, image.Point{})
}

// Border returns a transparent image of the given size with the border drawn
// around r.
func Border(size image.Point, r geometry.Rect, style model.Style) *image.RGBA {
	img := image.NewRGBA(image.Rectangle{Max: size})
	DrawBorder(img, r, style)
	return img
}

type point struct{ x, y float32 }

// roundedRect returns the outline of r, clockwise in a y-down space.
func roundedRect(r geometry.Rect, radius float64) []point {
	radius = math.Min(radius, math.Min(r.Width, r.Height)/2)
	if radius <= 0 {
		return []point{
			{float32(r.X), float32(r.Y)},
			{float32(r.MaxX()), float32(r.Y)},
			{float32(r.MaxX()), float32(r.MaxY())},
			{float32(r.X), float32(r.MaxY())},
		}
	}

	corners := []struct {
		cx, cy float64
		start  float64
	}{
		{r.MaxX() - radius, r.Y + radius, -math.Pi / 2},
		{r.MaxX() - radius, r.MaxY() - radius, 0},
		{r.X + radius, r.MaxY() - radius, math.Pi / 2},
		{r.X + radius, r.Y + radius, math.Pi},
	}

	pts := make([]point, 0, len(corners)*(cornerSteps+1))
	for _, c := range corners {
		for i := 0; i <= cornerSteps; i++ {
			a := c.start + (math.Pi/2)*float64(i)/cornerSteps
			pts = append(pts, point{
				x: float32(c.cx + radius*math.Cos(a)),
				y: float32(c.cy + radius*math.Sin(a)),
			})
		}
	}
	return pts
}

// addPath adds a closed path. Reversed paths cancel the coverage of the
// forward path they sit inside, which is how the inner hole is cut.
func addPath(z *vector.Rasterizer, pts []point, reverse bool) {
	if len(pts) == 0 {
		return
	}
	if reverse {
		rev := make([]point, len(pts))
		for i, p := range pts {
			rev[len(pts)-1-i] = p
		}
		pts = rev
	}
	z.MoveTo(pts[0].x, pts[0].y)
	for _, p := range pts[1:] {
		z.LineTo(p.x, p.y)
	}
	z.ClosePath()
}

func toRGBA(c model.Color) color.Color {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
