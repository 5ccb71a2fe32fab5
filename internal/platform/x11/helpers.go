package x11

import (
	"bytes"
	"math"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/godbus/dbus/v5"

	"github.com/mj1618/focus-border/internal/geometry"
	"github.com/mj1618/focus-border/internal/model"
)

// cardinals decodes a format-32 property value.
func cardinals(value []byte, format byte) []uint32 {
	if format != 32 {
		return nil
	}
	out := make([]uint32, 0, len(value)/4)
	for i := 0; i+4 <= len(value); i += 4 {
		out = append(out, xgb.Get32(value[i:]))
	}
	return out
}

// nulStrings splits a list of NUL-terminated strings such as WM_CLASS.
func nulStrings(value []byte) []string {
	var out []string
	for _, part := range bytes.Split(bytes.TrimRight(value, "\x00"), []byte{0}) {
		if len(part) > 0 {
			out = append(out, string(part))
		}
	}
	return out
}

// withExtents grows a client rect by _NET_FRAME_EXTENTS (left, right, top,
// bottom) so the border surrounds the decorations too.
func withExtents(r geometry.Rect, ext []uint32) geometry.Rect {
	if len(ext) != 4 {
		return r
	}
	left, right, top, bottom := float64(ext[0]), float64(ext[1]), float64(ext[2]), float64(ext[3])
	return geometry.Rect{
		X:      r.X - left,
		Y:      r.Y - top,
		Width:  r.Width + left + right,
		Height: r.Height + top + bottom,
	}
}

// strips splits the band between r and r inset by width into the top,
// bottom, left and right rectangles. Corners belong to the top and bottom
// strips. Empty strips are dropped.
func strips(r geometry.Rect, width float64) []xproto.Rectangle {
	x, y := int(math.Round(r.X)), int(math.Round(r.Y))
	w, h := int(math.Round(r.Width)), int(math.Round(r.Height))
	bw := max(int(math.Round(width)), 1)
	bw = min(bw, (h+1)/2, w)

	cand := [4][4]int{
		{x, y, w, bw},
		{x, y + h - bw, w, bw},
		{x, y + bw, bw, h - 2*bw},
		{x + w - bw, y + bw, bw, h - 2*bw},
	}
	var out []xproto.Rectangle
	for _, c := range cand {
		if c[2] <= 0 || c[3] <= 0 {
			continue
		}
		out = append(out, xproto.Rectangle{X: int16(c[0]), Y: int16(c[1]), Width: uint16(c[2]), Height: uint16(c[3])})
	}
	return out
}

// pixel packs a color for a 24-bit TrueColor visual. Alpha is dropped.
func pixel(c model.Color) uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// parseAccent decodes the portal's accent-color value: a (ddd) struct of
// sRGB components in [0,1], possibly wrapped in one or more variants.
// Out-of-range components mean the user has not chosen a color.
func parseAccent(v dbus.Variant) (model.Color, bool) {
	val := v.Value()
	for {
		inner, ok := val.(dbus.Variant)
		if !ok {
			break
		}
		val = inner.Value()
	}

	var comps []float64
	switch t := val.(type) {
	case []interface{}:
		for _, e := range t {
			f, ok := e.(float64)
			if !ok {
				return model.Color{}, false
			}
			comps = append(comps, f)
		}
	case []float64:
		comps = t
	default:
		return model.Color{}, false
	}
	if len(comps) != 3 {
		return model.Color{}, false
	}

	var rgb [3]uint8
	for i, f := range comps {
		if f < 0 || f > 1 {
			return model.Color{}, false
		}
		rgb[i] = uint8(math.Round(f * 255))
	}
	return model.Color{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xFF}, true
}
