package geometry

// DisplayFor picks the display a window-server rect belongs to: the first
// display whose frame intersects r, else the primary display, else the first
// display. With no displays at all it returns the zero Display.
func DisplayFor(r Rect, displays []Display) Display {
	for _, d := range displays {
		if d.Frame.Intersects(r) {
			return d
		}
	}
	return Primary(displays)
}

// Primary returns the display flagged primary, else the first display, else
// the zero Display.
func Primary(displays []Display) Display {
	for _, d := range displays {
		if d.Primary {
			return d
		}
	}
	if len(displays) > 0 {
		return displays[0]
	}
	return Display{}
}

// ToOverlaySpace converts r from top-left-origin window-server space into
// the bottom-left-origin overlay space of the display it lands on.
// It never fails: rects outside every display use the primary display.
func ToOverlaySpace(r Rect, displays []Display) (Rect, Display) {
	d := DisplayFor(r, displays)
	return Rect{
		X:      r.X,
		Y:      d.Frame.MaxY() - r.MaxY(),
		Width:  r.Width,
		Height: r.Height,
	}, d
}

// FromOverlaySpace is the inverse of ToOverlaySpace for a known display.
func FromOverlaySpace(r Rect, d Display) Rect {
	return Rect{
		X:      r.X,
		Y:      d.Frame.MaxY() - r.MaxY(),
		Width:  r.Width,
		Height: r.Height,
	}
}

// Find returns the display with the given ID.
func Find(displays []Display, id DisplayRef) (Display, bool) {
	for _, d := range displays {
		if d.ID == id {
			return d, true
		}
	}
	return Display{}, false
}
