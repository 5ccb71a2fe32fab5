package platform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mj1618/focus-border/internal/geometry"
)

// ParseRect parses an "x,y,w,h" string into a rect.
func ParseRect(s string) (geometry.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return geometry.Rect{}, fmt.Errorf("invalid rect %q: expected x,y,w,h", s)
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geometry.Rect{}, fmt.Errorf("invalid rect %q: %w", s, err)
		}
		vals[i] = v
	}
	r := geometry.Rect{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}
	if r.Empty() {
		return geometry.Rect{}, fmt.Errorf("invalid rect %q: width and height must be positive", s)
	}
	return r, nil
}
