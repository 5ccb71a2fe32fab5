//go:build linux || freebsd || netbsd || openbsd

package x11

import (
	"github.com/BurntSushi/xgb/xinerama"

	"github.com/mj1618/focus-border/internal/geometry"
)

// X11Displays implements platform.DisplayProvider with Xinerama, falling back
// to the whole root window when the extension is missing. The first screen is
// treated as primary.
type X11Displays struct {
	c *conn
}

func (d *X11Displays) Displays() ([]geometry.Display, error) {
	if d.c.xinerama {
		reply, err := xinerama.QueryScreens(d.c.x).Reply()
		if err == nil && len(reply.ScreenInfo) > 0 {
			displays := make([]geometry.Display, len(reply.ScreenInfo))
			for i, s := range reply.ScreenInfo {
				displays[i] = geometry.Display{
					ID:      geometry.DisplayRef(i + 1),
					Frame:   geometry.Rect{X: float64(s.XOrg), Y: float64(s.YOrg), Width: float64(s.Width), Height: float64(s.Height)},
					Primary: i == 0,
				}
			}
			return displays, nil
		}
	}
	return []geometry.Display{{
		ID:      1,
		Frame:   geometry.Rect{Width: float64(d.c.screen.WidthInPixels), Height: float64(d.c.screen.HeightInPixels)},
		Primary: true,
	}}, nil
}
