//go:build linux || freebsd || netbsd || openbsd

package x11

import "github.com/mj1618/focus-border/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		c, err := dial()
		if err != nil {
			return nil, err
		}
		focus, err := newFocusSource(c)
		if err != nil {
			c.close()
			return nil, err
		}
		windows := newWindowManager(c)
		displays := &X11Displays{c: c}
		accent := newPortalAccent()
		return &platform.Provider{
			Name:          "x11",
			Focus:         focus,
			Windows:       windows,
			Displays:      displays,
			Overlay:       &X11Overlay{c: c, displays: displays},
			Accent:        accent,
			WindowManager: windows,
			Close: func() error {
				err := accent.close()
				c.close()
				return err
			},
		}, nil
	}
}
