//go:build linux || freebsd || netbsd || openbsd

package x11

import (
	"github.com/godbus/dbus/v5"

	"github.com/mj1618/focus-border/internal/model"
)

const (
	portalService     = "org.freedesktop.portal.Desktop"
	portalPath        = "/org/freedesktop/portal/desktop"
	portalReadSetting = "org.freedesktop.portal.Settings.Read"
)

// PortalAccent reads the accent color from the XDG desktop portal. A nil
// bus, a missing portal or an unset color all report no accent.
type PortalAccent struct {
	bus *dbus.Conn
}

func newPortalAccent() *PortalAccent {
	bus, err := dbus.ConnectSessionBus()
	if err != nil {
		return &PortalAccent{}
	}
	return &PortalAccent{bus: bus}
}

func (p *PortalAccent) AccentColor() (model.Color, bool) {
	if p.bus == nil {
		return model.Color{}, false
	}
	var v dbus.Variant
	err := p.bus.Object(portalService, dbus.ObjectPath(portalPath)).
		Call(portalReadSetting, 0, "org.freedesktop.appearance", "accent-color").
		Store(&v)
	if err != nil {
		return model.Color{}, false
	}
	return parseAccent(v)
}

func (p *PortalAccent) close() error {
	if p.bus == nil {
		return nil
	}
	return p.bus.Close()
}
