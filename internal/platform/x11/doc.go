// Package x11 provides Linux and BSD platform support over the X protocol
// using the pure-Go xgb bindings, plus the XDG desktop portal over D-Bus for
// the accent color. EWMH is assumed: the window manager must maintain
// _NET_ACTIVE_WINDOW and _NET_CLIENT_LIST.
package x11
