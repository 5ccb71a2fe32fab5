// Package darwin provides macOS platform support using AppKit, CoreGraphics
// and the Accessibility APIs. All functionality requires cgo; without it the
// package compiles to nothing and no provider is registered.
package darwin
