package model

import (
	"time"

	"github.com/mj1618/focus-border/internal/geometry"
)

// WindowRef identifies a window by its system window ID and owning PID.
// It is only ever compared for equality.
type WindowRef struct {
	ID  uint32 `json:"id"  yaml:"id"`
	PID int    `json:"pid" yaml:"pid"`
}

// IsZero reports whether the ref names no window.
func (r WindowRef) IsZero() bool { return r == WindowRef{} }

// Window represents an application window.
type Window struct {
	App     string        `json:"app"               yaml:"app"`
	Ref     WindowRef     `json:"ref"               yaml:"ref"`
	Title   string        `json:"title"             yaml:"title"`
	Frame   geometry.Rect `json:"frame"             yaml:"frame"`
	Focused bool          `json:"focused,omitempty" yaml:"focused,omitempty"`
}

// FocusEvent is produced once per settled focus change. Frame is in
// window-server space.
type FocusEvent struct {
	Window  WindowRef
	Frame   geometry.Rect
	Display geometry.DisplayRef
}

// HighlightRequest is the normalized input to the highlight coordinator.
// TargetFrame is in the overlay space of Display.
type HighlightRequest struct {
	TargetFrame geometry.Rect       `json:"target_frame" yaml:"target_frame"`
	Display     geometry.DisplayRef `json:"display"      yaml:"display"`
	RequestedAt time.Time           `json:"requested_at" yaml:"requested_at"`
}
