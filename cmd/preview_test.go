package cmd

import (
	"testing"

	"github.com/mj1618/focus-border/internal/geometry"
	"github.com/mj1618/focus-border/internal/model"
)

func TestPreviewImage(t *testing.T) {
	style := model.Style{BorderWidth: 4, CornerRadius: 8, Color: model.SystemBlue}
	img := previewImage(geometry.Rect{X: 20, Y: 30, Width: 200, Height: 100}, style, false)

	// frame grown by 2 on each side ends at (222,132), plus the margin
	if got := img.Bounds().Dx(); got != 242 {
		t.Errorf("width: got %d, want 242", got)
	}
	if got := img.Bounds().Dy(); got != 152 {
		t.Errorf("height: got %d, want 152", got)
	}
	// The stroke straddles the left window edge at x=20.
	if a := img.RGBAAt(19, 80).A; a == 0 {
		t.Error("expected stroke just outside the left edge")
	}
	if a := img.RGBAAt(20, 80).A; a == 0 {
		t.Error("expected stroke just inside the left edge")
	}
	if a := img.RGBAAt(120, 80).A; a != 0 {
		t.Errorf("interior should be clear, alpha %d", a)
	}
}

func TestPreviewImageLabel(t *testing.T) {
	style := model.Style{BorderWidth: 2, Color: model.SystemBlue}
	img := previewImage(geometry.Rect{X: 0, Y: 0, Width: 300, Height: 100}, style, true)

	drawn := 0
	for x := 100; x < 200; x++ {
		if img.RGBAAt(x, 50).A != 0 {
			drawn++
		}
	}
	if drawn == 0 {
		t.Error("expected label pixels near the frame center")
	}
}
