package cmd

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/mj1618/focus-border/internal/geometry"
	"github.com/mj1618/focus-border/internal/model"
	"github.com/mj1618/focus-border/internal/output"
	"github.com/mj1618/focus-border/internal/platform"
	"github.com/mj1618/focus-border/internal/render"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render the focus border to a PNG",
	Long: `Render the border the overlay would draw around a window frame, using
the configured width, radius and color, and write it to a PNG. Useful for
tuning the configuration without a display.

Examples:
  focus-border preview --x 100 --y 200 --w 400 --h 300 --out border.png
  focus-border preview --rect 0,0,800,600 --color "#FF9500" --label`,
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().Float64("x", 20, "Window X")
	previewCmd.Flags().Float64("y", 20, "Window Y")
	previewCmd.Flags().Float64("w", 400, "Window width")
	previewCmd.Flags().Float64("h", 300, "Window height")
	previewCmd.Flags().String("rect", "", "Window frame as x,y,w,h (overrides --x/--y/--w/--h)")
	previewCmd.Flags().String("out", "preview.png", "Output PNG path")
	previewCmd.Flags().String("color", "", "Border color as #rrggbb[aa] (overrides config)")
	previewCmd.Flags().Bool("label", false, "Draw the frame coordinates inside the border")
	previewCmd.Flags().Bool("pretty", false, "Pretty-print JSON output")
}

// previewMargin keeps the border clear of the image edge.
const previewMargin = 20

func runPreview(cmd *cobra.Command, args []string) error {
	x, _ := cmd.Flags().GetFloat64("x")
	y, _ := cmd.Flags().GetFloat64("y")
	w, _ := cmd.Flags().GetFloat64("w")
	h, _ := cmd.Flags().GetFloat64("h")
	rectFlag, _ := cmd.Flags().GetString("rect")
	out, _ := cmd.Flags().GetString("out")
	colorFlag, _ := cmd.Flags().GetString("color")
	label, _ := cmd.Flags().GetBool("label")

	frame := geometry.Rect{X: x, Y: y, Width: w, Height: h}
	if rectFlag != "" {
		r, err := platform.ParseRect(rectFlag)
		if err != nil {
			return err
		}
		frame = r
	}
	if frame.Empty() {
		return fmt.Errorf("window frame must have a positive size, got %s", frame)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	style := cfg.Style(nil)
	if colorFlag != "" {
		c, err := model.ParseColor(colorFlag)
		if err != nil {
			return err
		}
		style.Color = c
	}

	img := previewImage(frame, style, label)
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", out, err)
	}

	return output.Print(output.PreviewResult{
		OK:     true,
		File:   out,
		Frame:  frame,
		Color:  style.Color.Hex(),
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
	})
}

// previewImage draws the border the overlay would show for frame: the
// stroke straddles the window edge.
func previewImage(frame geometry.Rect, style model.Style, label bool) *image.RGBA {
	border := frame.Expand(style.BorderWidth / 2)
	size := image.Pt(
		int(math.Ceil(math.Max(border.MaxX(), 0)))+previewMargin,
		int(math.Ceil(math.Max(border.MaxY(), 0)))+previewMargin,
	)
	img := render.Border(size, border, style)
	if label {
		cx := int(frame.X + frame.Width/2)
		cy := int(frame.Y + frame.Height/2)
		render.DrawLabel(img, frame.String(), cx, cy, color.White, color.Black)
	}
	return img
}
