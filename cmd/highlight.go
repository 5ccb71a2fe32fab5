package cmd

import (
	"context"
	"time"

	"github.com/mj1618/focus-border/internal/app"
	"github.com/mj1618/focus-border/internal/config"
	"github.com/mj1618/focus-border/internal/model"
	"github.com/mj1618/focus-border/internal/output"
	"github.com/spf13/cobra"
)

var highlightCmd = &cobra.Command{
	Use:   "highlight",
	Short: "Draw the focus border around a window",
	Long: `Draw the focus border around a window once, without changing focus.
The command returns after the border has been hidden again.

Works even when the configuration restricts highlighting to internal
triggers, but not when highlighting is disabled.`,
	RunE: runHighlight,
}

func init() {
	rootCmd.AddCommand(highlightCmd)
	addTriggerFlags(highlightCmd)
}

func addTriggerFlags(cmd *cobra.Command) {
	cmd.Flags().Int("window-id", 0, "System window ID")
	cmd.Flags().Int("pid", 0, "Owning process ID (narrows the lookup)")
	cmd.Flags().String("headless", "", "Write the border as a PNG to this directory instead of drawing it")
	cmd.Flags().Bool("pretty", false, "Pretty-print JSON output")
}

func runHighlight(cmd *cobra.Command, args []string) error {
	return triggerHighlight(cmd, "highlight", func(ctx context.Context, a *app.App, ref model.WindowRef) error {
		return a.Highlight(ctx, ref)
	})
}

// triggerHighlight is shared by highlight and focus: resolve the window,
// run fn on a live app, wait for the border to finish and print the result.
func triggerHighlight(cmd *cobra.Command, action string, fn func(context.Context, *app.App, model.WindowRef) error) error {
	id, _ := cmd.Flags().GetInt("window-id")
	pid, _ := cmd.Flags().GetInt("pid")
	headless, _ := cmd.Flags().GetString("headless")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := newApp(config.NewStatic(cfg), false, headless)
	if err != nil {
		return err
	}
	win, err := windowFromFlags(a, id, pid)
	if err != nil {
		return err
	}

	timeout := cfg.Timing.ShowDelay.Duration + cfg.Timing.VisibleDuration.Duration + 5*time.Second
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	result := output.HighlightResult{OK: true, Action: action, Window: win.Ref, Title: win.Title}
	err = runApp(ctx, a, func(ctx context.Context) error {
		before, err := a.Shows(ctx)
		if err != nil {
			return err
		}
		if err := fn(ctx, a, win.Ref); err != nil {
			return err
		}
		if err := a.WaitIdle(ctx); err != nil {
			return err
		}
		after, err := a.Shows(ctx)
		if err != nil {
			return err
		}
		result.Shown = after > before
		return nil
	})
	if err != nil {
		return err
	}
	return output.Print(result)
}
