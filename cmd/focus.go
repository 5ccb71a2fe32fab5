package cmd

import (
	"context"

	"github.com/mj1618/focus-border/internal/app"
	"github.com/mj1618/focus-border/internal/model"
	"github.com/spf13/cobra"
)

var focusCmd = &cobra.Command{
	Use:   "focus",
	Short: "Bring a window to the foreground and highlight it",
	Long: `Raise a window by system window ID and draw the focus border around it.
This is the internal trigger: it highlights even when the configuration
restricts highlighting to the tool's own commands.`,
	RunE: runFocus,
}

func init() {
	rootCmd.AddCommand(focusCmd)
	addTriggerFlags(focusCmd)
}

func runFocus(cmd *cobra.Command, args []string) error {
	return triggerHighlight(cmd, "focus", func(ctx context.Context, a *app.App, ref model.WindowRef) error {
		return a.Raise(ctx, ref)
	})
}
