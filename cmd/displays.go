package cmd

import (
	"github.com/mj1618/focus-border/internal/output"
	"github.com/mj1618/focus-border/internal/platform"
	"github.com/spf13/cobra"
)

var displaysCmd = &cobra.Command{
	Use:   "displays",
	Short: "List displays and their frames",
	Long:  "List displays with frames in window-server coordinates (origin at the top-left of the primary display).",
	RunE:  runDisplays,
}

func init() {
	rootCmd.AddCommand(displaysCmd)
	displaysCmd.Flags().Bool("pretty", false, "Pretty-print JSON output")
}

func runDisplays(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}
	if provider.Close != nil {
		defer provider.Close()
	}

	displays, err := provider.Displays.Displays()
	if err != nil {
		return err
	}
	return output.Print(output.DisplaysResult{Displays: displays})
}
