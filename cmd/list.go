package cmd

import (
	"fmt"

	"github.com/mj1618/focus-border/internal/model"
	"github.com/mj1618/focus-border/internal/output"
	"github.com/mj1618/focus-border/internal/platform"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List windows that can be highlighted",
	Long:  "List on-screen windows with their app name, title, window ID, PID and frame.",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Bool("apps", false, "List running applications")
	listCmd.Flags().Int("pid", 0, "Filter windows by PID")
	listCmd.Flags().String("app", "", "Filter windows by app name")
	listCmd.Flags().Bool("pretty", false, "Pretty-print JSON output")
}

// appEntry is the output for --apps mode.
type appEntry struct {
	App string `yaml:"app" json:"app"`
	PID int    `yaml:"pid" json:"pid"`
}

func runList(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}
	if provider.Close != nil {
		defer provider.Close()
	}

	apps, _ := cmd.Flags().GetBool("apps")
	pid, _ := cmd.Flags().GetInt("pid")
	appName, _ := cmd.Flags().GetString("app")

	if provider.Windows == nil {
		return fmt.Errorf("window listing not available on %s", provider.Name)
	}

	windows, err := provider.Windows.ListWindows()
	if err != nil {
		return err
	}
	windows = filterWindows(windows, pid, appName)

	if apps {
		return output.Print(uniqueApps(windows))
	}
	return output.Print(windows)
}

func filterWindows(windows []model.Window, pid int, app string) []model.Window {
	out := []model.Window{}
	for _, w := range windows {
		if pid != 0 && w.Ref.PID != pid {
			continue
		}
		if app != "" && w.App != app {
			continue
		}
		out = append(out, w)
	}
	return out
}

// uniqueApps aggregates windows to one entry per application.
func uniqueApps(windows []model.Window) []appEntry {
	seen := make(map[int]bool)
	entries := []appEntry{}
	for _, w := range windows {
		if !seen[w.Ref.PID] {
			seen[w.Ref.PID] = true
			entries = append(entries, appEntry{App: w.App, PID: w.Ref.PID})
		}
	}
	return entries
}
