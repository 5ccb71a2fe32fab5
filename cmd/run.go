package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mj1618/focus-border/internal/config"
	"github.com/mj1618/focus-border/internal/logging"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Watch focus changes and highlight newly focused windows",
	Long: `Run the focus watcher until interrupted. The configuration file is
reloaded whenever it changes; disabling highlighting or restricting it to
internal triggers takes effect immediately.

With --headless DIR no overlay is drawn; every border is written to DIR as a
PNG instead.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("headless", "", "Write borders as PNG files to this directory instead of drawing them")
	runCmd.Flags().Bool("no-reload", false, "Do not watch the config file for changes")
}

func runRun(cmd *cobra.Command, args []string) error {
	headless, _ := cmd.Flags().GetString("headless")
	noReload, _ := cmd.Flags().GetBool("no-reload")

	loader := config.NewLoader(configPath, logging.WithComponent(logger, "config"))
	if _, err := loader.Load(); err != nil {
		return err
	}
	defer loader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !noReload {
		if err := loader.Watch(ctx); err != nil {
			logger.Warn("config hot reload unavailable", "error", err)
		}
	}

	a, err := newApp(loader, true, headless)
	if err != nil {
		return err
	}

	logger.Info("focus-border running", "platform", a.Provider.Name, "config", loader.Path())
	return runApp(ctx, a, func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	})
}
