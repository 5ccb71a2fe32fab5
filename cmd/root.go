package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mj1618/focus-border/internal/config"
	"github.com/mj1618/focus-border/internal/logging"
	"github.com/mj1618/focus-border/internal/output"
	"github.com/mj1618/focus-border/internal/platform"
	"github.com/mj1618/focus-border/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "focus-border",
	Short: "Flash a border around the window that just gained focus",
	Long: `focus-border watches for focus changes and briefly draws a rounded border
around the newly focused window, so window switches are easy to follow.

Run "focus-border run" to start the watcher, or use "highlight" and "focus"
to trigger the border from scripts.`,
	SilenceUsage: true,
}

// Set by the root command's PersistentPreRunE.
var (
	configPath string
	logger     *slog.Logger
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().String("config", "", "Config file (default: "+config.Path()+")")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		format, _ := rootCmd.PersistentFlags().GetString("format")
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		output.OutputFormat = f
		if prettyFlag := cmd.Flags().Lookup("pretty"); prettyFlag != nil {
			if pretty, err := cmd.Flags().GetBool("pretty"); err == nil && pretty {
				output.PrettyOutput = true
			}
		}

		configPath, _ = rootCmd.PersistentFlags().GetString("config")
		if configPath == "" {
			configPath = config.Path()
		}

		// The logger is built from the file's [logging] section when it
		// parses; a broken file is reported by the command that loads it.
		level, logFormat := "info", "text"
		if cfg, err := config.Load(configPath); err == nil {
			level, logFormat = cfg.Logging.Level, cfg.Logging.Format
		}
		if flagLevel, _ := rootCmd.PersistentFlags().GetString("log-level"); flagLevel != "" {
			level = flagLevel
		}
		logger, err = logging.FromStrings(level, logFormat, os.Stderr)
		if err != nil {
			return err
		}
		slog.SetDefault(logger)

		if needsPermissions(cmd) && platform.RequestPermissionsFunc != nil {
			platform.RequestPermissionsFunc()
		}
		return nil
	}
}

// needsPermissions reports whether cmd talks to the accessibility layer.
func needsPermissions(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "run", "highlight", "focus", "list", "serve":
		return true
	}
	return false
}
