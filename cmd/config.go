package cmd

import (
	"fmt"
	"os"

	"github.com/mj1618/focus-border/internal/config"
	"github.com/mj1618/focus-border/internal/output"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and create the configuration file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration (file, defaults and environment)",
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE:  runConfigPath,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with the default values",
	RunE:  runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configPathCmd, configInitCmd)
	configShowCmd.Flags().Bool("pretty", false, "Pretty-print JSON output")
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return output.Print(cfg)
}

// configPathResult is the output of config path.
type configPathResult struct {
	Path   string `yaml:"path"   json:"path"`
	Exists bool   `yaml:"exists" json:"exists"`
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	_, err := os.Stat(configPath)
	return output.Print(configPathResult{Path: configPath, Exists: err == nil})
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
	}
	if err := config.Save(config.Default(), configPath); err != nil {
		return err
	}
	return output.Print(configPathResult{Path: configPath, Exists: true})
}
