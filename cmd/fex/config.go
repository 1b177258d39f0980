package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rmlane/fex/pkg/fex/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Manage fex configuration settings.

Configuration is loaded from:
  1. $XDG_CONFIG_HOME/fex/config.yaml (if set)
  2. ~/.config/fex/config.yaml

Environment variables can override config file settings using the FEX_ prefix:
  FEX_START_DIR=~/projects
  FEX_FOLLOW_SYMLINKS=true`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration settings from all sources.`,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	Long:  `Create a default configuration file if one doesn't exist.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file path",
	Long:  `Display the path to the configuration file.`,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

// runConfigShow displays the current configuration.
func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		printError("Failed to load configuration: %v", err)
		return err
	}

	fmt.Printf("start_dir:       %s\n", cfg.StartDir)
	fmt.Printf("export_dir:      %s\n", cfg.ExportDir)
	fmt.Printf("follow_symlinks: %t\n", cfg.FollowSymlinks)
	fmt.Printf("tick_rate:       %s\n", cfg.TickRate)
	fmt.Printf("frame_rate:      %d\n", cfg.FrameRate)
	fmt.Printf("logging.level:   %s\n", cfg.Logging.Level)
	fmt.Printf("logging.path:    %s\n", cfg.Logging.Path)
	return nil
}

// runConfigInit creates a default config file.
func runConfigInit(cmd *cobra.Command, args []string) error {
	if err := config.WriteDefault(); err != nil {
		printError("Failed to write default configuration: %v", err)
		return err
	}

	dir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	fmt.Printf("Configuration file: %s\n", filepath.Join(dir, "config.yaml"))
	return nil
}

// runConfigPath prints the config file location.
func runConfigPath(cmd *cobra.Command, args []string) error {
	if cfgFile != "" {
		fmt.Println(cfgFile)
		return nil
	}
	dir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	fmt.Println(filepath.Join(dir, "config.yaml"))
	return nil
}
