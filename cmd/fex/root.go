package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rmlane/fex/cmd/fex/tui"
	"github.com/rmlane/fex/pkg/fex/config"
	"github.com/rmlane/fex/pkg/fex/logging"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "fex [path]",
		Short: "Browse the filesystem from the terminal",
		Long: `Fex is an interactive terminal file explorer.

Navigate directories, jump to entries by their first letter, inspect
file and directory metadata, and search by name in flat or recursive
mode. Search results can be exported as JSON.

Examples:
  fex                        # Start in the configured directory
  fex ~/Downloads            # Start in a specific directory
  fex --follow-symlinks .    # Traverse symlink targets
  fex config init            # Write a default config file`,
		Args: cobra.MaximumNArgs(1),
		RunE: runExplorer,
	}
)

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/fex/config.yaml)")
	rootCmd.PersistentFlags().Bool("follow-symlinks", false, "follow symbolic links during walks")
	rootCmd.PersistentFlags().String("export-dir", "", "directory for search result exports")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")

	_ = viper.BindPFlag("follow_symlinks", rootCmd.PersistentFlags().Lookup("follow-symlinks"))
	_ = viper.BindPFlag("export_dir", rootCmd.PersistentFlags().Lookup("export-dir"))
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// runExplorer loads configuration, initializes logging, and runs the
// TUI until it exits.
func runExplorer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		printError("%v", err)
		return err
	}

	// Flags override the config file.
	if cmd.Flags().Changed("follow-symlinks") {
		cfg.FollowSymlinks = viper.GetBool("follow_symlinks")
	}
	if cmd.Flags().Changed("export-dir") {
		if dir, err := config.ExpandPath(viper.GetString("export_dir")); err == nil {
			cfg.ExportDir = dir
		}
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = viper.GetString("logging.level")
	}

	startDir := cfg.StartDir
	if len(args) == 1 {
		startDir, err = config.ExpandPath(args[0])
		if err != nil {
			printError("%v", err)
			return err
		}
		if startDir, err = filepath.Abs(startDir); err != nil {
			printError("%v", err)
			return err
		}
		if info, statErr := os.Stat(startDir); statErr != nil || !info.IsDir() {
			err = fmt.Errorf("not a directory: %s", args[0])
			printError("%v", err)
			return err
		}
	}

	if err := logging.Init(logging.Config{
		Level: cfg.Logging.Level,
		Path:  cfg.Logging.Path,
	}); err != nil {
		printError("%v", err)
		return err
	}
	defer logging.Close()

	err = tui.Run(tui.Options{
		StartDir:       startDir,
		ExportDir:      cfg.ExportDir,
		FollowSymlinks: cfg.FollowSymlinks,
		TickRate:       cfg.TickRate,
		FrameRate:      cfg.FrameRate,
	})
	if err != nil {
		printError("%v", err)
	}
	return err
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// printError prints an error message to stderr.
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
