// Package main is the entry point for keyscribe.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/keyscribe/internal/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Flags
var (
	configPath string
	logLevel   string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// Error already printed by cobra
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "keyscribe",
		Short: "Keyboard-driven code editing surface",
		Long: `keyscribe is a small code editor core: keyboard shortcuts, snapshot
undo/redo, a two-key chord, debounced syntax highlighting and an event log.

  keyscribe run [--record FILE]      Edit in the terminal
  keyscribe replay FILE              Replay a recorded session headlessly
  keyscribe tokenize FILE            Print the highlight tokens of a file`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path (.toml, .yaml or .yml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newRunCmd(),
		newReplayCmd(),
		newTokenizeCmd(),
	)
	return rootCmd
}

// loadConfig loads the config file and applies the global flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if logLevel != "" {
		if err := cfg.Set("log.level", logLevel); err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
