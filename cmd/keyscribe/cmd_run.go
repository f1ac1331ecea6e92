package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/keyscribe/internal/app"
	"github.com/dshills/keyscribe/internal/config"
	"github.com/dshills/keyscribe/internal/renderer/highlight"
	"github.com/dshills/keyscribe/internal/term"
)

func newRunCmd() *cobra.Command {
	var recordPath string
	var logRows int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Edit in the terminal",
		Long: `Open an editing session in the terminal.

Keys: Ctrl+S save, Ctrl+Z undo, Ctrl+Shift+Z redo, Ctrl+/ toggle comment,
Tab and Shift+Tab indent, Ctrl+K then Ctrl+C chord, Ctrl+L clear the log,
Ctrl+Q quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(recordPath, logRows)
		},
	}
	cmd.Flags().StringVar(&recordPath, "record", "", "write every event to FILE as JSON lines")
	cmd.Flags().IntVar(&logRows, "log-rows", term.DefaultLogRows, "height of the event log panel")
	return cmd
}

func runShell(recordPath string, logRows int) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closer := app.NewLoggerFromConfig(cfg.Log)
	defer closer.Close()
	if cfg.Log.File == "" {
		// Stderr belongs to the terminal screen.
		logger.Disable()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create terminal: %w", err)
	}

	opts := app.Options{
		Config: cfg,
		Logger: logger,
		OnHighlight: func(highlight.Result) {
			term.RequestRedraw(screen)
		},
		OnSave: func(content string) {
			logger.Info("save requested: %d bytes", len(content))
		},
	}
	if recordPath != "" {
		f, err := os.Create(recordPath)
		if err != nil {
			return fmt.Errorf("create record file: %w", err)
		}
		defer f.Close()
		opts.Record = f
	}

	session, err := app.NewSession(opts)
	if err != nil {
		return err
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Error("close session: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if configPath != "" {
		go func() {
			err := config.Watch(ctx, configPath, func(next *config.Config, err error) {
				if err != nil {
					logger.Warn("reload config: %v", err)
					return
				}
				if logLevel != "" {
					next.Log.Level = logLevel
				}
				session.ApplyConfig(next)
				term.RequestRedraw(screen)
			})
			if err != nil {
				logger.Warn("watch config: %v", err)
			}
		}()
	}

	shell := term.NewShell(screen, session,
		term.WithLogRows(logRows),
		term.WithShellLogger(logger.WithComponent("term")),
	)
	return shell.Run(ctx)
}
