package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/keyscribe/internal/app"
	"github.com/dshills/keyscribe/internal/dispatcher"
	"github.com/dshills/keyscribe/internal/input/key"
	"github.com/dshills/keyscribe/internal/session"
)

func newReplayCmd() *cobra.Command {
	var strict, verbose, showLog bool

	cmd := &cobra.Command{
		Use:   "replay FILE",
		Short: "Replay a recorded session headlessly",
		Long: `Dispatch every event of a recorded session into a fresh session and
print the final content. Malformed lines are skipped unless --strict is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd.OutOrStdout(), args[0], strict, verbose, showLog)
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "stop at the first malformed line")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print the action taken for each event")
	cmd.Flags().BoolVar(&showLog, "log", false, "print the event log after the replay")
	return cmd
}

func runReplay(out io.Writer, path string, strict, verbose, showLog bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, closer := app.NewLoggerFromConfig(cfg.Log)
	defer closer.Close()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open recording: %w", err)
	}
	defer f.Close()

	s, err := app.NewSession(app.Options{Config: cfg, Logger: logger})
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := session.Options{Strict: strict}
	if verbose {
		opts.OnResult = func(ev key.Event, res dispatcher.Result) {
			fmt.Fprintf(out, "%-24s %-16s changed=%v\n", ev.String(), res.Action, res.Changed)
		}
	}

	stats, err := s.Replay(ctx, f, opts)
	if err != nil {
		return fmt.Errorf("replay %s: %w", path, err)
	}
	s.FlushHighlight()

	st := s.State()
	fmt.Fprintf(out, "events: %d  handled: %d  changed: %d  skipped: %d\n",
		stats.Events, stats.Handled, stats.Changed, stats.Skipped)
	fmt.Fprintf(out, "history: %d undo, %d redo  lines: %d  highlight runs: %d\n",
		st.HistorySize, st.RedoSize, st.LineCount, st.Highlights)
	if showLog {
		fmt.Fprintln(out, "--- log ---")
		for _, r := range s.Feed().Records() {
			fmt.Fprintln(out, r.String())
		}
	}
	fmt.Fprintln(out, "--- content ---")
	fmt.Fprintln(out, st.Content)
	return nil
}
