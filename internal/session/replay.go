package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dshills/keyscribe/internal/dispatcher"
	"github.com/dshills/keyscribe/internal/input/key"
)

// maxLineSize bounds a single recorded line; input events carry the whole buffer.
const maxLineSize = 16 * 1024 * 1024

// Target receives replayed events. *dispatcher.Dispatcher implements it.
type Target interface {
	Dispatch(ev key.Event) dispatcher.Result
}

// Stats summarizes a replay.
type Stats struct {
	Events  int
	Handled int
	Changed int
	Skipped int
}

// Options controls replay behavior.
type Options struct {
	// Strict fails on the first undecodable line instead of skipping it.
	Strict bool

	// OnResult is called after each dispatched event.
	OnResult func(ev key.Event, res dispatcher.Result)
}

// Replay reads recorded events from r and dispatches them in order.
// Blank lines are ignored.
func Replay(ctx context.Context, r io.Reader, target Target, opts Options) (Stats, error) {
	var stats Stats

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		lineNo++

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		ev, err := Decode(line)
		if err != nil {
			if opts.Strict {
				return stats, fmt.Errorf("line %d: %w", lineNo, err)
			}
			stats.Skipped++
			continue
		}

		res := target.Dispatch(ev)
		stats.Events++
		if res.Handled {
			stats.Handled++
		}
		if res.Changed {
			stats.Changed++
		}
		if opts.OnResult != nil {
			opts.OnResult(ev, res)
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("read session: %w", err)
	}
	return stats, nil
}
