package term

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keyscribe/internal/app"
	"github.com/dshills/keyscribe/internal/dispatcher"
	"github.com/dshills/keyscribe/internal/input/key"
	"github.com/dshills/keyscribe/internal/renderer/highlight"
)

// DefaultLogRows is the height of the event log panel.
const DefaultLogRows = 6

// Shell is an interactive terminal front end for a session.
//
// The shell keeps the cursor and selection; the session owns the
// content. Keys the dispatcher does not handle get their native
// behavior here, and every resulting content change is sent back to the
// session as an input event.
type Shell struct {
	screen  Screen
	session *app.Session
	palette *Palette
	logger  *app.Logger
	logRows int

	anchor int
	cursor int
	top    int
	quit   bool
}

// ShellOption configures a Shell.
type ShellOption func(*Shell)

// WithPalette sets the styles used for drawing.
func WithPalette(p *Palette) ShellOption {
	return func(sh *Shell) {
		sh.palette = p
	}
}

// WithLogRows sets the height of the event log panel. Zero hides it.
func WithLogRows(n int) ShellOption {
	return func(sh *Shell) {
		if n >= 0 {
			sh.logRows = n
		}
	}
}

// WithShellLogger sets the logger for shell diagnostics.
func WithShellLogger(l *app.Logger) ShellOption {
	return func(sh *Shell) {
		sh.logger = l
	}
}

// NewShell creates a shell drawing session on screen. The cursor starts
// at the end of the content.
func NewShell(screen Screen, session *app.Session, opts ...ShellOption) *Shell {
	sh := &Shell{
		screen:  screen,
		session: session,
		logger:  app.NullLogger,
		logRows: DefaultLogRows,
	}
	for _, opt := range opts {
		opt(sh)
	}
	if sh.palette == nil {
		sh.palette = NewPalette(highlight.DefaultTheme())
	}
	sh.cursor = len(session.Content())
	sh.anchor = sh.cursor
	return sh
}

// Run initializes the screen and processes events until the quit key is
// pressed, the screen stops delivering events, or ctx is done.
func (sh *Shell) Run(ctx context.Context) error {
	if err := sh.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer sh.screen.Fini()

	done := make(chan struct{})
	defer close(done)

	events := make(chan tcell.Event)
	go func() {
		defer close(events)
		for {
			ev := sh.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	sh.Draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			sh.HandleEvent(ev)
			if sh.quit {
				sh.logger.Debug("quit requested")
				return nil
			}
			sh.Draw()
		}
	}
}

// HandleEvent applies one screen event.
func (sh *Shell) HandleEvent(ev tcell.Event) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		sh.HandleKey(e)
	case *tcell.EventResize, *RedrawEvent:
		// Repainted by the caller.
	}
}

// HandleKey dispatches a key press and applies its native behavior if
// the dispatcher did not handle it.
func (sh *Shell) HandleKey(e *tcell.EventKey) {
	content := sh.session.Content()
	sh.clampCursor(len(content))
	start, end := sh.Selection()

	ev, ok := ToEvent(e, start, end)
	if !ok {
		return
	}

	switch {
	case ev.Modifier && ev.IsKey("q"):
		sh.quit = true
		return
	case ev.Modifier && ev.IsKey("l"):
		sh.session.ClearLog()
		return
	}

	res := sh.session.Dispatch(ev)
	if res.Handled {
		sh.anchor, sh.cursor = res.SelectionStart, res.SelectionEnd
		return
	}
	if ev.Modifier {
		return
	}

	if e.Key() == tcell.KeyRune {
		sh.replace(content, start, end, string(e.Rune()))
		return
	}
	sh.native(ev, content, start, end)
}

// native applies the default behavior of editing and navigation keys.
func (sh *Shell) native(ev key.Event, content string, start, end int) {
	switch ev.Key {
	case key.KeyBackspace:
		if start == end {
			start = prevCluster(content, start)
		}
		sh.replace(content, start, end, "")
	case key.KeyDelete:
		if start == end {
			end = nextCluster(content, end)
		}
		sh.replace(content, start, end, "")
	case key.KeyEscape:
		sh.anchor = sh.cursor
	case "ArrowLeft":
		sh.move(prevCluster(content, sh.cursor), ev.Shift)
	case "ArrowRight":
		sh.move(nextCluster(content, sh.cursor), ev.Shift)
	case "ArrowUp":
		sh.move(sh.vertical(content, -1), ev.Shift)
	case "ArrowDown":
		sh.move(sh.vertical(content, 1), ev.Shift)
	case "Home":
		sh.move(dispatcher.LineStart(content, sh.cursor), ev.Shift)
	case "End":
		sh.move(lineEnd(content, sh.cursor), ev.Shift)
	}
}

// replace swaps content[start:end] for text and reports the new content
// to the session.
func (sh *Shell) replace(content string, start, end int, text string) {
	if start == end && text == "" {
		return
	}
	updated := content[:start] + text + content[end:]
	cursor := start + len(text)
	sh.session.Dispatch(key.NewInput(updated, cursor, cursor))
	sh.anchor, sh.cursor = cursor, cursor
}

func (sh *Shell) move(to int, extend bool) {
	sh.cursor = to
	if !extend {
		sh.anchor = to
	}
}

// vertical returns the offset one line above (dir < 0) or below the
// cursor, keeping the column where the target line is long enough.
func (sh *Shell) vertical(content string, dir int) int {
	col := column(content, sh.cursor)
	start := dispatcher.LineStart(content, sh.cursor)
	if dir < 0 {
		if start == 0 {
			return 0
		}
		return offsetAtColumn(content, dispatcher.LineStart(content, start-1), col)
	}
	end := lineEnd(content, sh.cursor)
	if end == len(content) {
		return end
	}
	return offsetAtColumn(content, end+1, col)
}

// Selection returns the ordered selection offsets.
func (sh *Shell) Selection() (start, end int) {
	if sh.anchor <= sh.cursor {
		return sh.anchor, sh.cursor
	}
	return sh.cursor, sh.anchor
}

// Cursor returns the cursor offset.
func (sh *Shell) Cursor() int {
	return sh.cursor
}

// SetSelection sets the anchor and cursor offsets.
func (sh *Shell) SetSelection(anchor, cursor int) {
	sh.anchor, sh.cursor = anchor, cursor
	sh.clampCursor(len(sh.session.Content()))
}

// Quit reports whether the quit key was pressed.
func (sh *Shell) Quit() bool {
	return sh.quit
}

// clampCursor keeps the offsets inside content that may have changed
// underneath the shell, e.g. after a replay.
func (sh *Shell) clampCursor(n int) {
	sh.anchor = min(max(sh.anchor, 0), n)
	sh.cursor = min(max(sh.cursor, 0), n)
}
