package dispatcher

import (
	"time"

	"github.com/dshills/keyscribe/internal/eventlog"
	"github.com/dshills/keyscribe/internal/input/chord"
	"github.com/dshills/keyscribe/internal/input/key"
)

// History is the buffer owner the dispatcher mutates.
type History interface {
	Update(content string)
	Undo() bool
	Redo() bool
	Content() string
}

// Notifier is told about every content change. The highlight scheduler
// implements it.
type Notifier interface {
	Notify(content string)
}

// ChordTracker is the two-key shortcut state machine.
type ChordTracker interface {
	Feed(ev key.Event, at time.Time) chord.Result
}

// Logger receives diagnostic messages.
type Logger interface {
	Debug(msg string, args ...any)
}

// SaveHook runs when the save shortcut is pressed.
type SaveHook func(content string)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithChord replaces the default Mod+K Mod+C tracker.
func WithChord(c ChordTracker) Option {
	return func(d *Dispatcher) {
		if c != nil {
			d.chord = c
		}
	}
}

// WithNotifier sets the content-change notifier.
func WithNotifier(n Notifier) Option {
	return func(d *Dispatcher) {
		d.notifier = n
	}
}

// WithSink sets the destination for log records.
func WithSink(s eventlog.Sink) Option {
	return func(d *Dispatcher) {
		d.sink = s
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l Logger) Option {
	return func(d *Dispatcher) {
		d.logger = l
	}
}

// WithClock sets the time source used for events without a timestamp.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		if now != nil {
			d.now = now
		}
	}
}

// WithSaveHook registers a function to run on the save shortcut.
func WithSaveHook(fn SaveHook) Option {
	return func(d *Dispatcher) {
		d.onSave = fn
	}
}
