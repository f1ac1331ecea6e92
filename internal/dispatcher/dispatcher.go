package dispatcher

import (
	"fmt"
	"time"

	"github.com/dshills/keyscribe/internal/eventlog"
	"github.com/dshills/keyscribe/internal/input/chord"
	"github.com/dshills/keyscribe/internal/input/key"
)

// Dispatcher routes events to editing actions.
// It is not safe for concurrent use: events must be dispatched one at a
// time, each running to completion before the next.
type Dispatcher struct {
	history  History
	chord    ChordTracker
	notifier Notifier
	sink     eventlog.Sink
	logger   Logger
	now      func() time.Time
	onSave   SaveHook
}

// New creates a dispatcher writing to h.
func New(h History, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		history: h,
		chord:   chord.New(chord.DefaultConfig()),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch routes an event by type.
func (d *Dispatcher) Dispatch(ev key.Event) Result {
	switch ev.Type {
	case key.TypeInput:
		return d.HandleInput(ev)
	case key.TypeKeyDown:
		return d.HandleKeyDown(ev)
	default:
		d.emit(eventlog.New(string(ev.Type), fmt.Sprintf("%s event", ev.Type)).WithKey(ev.Key, ev.Code))
		content := d.history.Content()
		start, end := ev.Selection(len(content))
		return Result{Content: content, SelectionStart: start, SelectionEnd: end}
	}
}

// HandleKeyDown evaluates the shortcut rules for one keydown event.
func (d *Dispatcher) HandleKeyDown(ev key.Event) Result {
	at := ev.Time
	if at.IsZero() {
		at = d.now()
	}

	d.emit(eventlog.New(eventlog.TypeKeyDown,
		fmt.Sprintf("keydown: key=%s code=%s", ev.Key, ev.Code)).WithKey(ev.Key, ev.Code))

	content := d.history.Content()
	start, end := ev.Selection(len(content))
	res := Result{Content: content, SelectionStart: start, SelectionEnd: end}

	chordResult := d.chord.Feed(ev, at)
	switch chordResult {
	case chord.ResultCancelled, chord.ResultExpired:
		d.debug("chord %s by %s", chordResult, ev.String())
	}

	switch {
	case ev.Modifier && ev.IsKey("s"):
		return d.save(res)

	case ev.Modifier && ev.IsKey("z"):
		if ev.Shift {
			return d.redo(res)
		}
		return d.undo(res)

	case ev.Modifier && ev.Key == "/":
		return d.toggleComment(res)

	case chordResult == chord.ResultArmed:
		res.Action = ActionChordArm
		res.Handled = true
		d.action(res.Action, "Chord Armed (waiting for second key)")
		return res

	case chordResult == chord.ResultSuccess:
		res.Action = ActionChordSuccess
		res.Handled = true
		d.action(res.Action, "Chord Success")
		return res

	case !ev.Modifier && ev.Key == key.KeyTab:
		if ev.Shift {
			return d.outdent(res)
		}
		return d.indent(res)

	case !ev.Modifier && ev.Key == key.KeyEnter:
		return d.newline(res)
	}

	return res
}

// HandleInput records a content change produced by native text insertion.
func (d *Dispatcher) HandleInput(ev key.Event) Result {
	d.emit(eventlog.New(eventlog.TypeInput,
		fmt.Sprintf("input: %d chars", len(ev.Content))))

	res := Result{Action: ActionInput, Content: ev.Content}
	res.SelectionStart, res.SelectionEnd = ev.Selection(len(ev.Content))

	if ev.Content == d.history.Content() {
		return res
	}
	d.commit(ev.Content)
	res.Changed = true
	return res
}

func (d *Dispatcher) save(res Result) Result {
	res.Action = ActionSave
	res.Handled = true
	d.action(res.Action, "Save")
	if d.onSave != nil {
		d.onSave(res.Content)
	}
	return res
}

func (d *Dispatcher) undo(res Result) Result {
	res.Action = ActionUndo
	res.Handled = true
	if !d.history.Undo() {
		d.action(res.Action, "Undo (nothing to undo)")
		return res
	}
	return d.restored(res)
}

func (d *Dispatcher) redo(res Result) Result {
	res.Action = ActionRedo
	res.Handled = true
	if !d.history.Redo() {
		d.action(res.Action, "Redo (nothing to redo)")
		return res
	}
	return d.restored(res)
}

// restored finishes an undo or redo that replaced the content.
func (d *Dispatcher) restored(res Result) Result {
	content := d.history.Content()
	d.action(res.Action, res.Action.String())
	d.notify(content)

	res.Changed = true
	res.Content = content
	res.SelectionStart = min(res.SelectionStart, len(content))
	res.SelectionEnd = min(res.SelectionEnd, len(content))
	return res
}

func (d *Dispatcher) toggleComment(res Result) Result {
	res.Action = ActionToggleComment
	res.Handled = true

	content := ToggleComment(res.Content, res.SelectionStart, res.SelectionEnd)
	d.action(res.Action, "Toggle Comment")
	d.commit(content)

	// Offsets are restored as-is; per-line length drift is not tracked.
	res.Changed = true
	res.Content = content
	res.SelectionStart = min(res.SelectionStart, len(content))
	res.SelectionEnd = min(res.SelectionEnd, len(content))
	return res
}

func (d *Dispatcher) indent(res Result) Result {
	res.Action = ActionIndent
	res.Handled = true

	content, start, end := Indent(res.Content, res.SelectionStart, res.SelectionEnd)
	d.action(res.Action, "Indent")
	d.commit(content)

	res.Changed = true
	res.Content = content
	res.SelectionStart, res.SelectionEnd = start, end
	return res
}

func (d *Dispatcher) outdent(res Result) Result {
	res.Action = ActionOutdent
	res.Handled = true

	content, start, end, changed := Outdent(res.Content, res.SelectionStart, res.SelectionEnd)
	if !changed {
		d.action(res.Action, "Outdent (no leading space)")
		return res
	}
	d.action(res.Action, "Outdent")
	d.commit(content)

	res.Changed = true
	res.Content = content
	res.SelectionStart, res.SelectionEnd = start, end
	return res
}

func (d *Dispatcher) newline(res Result) Result {
	res.Action = ActionNewline
	res.Handled = true

	content, cursor := InsertNewline(res.Content, res.SelectionStart, res.SelectionEnd)
	d.action(res.Action, "Newline")
	d.commit(content)

	res.Changed = true
	res.Content = content
	res.SelectionStart, res.SelectionEnd = cursor, cursor
	return res
}

// commit is the single mutation path: one Update, one Notify.
func (d *Dispatcher) commit(content string) {
	d.history.Update(content)
	d.notify(content)
}

func (d *Dispatcher) notify(content string) {
	if d.notifier != nil {
		d.notifier.Notify(content)
	}
}

func (d *Dispatcher) action(a Action, message string) {
	d.debug("action %s", a)
	d.emit(eventlog.New(eventlog.TypeAction, message))
}

func (d *Dispatcher) emit(r eventlog.Record) {
	if d.sink != nil {
		d.sink.Append(r)
	}
}

func (d *Dispatcher) debug(msg string, args ...any) {
	if d.logger != nil {
		d.logger.Debug(msg, args...)
	}
}
