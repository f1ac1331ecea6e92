package term

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// Screen is the part of tcell.Screen the shell draws on.
type Screen interface {
	Init() error
	Fini()
	Size() (width, height int)
	Clear()
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	ShowCursor(x, y int)
	HideCursor()
	Show()
	PollEvent() tcell.Event
	PostEvent(ev tcell.Event) error
}

// RedrawEvent asks a running shell to repaint, e.g. after a highlight
// pass completes on another goroutine.
type RedrawEvent struct {
	t time.Time
}

// NewRedrawEvent creates a redraw request stamped with the current time.
func NewRedrawEvent() *RedrawEvent {
	return &RedrawEvent{t: time.Now()}
}

// When implements tcell.Event.
func (e *RedrawEvent) When() time.Time {
	return e.t
}

// RequestRedraw posts a RedrawEvent to s. It is safe to call from any
// goroutine; a full event queue drops the request.
func RequestRedraw(s Screen) {
	_ = s.PostEvent(NewRedrawEvent()) // best-effort; queue may be full
}
