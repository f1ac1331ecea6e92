package key

import (
	"fmt"
	"strings"
	"time"
)

// Type is the kind of an inbound event.
type Type string

const (
	// TypeKeyDown is a key press before its default action.
	TypeKeyDown Type = "keydown"
	// TypeInput is a content change produced by native text insertion.
	TypeInput Type = "input"
)

// Named key values.
const (
	KeyEnter     = "Enter"
	KeyTab       = "Tab"
	KeyEscape    = "Escape"
	KeyBackspace = "Backspace"
	KeyDelete    = "Delete"
	KeyControl   = "Control"
	KeyMeta      = "Meta"
	KeyShift     = "Shift"
	KeyAlt       = "Alt"
)

// Event is a single inbound key or input event.
type Event struct {
	// Type is the event type.
	Type Type

	// Key is the key value, e.g. "k", "K", "/", "Enter".
	Key string

	// Code is the physical key code, e.g. "KeyK".
	Code string

	// Shift is true if Shift was held.
	Shift bool

	// Modifier is true if the platform modifier (Control or Command) was held.
	Modifier bool

	// SelectionStart and SelectionEnd are the caller's selection offsets.
	SelectionStart int
	SelectionEnd   int

	// Content is the full text after native insertion. Only set for TypeInput.
	Content string

	// Time is when the event occurred. Zero means "now" to the consumer.
	Time time.Time
}

// NewKeyDown creates a keydown event with the current timestamp.
func NewKeyDown(k string, mod, shift bool, selStart, selEnd int) Event {
	return Event{
		Type:           TypeKeyDown,
		Key:            k,
		Code:           CodeFor(k),
		Shift:          shift,
		Modifier:       mod,
		SelectionStart: selStart,
		SelectionEnd:   selEnd,
		Time:           time.Now(),
	}
}

// NewInput creates an input event carrying the changed content.
func NewInput(content string, selStart, selEnd int) Event {
	return Event{
		Type:           TypeInput,
		Content:        content,
		SelectionStart: selStart,
		SelectionEnd:   selEnd,
		Time:           time.Now(),
	}
}

// IsKey reports whether the event's key equals k, ignoring case.
func (e Event) IsKey(k string) bool {
	return strings.EqualFold(e.Key, k)
}

// IsModifierOnly returns true if the key is itself a modifier key.
func (e Event) IsModifierOnly() bool {
	switch e.Key {
	case KeyControl, KeyMeta, KeyShift, KeyAlt:
		return true
	}
	return false
}

// Selection returns the selection offsets clamped to [0, length] and
// ordered so that start <= end.
func (e Event) Selection(length int) (start, end int) {
	start = clamp(e.SelectionStart, 0, length)
	end = clamp(e.SelectionEnd, 0, length)
	if start > end {
		start, end = end, start
	}
	return start, end
}

// Matches reports whether the event triggers the binding.
func (e Event) Matches(b Binding) bool {
	if e.Type != TypeKeyDown || b.Key == "" {
		return false
	}
	if e.Modifier != b.Mod {
		return false
	}
	if b.Shift && !e.Shift {
		return false
	}
	return e.IsKey(b.Key)
}

// String returns a compact representation like "Mod+Shift+Z".
func (e Event) String() string {
	var parts []string
	if e.Modifier {
		parts = append(parts, "Mod")
	}
	if e.Shift && len([]rune(e.Key)) != 1 {
		parts = append(parts, "Shift")
	}
	parts = append(parts, e.Key)
	return strings.Join(parts, "+")
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("Event{Type: %s, Key: %q, Code: %q, Shift: %t, Modifier: %t, Selection: %d-%d}",
		e.Type, e.Key, e.Code, e.Shift, e.Modifier, e.SelectionStart, e.SelectionEnd)
}

// CodeFor derives a physical key code for a key value, following the
// browser KeyboardEvent.code naming. Unknown keys return the key itself.
func CodeFor(k string) string {
	r := []rune(k)
	if len(r) == 1 {
		c := r[0]
		switch {
		case c >= 'a' && c <= 'z':
			return "Key" + strings.ToUpper(k)
		case c >= 'A' && c <= 'Z':
			return "Key" + k
		case c >= '0' && c <= '9':
			return "Digit" + k
		}
		if code, ok := punctuationCodes[c]; ok {
			return code
		}
		return k
	}
	return k
}

var punctuationCodes = map[rune]string{
	' ':  "Space",
	'/':  "Slash",
	'\\': "Backslash",
	'.':  "Period",
	',':  "Comma",
	';':  "Semicolon",
	'\'': "Quote",
	'[':  "BracketLeft",
	']':  "BracketRight",
	'-':  "Minus",
	'=':  "Equal",
	'`':  "Backquote",
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
