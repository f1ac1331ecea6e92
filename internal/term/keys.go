package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keyscribe/internal/input/key"
)

// namedKeys maps tcell keys without a printable rune to key values.
var namedKeys = map[tcell.Key]string{
	tcell.KeyEnter:     key.KeyEnter,
	tcell.KeyTab:       key.KeyTab,
	tcell.KeyEscape:    key.KeyEscape,
	tcell.KeyBackspace: key.KeyBackspace,
	tcell.KeyDelete:    key.KeyDelete,
	tcell.KeyLeft:      "ArrowLeft",
	tcell.KeyRight:     "ArrowRight",
	tcell.KeyUp:        "ArrowUp",
	tcell.KeyDown:      "ArrowDown",
	tcell.KeyHome:      "Home",
	tcell.KeyEnd:       "End",
	tcell.KeyPgUp:      "PageUp",
	tcell.KeyPgDn:      "PageDown",
}

// ToEvent converts a tcell key event into a keydown event carrying the
// given selection. ok is false for keys with no key value.
func ToEvent(ev *tcell.EventKey, selStart, selEnd int) (key.Event, bool) {
	mods := ev.Modifiers()
	mod := mods&(tcell.ModCtrl|tcell.ModMeta) != 0
	shift := mods&tcell.ModShift != 0

	k := ev.Key()
	var name string

	switch {
	case k == tcell.KeyRune:
		name = string(ev.Rune())
	case k == tcell.KeyBacktab:
		name, shift = key.KeyTab, true
	case k == tcell.KeyBackspace2:
		name = key.KeyBackspace
	case k == tcell.KeyUS || k == tcell.KeyCtrlUnderscore:
		// Ctrl+/ and Ctrl+_ share a control code.
		name, mod = "/", true
	default:
		if n, found := namedKeys[k]; found {
			name = n
			break
		}
		switch {
		case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
			name, mod = string(rune('a'+(k-tcell.KeyCtrlA))), true
		case k >= tcell.KeySOH && k <= tcell.KeySUB:
			// Raw control codes; Tab, Enter and Backspace are matched above.
			name, mod = string(rune('a'+(k-tcell.KeySOH))), true
		default:
			return key.Event{}, false
		}
	}

	out := key.Event{
		Type:           key.TypeKeyDown,
		Key:            name,
		Code:           key.CodeFor(name),
		Shift:          shift,
		Modifier:       mod,
		SelectionStart: selStart,
		SelectionEnd:   selEnd,
		Time:           ev.When(),
	}
	return out, true
}
