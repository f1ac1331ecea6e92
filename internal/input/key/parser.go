package key

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Binding describes a keyboard shortcut.
type Binding struct {
	// Key is the key value, compared case-insensitively.
	Key string

	// Mod requires the platform modifier. Bindings without Mod only match
	// events without it.
	Mod bool

	// Shift requires Shift. A binding without Shift matches either way.
	Shift bool
}

// String returns the canonical spec, e.g. "Mod+Shift+Z".
func (b Binding) String() string {
	var parts []string
	if b.Mod {
		parts = append(parts, "Mod")
	}
	if b.Shift {
		parts = append(parts, "Shift")
	}
	parts = append(parts, b.Key)
	return strings.Join(parts, "+")
}

// MarshalText implements encoding.TextMarshaler.
func (b Binding) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Binding) UnmarshalText(text []byte) error {
	parsed, err := ParseBinding(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// modifierNames maps modifier names (lowercase) to the flag they set.
var modifierNames = map[string]string{
	"mod":     "mod",
	"ctrl":    "mod",
	"control": "mod",
	"cmd":     "mod",
	"command": "mod",
	"meta":    "mod",
	"shift":   "shift",
}

// ParseBinding parses a shortcut spec like "Mod+K", "Ctrl+Shift+Z" or "Tab".
// A literal "+" key is written as the last segment of "Mod++".
func ParseBinding(spec string) (Binding, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Binding{}, ErrEmptySpec
	}

	var b Binding
	parts := strings.Split(spec, "+")
	keyPart := parts[len(parts)-1]
	mods := parts[:len(parts)-1]
	if keyPart == "" && len(parts) >= 2 && parts[len(parts)-2] == "" {
		keyPart = "+"
		mods = parts[:len(parts)-2]
	}

	for _, p := range mods {
		p = strings.TrimSpace(p)
		switch modifierNames[strings.ToLower(p)] {
		case "mod":
			b.Mod = true
		case "shift":
			b.Shift = true
		default:
			return Binding{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
	}

	keyPart = strings.TrimSpace(keyPart)
	if keyPart == "" {
		return Binding{}, fmt.Errorf("%w: missing key in %q", ErrInvalidSpec, spec)
	}
	b.Key = keyPart
	return b, nil
}

// MustParseBinding parses a spec and panics on error.
// Use only for known-valid specs in initialization code.
func MustParseBinding(spec string) Binding {
	b, err := ParseBinding(spec)
	if err != nil {
		panic("invalid key binding: " + spec + ": " + err.Error())
	}
	return b
}
