package highlight

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Theme maps token kinds to colors.
type Theme struct {
	// Name is the display name of the theme.
	Name string

	// Foreground is the color for kinds without an entry.
	Foreground colorful.Color

	// Colors maps token kinds to their colors.
	Colors map[Kind]colorful.Color
}

// ColorFor returns the color for a token kind.
func (t *Theme) ColorFor(k Kind) colorful.Color {
	if c, ok := t.Colors[k]; ok {
		return c
	}
	return t.Foreground
}

// RGB returns the 8-bit components of the color for a token kind.
func (t *Theme) RGB(k Kind) (r, g, b uint8) {
	return t.ColorFor(k).Clamped().RGB255()
}

// DefaultTheme returns the dark theme used by the terminal shell.
func DefaultTheme() *Theme {
	fg := mustHex("#d4d4d4")
	return &Theme{
		Name:       "default-dark",
		Foreground: fg,
		Colors: map[Kind]colorful.Color{
			KindComment:     mustHex("#6a9955"),
			KindString:      mustHex("#ce9178"),
			KindNumber:      mustHex("#b5cea8"),
			KindKeyword:     mustHex("#569cd6"),
			KindIdentifier:  mustHex("#9cdcfe"),
			KindOperator:    fg,
			KindPunctuation: fg.BlendLab(mustHex("#1e1e1e"), 0.3),
			KindText:        mustHex("#f44747"),
		},
	}
}

// mustHex parses a hex color literal. Only used for built-in themes.
func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("invalid theme color " + s + ": " + err.Error())
	}
	return c
}
