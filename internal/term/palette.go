package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keyscribe/internal/renderer/highlight"
)

// Palette holds the tcell styles for one theme.
type Palette struct {
	Text   tcell.Style
	Gutter tcell.Style
	Status tcell.Style
	Log    tcell.Style
	kinds  map[highlight.Kind]tcell.Style
}

// NewPalette converts a highlight theme into tcell styles.
func NewPalette(theme *highlight.Theme) *Palette {
	fg := rgb(theme.Foreground.Clamped().RGB255())
	p := &Palette{
		Text:   tcell.StyleDefault.Foreground(fg),
		Gutter: tcell.StyleDefault.Foreground(tcell.NewRGBColor(0x85, 0x85, 0x85)),
		Status: tcell.StyleDefault.Reverse(true),
		Log:    tcell.StyleDefault.Dim(true),
		kinds:  make(map[highlight.Kind]tcell.Style),
	}
	for _, k := range highlight.Kinds() {
		p.kinds[k] = tcell.StyleDefault.Foreground(rgb(theme.RGB(k)))
	}
	return p
}

// Style returns the style for a token kind.
func (p *Palette) Style(k highlight.Kind) tcell.Style {
	if s, ok := p.kinds[k]; ok {
		return s
	}
	return p.Text
}

func rgb(r, g, b uint8) tcell.Color {
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
