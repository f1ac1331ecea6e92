package term

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/keyscribe/internal/dispatcher"
	"github.com/dshills/keyscribe/internal/renderer/highlight"
)

// segment is a run of text drawn in one style.
type segment struct {
	text  string
	style tcell.Style
}

// Draw repaints the whole screen: the buffer with its gutter, a status
// line, and the tail of the event log.
func (sh *Shell) Draw() {
	width, height := sh.screen.Size()
	sh.screen.Clear()
	if width <= 0 || height <= 0 {
		sh.screen.Show()
		return
	}

	content := sh.session.Content()
	sh.clampCursor(len(content))

	logRows := min(sh.logRows, max(height-2, 0))
	bodyRows := max(height-logRows-1, 0)
	sh.scrollTo(dispatcher.LineIndex(content, sh.cursor), bodyRows)

	gutter := len(strconv.Itoa(dispatcher.LineCount(content))) + 1
	sh.drawGutter(content, gutter, bodyRows)
	sh.drawBody(content, gutter, width, bodyRows)
	sh.drawStatus(content, width, bodyRows)
	sh.drawLog(width, bodyRows+1, logRows)

	row := dispatcher.LineIndex(content, sh.cursor) - sh.top
	if row >= 0 && row < bodyRows {
		x := gutter + displayWidth(content[dispatcher.LineStart(content, sh.cursor):sh.cursor])
		sh.screen.ShowCursor(min(x, width-1), row)
	} else {
		sh.screen.HideCursor()
	}
	sh.screen.Show()
}

// scrollTo adjusts the first visible line so that line is on screen.
func (sh *Shell) scrollTo(line, rows int) {
	if rows <= 0 {
		return
	}
	if line < sh.top {
		sh.top = line
	}
	if line >= sh.top+rows {
		sh.top = line - rows + 1
	}
}

func (sh *Shell) drawGutter(content string, width, rows int) {
	lines := dispatcher.LineCount(content)
	for row := 0; row < rows && sh.top+row < lines; row++ {
		num := strconv.Itoa(sh.top + row + 1)
		sh.drawString(width-1-len(num), row, width, num, sh.palette.Gutter)
	}
}

func (sh *Shell) drawBody(content string, left, width, rows int) {
	selStart, selEnd := sh.Selection()
	line, x, off := 0, 0, 0

	for _, seg := range sh.segments(content) {
		state := -1
		rest := seg.text
		for len(rest) > 0 {
			var cluster string
			var w int
			cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
			start := off
			off += len(cluster)

			if cluster == "\n" {
				line++
				x = 0
				continue
			}
			row := line - sh.top
			if row >= 0 && row < rows && left+x < width {
				style := seg.style
				if start >= selStart && start < selEnd {
					style = style.Reverse(true)
				}
				runes := []rune(cluster)
				if runes[0] == '\t' {
					runes, w = []rune{' '}, 1
				}
				sh.screen.SetContent(left+x, row, runes[0], runes[1:], style)
			}
			x += w
		}
	}
}

// segments splits content into styled runs. Tokens are used only when
// they describe the current content; otherwise everything is plain text
// until the next highlight pass lands.
func (sh *Shell) segments(content string) []segment {
	tokens := sh.session.Tokens()
	if len(tokens) == 0 || highlight.Join(tokens) != content {
		return []segment{{text: content, style: sh.palette.Text}}
	}
	segs := make([]segment, len(tokens))
	for i, t := range tokens {
		segs[i] = segment{text: t.Text, style: sh.palette.Style(t.Kind)}
	}
	return segs
}

func (sh *Shell) drawStatus(content string, width, row int) {
	st := sh.session.State()
	parts := []string{
		fmt.Sprintf("Ln %d, Col %d", dispatcher.LineIndex(content, sh.cursor)+1, column(content, sh.cursor)+1),
		fmt.Sprintf("%d lines", st.LineCount),
		fmt.Sprintf("undo %d/%d", st.HistorySize, st.RedoSize),
		fmt.Sprintf("%d tokens", st.Highlights),
	}
	if st.ChordArmed {
		parts = append(parts, "chord armed")
	}
	status := " " + strings.Join(parts, " | ")
	if pad := width - displayWidth(status); pad > 0 {
		status += strings.Repeat(" ", pad)
	}
	sh.drawString(0, row, width, status, sh.palette.Status)
}

func (sh *Shell) drawLog(width, top, rows int) {
	if rows <= 0 {
		return
	}
	records := sh.session.Feed().Tail(rows)
	for i, r := range records {
		sh.drawString(0, top+i, width, r.String(), sh.palette.Log)
	}
}

// drawString draws s on one row from x, clipped at limit.
func (sh *Shell) drawString(x, y, limit int, s string, style tcell.Style) {
	state := -1
	for len(s) > 0 && x < limit {
		var cluster string
		var w int
		cluster, s, w, state = uniseg.FirstGraphemeClusterInString(s, state)
		runes := []rune(cluster)
		if runes[0] == '\n' || runes[0] == '\t' {
			runes, w = []rune{' '}, 1
		}
		sh.screen.SetContent(x, y, runes[0], runes[1:], style)
		x += w
	}
}
