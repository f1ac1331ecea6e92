package dispatcher

import "strings"

// CommentPrefix is the line prefix toggled by the comment shortcut.
const CommentPrefix = "// "

// IndentUnit is inserted by Tab and removed by Shift+Tab.
const IndentUnit = "  "

// LineIndex returns the zero-based line containing offset.
func LineIndex(content string, offset int) int {
	return strings.Count(content[:offset], "\n")
}

// LineStart returns the offset of the first byte of the line containing offset.
func LineStart(content string, offset int) int {
	return strings.LastIndexByte(content[:offset], '\n') + 1
}

// LineCount returns the number of lines in content.
func LineCount(content string) int {
	return strings.Count(content, "\n") + 1
}

// ToggleComment toggles CommentPrefix on every line touched by the
// selection. Each line is toggled independently, so a mixed block stays
// mixed.
func ToggleComment(content string, start, end int) string {
	lines := strings.Split(content, "\n")
	first := LineIndex(content, start)
	last := LineIndex(content, end)

	for i := first; i <= last; i++ {
		if strings.HasPrefix(lines[i], CommentPrefix) {
			lines[i] = lines[i][len(CommentPrefix):]
		} else {
			lines[i] = CommentPrefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

// Indent inserts IndentUnit at the start of the line containing start and
// shifts both offsets past it.
func Indent(content string, start, end int) (string, int, int) {
	ls := LineStart(content, start)
	n := len(IndentUnit)
	return content[:ls] + IndentUnit + content[ls:], start + n, end + n
}

// Outdent removes up to two leading spaces from the line containing start.
// Offsets shift back by the number removed, floored at zero. The bool is
// false if the line had no leading space.
func Outdent(content string, start, end int) (string, int, int, bool) {
	ls := LineStart(content, start)
	line := content[ls:]

	removed := 0
	switch {
	case strings.HasPrefix(line, "  "):
		removed = 2
	case strings.HasPrefix(line, " "):
		removed = 1
	default:
		return content, start, end, false
	}

	return content[:ls] + content[ls+removed:], max(start-removed, 0), max(end-removed, 0), true
}

// InsertNewline replaces the selection with a newline followed by the
// leading whitespace of the current line, and returns the cursor offset
// just past the inserted indentation.
func InsertNewline(content string, start, end int) (string, int) {
	ls := LineStart(content, start)
	indent := leadingWhitespace(content[ls:start])
	return content[:start] + "\n" + indent + content[end:], start + 1 + len(indent)
}

func leadingWhitespace(s string) string {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return s[:i]
}
