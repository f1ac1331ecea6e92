package dispatcher

import "testing"

func TestLineHelpers(t *testing.T) {
	content := "ab\ncd\n\nef"
	tests := []struct {
		offset    int
		wantIndex int
		wantStart int
	}{
		{0, 0, 0},
		{2, 0, 0},
		{3, 1, 3},
		{5, 1, 3},
		{6, 2, 6},
		{7, 3, 7},
		{9, 3, 7},
	}

	for _, tt := range tests {
		if got := LineIndex(content, tt.offset); got != tt.wantIndex {
			t.Errorf("LineIndex(%d) = %d, want %d", tt.offset, got, tt.wantIndex)
		}
		if got := LineStart(content, tt.offset); got != tt.wantStart {
			t.Errorf("LineStart(%d) = %d, want %d", tt.offset, got, tt.wantStart)
		}
	}

	if got := LineCount(content); got != 4 {
		t.Errorf("LineCount() = %d, want 4", got)
	}
	if got := LineCount(""); got != 1 {
		t.Errorf("LineCount(\"\") = %d, want 1", got)
	}
}

func TestToggleComment(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		start, end int
		want       string
	}{
		{"comment single line", "abc", 0, 0, "// abc"},
		{"uncomment single line", "// abc", 3, 3, "abc"},
		{"mixed block toggles per line", "a\n// b", 0, 6, "// a\nb"},
		{"only touched lines", "a\nb\nc", 2, 2, "a\n// b\nc"},
		{"empty line", "a\n\nc", 2, 2, "a\n// \nc"},
		{"prefix without space is commented", "//x", 0, 0, "// //x"},
		{"selection across three lines", "x\ny\nz", 1, 4, "// x\n// y\n// z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToggleComment(tt.content, tt.start, tt.end); got != tt.want {
				t.Errorf("ToggleComment() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToggleCommentTwiceRestores(t *testing.T) {
	content := "func main() {\n\treturn\n}"
	once := ToggleComment(content, 0, len(content))
	twice := ToggleComment(once, 0, len(once))
	if twice != content {
		t.Errorf("double toggle = %q, want %q", twice, content)
	}
}

func TestIndent(t *testing.T) {
	got, start, end := Indent("abc", 0, 0)
	if got != "  abc" || start != 2 || end != 2 {
		t.Errorf("Indent() = %q %d %d, want %q 2 2", got, start, end, "  abc")
	}

	got, start, end = Indent("x\nabc", 4, 5)
	if got != "x\n  abc" || start != 6 || end != 7 {
		t.Errorf("Indent() second line = %q %d %d", got, start, end)
	}
}

func TestOutdent(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		start, end  int
		want        string
		wantStart   int
		wantEnd     int
		wantChanged bool
	}{
		{"two spaces", "  abc", 2, 2, "abc", 0, 0, true},
		{"one space", " abc", 1, 1, "abc", 0, 0, true},
		{"floor at zero", "  abc", 1, 1, "abc", 0, 0, true},
		{"four spaces removes two", "    abc", 4, 4, "  abc", 2, 2, true},
		{"no leading space", "abc", 1, 1, "abc", 1, 1, false},
		{"tab is not removed", "\tabc", 1, 1, "\tabc", 1, 1, false},
		{"second line", "a\n  b", 4, 5, "a\nb", 2, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, start, end, changed := Outdent(tt.content, tt.start, tt.end)
			if got != tt.want || start != tt.wantStart || end != tt.wantEnd || changed != tt.wantChanged {
				t.Errorf("Outdent() = %q %d %d %t, want %q %d %d %t",
					got, start, end, changed, tt.want, tt.wantStart, tt.wantEnd, tt.wantChanged)
			}
		})
	}
}

func TestInsertNewline(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		start, end int
		want       string
		wantCursor int
	}{
		{"no indentation", "abc", 3, 3, "abc\n", 4},
		{"carries spaces", "    x", 5, 5, "    x\n    ", 10},
		{"carries tabs", "\tx", 2, 2, "\tx\n\t", 4},
		{"replaces selection", "  abcdef", 4, 6, "  ab\n  ef", 7},
		{"indent up to cursor only", "  ab", 1, 1, " \n  ab", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, cursor := InsertNewline(tt.content, tt.start, tt.end)
			if got != tt.want || cursor != tt.wantCursor {
				t.Errorf("InsertNewline() = %q %d, want %q %d", got, cursor, tt.want, tt.wantCursor)
			}
		})
	}
}
