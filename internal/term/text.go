package term

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/dshills/keyscribe/internal/dispatcher"
)

// prevCluster returns the offset of the grapheme cluster that ends at off.
func prevCluster(s string, off int) int {
	if off <= 0 {
		return 0
	}
	pos := dispatcher.LineStart(s, off)
	if pos == off {
		// Step over the newline that ends the previous line.
		return off - 1
	}
	state := -1
	rest := s[pos:off]
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if pos+len(cluster) >= off {
			return pos
		}
		pos += len(cluster)
	}
	return pos
}

// nextCluster returns the offset just past the grapheme cluster at off.
func nextCluster(s string, off int) int {
	if off >= len(s) {
		return len(s)
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(s[off:], -1)
	return off + len(cluster)
}

// lineEnd returns the offset of the newline ending the line at off, or
// len(s) for the last line.
func lineEnd(s string, off int) int {
	if i := strings.IndexByte(s[off:], '\n'); i >= 0 {
		return off + i
	}
	return len(s)
}

// column counts grapheme clusters between the line start and off.
func column(s string, off int) int {
	return uniseg.GraphemeClusterCount(s[dispatcher.LineStart(s, off):off])
}

// offsetAtColumn returns the offset of the col-th cluster of the line
// starting at start, or the line end if the line is shorter.
func offsetAtColumn(s string, start, col int) int {
	end := lineEnd(s, start)
	pos := start
	state := -1
	rest := s[start:end]
	for i := 0; i < col && len(rest) > 0; i++ {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		pos += len(cluster)
	}
	return pos
}

// displayWidth returns the number of terminal cells s occupies.
func displayWidth(s string) int {
	return uniseg.StringWidth(strings.ReplaceAll(s, "\t", " "))
}
