// Package term runs a keyscribe session in a terminal with tcell.
//
// ToEvent translates tcell key events into key.Event values; terminals
// report Ctrl+letter as control codes, and Ctrl+/ as 0x1F, so both forms
// are mapped back to the letter or slash with the modifier set. The
// Shell draws the buffer with a line-number gutter, colors tokens from
// the highlight theme, and shows the tail of the event log.
package term
