// Package history provides snapshot-based undo/redo for the editing core.
//
// A History owns the current buffer content together with two stacks of
// prior content snapshots:
//
//	h := history.New("package main")
//	h.Update("package main\n")
//	h.Undo() // content is "package main" again
//	h.Redo() // content is "package main\n"
//
// Every Update pushes the pre-mutation content onto the undo stack and
// discards the redo stack, so redo is only possible directly after an
// undo. Snapshots are immutable strings; no two stack entries share
// mutable state.
//
// # Observers
//
// An observer registered with WithObserver is called after every content
// change with the kind of change and the new content. It is the hook used
// by the editing session to expose state for verification.
package history
