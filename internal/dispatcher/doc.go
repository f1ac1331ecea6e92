// Package dispatcher turns raw key and input events into editing actions.
//
// For each keydown the Dispatcher logs the event and then evaluates a fixed
// list of rules, stopping at the first match:
//
//  1. Mod+S        save
//  2. Mod+Z        undo (redo with Shift)
//  3. Mod+/        toggle "// " on every selected line
//  4. Mod+K Mod+C  two-step chord, tracked by package chord
//  5. Tab          indent the cursor line (Shift+Tab outdents)
//  6. Enter        newline that keeps the current indentation
//
// A matched rule reports Handled so the caller suppresses native text
// insertion. Unmatched keys fall through; the resulting text change comes
// back through HandleInput. Every content change goes through
// History.Update exactly once and is announced to the Notifier once.
package dispatcher
