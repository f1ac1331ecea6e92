// Package key defines the inbound key event shape and shortcut bindings.
//
// An Event mirrors a raw browser-style key or input event: the key value,
// the physical code, the Shift and platform modifier (Control or Command)
// flags, and the caller's selection offsets at the time of the event.
//
// # Bindings
//
// Shortcuts are described with Binding values, parsed from specs such as
// "Mod+K", "Ctrl+Shift+Z" or "Tab". Ctrl, Control, Cmd, Command, Meta and
// Mod all name the platform modifier.
package key
