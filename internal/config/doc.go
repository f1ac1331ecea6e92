// Package config loads keyscribe settings.
//
// Settings come from three layers, later layers winning:
//
//  1. Built-in defaults (Default)
//  2. A TOML or YAML file, chosen by extension
//  3. KEYSCRIBE_* environment variables
//
// Every setting has a dotted path used by Set and by the environment
// layer: KEYSCRIBE_CHORD_TIMEOUT sets chord.timeout, KEYSCRIBE_LOG_FEED_CAPACITY
// sets log.feed_capacity.
//
// Watch reloads the file when it changes and hands the new Config to a
// callback. Only settings that can change at runtime (the highlight settle
// window, the chord timeout and the feed capacity) are expected to be
// applied by the caller; the rest take effect on restart.
package config
