package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dshills/keyscribe/internal/input/key"
)

// DefaultInitialContent is shown in a fresh buffer.
const DefaultInitialContent = "// Welcome to the High-Performance Code Editor\n// Start typing..."

// Setting bounds.
const (
	MinSettleWindow     = 150 * time.Millisecond
	DefaultSettleWindow = 200 * time.Millisecond
	DefaultChordTimeout = 2000 * time.Millisecond
	DefaultFeedCapacity = 50
)

// Config is the complete set of keyscribe settings.
type Config struct {
	Editor    EditorConfig    `toml:"editor" yaml:"editor"`
	History   HistoryConfig   `toml:"history" yaml:"history"`
	Chord     ChordConfig     `toml:"chord" yaml:"chord"`
	Highlight HighlightConfig `toml:"highlight" yaml:"highlight"`
	Log       LogConfig       `toml:"log" yaml:"log"`
	Hooks     HooksConfig     `toml:"hooks" yaml:"hooks"`
}

// EditorConfig holds buffer settings.
type EditorConfig struct {
	InitialContent string `toml:"initial_content" yaml:"initial_content"`
}

// HistoryConfig holds undo settings.
type HistoryConfig struct {
	// MaxEntries caps the undo stack. Zero is unbounded.
	MaxEntries int `toml:"max_entries" yaml:"max_entries"`
}

// ChordConfig holds the two-step shortcut.
type ChordConfig struct {
	Arm     string   `toml:"arm" yaml:"arm"`
	Confirm string   `toml:"confirm" yaml:"confirm"`
	Timeout Duration `toml:"timeout" yaml:"timeout"`
}

// Bindings parses the arm and confirm shortcuts.
func (c ChordConfig) Bindings() (arm, confirm key.Binding, err error) {
	arm, err = key.ParseBinding(c.Arm)
	if err != nil {
		return arm, confirm, fmt.Errorf("chord.arm: %w", err)
	}
	confirm, err = key.ParseBinding(c.Confirm)
	if err != nil {
		return arm, confirm, fmt.Errorf("chord.confirm: %w", err)
	}
	return arm, confirm, nil
}

// HighlightConfig holds scheduler settings.
type HighlightConfig struct {
	SettleWindow Duration `toml:"settle_window" yaml:"settle_window"`
}

// LogConfig holds logging and event feed settings.
type LogConfig struct {
	Level        string `toml:"level" yaml:"level"`
	File         string `toml:"file" yaml:"file"`
	MaxSizeMB    int    `toml:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups   int    `toml:"max_backups" yaml:"max_backups"`
	FeedCapacity int    `toml:"feed_capacity" yaml:"feed_capacity"`
}

// HooksConfig holds the optional Lua hook script.
type HooksConfig struct {
	Script string `toml:"script" yaml:"script"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{InitialContent: DefaultInitialContent},
		Chord: ChordConfig{
			Arm:     "Mod+K",
			Confirm: "Mod+C",
			Timeout: Duration(DefaultChordTimeout),
		},
		Highlight: HighlightConfig{SettleWindow: Duration(DefaultSettleWindow)},
		Log: LogConfig{
			Level:        "info",
			MaxSizeMB:    10,
			MaxBackups:   3,
			FeedCapacity: DefaultFeedCapacity,
		},
	}
}

// Validate checks every setting and returns all failures joined.
func (c *Config) Validate() error {
	var errs []error
	fail := func(path, msg string, v any) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: v})
	}

	if c.History.MaxEntries < 0 {
		fail("history.max_entries", "must not be negative", c.History.MaxEntries)
	}

	arm, confirm, err := c.Chord.Bindings()
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("%w: %w", ErrValidationFailed, err))
	case arm.Mod == confirm.Mod && arm.Shift == confirm.Shift && strings.EqualFold(arm.Key, confirm.Key):
		fail("chord.confirm", "must differ from chord.arm", c.Chord.Confirm)
	}
	if c.Chord.Timeout <= 0 {
		fail("chord.timeout", "must be positive", c.Chord.Timeout)
	}
	if c.Highlight.SettleWindow.Std() < MinSettleWindow {
		fail("highlight.settle_window", "must be at least "+MinSettleWindow.String(), c.Highlight.SettleWindow)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		fail("log.level", "must be debug, info, warn or error", c.Log.Level)
	}
	if c.Log.FeedCapacity < 1 {
		fail("log.feed_capacity", "must be at least 1", c.Log.FeedCapacity)
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 {
		fail("log.max_size_mb", "rotation limits must not be negative", c.Log.MaxSizeMB)
	}

	return errors.Join(errs...)
}

// Paths lists every settable path.
func Paths() []string {
	return []string{
		"editor.initial_content",
		"history.max_entries",
		"chord.arm",
		"chord.confirm",
		"chord.timeout",
		"highlight.settle_window",
		"log.level",
		"log.file",
		"log.max_size_mb",
		"log.max_backups",
		"log.feed_capacity",
		"hooks.script",
	}
}

// Set assigns a setting from its string form.
func (c *Config) Set(path, value string) error {
	var err error
	switch path {
	case "editor.initial_content":
		c.Editor.InitialContent = value
	case "history.max_entries":
		c.History.MaxEntries, err = strconv.Atoi(value)
	case "chord.arm":
		c.Chord.Arm = value
	case "chord.confirm":
		c.Chord.Confirm = value
	case "chord.timeout":
		c.Chord.Timeout, err = ParseDuration(value)
	case "highlight.settle_window":
		c.Highlight.SettleWindow, err = ParseDuration(value)
	case "log.level":
		c.Log.Level = value
	case "log.file":
		c.Log.File = value
	case "log.max_size_mb":
		c.Log.MaxSizeMB, err = strconv.Atoi(value)
	case "log.max_backups":
		c.Log.MaxBackups, err = strconv.Atoi(value)
	case "log.feed_capacity":
		c.Log.FeedCapacity, err = strconv.Atoi(value)
	case "hooks.script":
		c.Hooks.Script = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownSetting, path)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Duration is a time.Duration written as a string like "200ms" or a bare
// number of milliseconds.
type Duration time.Duration

// ParseDuration parses "1.5s", "200ms" or "200" (milliseconds).
func ParseDuration(s string) (Duration, error) {
	s = strings.TrimSpace(s)
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Duration(time.Duration(ms) * time.Millisecond), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	return Duration(d), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// String returns the time.Duration form.
func (d Duration) String() string { return time.Duration(d).String() }

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a scalar", node.Line)
	}
	v, err := ParseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = v
	return nil
}
