package lua

import (
	"fmt"
	"sync/atomic"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keyscribe/internal/eventlog"
)

// Hook function names looked up in the script.
const (
	FuncOnRecord = "on_record"
	FuncOnSave   = "on_save"
)

// Logger receives script output and hook failures. Messages are printf
// formats.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

// Hook runs a user script on log records and saves.
// It implements eventlog.Sink.
type Hook struct {
	state  *State
	path   string
	logger Logger

	hasOnRecord bool
	hasOnSave   bool

	calls  atomic.Int64
	errors atomic.Int64
}

// HookOption configures a Hook.
type HookOption func(*hookConfig)

type hookConfig struct {
	timeout time.Duration
	logger  Logger
}

// WithHookTimeout sets the execution timeout for each hook call.
func WithHookTimeout(d time.Duration) HookOption {
	return func(c *hookConfig) {
		c.timeout = d
	}
}

// WithHookLogger sets the logger for keyscribe.log and hook failures.
func WithHookLogger(l Logger) HookOption {
	return func(c *hookConfig) {
		c.logger = l
	}
}

// LoadHook loads the script at path and returns a ready hook.
func LoadHook(path string, opts ...HookOption) (*Hook, error) {
	if path == "" {
		return nil, ErrNoScript
	}
	h := newHook(path, opts)
	if err := h.state.DoFile(path); err != nil {
		h.state.Close()
		return nil, fmt.Errorf("load hook %s: %w", path, err)
	}
	h.resolve()
	return h, nil
}

// LoadHookString loads a hook from source. name is used in messages.
func LoadHookString(name, source string, opts ...HookOption) (*Hook, error) {
	h := newHook(name, opts)
	if err := h.state.DoString(source); err != nil {
		h.state.Close()
		return nil, fmt.Errorf("load hook %s: %w", name, err)
	}
	h.resolve()
	return h, nil
}

func newHook(path string, opts []HookOption) *Hook {
	cfg := hookConfig{timeout: DefaultExecutionTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}

	h := &Hook{
		state:  NewState(WithExecutionTimeout(cfg.timeout)),
		path:   path,
		logger: cfg.logger,
	}
	h.state.RegisterModule("keyscribe", map[string]lua.LGFunction{
		"log": h.luaLog,
	})
	return h
}

func (h *Hook) resolve() {
	h.hasOnRecord = h.state.HasFunc(FuncOnRecord)
	h.hasOnSave = h.state.HasFunc(FuncOnSave)
}

func (h *Hook) luaLog(L *lua.LState) int {
	msg := L.CheckString(1)
	if h.logger != nil {
		h.logger.Info("%s: %s", h.path, msg)
	}
	return 0
}

// Append passes a record to on_record if the script defines it.
// Failures are logged and counted, never returned.
func (h *Hook) Append(r eventlog.Record) {
	if !h.hasOnRecord {
		return
	}
	rec := h.state.NewTable(map[string]string{
		"id":      r.ID,
		"type":    r.Type,
		"key":     r.Key,
		"code":    r.Code,
		"message": r.Message,
		"time":    r.Time.Format(time.RFC3339Nano),
	})
	h.call(FuncOnRecord, rec)
}

// OnSave passes the buffer content to on_save if the script defines it.
func (h *Hook) OnSave(content string) {
	if !h.hasOnSave {
		return
	}
	h.call(FuncOnSave, lua.LString(content))
}

func (h *Hook) call(name string, args ...lua.LValue) {
	h.calls.Add(1)
	if err := h.state.Call(name, args...); err != nil {
		h.errors.Add(1)
		if h.logger != nil {
			h.logger.Warn("%s: %s failed: %v", h.path, name, err)
		}
	}
}

// HasOnRecord reports whether the script defines on_record.
func (h *Hook) HasOnRecord() bool { return h.hasOnRecord }

// HasOnSave reports whether the script defines on_save.
func (h *Hook) HasOnSave() bool { return h.hasOnSave }

// Calls returns the number of hook invocations.
func (h *Hook) Calls() int64 { return h.calls.Load() }

// Errors returns the number of failed hook invocations.
func (h *Hook) Errors() int64 { return h.errors.Load() }

// Path returns the script path or name.
func (h *Hook) Path() string { return h.path }

// Close releases the Lua state.
func (h *Hook) Close() error {
	return h.state.Close()
}
