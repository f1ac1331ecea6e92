package lua

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	glua "github.com/yuin/gopher-lua"

	"github.com/dshills/keyscribe/internal/eventlog"
)

type captureLogger struct {
	mu    sync.Mutex
	infos []string
	warns []string
}

func (l *captureLogger) Info(msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, fmt.Sprintf(msg, args...))
}

func (l *captureLogger) Warn(msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, fmt.Sprintf(msg, args...))
}

const recordScript = `
seen = 0
last_type = ""
last_message = ""
saved = ""

function on_record(rec)
  seen = seen + 1
  last_type = rec.type
  last_message = rec.message
  if rec.type == "action" then
    keyscribe.log("action " .. rec.message)
  end
end

function on_save(content)
  saved = content
end
`

func TestHookOnRecord(t *testing.T) {
	logger := &captureLogger{}
	h, err := LoadHookString("test", recordScript, WithHookLogger(logger))
	if err != nil {
		t.Fatalf("LoadHookString() error = %v", err)
	}
	defer h.Close()

	if !h.HasOnRecord() || !h.HasOnSave() {
		t.Fatal("hook functions not detected")
	}

	h.Append(eventlog.New(eventlog.TypeKeyDown, "keydown: key=a code=KeyA").WithKey("a", "KeyA"))
	h.Append(eventlog.New(eventlog.TypeAction, "Save"))

	if n := h.state.L.GetGlobal("seen"); n != glua.LNumber(2) {
		t.Errorf("seen = %v, want 2", n)
	}
	if v := h.state.L.GetGlobal("last_type"); v.String() != "action" {
		t.Errorf("last_type = %v, want action", v)
	}
	if len(logger.infos) != 1 || !strings.Contains(logger.infos[0], "action Save") {
		t.Errorf("infos = %v", logger.infos)
	}
	if h.Calls() != 2 || h.Errors() != 0 {
		t.Errorf("calls = %d errors = %d", h.Calls(), h.Errors())
	}
}

func TestHookOnSave(t *testing.T) {
	h, err := LoadHookString("test", recordScript)
	if err != nil {
		t.Fatalf("LoadHookString() error = %v", err)
	}
	defer h.Close()

	h.OnSave("hello\nworld")
	if v := h.state.L.GetGlobal("saved"); v.String() != "hello\nworld" {
		t.Errorf("saved = %q", v.String())
	}
}

func TestHookMissingFunctions(t *testing.T) {
	h, err := LoadHookString("empty", `x = 1`)
	if err != nil {
		t.Fatalf("LoadHookString() error = %v", err)
	}
	defer h.Close()

	h.Append(eventlog.New(eventlog.TypeInput, "input"))
	h.OnSave("x")
	if h.Calls() != 0 {
		t.Errorf("Calls() = %d, want 0", h.Calls())
	}
}

func TestHookRuntimeErrorIsCounted(t *testing.T) {
	logger := &captureLogger{}
	h, err := LoadHookString("bad", `function on_save(c) error("boom") end`, WithHookLogger(logger))
	if err != nil {
		t.Fatalf("LoadHookString() error = %v", err)
	}
	defer h.Close()

	h.OnSave("x")
	if h.Errors() != 1 {
		t.Errorf("Errors() = %d, want 1", h.Errors())
	}
	if len(logger.warns) != 1 || !strings.Contains(logger.warns[0], "boom") {
		t.Errorf("warns = %v", logger.warns)
	}
}

func TestHookTimeout(t *testing.T) {
	h, err := LoadHookString("loop", `function on_save(c) while true do end end`,
		WithHookTimeout(50*time.Millisecond))
	if err != nil {
		t.Fatalf("LoadHookString() error = %v", err)
	}
	defer h.Close()

	err = h.state.Call(FuncOnSave, glua.LString("x"))
	if !errors.Is(err, ErrExecutionTimeout) {
		t.Errorf("Call() error = %v, want ErrExecutionTimeout", err)
	}
}

func TestLoadHookFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hook.lua")
	if err := os.WriteFile(path, []byte(recordScript), 0o644); err != nil {
		t.Fatal(err)
	}

	h, err := LoadHook(path)
	if err != nil {
		t.Fatalf("LoadHook() error = %v", err)
	}
	defer h.Close()

	if h.Path() != path || !h.HasOnRecord() {
		t.Errorf("hook = %s on_record %t", h.Path(), h.HasOnRecord())
	}
}

func TestLoadHookErrors(t *testing.T) {
	if _, err := LoadHook(""); !errors.Is(err, ErrNoScript) {
		t.Errorf("LoadHook(\"\") error = %v, want ErrNoScript", err)
	}
	if _, err := LoadHook(filepath.Join(t.TempDir(), "missing.lua")); err == nil {
		t.Error("LoadHook(missing) should fail")
	}
	if _, err := LoadHookString("syntax", `function (`); err == nil {
		t.Error("LoadHookString(syntax error) should fail")
	}
}

func TestSandboxRemovesLoaders(t *testing.T) {
	s := NewState()
	defer s.Close()

	for _, name := range []string{"dofile", "loadfile", "load", "require"} {
		if err := s.DoString(name + `("x")`); err == nil {
			t.Errorf("%s should not be callable", name)
		}
	}
	if err := s.DoString(`assert(io == nil and os == nil)`); err != nil {
		t.Errorf("io/os should not be opened: %v", err)
	}
	if err := s.DoString(`assert(string.upper("a") == "A")`); err != nil {
		t.Errorf("string library missing: %v", err)
	}
}

func TestStateClosed(t *testing.T) {
	s := NewState()
	s.Close()

	if !s.IsClosed() {
		t.Error("IsClosed() = false after Close")
	}
	if err := s.DoString(`x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString() error = %v, want ErrStateClosed", err)
	}
	if err := s.Call("f"); !errors.Is(err, ErrStateClosed) {
		t.Errorf("Call() error = %v, want ErrStateClosed", err)
	}
	if s.Close() != nil {
		t.Error("second Close should be a no-op")
	}
}
