package term

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keyscribe/internal/app"
	"github.com/dshills/keyscribe/internal/config"
	"github.com/dshills/keyscribe/internal/eventlog"
	"github.com/dshills/keyscribe/internal/renderer/highlight"
)

type cell struct {
	r     rune
	style tcell.Style
}

// fakeScreen is an in-memory Screen.
type fakeScreen struct {
	mu       sync.Mutex
	w, h     int
	cells    map[[2]int]cell
	cursorX  int
	cursorY  int
	events   chan tcell.Event
	quit     chan struct{}
	quitOnce sync.Once
	inited   bool
	finied   bool
	initErr  error
}

func newFakeScreen(w, h int) *fakeScreen {
	return &fakeScreen{
		w:      w,
		h:      h,
		cells:  make(map[[2]int]cell),
		events: make(chan tcell.Event, 16),
		quit:   make(chan struct{}),
	}
}

func (s *fakeScreen) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inited = true
	return s.initErr
}

func (s *fakeScreen) Fini() {
	s.mu.Lock()
	s.finied = true
	s.mu.Unlock()
	s.quitOnce.Do(func() { close(s.quit) })
}

func (s *fakeScreen) Size() (int, int) { return s.w, s.h }

func (s *fakeScreen) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cells = make(map[[2]int]cell)
}

func (s *fakeScreen) SetContent(x, y int, primary rune, _ []rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cells[[2]int{x, y}] = cell{r: primary, style: style}
}

func (s *fakeScreen) ShowCursor(x, y int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursorX, s.cursorY = x, y
}

func (s *fakeScreen) HideCursor() { s.ShowCursor(-1, -1) }
func (s *fakeScreen) Show()       {}

func (s *fakeScreen) PollEvent() tcell.Event {
	select {
	case ev := <-s.events:
		return ev
	case <-s.quit:
		return nil
	}
}

func (s *fakeScreen) PostEvent(ev tcell.Event) error {
	select {
	case s.events <- ev:
		return nil
	default:
		return errors.New("event queue full")
	}
}

func (s *fakeScreen) row(y int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var sb strings.Builder
	for x := 0; x < s.w; x++ {
		c, ok := s.cells[[2]int{x, y}]
		if !ok {
			sb.WriteByte(' ')
			continue
		}
		sb.WriteRune(c.r)
	}
	return strings.TrimRight(sb.String(), " ")
}

func (s *fakeScreen) styleAt(x, y int) tcell.Style {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cells[[2]int{x, y}].style
}

func newTestShell(t *testing.T, content string) (*Shell, *app.Session, *fakeScreen) {
	t.Helper()
	cfg := config.Default()
	cfg.Editor.InitialContent = content
	s, err := app.NewSession(app.Options{Config: cfg})
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	screen := newFakeScreen(40, 10)
	return NewShell(screen, s), s, screen
}

func press(sh *Shell, k tcell.Key, r rune, mod tcell.ModMask) {
	sh.HandleKey(tcell.NewEventKey(k, r, mod))
}

func typeText(sh *Shell, text string) {
	for _, r := range text {
		press(sh, tcell.KeyRune, r, tcell.ModNone)
	}
}

func TestShellTyping(t *testing.T) {
	sh, s, _ := newTestShell(t, "")

	typeText(sh, "ab")
	if got := s.Content(); got != "ab" {
		t.Fatalf("Content() = %q, want %q", got, "ab")
	}
	if sh.Cursor() != 2 {
		t.Errorf("Cursor() = %d, want 2", sh.Cursor())
	}

	// Typing replaces the selection.
	sh.SetSelection(0, 1)
	typeText(sh, "x")
	if got := s.Content(); got != "xb" {
		t.Errorf("Content() = %q, want %q", got, "xb")
	}
	if st := s.State(); st.HistorySize != 3 {
		t.Errorf("HistorySize = %d, want 3", st.HistorySize)
	}
}

func TestShellDispatchedKeys(t *testing.T) {
	sh, s, _ := newTestShell(t, "x")
	sh.SetSelection(0, 0)

	press(sh, tcell.KeyTab, 0, tcell.ModNone)
	if got := s.Content(); got != "  x" {
		t.Fatalf("after Tab Content() = %q, want %q", got, "  x")
	}

	press(sh, tcell.KeyBacktab, 0, tcell.ModShift)
	if got := s.Content(); got != "x" {
		t.Fatalf("after Shift+Tab Content() = %q, want %q", got, "x")
	}

	press(sh, tcell.KeyRune, 'z', tcell.ModCtrl)
	if got := s.Content(); got != "  x" {
		t.Errorf("after undo Content() = %q, want %q", got, "  x")
	}
}

func TestShellDeleteByCluster(t *testing.T) {
	sh, s, _ := newTestShell(t, "ae\u0301b")

	sh.SetSelection(4, 4)
	press(sh, tcell.KeyBackspace, 0, tcell.ModNone)
	if got := s.Content(); got != "ab" {
		t.Fatalf("after Backspace Content() = %q, want %q", got, "ab")
	}

	sh.SetSelection(0, 0)
	press(sh, tcell.KeyDelete, 0, tcell.ModNone)
	if got := s.Content(); got != "b" {
		t.Errorf("after Delete Content() = %q, want %q", got, "b")
	}

	// Backspace at the start of the buffer changes nothing.
	before := s.State().HistorySize
	press(sh, tcell.KeyBackspace, 0, tcell.ModNone)
	if s.State().HistorySize != before {
		t.Error("Backspace at offset 0 should not create a snapshot")
	}
}

func TestShellNavigation(t *testing.T) {
	sh, _, _ := newTestShell(t, "abc\nde")

	steps := []struct {
		k    tcell.Key
		mod  tcell.ModMask
		want int
	}{
		{tcell.KeyUp, tcell.ModNone, 2},
		{tcell.KeyRight, tcell.ModNone, 3},
		{tcell.KeyRight, tcell.ModNone, 4},
		{tcell.KeyLeft, tcell.ModNone, 3},
		{tcell.KeyDown, tcell.ModNone, 6},
		{tcell.KeyHome, tcell.ModNone, 4},
		{tcell.KeyEnd, tcell.ModNone, 6},
	}
	for i, step := range steps {
		press(sh, step.k, 0, step.mod)
		if sh.Cursor() != step.want {
			t.Fatalf("step %d: Cursor() = %d, want %d", i, sh.Cursor(), step.want)
		}
	}

	press(sh, tcell.KeyLeft, 0, tcell.ModShift)
	press(sh, tcell.KeyLeft, 0, tcell.ModShift)
	if start, end := sh.Selection(); start != 4 || end != 6 {
		t.Errorf("Selection() = %d..%d, want 4..6", start, end)
	}

	press(sh, tcell.KeyEscape, 0, tcell.ModNone)
	if start, end := sh.Selection(); start != 4 || end != 4 {
		t.Errorf("after Escape Selection() = %d..%d, want 4..4", start, end)
	}
}

func TestShellChordAndLog(t *testing.T) {
	sh, s, _ := newTestShell(t, "x")

	press(sh, tcell.KeyCtrlK, 'k', tcell.ModCtrl)
	if !s.State().ChordArmed {
		t.Fatal("chord should be armed after Ctrl+K")
	}
	press(sh, tcell.KeyCtrlC, 'c', tcell.ModCtrl)

	actions := s.Feed().Filter(eventlog.TypeAction)
	if len(actions) != 2 || actions[1].Message != "Chord Success" {
		t.Fatalf("actions = %v, want chord arm then success", actions)
	}
	if s.Content() != "x" {
		t.Errorf("chord changed content to %q", s.Content())
	}

	press(sh, tcell.KeyCtrlL, 'l', tcell.ModCtrl)
	if s.Feed().Len() != 0 {
		t.Errorf("Feed().Len() = %d after Ctrl+L, want 0", s.Feed().Len())
	}
}

func TestShellQuit(t *testing.T) {
	sh, s, _ := newTestShell(t, "")

	press(sh, tcell.KeyCtrlQ, 'q', tcell.ModCtrl)
	if !sh.Quit() {
		t.Error("Quit() = false after Ctrl+Q")
	}
	if s.Feed().Len() != 0 {
		t.Error("the quit key should not be dispatched")
	}
}

func TestShellDraw(t *testing.T) {
	sh, _, screen := newTestShell(t, "one\ntwo")
	press(sh, tcell.KeyEnd, 0, tcell.ModNone)
	sh.Draw()

	if got := screen.row(0); got != "1 one" {
		t.Errorf("row 0 = %q, want %q", got, "1 one")
	}
	if got := screen.row(1); got != "2 two" {
		t.Errorf("row 1 = %q, want %q", got, "2 two")
	}
	if got := screen.row(3); !strings.Contains(got, "Ln 2, Col 4") {
		t.Errorf("status row = %q, want cursor position", got)
	}
	if got := screen.row(4); !strings.Contains(got, "keydown") {
		t.Errorf("log row = %q, want the End keydown record", got)
	}
	if screen.cursorX != 5 || screen.cursorY != 1 {
		t.Errorf("cursor at %d,%d, want 5,1", screen.cursorX, screen.cursorY)
	}
}

func TestShellDrawHighlighted(t *testing.T) {
	sh, s, screen := newTestShell(t, "func x")
	if !s.FlushHighlight() {
		t.Fatal("FlushHighlight() = false, want a pending run")
	}
	sh.Draw()

	want, _, _ := sh.palette.Style(highlight.KindKeyword).Decompose()
	got, _, _ := screen.styleAt(2, 0).Decompose()
	if got != want {
		t.Errorf("keyword foreground = %v, want %v", got, want)
	}

	// Stale tokens are not applied to changed content.
	typeText(sh, "y")
	sh.Draw()
	plain, _, _ := sh.palette.Text.Decompose()
	got, _, _ = screen.styleAt(2, 0).Decompose()
	if got != plain {
		t.Errorf("foreground with stale tokens = %v, want %v", got, plain)
	}
}

func TestShellScrolls(t *testing.T) {
	sh, _, screen := newTestShell(t, "1\n2\n3\n4\n5\n6\n7\n8")
	sh.Draw()

	// 10 rows: 3 body rows, a status line and 6 log rows.
	if got := screen.row(0); got != "6 6" {
		t.Errorf("first body row = %q, want line 6", got)
	}
	if screen.cursorY != 2 {
		t.Errorf("cursorY = %d, want 2", screen.cursorY)
	}
}

func TestShellRun(t *testing.T) {
	sh, _, screen := newTestShell(t, "")

	done := make(chan error, 1)
	go func() { done <- sh.Run(context.Background()) }()

	for _, ev := range []tcell.Event{
		tcell.NewEventKey(tcell.KeyRune, 'h', tcell.ModNone),
		NewRedrawEvent(),
		tcell.NewEventKey(tcell.KeyCtrlQ, 'q', tcell.ModCtrl),
	} {
		if err := screen.PostEvent(ev); err != nil {
			t.Fatalf("PostEvent() error = %v", err)
		}
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after Ctrl+Q")
	}

	screen.mu.Lock()
	defer screen.mu.Unlock()
	if !screen.inited || !screen.finied {
		t.Error("Run() should init and fini the screen")
	}
}

func TestShellRunContextDone(t *testing.T) {
	sh, _, _ := newTestShell(t, "")
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- sh.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}

func TestShellRunInitError(t *testing.T) {
	sh, _, screen := newTestShell(t, "")
	screen.initErr = errors.New("no tty")

	if err := sh.Run(context.Background()); err == nil {
		t.Error("Run() should fail when the screen cannot start")
	}
}

func TestRequestRedraw(t *testing.T) {
	screen := newFakeScreen(10, 5)
	RequestRedraw(screen)

	ev := screen.PollEvent()
	if _, ok := ev.(*RedrawEvent); !ok {
		t.Fatalf("PollEvent() = %T, want *RedrawEvent", ev)
	}
	if ev.When().IsZero() {
		t.Error("When() should be set")
	}
}
