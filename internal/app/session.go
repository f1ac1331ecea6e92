package app

import (
	"context"
	"io"
	"sync"

	"github.com/dshills/keyscribe/internal/config"
	"github.com/dshills/keyscribe/internal/dispatcher"
	"github.com/dshills/keyscribe/internal/engine/history"
	"github.com/dshills/keyscribe/internal/eventlog"
	"github.com/dshills/keyscribe/internal/input/chord"
	"github.com/dshills/keyscribe/internal/input/key"
	"github.com/dshills/keyscribe/internal/plugin/lua"
	"github.com/dshills/keyscribe/internal/renderer/highlight"
	"github.com/dshills/keyscribe/internal/session"
)

// Options configures a Session.
type Options struct {
	// Config supplies all settings. Nil means config.Default().
	Config *config.Config

	// Logger receives diagnostics. Nil means NullLogger.
	Logger *Logger

	// Record, if set, receives every dispatched event as a JSON line.
	Record io.Writer

	// OnHighlight receives each tokenization result. It runs on the
	// scheduler's timer goroutine.
	OnHighlight highlight.Observer

	// OnSave runs when the save shortcut is pressed, after the hook script.
	OnSave func(content string)

	// OnRecord receives every log record after the feed.
	OnRecord eventlog.Sink
}

// State is a snapshot of the session for display and verification.
type State struct {
	Content       string
	HistorySize   int
	RedoSize      int
	LineCount     int
	ChordArmed    bool
	Highlights    int
	FeedLen       int
	RecordsTotal  int
	SettleWindow  string
	HookScript    string
	HookErrors    int64
	RecordedCount int
}

// Session owns one buffer and everything that reacts to it.
//
// Dispatch, ApplyConfig and State may be called from different
// goroutines; they are serialized by the session mutex.
type Session struct {
	mu         sync.Mutex
	closed     bool
	logger     *Logger
	history    *history.History
	tracker    *chord.Tracker
	scheduler  *highlight.Scheduler
	feed       *eventlog.Feed
	hook       *lua.Hook
	recorder   *session.Recorder
	dispatcher *dispatcher.Dispatcher

	tokMu  sync.RWMutex
	tokens []highlight.Token
}

// NewSession builds a session from opts.
func NewSession(opts Options) (*Session, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = NullLogger
	}

	arm, confirm, err := cfg.Chord.Bindings()
	if err != nil {
		return nil, NewComponentError("chord", "parse bindings", err)
	}

	s := &Session{logger: logger}

	s.history = history.New(cfg.Editor.InitialContent,
		history.WithMaxEntries(cfg.History.MaxEntries),
		history.WithObserver(func(c history.Change) {
			s.logger.WithComponent("history").Debug("%s: depth %d", c.Kind, c.Depth)
		}),
	)

	s.tracker = chord.New(chord.Config{
		Arm:     arm,
		Confirm: confirm,
		Timeout: cfg.Chord.Timeout.Std(),
	})

	s.scheduler = highlight.NewScheduler(
		highlight.WithSettleWindow(cfg.Highlight.SettleWindow.Std()),
		highlight.WithLogger(logger.WithComponent("highlight")),
		highlight.WithObserver(func(r highlight.Result) {
			s.tokMu.Lock()
			s.tokens = r.Tokens
			s.tokMu.Unlock()
			if opts.OnHighlight != nil {
				opts.OnHighlight(r)
			}
		}),
	)

	s.feed = eventlog.NewFeed(cfg.Log.FeedCapacity)

	if cfg.Hooks.Script != "" {
		hook, err := lua.LoadHook(cfg.Hooks.Script,
			lua.WithHookLogger(logger.WithComponent("hooks")))
		if err != nil {
			s.scheduler.Stop()
			return nil, NewComponentError("hooks", "load", err)
		}
		s.hook = hook
	}

	if opts.Record != nil {
		s.recorder = session.NewRecorder(opts.Record)
	}

	sinks := eventlog.MultiSink{s.feed}
	if s.hook != nil {
		sinks = append(sinks, s.hook)
	}
	if opts.OnRecord != nil {
		sinks = append(sinks, opts.OnRecord)
	}

	s.dispatcher = dispatcher.New(s.history,
		dispatcher.WithChord(s.tracker),
		dispatcher.WithNotifier(s.scheduler),
		dispatcher.WithSink(sinks),
		dispatcher.WithLogger(logger.WithComponent("dispatcher")),
		dispatcher.WithSaveHook(func(content string) {
			if s.hook != nil {
				s.hook.OnSave(content)
			}
			if opts.OnSave != nil {
				opts.OnSave(content)
			}
		}),
	)

	// The initial content is highlighted like any other change.
	s.scheduler.Notify(s.history.Content())
	return s, nil
}

// Dispatch records and dispatches one event. After Close it returns the
// zero Result.
func (s *Session) Dispatch(ev key.Event) dispatcher.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return dispatcher.Result{}
	}
	if s.recorder != nil {
		if err := s.recorder.Record(ev); err != nil {
			s.logger.WithComponent("recorder").Warn("record event: %v", err)
		}
	}
	return s.dispatcher.Dispatch(ev)
}

// Replay dispatches a recorded session into this one.
func (s *Session) Replay(ctx context.Context, r io.Reader, opts session.Options) (session.Stats, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return session.Stats{}, ErrClosed
	}
	return session.Replay(ctx, r, s, opts)
}

// ApplyConfig applies the settings that can change while running: the
// settle window, the chord timeout, the feed capacity and the log level.
func (s *Session) ApplyConfig(cfg *config.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scheduler.SetSettleWindow(cfg.Highlight.SettleWindow.Std())
	s.tracker.SetTimeout(cfg.Chord.Timeout.Std())
	s.feed.Resize(cfg.Log.FeedCapacity)
	s.logger.SetLevel(ParseLogLevel(cfg.Log.Level))
	s.feed.Append(eventlog.New(eventlog.TypeSystem, "Configuration reloaded"))
}

// Content returns the current buffer content.
func (s *Session) Content() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Content()
}

// Tokens returns the most recent highlight result.
func (s *Session) Tokens() []highlight.Token {
	s.tokMu.RLock()
	defer s.tokMu.RUnlock()
	return s.tokens
}

// Feed returns the bounded event log.
func (s *Session) Feed() *eventlog.Feed {
	return s.feed
}

// ClearLog empties the event log.
func (s *Session) ClearLog() {
	s.feed.Clear()
}

// FlushHighlight runs a pending highlight immediately.
func (s *Session) FlushHighlight() bool {
	return s.scheduler.Flush()
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	content := s.history.Content()
	st := State{
		Content:      content,
		HistorySize:  s.history.Depth(),
		RedoSize:     s.history.RedoDepth(),
		LineCount:    dispatcher.LineCount(content),
		ChordArmed:   s.tracker.State() == chord.StateArmed,
		Highlights:   s.scheduler.InvocationCount(),
		FeedLen:      s.feed.Len(),
		RecordsTotal: s.feed.Total(),
		SettleWindow: s.scheduler.SettleWindow().String(),
	}
	if s.hook != nil {
		st.HookScript = s.hook.Path()
		st.HookErrors = s.hook.Errors()
	}
	if s.recorder != nil {
		st.RecordedCount = s.recorder.Count()
	}
	return st
}

// Close stops highlighting, flushes the recorder and releases the hook.
// Close is idempotent.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.scheduler.Stop()

	var errs ErrorList
	if s.recorder != nil {
		if err := s.recorder.Flush(); err != nil {
			errs.Add(NewComponentError("recorder", "flush", err))
		}
	}
	if s.hook != nil {
		if err := s.hook.Close(); err != nil {
			errs.Add(NewComponentError("hooks", "close", err))
		}
	}
	return errs.AsError()
}
