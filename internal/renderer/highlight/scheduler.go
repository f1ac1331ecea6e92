package highlight

import (
	"sync"
	"sync/atomic"
	"time"
)

// Settle window bounds for the Scheduler.
const (
	MinSettleWindow     = 150 * time.Millisecond
	DefaultSettleWindow = 200 * time.Millisecond
)

// Result is one completed tokenization.
type Result struct {
	// Content is the text that was tokenized.
	Content string

	// Tokens is the lexer output for Content.
	Tokens []Token

	// Invocation is the 1-based invocation number.
	Invocation int
}

// Observer receives every tokenization result.
type Observer func(Result)

// Scheduler runs the lexer on the trailing edge of a burst of Notify calls.
//
// Each Notify cancels the pending timer and starts a new one; when the
// settle window elapses without another Notify, the lexer runs once with
// the latest content. Stale timers are invalidated by a sequence number,
// so a timer that already fired cannot run a superseded request.
//
// Thread-safety: all methods are safe for concurrent use. The lexer and
// observer are never called concurrently with themselves.
type Scheduler struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	seq     uint64
	pending bool
	stopped bool
	latest  string

	runMu    sync.Mutex
	count    atomic.Int64
	lex      func(string) []Token
	observer Observer
	logger   Logger
}

// Logger receives diagnostic messages.
type Logger interface {
	Debug(msg string, args ...any)
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithSettleWindow sets the quiet period. Values below MinSettleWindow
// are raised to it.
func WithSettleWindow(d time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		s.delay = clampWindow(d)
	}
}

// WithObserver registers the consumer of tokenization results.
func WithObserver(fn Observer) SchedulerOption {
	return func(s *Scheduler) {
		s.observer = fn
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l Logger) SchedulerOption {
	return func(s *Scheduler) {
		s.logger = l
	}
}

// WithLexer replaces Tokenize as the lexer.
func WithLexer(fn func(string) []Token) SchedulerOption {
	return func(s *Scheduler) {
		if fn != nil {
			s.lex = fn
		}
	}
}

// NewScheduler creates a scheduler with the default settle window.
func NewScheduler(opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		delay: DefaultSettleWindow,
		lex:   Tokenize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Notify records content as the latest text and restarts the settle timer.
// Notify after Stop is ignored.
func (s *Scheduler) Notify(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}

	s.latest = content
	s.pending = true
	s.seq++
	currentSeq := s.seq

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() {
		s.fire(currentSeq)
	})
}

// fire runs the lexer if seq is still the current request.
func (s *Scheduler) fire(seq uint64) {
	s.mu.Lock()
	if !s.pending || s.stopped || s.seq != seq {
		s.mu.Unlock()
		return
	}
	s.pending = false
	s.timer = nil
	content := s.latest
	s.mu.Unlock()

	s.run(content)
}

// Flush runs the lexer immediately if a request is pending, cancelling
// the scheduled run. Returns true if the lexer ran.
func (s *Scheduler) Flush() bool {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.seq++

	if !s.pending || s.stopped {
		s.mu.Unlock()
		return false
	}
	s.pending = false
	content := s.latest
	s.mu.Unlock()

	s.run(content)
	return true
}

func (s *Scheduler) run(content string) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	start := time.Now()
	tokens := s.lex(content)
	n := s.count.Add(1)
	if s.logger != nil {
		s.logger.Debug("highlight run %d: %d tokens in %s", n, len(tokens), time.Since(start))
	}
	if s.observer != nil {
		s.observer(Result{
			Content:    content,
			Tokens:     tokens,
			Invocation: int(n),
		})
	}
}

// Stop cancels any pending run. Later Notify calls are ignored.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.seq++
	s.pending = false
	s.stopped = true
}

// Pending returns true if a run is scheduled.
func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// InvocationCount returns how many times the lexer has run.
func (s *Scheduler) InvocationCount() int {
	return int(s.count.Load())
}

// SettleWindow returns the current quiet period.
func (s *Scheduler) SettleWindow() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.delay
}

// SetSettleWindow changes the quiet period for subsequent Notify calls.
func (s *Scheduler) SetSettleWindow(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = clampWindow(d)
}

func clampWindow(d time.Duration) time.Duration {
	if d <= 0 {
		return DefaultSettleWindow
	}
	if d < MinSettleWindow {
		return MinSettleWindow
	}
	return d
}
