// Package chord tracks two-step keyboard shortcuts such as Mod+K Mod+C.
//
// A Tracker is Idle until it sees the arm binding, then Armed until the
// next relevant keystroke. The confirm binding within the timeout window
// yields Success; anything else returns the tracker to Idle. Elapsed time
// is taken from event timestamps, so there is no polling timer.
package chord

import (
	"time"

	"github.com/dshills/keyscribe/internal/input/key"
)

// DefaultTimeout is the default window between arm and confirm.
const DefaultTimeout = 2000 * time.Millisecond

// State is the tracker state.
type State uint8

const (
	// StateIdle means no chord is pending.
	StateIdle State = iota
	// StateArmed means the arm key was seen and the confirm key is awaited.
	StateArmed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateArmed:
		return "armed"
	default:
		return "unknown"
	}
}

// Result is the outcome of feeding one keystroke.
type Result uint8

const (
	// ResultNone means the keystroke was not part of a chord.
	ResultNone Result = iota
	// ResultArmed means the keystroke armed (or re-armed) the chord.
	ResultArmed
	// ResultSuccess means the chord completed.
	ResultSuccess
	// ResultCancelled means a non-matching keystroke reset an armed chord.
	ResultCancelled
	// ResultExpired means the window elapsed before the keystroke.
	ResultExpired
)

// String returns the result name.
func (r Result) String() string {
	switch r {
	case ResultNone:
		return "none"
	case ResultArmed:
		return "armed"
	case ResultSuccess:
		return "success"
	case ResultCancelled:
		return "cancelled"
	case ResultExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Handled reports whether the keystroke was consumed by the chord.
func (r Result) Handled() bool {
	return r == ResultArmed || r == ResultSuccess
}

// Config configures a Tracker.
type Config struct {
	Arm     key.Binding
	Confirm key.Binding
	Timeout time.Duration
}

// DefaultConfig returns the Mod+K Mod+C chord with a 2s window.
func DefaultConfig() Config {
	return Config{
		Arm:     key.Binding{Key: "k", Mod: true},
		Confirm: key.Binding{Key: "c", Mod: true},
		Timeout: DefaultTimeout,
	}
}

// Tracker is a timeout-gated two-key state machine.
// It is not safe for concurrent use.
type Tracker struct {
	config  Config
	active  bool
	armedAt time.Time
}

// New creates an idle tracker.
func New(config Config) *Tracker {
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	return &Tracker{config: config}
}

// Feed advances the state machine with one keydown event observed at the
// given time. Pure modifier keydowns are ignored.
func (t *Tracker) Feed(ev key.Event, at time.Time) Result {
	if ev.IsModifierOnly() {
		return ResultNone
	}

	expired := false
	if t.active && at.Sub(t.armedAt) > t.config.Timeout {
		t.reset()
		expired = true
	}

	if ev.Matches(t.config.Arm) {
		t.active = true
		t.armedAt = at
		return ResultArmed
	}

	if expired {
		return ResultExpired
	}
	if !t.active {
		return ResultNone
	}

	t.reset()
	if ev.Matches(t.config.Confirm) {
		return ResultSuccess
	}
	return ResultCancelled
}

// State returns the current state.
func (t *Tracker) State() State {
	if t.active {
		return StateArmed
	}
	return StateIdle
}

// ArmedAt returns when the chord was armed, or the zero time when idle.
func (t *Tracker) ArmedAt() time.Time {
	return t.armedAt
}

// SetTimeout changes the confirm window. Non-positive values restore the default.
func (t *Tracker) SetTimeout(d time.Duration) {
	if d <= 0 {
		d = DefaultTimeout
	}
	t.config.Timeout = d
}

// Timeout returns the confirm window.
func (t *Tracker) Timeout() time.Duration {
	return t.config.Timeout
}

// Reset returns the tracker to Idle.
func (t *Tracker) Reset() {
	t.reset()
}

func (t *Tracker) reset() {
	t.active = false
	t.armedAt = time.Time{}
}
