// Package timer drives a single focus/break countdown cycle as a
// tick-driven state machine. The engine holds no scheduler of its own:
// an external collaborator calls Tick on every clock tick (nominally one
// second) and subscribes to the phase-transition events. At most one
// session is active at a time, and session state is never persisted.
package timer

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Phase is the timer state machine position.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseFocusing
	PhaseResting
	PhaseFinished
)

var phaseNames = map[Phase]string{
	PhaseIdle:     "idle",
	PhaseFocusing: "focusing",
	PhaseResting:  "resting",
	PhaseFinished: "finished",
}

func (p Phase) String() string { return phaseNames[p] }

// EventKind identifies a phase-transition event.
type EventKind int

const (
	FocusCompleted EventKind = iota
	CycleCompleted
	Cancelled
)

func (k EventKind) String() string {
	switch k {
	case FocusCompleted:
		return "focus completed"
	case CycleCompleted:
		return "cycle completed"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

// Event is emitted after the underlying state change has committed.
type Event struct {
	Kind EventKind
	At   time.Time
}

// Session is a point-in-time snapshot of the active run.
type Session struct {
	Phase          Phase
	FocusDuration  time.Duration
	BreakDuration  time.Duration
	Remaining      time.Duration
	CycleStartedAt time.Time
}

var (
	// ErrAlreadyRunning is returned by Start while a session is active.
	ErrAlreadyRunning = errors.New("timer already running")

	// ErrInvalidDuration is returned for out-of-range focus or break minutes.
	ErrInvalidDuration = errors.New("duration out of range")
)

// Allowed minute ranges for Start.
const (
	MinFocusMinutes = 1
	MaxFocusMinutes = 120
	MinBreakMinutes = 1
	MaxBreakMinutes = 60
)

// Engine is the interval timer state machine. All methods are safe for
// concurrent use; Cancel takes effect even between two ticks, so a
// cancellation is never delayed past one tick interval.
type Engine struct {
	mu    sync.Mutex
	clock clockwork.Clock

	phase      Phase
	focusDur   time.Duration
	breakDur   time.Duration
	remaining  time.Duration
	phaseStart time.Time
	cycleStart time.Time

	events chan Event
}

func New(clock clockwork.Clock) *Engine {
	return &Engine{
		clock:  clock,
		phase:  PhaseIdle,
		events: make(chan Event, 16),
	}
}

// Events returns the buffered channel phase-transition events are
// delivered on. Events are sent after the state change has committed.
func (e *Engine) Events() <-chan Event { return e.events }

// Start begins a focus phase. Exactly one session may run at a time.
func (e *Engine) Start(focusMinutes, breakMinutes int) error {
	if focusMinutes < MinFocusMinutes || focusMinutes > MaxFocusMinutes {
		return fmt.Errorf("focus minutes %d not in [%d,%d]: %w",
			focusMinutes, MinFocusMinutes, MaxFocusMinutes, ErrInvalidDuration)
	}
	if breakMinutes < MinBreakMinutes || breakMinutes > MaxBreakMinutes {
		return fmt.Errorf("break minutes %d not in [%d,%d]: %w",
			breakMinutes, MinBreakMinutes, MaxBreakMinutes, ErrInvalidDuration)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != PhaseIdle {
		return ErrAlreadyRunning
	}

	now := e.clock.Now()
	e.focusDur = time.Duration(focusMinutes) * time.Minute
	e.breakDur = time.Duration(breakMinutes) * time.Minute
	e.phase = PhaseFocusing
	e.remaining = e.focusDur
	e.phaseStart = now
	e.cycleStart = now
	return nil
}

// Cancel aborts the active session immediately, discarding remaining
// time. Cancelling an idle engine is a no-op and emits nothing.
func (e *Engine) Cancel() {
	e.mu.Lock()
	if e.phase == PhaseIdle {
		e.mu.Unlock()
		return
	}
	e.resetLocked()
	e.emit(Cancelled)
	e.mu.Unlock()
}

// Tick advances the countdown. Remaining time is recomputed from the
// captured phase start rather than decremented, so missed or jittery
// ticks cannot drift the countdown.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()

	var phaseDur time.Duration
	switch e.phase {
	case PhaseFocusing:
		phaseDur = e.focusDur
	case PhaseResting:
		phaseDur = e.breakDur
	default:
		return
	}

	rem := phaseDur - e.clock.Since(e.phaseStart)
	if rem > phaseDur {
		// Wall clock jumped backwards; hold at the full phase.
		rem = phaseDur
	}
	if rem > 0 {
		e.remaining = rem
		return
	}

	switch e.phase {
	case PhaseFocusing:
		e.phase = PhaseResting
		e.phaseStart = e.clock.Now()
		e.remaining = e.breakDur
		e.emit(FocusCompleted)
	case PhaseResting:
		// One session is exactly one focus+break cycle; finish and
		// return to idle without auto-repeating.
		e.phase = PhaseFinished
		e.emit(CycleCompleted)
		e.resetLocked()
	}
}

// Session returns a snapshot of the current run.
func (e *Engine) Session() Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Session{
		Phase:          e.phase,
		FocusDuration:  e.focusDur,
		BreakDuration:  e.breakDur,
		Remaining:      e.remaining,
		CycleStartedAt: e.cycleStart,
	}
}

// Running reports whether a session is active.
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase != PhaseIdle
}

func (e *Engine) resetLocked() {
	e.phase = PhaseIdle
	e.remaining = 0
	e.focusDur = 0
	e.breakDur = 0
}

func (e *Engine) emit(kind EventKind) {
	select {
	case e.events <- Event{Kind: kind, At: e.clock.Now()}:
	default:
		// Slow subscriber; drop rather than block the tick loop.
	}
}
