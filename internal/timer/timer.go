package timer

import (
	"log"
	"sync"
	"time"
)

// Persisted key names shared with the key/value store.
const (
	keySessionCount     = "session-count"
	keyState            = "state"
	keyStateChangedDate = "state-changed-date"
)

// Store persists timer state between runs. Keys hold either a number or a
// string. Read failures are recoverable (see Restore); write failures are
// logged and otherwise ignored.
type Store interface {
	GetString(key string) (string, error)
	SetString(key, value string) error
	GetNumber(key string) (float64, error)
	SetNumber(key string, value float64) error
}

// Timer is the state machine owning elapsed time, interval limits and
// session accounting. All operations serialize on the internal mutex; a
// transition commits fully before the triggering call returns. The timer
// runs no goroutines of its own, it is driven by the ticker and by the
// idle, resume and configuration collaborators.
type Timer struct {
	mu sync.Mutex

	state          State
	elapsed        time.Duration
	elapsedLimit   time.Duration
	session        int
	stateTimestamp time.Time

	settings Settings
	store    Store
	events   []chan Event

	batchDepth int
	batchState State
	pending    []Event
}

// New creates a Timer in the null state. A nil store disables persistence
// but leaves the timer fully operational in memory.
func New(settings Settings, store Store) *Timer {
	return &Timer{
		state:          StateNull,
		settings:       settings.withDefaults(),
		store:          store,
		stateTimestamp: time.Now(),
	}
}

// Subscribe registers a new observer channel. Events are delivered with a
// non-blocking send; slow observers miss updates rather than stalling the
// timer.
func (t *Timer) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	t.mu.Lock()
	t.events = append(t.events, ch)
	t.mu.Unlock()
	return ch
}

// Start begins a pomodoro. It has no effect while a pomodoro or a pause is
// already in progress.
func (t *Timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != StateNull && t.state != StateIdle {
		return
	}
	now := time.Now()
	t.beginBatchLocked()
	t.commitTransitionLocked(StatePomodoro, now, commitOpts{requested: true})
	t.commitBatchLocked(now)
}

// Stop forces the timer into the null state. Stopping an already stopped
// timer still refreshes the persisted timer-disabled timestamp.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := time.Now()
	t.beginBatchLocked()
	t.commitTransitionLocked(StateNull, now, commitOpts{})
	t.commitBatchLocked(now)
}

// Reset zeroes the session count and, if a session was in progress, starts a
// fresh pomodoro. The whole sequence is one notification unit.
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := time.Now()
	active := t.state != StateNull
	t.beginBatchLocked()
	t.commitTransitionLocked(StateNull, now, commitOpts{})
	t.session = 0
	if active {
		t.commitTransitionLocked(StatePomodoro, now, commitOpts{requested: true})
	} else {
		t.persistLocked()
	}
	t.commitBatchLocked(now)
}

// SetElapsed jumps the timer within the current state, e.g. from a UI
// scrubber. Crossing the limit triggers the same auto-transition a tick
// would.
func (t *Timer) SetElapsed(value time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == StateNull {
		return
	}
	if value < 0 {
		value = 0
	}
	now := time.Now()
	t.beginBatchLocked()
	t.elapsed = value
	t.stateTimestamp = now.Add(-value)
	t.evaluateLocked(now)
	t.commitBatchLocked(now)
}

// Tick refreshes elapsed from the wall clock and performs any due
// auto-transition. Recomputing from the state timestamp makes duplicate or
// delayed ticks harmless.
func (t *Timer) Tick(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == StateNull {
		return
	}
	t.beginBatchLocked()
	if elapsed := now.Sub(t.stateTimestamp); elapsed > t.elapsed {
		t.elapsed = elapsed
	}
	t.evaluateLocked(now)
	t.commitBatchLocked(now)
}

// OnIdleBecameActive leaves the idle state once the user is back at the
// machine. It has no effect in any other state.
func (t *Timer) OnIdleBecameActive() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != StateIdle {
		return
	}
	now := time.Now()
	t.beginBatchLocked()
	// refresh first so pause accounting sees the real idle duration
	if elapsed := now.Sub(t.stateTimestamp); elapsed > t.elapsed {
		t.elapsed = elapsed
	}
	t.commitTransitionLocked(StatePomodoro, now, commitOpts{})
	t.commitBatchLocked(now)
}

// OnSettingsChanged installs a new configuration snapshot. When the changed
// key governs the current state's limit, the limit is recomputed in place
// and elapsed clamped to it, without a state transition.
func (t *Timer) OnSettingsChanged(key string, settings Settings) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.settings = settings.withDefaults()

	governs := false
	switch t.state {
	case StatePomodoro:
		governs = key == KeyPomodoroTime
	case StatePause:
		if t.session >= t.settings.SessionLimit {
			governs = key == KeyLongPauseTime
		} else {
			governs = key == KeyShortPauseTime
		}
	}
	if !governs {
		return
	}

	now := time.Now()
	t.beginBatchLocked()
	if t.state == StatePomodoro {
		t.elapsedLimit = t.settings.Pomodoro
	} else {
		t.elapsedLimit = t.pauseDurationLocked()
	}
	if t.elapsed > t.elapsedLimit {
		t.elapsed = t.elapsedLimit
		t.stateTimestamp = now.Add(-t.elapsed)
	}
	t.queueLocked(Event{Type: EventElapsedChanged, At: now})
	t.commitBatchLocked(now)
}

// Snapshot is the externally visible timer state, durations in whole
// seconds.
type Snapshot struct {
	State          string `json:"state"`
	Elapsed        int64  `json:"elapsed"`
	ElapsedLimit   int64  `json:"elapsed_limit"`
	Session        int    `json:"session"`
	SessionLimit   int    `json:"session_limit"`
	StateTimestamp string `json:"state_timestamp"`
}

func (t *Timer) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Snapshot{
		State:          string(t.state),
		Elapsed:        int64(t.elapsed / time.Second),
		ElapsedLimit:   int64(t.elapsedLimit / time.Second),
		Session:        t.session,
		SessionLimit:   t.settings.SessionLimit,
		StateTimestamp: t.stateTimestamp.Format(time.RFC3339),
	}
}

// evaluateLocked performs the auto-transition once elapsed reaches the
// limit, or re-announces the elapsed change otherwise.
func (t *Timer) evaluateLocked(now time.Time) {
	if t.elapsedLimit > 0 && t.elapsed >= t.elapsedLimit {
		if next, ok := t.nextStateLocked(); ok {
			t.commitTransitionLocked(next, now, commitOpts{})
			return
		}
	}
	t.queueLocked(Event{Type: EventElapsedChanged, At: now})
}

// nextStateLocked is the auto-transition table. Idle and null are fixed
// points; only external triggers leave them.
func (t *Timer) nextStateLocked() (State, bool) {
	switch t.state {
	case StatePomodoro:
		return StatePause, true
	case StatePause:
		if t.settings.PauseWhenIdle {
			return StateIdle, true
		}
		return StatePomodoro, true
	default:
		return StateNull, false
	}
}

type commitOpts struct {
	requested bool
	silent    bool
}

// commitTransitionLocked applies the exit accounting of the old state and
// the entry logic of the new one, rewrites the state timestamp, persists
// the result and queues the transition's events. Silent commits (recovery)
// skip persistence and events.
func (t *Timer) commitTransitionLocked(newState State, at time.Time, opts commitOpts) {
	oldState := t.state
	oldElapsed := t.elapsed

	if oldState == newState {
		t.stateTimestamp = at
		if !opts.silent {
			t.persistLocked()
		}
		return
	}

	completed := false
	if oldState == StatePomodoro {
		completed = t.pomodoroAcceptedLocked(oldElapsed)
		if completed {
			t.session++
		}
	}

	switch newState {
	case StatePomodoro:
		switch oldState {
		case StatePause, StateIdle:
			if t.pauseSkippedLocked(oldElapsed) {
				t.session++
			} else if oldElapsed >= t.longPauseAcceptanceTimeLocked() {
				t.session = 0
			}
		case StateNull:
			if at.Sub(t.stateTimestamp) >= t.longPauseAcceptanceTimeLocked() {
				t.session = 0
			}
		}
		t.elapsed = 0
		t.elapsedLimit = t.settings.Pomodoro
	case StatePause:
		// an overrun pomodoro owes its excess to the pause
		var carry time.Duration
		if oldState == StatePomodoro && oldElapsed > t.elapsedLimit {
			carry = oldElapsed - t.elapsedLimit
		}
		t.elapsed = carry
		t.elapsedLimit = t.pauseDurationLocked()
	case StateIdle, StateNull:
		t.elapsed = 0
		t.elapsedLimit = 0
	}

	t.state = newState
	t.stateTimestamp = at.Add(-t.elapsed)

	if opts.silent {
		return
	}

	t.persistLocked()

	t.queueLocked(Event{Type: EventStateChanged, At: at})
	if oldState == StatePomodoro {
		t.queueLocked(Event{Type: EventPomodoroEnd, IsCompleted: completed, At: at})
		if newState == StatePause {
			t.queueLocked(Event{Type: EventNotifyPomodoroEnd, IsCompleted: completed, At: at})
		}
	}
	if newState == StatePomodoro {
		t.queueLocked(Event{Type: EventPomodoroStart, IsRequested: opts.requested, At: at})
		t.queueLocked(Event{Type: EventNotifyPomodoroStart, IsRequested: opts.requested, At: at})
	}
	if newState == StateIdle && t.settings.PauseWhenIdle {
		t.queueLocked(Event{Type: EventNotifyPomodoroStart, IsRequested: opts.requested, At: at})
	}
	t.queueLocked(Event{Type: EventElapsedChanged, At: at})
}

// persistLocked writes the three recovery fields through the store. The
// timestamp goes out as an absolute calendar date so it survives restarts.
func (t *Timer) persistLocked() {
	if t.store == nil {
		return
	}
	if err := t.store.SetNumber(keySessionCount, float64(t.session)); err != nil {
		log.Println("timer: persist session-count:", err)
	}
	if err := t.store.SetString(keyState, string(t.state)); err != nil {
		log.Println("timer: persist state:", err)
	}
	if err := t.store.SetString(keyStateChangedDate, t.stateTimestamp.Format(time.RFC3339)); err != nil {
		log.Println("timer: persist state-changed-date:", err)
	}
}

// beginBatchLocked opens a notification unit. Batches nest; only the
// outermost commit delivers events.
func (t *Timer) beginBatchLocked() {
	if t.batchDepth == 0 {
		t.pending = t.pending[:0]
		t.batchState = t.state
	}
	t.batchDepth++
}

// commitBatchLocked collapses the queued events into at most one
// state_changed and one elapsed_changed plus the start/end events in
// order, then delivers them carrying the committed values.
func (t *Timer) commitBatchLocked(at time.Time) {
	t.batchDepth--
	if t.batchDepth > 0 {
		return
	}

	var out []Event
	if t.state != t.batchState {
		out = append(out, t.finishLocked(Event{Type: EventStateChanged, At: at}))
	}
	elapsedChanged := false
	for _, ev := range t.pending {
		switch ev.Type {
		case EventStateChanged:
			// collapsed above
		case EventElapsedChanged:
			elapsedChanged = true
		default:
			out = append(out, t.finishLocked(ev))
		}
	}
	if elapsedChanged {
		out = append(out, t.finishLocked(Event{Type: EventElapsedChanged, At: at}))
	}
	t.pending = t.pending[:0]

	for _, ev := range out {
		t.emitLocked(ev)
	}
}

func (t *Timer) queueLocked(ev Event) {
	t.pending = append(t.pending, ev)
}

// finishLocked stamps an event with the committed post-transition values.
func (t *Timer) finishLocked(ev Event) Event {
	ev.State = t.state
	ev.Elapsed = t.elapsed
	ev.ElapsedLimit = t.elapsedLimit
	ev.Session = t.session
	return ev
}

func (t *Timer) emitLocked(ev Event) {
	for _, ch := range t.events {
		select {
		case ch <- ev:
		default:
		}
	}
}
