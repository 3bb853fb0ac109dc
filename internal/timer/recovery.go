package timer

import (
	"log"
	"time"
)

// replayCap bounds the silent catch-up loop. The transition table already
// terminates on its own (idle and null never auto-transition); the cap
// guards the loop against a degenerate interval configuration.
const replayCap = 1000

// Restore rebuilds the timer from persisted state and silently replays
// every transition that must have occurred while the process was not
// running. Call it once on startup and again with a fresh clock sample on
// resume from suspend. Restoring twice from the same inputs lands on the
// same state.
//
// Observers receive one consolidated state_changed and elapsed_changed for
// the final state, plus a start notification for pomodoro (or idle with
// pause-when-idle) and an end notification for pause. Recovery never
// claims credit for a session it did not observe completing, so the end
// notification always carries is_completed = false.
func (t *Timer) Restore(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	saved := StateNull
	session := 0
	ts := now

	if t.store != nil {
		if name, err := t.store.GetString(keyState); err == nil {
			saved = ParseState(name)
		} else {
			log.Println("timer: restore state:", err)
		}
		if count, err := t.store.GetNumber(keySessionCount); err == nil && count > 0 {
			session = int(count)
		}
		if raw, err := t.store.GetString(keyStateChangedDate); err == nil {
			if parsed, perr := time.Parse(time.RFC3339, raw); perr == nil {
				ts = parsed
			} else {
				log.Printf("timer: restore: bad state-changed-date %q, falling back to current time", raw)
			}
		} else {
			log.Println("timer: restore state-changed-date:", err)
		}
	}
	if ts.After(now) {
		ts = now
	}

	t.beginBatchLocked()

	// rebuild from the persisted fields alone, re-applying the entry logic
	t.state = StateNull
	t.session = session
	t.elapsed = 0
	t.elapsedLimit = 0
	t.stateTimestamp = ts
	t.commitTransitionLocked(saved, ts, commitOpts{silent: true})
	t.elapsed = now.Sub(ts)

	for i := 0; i < replayCap; i++ {
		if t.state == StateNull || t.state == StateIdle {
			break
		}
		if t.elapsedLimit <= 0 || t.elapsed < t.elapsedLimit {
			break
		}
		// the state logically ended exactly at its limit; the remainder is
		// recomputed against the next state's start
		boundary := t.stateTimestamp.Add(t.elapsedLimit)
		t.elapsed = t.elapsedLimit
		next, ok := t.nextStateLocked()
		if !ok {
			break
		}
		t.commitTransitionLocked(next, boundary, commitOpts{silent: true})
		t.elapsed = now.Sub(t.stateTimestamp)
	}

	// the final state began at now minus whatever is left over
	t.stateTimestamp = now.Add(-t.elapsed)
	t.persistLocked()

	t.queueLocked(Event{Type: EventStateChanged, At: now})
	switch {
	case t.state == StatePomodoro,
		t.state == StateIdle && t.settings.PauseWhenIdle:
		t.queueLocked(Event{Type: EventNotifyPomodoroStart, At: now})
	case t.state == StatePause:
		t.queueLocked(Event{Type: EventNotifyPomodoroEnd, At: now})
	}
	t.queueLocked(Event{Type: EventElapsedChanged, At: now})

	t.commitBatchLocked(now)
}
