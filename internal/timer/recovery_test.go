package timer

import (
	"testing"
	"time"
)

func seedStore(state State, session int, ts time.Time) *memStore {
	st := newMemStore()
	st.SetString(keyState, string(state))
	st.SetNumber(keySessionCount, float64(session))
	st.SetString(keyStateChangedDate, ts.Format(time.RFC3339))
	return st
}

func TestRestoreReplaysMissedTransitions(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	st := seedStore(StatePomodoro, 0, now.Add(-4000*time.Second))
	tmr := New(testSettings(), st)

	tmr.Restore(now)

	// 4000s = 1500 (pomodoro) + 300 (pause) + 1500 (pomodoro) + 300 (pause)
	// + 400 into the next pomodoro, with two completed pomodoro exits
	snap := tmr.Snapshot()
	if snap.State != string(StatePomodoro) {
		t.Fatalf("expected pomodoro, got %s", snap.State)
	}
	if snap.Elapsed != 400 {
		t.Errorf("expected elapsed 400, got %d", snap.Elapsed)
	}
	if snap.Session != 2 {
		t.Errorf("expected session 2, got %d", snap.Session)
	}
}

func TestRestoreIsIdempotent(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	st := seedStore(StatePomodoro, 0, now.Add(-4000*time.Second))
	tmr := New(testSettings(), st)

	tmr.Restore(now)
	first := tmr.Snapshot()
	tmr.Restore(now)
	second := tmr.Snapshot()

	if first != second {
		t.Errorf("restore is not idempotent: %+v vs %+v", first, second)
	}
}

func TestRestoreRewritesPersistedState(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	st := seedStore(StatePomodoro, 0, now.Add(-4000*time.Second))
	tmr := New(testSettings(), st)

	tmr.Restore(now)

	if st.values[keyState] != string(StatePomodoro) {
		t.Errorf("expected persisted pomodoro, got %q", st.values[keyState])
	}
	if st.values[keySessionCount] != "2" {
		t.Errorf("expected persisted session 2, got %q", st.values[keySessionCount])
	}
	// the timestamp is backdated to the true start of the final state
	want := now.Add(-400 * time.Second).Format(time.RFC3339)
	if st.values[keyStateChangedDate] != want {
		t.Errorf("expected persisted date %s, got %s", want, st.values[keyStateChangedDate])
	}
}

func TestRestoreShortGapKeepsState(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	st := seedStore(StatePomodoro, 1, now.Add(-100*time.Second))
	tmr := New(testSettings(), st)

	tmr.Restore(now)

	snap := tmr.Snapshot()
	if snap.State != string(StatePomodoro) || snap.Elapsed != 100 || snap.Session != 1 {
		t.Errorf("expected pomodoro at 100s with session 1, got %+v", snap)
	}
}

func TestRestoreEndsInPause(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	st := seedStore(StatePomodoro, 0, now.Add(-1600*time.Second))
	tmr := New(testSettings(), st)
	events := tmr.Subscribe(16)

	tmr.Restore(now)

	snap := tmr.Snapshot()
	if snap.State != string(StatePause) {
		t.Fatalf("expected pause, got %s", snap.State)
	}
	if snap.Elapsed != 100 {
		t.Errorf("expected elapsed 100, got %d", snap.Elapsed)
	}
	if snap.Session != 1 {
		t.Errorf("expected session 1, got %d", snap.Session)
	}

	// recovery never claims credit for a session it did not observe ending
	sawEnd := false
	for _, ev := range drainEvents(events) {
		if ev.Type == EventNotifyPomodoroEnd {
			sawEnd = true
			if ev.IsCompleted {
				t.Errorf("recovery end-notify must not claim completion")
			}
		}
		if ev.Type == EventPomodoroEnd || ev.Type == EventPomodoroStart {
			t.Errorf("recovery must not replay %s events", ev.Type)
		}
	}
	if !sawEnd {
		t.Errorf("expected a single end-notify for the recovered pause")
	}
}

func TestRestoreLandsOnIdle(t *testing.T) {
	settings := testSettings()
	settings.PauseWhenIdle = true
	now := time.Now().Truncate(time.Second)
	st := seedStore(StatePomodoro, 0, now.Add(-2000*time.Second))
	tmr := New(settings, st)
	events := tmr.Subscribe(16)

	tmr.Restore(now)

	snap := tmr.Snapshot()
	if snap.State != string(StateIdle) {
		t.Fatalf("expected idle, got %s", snap.State)
	}
	if snap.Elapsed != 200 {
		t.Errorf("expected elapsed 200, got %d", snap.Elapsed)
	}

	stateChanges := 0
	sawStartNotify := false
	for _, ev := range drainEvents(events) {
		switch ev.Type {
		case EventStateChanged:
			stateChanges++
			if ev.State != StateIdle {
				t.Errorf("expected consolidated state_changed for idle, got %s", ev.State)
			}
		case EventNotifyPomodoroStart:
			sawStartNotify = true
			if ev.IsRequested {
				t.Errorf("recovery start-notify must not be marked requested")
			}
		}
	}
	if stateChanges != 1 {
		t.Errorf("expected exactly one consolidated state_changed, got %d", stateChanges)
	}
	if !sawStartNotify {
		t.Errorf("expected start-notify for idle with pause-when-idle")
	}
}

func TestRestoreAcrossLongPause(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	// the fourth completed pomodoro earns the long pause, which in turn
	// resets the session count
	st := seedStore(StatePomodoro, 3, now.Add(-2500*time.Second))
	tmr := New(testSettings(), st)

	tmr.Restore(now)

	snap := tmr.Snapshot()
	if snap.State != string(StatePomodoro) {
		t.Fatalf("expected pomodoro, got %s", snap.State)
	}
	if snap.Session != 0 {
		t.Errorf("expected session reset by the long pause, got %d", snap.Session)
	}
	if snap.Elapsed != 100 {
		t.Errorf("expected elapsed 100, got %d", snap.Elapsed)
	}
}

func TestRestoreMalformedDateFallsBack(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	st := seedStore(StatePomodoro, 3, now)
	st.values[keyStateChangedDate] = "not-a-date"
	tmr := New(testSettings(), st)

	tmr.Restore(now)

	snap := tmr.Snapshot()
	if snap.State != string(StatePomodoro) {
		t.Errorf("expected pomodoro despite bad date, got %s", snap.State)
	}
	if snap.Elapsed != 0 {
		t.Errorf("expected elapsed 0 with fallback timestamp, got %d", snap.Elapsed)
	}
	if snap.Session != 3 {
		t.Errorf("expected session 3 preserved, got %d", snap.Session)
	}
}

func TestRestoreUnknownStateFallsBack(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	st := seedStore(StatePomodoro, 1, now)
	st.values[keyState] = "lunch"
	tmr := New(testSettings(), st)

	tmr.Restore(now)

	if snap := tmr.Snapshot(); snap.State != string(StateNull) {
		t.Errorf("expected unknown state to map to null, got %s", snap.State)
	}
}

func TestRestoreFutureTimestampClamped(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	st := seedStore(StatePomodoro, 0, now.Add(time.Hour))
	tmr := New(testSettings(), st)

	tmr.Restore(now)

	snap := tmr.Snapshot()
	if snap.State != string(StatePomodoro) || snap.Elapsed != 0 {
		t.Errorf("expected pomodoro at 0s for a future timestamp, got %+v", snap)
	}
}

func TestRestoreEmptyStore(t *testing.T) {
	tmr := New(testSettings(), newMemStore())
	tmr.Restore(time.Now())

	if snap := tmr.Snapshot(); snap.State != string(StateNull) {
		t.Errorf("expected null from empty store, got %s", snap.State)
	}
}

func TestRestoreWithoutStore(t *testing.T) {
	tmr := New(testSettings(), nil)
	tmr.Restore(time.Now())

	if snap := tmr.Snapshot(); snap.State != string(StateNull) {
		t.Errorf("expected null without a store, got %s", snap.State)
	}
}
