package timer

import "time"

// Acceptance factors deciding whether a cut-short interval still counts
// toward session progress.
const (
	sessionAcceptance        = 0.8
	shortPauseAcceptance     = 0.2
	shortLongPauseAcceptance = 0.5
)

// pomodoroAcceptedLocked reports whether a pomodoro that ran for elapsed
// counts toward the session. One stopped slightly early still counts.
func (t *Timer) pomodoroAcceptedLocked(elapsed time.Duration) bool {
	return float64(elapsed) >= sessionAcceptance*float64(t.settings.Pomodoro)
}

// pauseSkippedLocked reports whether a break was cut short enough to be
// treated as skipped, bringing the long pause due sooner.
func (t *Timer) pauseSkippedLocked(elapsed time.Duration) bool {
	return float64(elapsed) < shortPauseAcceptance*float64(t.settings.ShortPause)
}

// longPauseAcceptanceTimeLocked blends the short and long pause lengths into
// the threshold at which a break counts as the long one, resetting the
// session count.
func (t *Timer) longPauseAcceptanceTimeLocked() time.Duration {
	f := shortLongPauseAcceptance
	return time.Duration((1-f)*float64(t.settings.ShortPause) + f*float64(t.settings.LongPause))
}

// pauseDurationLocked selects the short or long pause length based on how
// many sessions completed since the last long pause.
func (t *Timer) pauseDurationLocked() time.Duration {
	if t.session >= t.settings.SessionLimit {
		return t.settings.LongPause
	}
	return t.settings.ShortPause
}
