package timer

import "time"

// Configuration option names delivered by the configuration source.
const (
	KeyPomodoroTime   = "pomodoro-time"
	KeyShortPauseTime = "short-pause-time"
	KeyLongPauseTime  = "long-pause-time"
	KeySessionLimit   = "session-limit"
	KeyPauseWhenIdle  = "pause-when-idle"
)

// Settings is the read-only configuration snapshot the timer works from.
// It is sourced once at construction and replaced wholesale through
// OnSettingsChanged.
type Settings struct {
	Pomodoro      time.Duration
	ShortPause    time.Duration
	LongPause     time.Duration
	SessionLimit  int
	PauseWhenIdle bool
}

// withDefaults clamps values that would break interval selection. A zero
// session limit in particular must never reach pause selection.
func (s Settings) withDefaults() Settings {
	if s.Pomodoro <= 0 {
		s.Pomodoro = 25 * time.Minute
	}
	if s.ShortPause <= 0 {
		s.ShortPause = 5 * time.Minute
	}
	if s.LongPause <= 0 {
		s.LongPause = 15 * time.Minute
	}
	if s.SessionLimit < 1 {
		s.SessionLimit = 1
	}
	return s
}
