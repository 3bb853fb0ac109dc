package timer

// State identifies the mode the timer is currently in.
type State string

const (
	StateNull     State = "null"
	StatePomodoro State = "pomodoro"
	StatePause    State = "pause"
	StateIdle     State = "idle"
)

// ParseState maps a persisted state name back to a State. Unknown names map
// to StateNull so a corrupted value never blocks startup.
func ParseState(name string) State {
	switch State(name) {
	case StatePomodoro, StatePause, StateIdle:
		return State(name)
	default:
		return StateNull
	}
}
