package timer

import "time"

// EventType defines the type of timer event.
type EventType string

const (
	EventStateChanged        EventType = "state_changed"
	EventElapsedChanged      EventType = "elapsed_changed"
	EventPomodoroStart       EventType = "pomodoro_start"
	EventPomodoroEnd         EventType = "pomodoro_end"
	EventNotifyPomodoroStart EventType = "notify_pomodoro_start"
	EventNotifyPomodoroEnd   EventType = "notify_pomodoro_end"
)

// Event represents a committed timer update for observers. All fields carry
// the fully committed post-transition values; intermediate states inside a
// batched transition are never observable.
type Event struct {
	Type         EventType
	State        State
	Elapsed      time.Duration
	ElapsedLimit time.Duration
	Session      int
	IsRequested  bool // pomodoro_start: externally requested vs automatic continuation
	IsCompleted  bool // pomodoro_end: session accepted as completed
	At           time.Time
}
