package engine

import (
	"context"
	"log"
	"time"

	"github.com/SoarinFerret/pomodorod/internal/timer"
)

// Notifier receives the timer's user-facing notification events.
type Notifier interface {
	PomodoroStart(requested bool)
	PomodoroEnd(completed bool)
}

// IdleWatch arms and disarms the user-activity watch.
type IdleWatch interface {
	Enable()
	Disable()
}

// Engine binds the timer's event stream to its collaborators: it keeps the
// ticker running while a session is active, arms the idle watch while the
// timer waits for user activity, and forwards notification events to the
// desktop. Either collaborator may be nil, in which case that capability is
// simply absent.
type Engine struct {
	timer    *timer.Timer
	ticker   *timer.Ticker
	idle     IdleWatch
	notifier Notifier
	events   <-chan timer.Event
}

// New wires an engine to the timer. The subscription is taken here, before
// any Restore or Start call, so no lifecycle event is missed.
func New(t *timer.Timer, idle IdleWatch, notifier Notifier) *Engine {
	return &Engine{
		timer:    t,
		ticker:   timer.NewTicker(time.Second, t.Tick),
		idle:     idle,
		notifier: notifier,
		events:   t.Subscribe(64),
	}
}

// Run consumes timer events until ctx is done.
func (e *Engine) Run(ctx context.Context) error {
	defer e.ticker.Stop()

	log.Println("Timer engine started")
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-e.events:
			if !ok {
				return nil
			}
			e.handle(ev)
		}
	}
}

// handle applies one committed timer event to the collaborators.
func (e *Engine) handle(ev timer.Event) {
	switch ev.Type {
	case timer.EventStateChanged:
		if ev.State == timer.StateNull {
			e.ticker.Stop()
		} else {
			e.ticker.Start()
		}
		if e.idle != nil {
			if ev.State == timer.StateIdle {
				e.idle.Enable()
			} else {
				e.idle.Disable()
			}
		}
	case timer.EventNotifyPomodoroStart:
		if e.notifier != nil {
			e.notifier.PomodoroStart(ev.IsRequested)
		}
	case timer.EventNotifyPomodoroEnd:
		if e.notifier != nil {
			e.notifier.PomodoroEnd(ev.IsCompleted)
		}
	}
}
