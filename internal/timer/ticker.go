package timer

import (
	"sync"
	"time"
)

// Ticker invokes the timer's tick handler at a fixed cadence while a
// session is active. It holds no timer state of its own; the engine starts
// it when the state leaves null and cancels it on null entry, so nothing
// runs in the background while the timer is disabled.
type Ticker struct {
	interval time.Duration
	tick     func(time.Time)

	mu     sync.Mutex
	stopCh chan struct{}
}

// NewTicker creates a stopped ticker. Intervals at or below zero fall back
// to one second.
func NewTicker(interval time.Duration, tick func(time.Time)) *Ticker {
	if interval <= 0 {
		interval = time.Second
	}
	return &Ticker{interval: interval, tick: tick}
}

// Start launches the ticking loop. Starting a running ticker is a no-op.
func (tk *Ticker) Start() {
	tk.mu.Lock()
	defer tk.mu.Unlock()
	if tk.stopCh != nil {
		return
	}
	stopCh := make(chan struct{})
	tk.stopCh = stopCh
	go tk.run(stopCh)
}

// Stop cancels the ticking loop. Stopping a stopped ticker is a no-op.
func (tk *Ticker) Stop() {
	tk.mu.Lock()
	defer tk.mu.Unlock()
	if tk.stopCh == nil {
		return
	}
	close(tk.stopCh)
	tk.stopCh = nil
}

// Running reports whether the ticking loop is active.
func (tk *Ticker) Running() bool {
	tk.mu.Lock()
	defer tk.mu.Unlock()
	return tk.stopCh != nil
}

func (tk *Ticker) run(stopCh chan struct{}) {
	ticker := time.NewTicker(tk.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case now := <-ticker.C:
			tk.tick(now)
		}
	}
}
