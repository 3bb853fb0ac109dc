package timer

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestTickerStartStop(t *testing.T) {
	var count atomic.Int64
	tk := NewTicker(5*time.Millisecond, func(time.Time) { count.Add(1) })

	if tk.Running() {
		t.Fatal("new ticker must not be running")
	}

	tk.Start()
	tk.Start() // redundant start is a no-op
	if !tk.Running() {
		t.Fatal("ticker should be running after Start")
	}

	time.Sleep(50 * time.Millisecond)
	tk.Stop()
	if tk.Running() {
		t.Fatal("ticker should be stopped after Stop")
	}

	// allow an in-flight tick to land before sampling
	time.Sleep(10 * time.Millisecond)
	n := count.Load()
	if n == 0 {
		t.Fatal("expected at least one tick")
	}

	time.Sleep(30 * time.Millisecond)
	if count.Load() != n {
		t.Errorf("ticker kept firing after Stop")
	}

	tk.Stop() // redundant stop is a no-op
}

func TestTickerRestart(t *testing.T) {
	var count atomic.Int64
	tk := NewTicker(5*time.Millisecond, func(time.Time) { count.Add(1) })

	tk.Start()
	time.Sleep(20 * time.Millisecond)
	tk.Stop()
	n := count.Load()

	tk.Start()
	time.Sleep(20 * time.Millisecond)
	tk.Stop()
	if count.Load() <= n {
		t.Errorf("restarted ticker did not fire")
	}
}

func TestTickerDefaultInterval(t *testing.T) {
	tk := NewTicker(0, func(time.Time) {})
	if tk.interval != time.Second {
		t.Errorf("expected 1s default interval, got %s", tk.interval)
	}
}
