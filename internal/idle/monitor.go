package idle

import (
	"fmt"
	"log"
	"sync"

	"github.com/godbus/dbus/v5"
)

const (
	busName    = "org.gnome.Mutter.IdleMonitor"
	objectPath = "/org/gnome/Mutter/IdleMonitor/Core"
	iface      = "org.gnome.Mutter.IdleMonitor"
)

// Monitor reports the user becoming active again, via the session bus idle
// monitor. The watch is armed only while the timer waits in the idle state.
// A desktop without an idle monitor degrades to a logged warning; the timer
// then simply never leaves idle on its own.
type Monitor struct {
	onActive func()

	mu      sync.Mutex
	conn    *dbus.Conn
	watchID uint32
	armed   bool
}

func NewMonitor(onActive func()) *Monitor {
	return &Monitor{onActive: onActive}
}

// Enable arms a one-shot user-active watch. Arming an armed monitor is a
// no-op.
func (m *Monitor) Enable() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.armed {
		return
	}
	if err := m.connectLocked(); err != nil {
		log.Println("idle: monitor unavailable:", err)
		return
	}

	obj := m.conn.Object(busName, objectPath)
	var id uint32
	if err := obj.Call(iface+".AddUserActiveWatch", 0).Store(&id); err != nil {
		log.Println("idle: failed to add user-active watch:", err)
		return
	}
	m.watchID = id
	m.armed = true
}

// Disable removes the pending watch, if any.
func (m *Monitor) Disable() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.armed {
		return
	}
	obj := m.conn.Object(busName, objectPath)
	if call := obj.Call(iface+".RemoveWatch", 0, m.watchID); call.Err != nil {
		log.Println("idle: failed to remove watch:", call.Err)
	}
	m.armed = false
	m.watchID = 0
}

// Close releases the bus connection.
func (m *Monitor) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.conn == nil {
		return nil
	}
	conn := m.conn
	m.conn = nil
	m.armed = false
	return conn.Close()
}

func (m *Monitor) connectLocked() error {
	if m.conn != nil {
		return nil
	}
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	if err := conn.AddMatchSignal(
		dbus.WithMatchInterface(iface),
		dbus.WithMatchMember("WatchFired"),
	); err != nil {
		conn.Close()
		return fmt.Errorf("add match failed: %w", err)
	}
	c := make(chan *dbus.Signal, 10)
	conn.Signal(c)
	go m.listen(c)
	m.conn = conn
	return nil
}

func (m *Monitor) listen(c chan *dbus.Signal) {
	for sig := range c {
		if sig.Name != iface+".WatchFired" || len(sig.Body) == 0 {
			continue
		}
		id, _ := sig.Body[0].(uint32)

		m.mu.Lock()
		fired := m.armed && id == m.watchID
		if fired {
			// user-active watches fire once and are gone on the monitor side
			m.armed = false
			m.watchID = 0
		}
		m.mu.Unlock()

		if fired {
			m.onActive()
		}
	}
}
