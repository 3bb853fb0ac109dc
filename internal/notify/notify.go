package notify

import (
	"fmt"
	"log"

	"github.com/godbus/dbus/v5"
)

// Notifier renders timer notifications on the user's desktop via
// org.freedesktop.Notifications. Failures are logged and dropped; the
// daemon keeps running without a notification service.
type Notifier struct {
	conn *dbus.Conn
}

func New() (*Notifier, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return &Notifier{conn: conn}, nil
}

func (n *Notifier) Close() error {
	return n.conn.Close()
}

// PomodoroStart announces that it is time to focus.
func (n *Notifier) PomodoroStart(requested bool) {
	body := "Pomodoro started, time to focus"
	if !requested {
		body = "Break is over, time to focus"
	}
	n.send("Pomodoro", body)
}

// PomodoroEnd announces the break.
func (n *Notifier) PomodoroEnd(completed bool) {
	body := "Pomodoro interrupted, take a break anyway"
	if completed {
		body = "Pomodoro completed, take a break"
	}
	n.send("Take a break", body)
}

func (n *Notifier) send(summary, body string) {
	obj := n.conn.Object("org.freedesktop.Notifications", "/org/freedesktop/Notifications")
	call := obj.Call("org.freedesktop.Notifications.Notify", 0,
		"pomodorod",      // app_name
		uint32(0),        // replaces_id
		"alarm-symbolic", // app_icon
		summary,
		body,
		[]string{}, // actions
		map[string]dbus.Variant{
			"urgency": dbus.MakeVariant(byte(1)), // normal urgency
		},
		int32(10000), // expire_timeout (10 seconds)
	)
	if call.Err != nil {
		log.Println("notify: failed to send notification:", call.Err)
	}
}
