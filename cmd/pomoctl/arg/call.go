package arg

import (
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/SoarinFerret/pomodorod/internal/ipc"
)

// callTimer invokes a method on the daemon's timer object over the session
// bus and returns the completed call for result decoding.
func callTimer(method string, args ...interface{}) (*dbus.Call, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	defer conn.Close()

	obj := conn.Object(ipc.ServiceName, dbus.ObjectPath(ipc.ObjectPath))
	call := obj.Call(ipc.InterfaceName+"."+method, 0, args...)
	if call.Err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", method, call.Err)
	}
	return call, nil
}
