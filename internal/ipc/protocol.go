package ipc

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/SoarinFerret/pomodorod/internal/timer"
)

const (
	ObjectPath    = "/io/github/soarinferret/pomodorod"
	InterfaceName = "io.github.soarinferret.pomodorod.Timer"
	ServiceName   = "io.github.soarinferret.pomodorod"
)

// TimerService is the D-Bus object the daemon exports for pomoctl.
type TimerService struct {
	Timer *timer.Timer
}

func (s *TimerService) Start() *dbus.Error {
	s.Timer.Start()
	return nil
}

func (s *TimerService) Stop() *dbus.Error {
	s.Timer.Stop()
	return nil
}

func (s *TimerService) Reset() *dbus.Error {
	s.Timer.Reset()
	return nil
}

// Seek sets the elapsed time within the current state, in whole seconds.
func (s *TimerService) Seek(seconds int64) *dbus.Error {
	if seconds < 0 {
		return dbus.MakeFailedError(fmt.Errorf("seconds must be non-negative"))
	}
	s.Timer.SetElapsed(time.Duration(seconds) * time.Second)
	return nil
}

// Status returns the timer snapshot as JSON, durations in whole seconds.
func (s *TimerService) Status() (string, *dbus.Error) {
	data, err := json.Marshal(s.Timer.Snapshot())
	if err != nil {
		return "", dbus.MakeFailedError(err)
	}
	return string(data), nil
}
