package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/SoarinFerret/pomodorod/internal/config"
	"github.com/SoarinFerret/pomodorod/internal/engine"
	"github.com/SoarinFerret/pomodorod/internal/idle"
	"github.com/SoarinFerret/pomodorod/internal/ipc"
	"github.com/SoarinFerret/pomodorod/internal/loginctl"
	"github.com/SoarinFerret/pomodorod/internal/notify"
	"github.com/SoarinFerret/pomodorod/internal/store"
	"github.com/SoarinFerret/pomodorod/internal/timer"
	"github.com/godbus/dbus/v5"
)

func main() {
	// check for argument to determine config location
	argPath := config.DefaultConfigPath()
	if len(os.Args) > 1 {
		argPath = os.Args[1]
	}
	log.Println("Using config file at:", argPath)
	cfg, err := config.LoadFromFile(argPath)
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	st, err := store.New(cfg.StatePathOrDefault())
	if err != nil {
		log.Fatal("Failed to open state store:", err)
	}
	defer st.Close()

	tmr := timer.New(cfg.Settings(), st)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
	}()

	var notifier engine.Notifier
	if n, err := notify.New(); err != nil {
		log.Println("Desktop notifications unavailable:", err)
	} else {
		notifier = n
		defer n.Close()
	}

	monitor := idle.NewMonitor(tmr.OnIdleBecameActive)
	defer monitor.Close()

	eng := engine.New(tmr, monitor, notifier)

	var wg sync.WaitGroup

	// Start the engine loop before restoring so no event is missed
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := eng.Run(ctx); err != nil {
			log.Println("engine error:", err)
		}
	}()

	// Replay whatever the previous run left behind
	tmr.Restore(time.Now())

	// Watch for system suspend and resume (system D-Bus)
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Println("Monitoring dbus for sleep and resume...")
		if err := loginctl.Watch(ctx, func() { tmr.Restore(time.Now()) }); err != nil {
			log.Println("logind watcher error:", err)
		}
	}()

	// Watch the config file for option changes
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Println("Watching config file for changes...")
		if err := config.Watch(ctx, argPath, cfg, func(key string, updated *config.Config) {
			tmr.OnSettingsChanged(key, updated.Settings())
		}); err != nil {
			log.Println("config watcher error:", err)
		}
	}()

	// Serve the control interface for pomoctl (session D-Bus)
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Println("Opening session D-Bus service...")
		if err := servePomodoro(ctx, tmr); err != nil {
			log.Println("pomodorod service error:", err)
		}
	}()

	wg.Wait()
	fmt.Println("Shutdown complete")
}

func servePomodoro(ctx context.Context, tmr *timer.Timer) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	defer conn.Close()

	reply, err := conn.RequestName(ipc.ServiceName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return fmt.Errorf("failed to request name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("name %s already taken, is another instance running?", ipc.ServiceName)
	}

	svc := &ipc.TimerService{Timer: tmr}
	if err := conn.Export(svc, dbus.ObjectPath(ipc.ObjectPath), ipc.InterfaceName); err != nil {
		return fmt.Errorf("failed to export interface: %w", err)
	}

	<-ctx.Done()
	return nil
}
