package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/SoarinFerret/pomodorod/internal/timer"
)

// Config is the daemon configuration file. Durations are whole seconds.
type Config struct {
	PomodoroTime   int    `toml:"pomodoro-time"`
	ShortPauseTime int    `toml:"short-pause-time"`
	LongPauseTime  int    `toml:"long-pause-time"`
	SessionLimit   int    `toml:"session-limit"`
	PauseWhenIdle  bool   `toml:"pause-when-idle"`
	StatePath      string `toml:"state-path"`
}

// Default returns the stock configuration: 25 minute pomodoros, 5 and 15
// minute pauses, a long pause every 4 sessions.
func Default() *Config {
	return &Config{
		PomodoroTime:   1500,
		ShortPauseTime: 300,
		LongPauseTime:  900,
		SessionLimit:   4,
		PauseWhenIdle:  true,
	}
}

// LoadFromFile reads the TOML configuration. A missing file yields the
// defaults; invalid values are clamped rather than rejected.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses TOML configuration data.
func LoadFromBytes(data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.setDefaults()
	return cfg, nil
}

// setDefaults clamps values that would break interval selection. A session
// limit below 1 in particular must never reach pause selection.
func (c *Config) setDefaults() {
	d := Default()
	if c.PomodoroTime <= 0 {
		c.PomodoroTime = d.PomodoroTime
	}
	if c.ShortPauseTime <= 0 {
		c.ShortPauseTime = d.ShortPauseTime
	}
	if c.LongPauseTime <= 0 {
		c.LongPauseTime = d.LongPauseTime
	}
	if c.SessionLimit < 1 {
		c.SessionLimit = 1
	}
}

// Settings converts the configuration to the timer's snapshot form.
func (c *Config) Settings() timer.Settings {
	return timer.Settings{
		Pomodoro:      time.Duration(c.PomodoroTime) * time.Second,
		ShortPause:    time.Duration(c.ShortPauseTime) * time.Second,
		LongPause:     time.Duration(c.LongPauseTime) * time.Second,
		SessionLimit:  c.SessionLimit,
		PauseWhenIdle: c.PauseWhenIdle,
	}
}

// ChangedKeys returns the option names whose values differ from prev.
func (c *Config) ChangedKeys(prev *Config) []string {
	var keys []string
	if c.PomodoroTime != prev.PomodoroTime {
		keys = append(keys, timer.KeyPomodoroTime)
	}
	if c.ShortPauseTime != prev.ShortPauseTime {
		keys = append(keys, timer.KeyShortPauseTime)
	}
	if c.LongPauseTime != prev.LongPauseTime {
		keys = append(keys, timer.KeyLongPauseTime)
	}
	if c.SessionLimit != prev.SessionLimit {
		keys = append(keys, timer.KeySessionLimit)
	}
	if c.PauseWhenIdle != prev.PauseWhenIdle {
		keys = append(keys, timer.KeyPauseWhenIdle)
	}
	return keys
}

// DefaultConfigPath resolves the per-user config file location.
func DefaultConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(configDir, "pomodorod", "config.toml")
}

// StatePathOrDefault resolves where persisted timer state lives.
func (c *Config) StatePathOrDefault() string {
	if c.StatePath != "" {
		return c.StatePath
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "state.db"
	}
	return filepath.Join(configDir, "pomodorod", "state.db")
}
