// Package config loads TimeStop settings from the config file and the
// command line
package config

import (
	"time"
)

type (
	// Config holds all configuration settings.
	Config struct {
		Timer    TimerConfig    `mapstructure:"timer"`
		Sync     SyncConfig     `mapstructure:"sync"`
		Haptics  HapticsConfig  `mapstructure:"haptics"`
		Settings SettingsConfig `mapstructure:"settings"`
		Display  DisplayConfig  `mapstructure:"display"`
		CLI      CLIConfig      `mapstructure:"-"`
	}

	// TimerConfig holds the engine timings.
	TimerConfig struct {
		DefaultTarget int           `mapstructure:"default_target"`
		GraceWindow   time.Duration `mapstructure:"grace_window"`
		TickInterval  time.Duration `mapstructure:"tick_interval"`
		HoldDuration  time.Duration `mapstructure:"hold_duration"`
		HoldSteps     int           `mapstructure:"hold_steps"`
		HoldRelease   time.Duration `mapstructure:"hold_release"`
	}

	// SyncConfig holds the peer link settings.
	SyncConfig struct {
		Role          string        `mapstructure:"role"`
		Addr          string        `mapstructure:"addr"`
		RetryInterval time.Duration `mapstructure:"retry_interval"`
	}

	// HapticsConfig selects the feedback provider.
	HapticsConfig struct {
		Provider string `mapstructure:"provider"`
	}

	// SettingsConfig holds miscellaneous settings.
	SettingsConfig struct {
		Cmd string `mapstructure:"cmd"`
	}

	// DisplayConfig holds display-related settings.
	DisplayConfig struct {
		DarkTheme bool `mapstructure:"dark_theme"`
	}

	// CLIConfig holds values that only come from command-line flags.
	CLIConfig struct {
		StartTime time.Time
		Peer      string
		Target    int
		Companion bool
		NoColor   bool
	}

	// Option is a function that modifies Config.
	Option func(*Config) error
)

const Version = "v0.3.0"

const (
	RolePhone = "phone"
	RoleWrist = "wrist"
)

// New creates a new Config and applies options in order. The result is
// validated once every option has been applied.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errConfigValidation.Wrap(err)
	}

	return cfg, nil
}

// Target returns the target time a run should start with.
func (c *Config) Target() int {
	if c.CLI.Target != 0 {
		return c.CLI.Target
	}

	return c.Timer.DefaultTarget
}

// Role returns the peer role played by this process.
func (c *Config) Role() string {
	if c.CLI.Companion {
		return RoleWrist
	}

	return c.Sync.Role
}

// PeerAddr returns the address of the peer link.
func (c *Config) PeerAddr() string {
	if c.CLI.Peer != "" {
		return c.CLI.Peer
	}

	return c.Sync.Addr
}
