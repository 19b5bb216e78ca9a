package config

import (
	"errors"
	"os"

	"github.com/spf13/viper"
)

// viperKeys defines the mapping between config keys and their Viper counterparts.
const (
	keyDefaultTarget     = "timer.default_target"
	keyGraceWindow       = "timer.grace_window"
	keyTickInterval      = "timer.tick_interval"
	keyHoldDuration      = "timer.hold_duration"
	keyHoldSteps         = "timer.hold_steps"
	keyHoldRelease       = "timer.hold_release"
	keySyncRole          = "sync.role"
	keySyncAddr          = "sync.addr"
	keySyncRetryInterval = "sync.retry_interval"
	keyHapticsProvider   = "haptics.provider"
	keySessionCmd        = "settings.cmd"
	keyDarkTheme         = "display.dark_theme"
)

// WithViperConfig returns an Option that loads configuration from the yaml
// file at configPath, writing the defaults there first if it does not exist.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setDefaults(v)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c)
	}
}

// WithDefaults returns an Option that applies the default settings without
// touching the filesystem.
func WithDefaults() Option {
	return func(c *Config) error {
		v := viper.New()

		setDefaults(v)

		return loadViperConfig(v, c)
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyDefaultTarget, 10)
	v.SetDefault(keyGraceWindow, "3s")
	v.SetDefault(keyTickInterval, "10ms")
	v.SetDefault(keyHoldDuration, "1.5s")
	v.SetDefault(keyHoldSteps, 30)
	v.SetDefault(keyHoldRelease, "600ms")
	v.SetDefault(keySyncRole, RolePhone)
	v.SetDefault(keySyncAddr, "127.0.0.1:7420")
	v.SetDefault(keySyncRetryInterval, "5s")
	v.SetDefault(keyHapticsProvider, "desktop")
	v.SetDefault(keySessionCmd, "")
	v.SetDefault(keyDarkTheme, true)
}

// loadViperConfig decodes the merged file and default values into c.
func loadViperConfig(v *viper.Viper, c *Config) error {
	if err := v.Unmarshal(c); err != nil {
		return errDecodeConfig.Wrap(err)
	}

	return nil
}
