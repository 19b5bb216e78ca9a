package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/timestop/internal/config"
)

// defaultConfig returns a new Config instance with default values.
func defaultConfig() *config.Config {
	return &config.Config{
		Timer: config.TimerConfig{
			DefaultTarget: 10,
			GraceWindow:   3 * time.Second,
			TickInterval:  10 * time.Millisecond,
			HoldDuration:  1500 * time.Millisecond,
			HoldSteps:     30,
			HoldRelease:   600 * time.Millisecond,
		},
		Sync: config.SyncConfig{
			Role:          config.RolePhone,
			Addr:          "127.0.0.1:7420",
			RetryInterval: 5 * time.Second,
		},
		Haptics: config.HapticsConfig{
			Provider: "desktop",
		},
		Display: config.DisplayConfig{
			DarkTheme: true,
		},
	}
}

func TestViperWriteConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	cfg, err := config.New(config.WithViperConfig(configPath))
	require.NoError(t, err)

	assert.Equal(t, defaultConfig(), cfg)
	assert.FileExists(t, configPath)

	// The written file must load back to the same settings.
	again, err := config.New(config.WithViperConfig(configPath))
	require.NoError(t, err)

	assert.Equal(t, cfg, again)
}

func TestViperReadConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	modified := `timer:
  default_target: 20
  grace_window: 2s
  hold_steps: 60
sync:
  role: wrist
  addr: 192.168.1.20:7420
haptics:
  provider: "off"
settings:
  cmd: notify-send "session saved"
`

	require.NoError(t, os.WriteFile(configPath, []byte(modified), 0o600))

	want := defaultConfig()
	want.Timer.DefaultTarget = 20
	want.Timer.GraceWindow = 2 * time.Second
	want.Timer.HoldSteps = 60
	want.Sync.Role = config.RoleWrist
	want.Sync.Addr = "192.168.1.20:7420"
	want.Haptics.Provider = "off"
	want.Settings.Cmd = `notify-send "session saved"`

	cfg, err := config.New(config.WithViperConfig(configPath))
	require.NoError(t, err)

	assert.Equal(t, want, cfg)
}

func TestViperInvalidConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	require.NoError(
		t,
		os.WriteFile(configPath, []byte("timer:\n  default_target: 90\n"), 0o600),
	)

	_, err := config.New(config.WithViperConfig(configPath))
	assert.Error(t, err)
}

func TestConfigOverrides(t *testing.T) {
	cfg, err := config.New(config.WithDefaults())
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Target())
	assert.Equal(t, config.RolePhone, cfg.Role())
	assert.Equal(t, "127.0.0.1:7420", cfg.PeerAddr())

	cfg.CLI.Target = 5
	cfg.CLI.Companion = true
	cfg.CLI.Peer = "10.0.0.2:9000"

	assert.Equal(t, 5, cfg.Target())
	assert.Equal(t, config.RoleWrist, cfg.Role())
	assert.Equal(t, "10.0.0.2:9000", cfg.PeerAddr())
}
