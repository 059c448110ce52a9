package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/tiwe/animation"
	"github.com/lixenwraith/tiwe/face"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tiwe.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "logs", cfg.Log.Dir)
	assert.False(t, cfg.Log.Enabled)
	assert.Equal(t, -450, cfg.Trigger.Forward)
	assert.Equal(t, -300, cfg.Trigger.Backward)
	assert.Equal(t, 500*time.Millisecond, cfg.Animation.Duration)
	assert.Equal(t, "ease-out", cfg.Animation.Curve)
	assert.Equal(t, 33*time.Millisecond, cfg.Animation.Frame)
	assert.Equal(t, SourceKeyboard, cfg.Sensor.Source)
	assert.Equal(t, 100*time.Millisecond, cfg.Sensor.Rate)
	assert.Equal(t, 15, cfg.Sensor.Jitter)
	assert.True(t, cfg.Sensor.Loop)
	assert.False(t, cfg.Audio.Enabled)
	assert.Equal(t, 0.4, cfg.Audio.Volume)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.True(t, cfg.Telemetry.Enabled)
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "debug"
enabled = true

[trigger]
forward = -500
backward = -250

[animation]
duration = "750ms"
curve = "linear"

[sensor]
source = "script"
script = [-100, -600, -600, -100]
loop = false

[audio]
enabled = true
volume = 0.8
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Enabled)
	assert.Equal(t, face.Thresholds{Forward: -500, Backward: -250}, cfg.Thresholds())
	assert.Equal(t, 750*time.Millisecond, cfg.Animation.Duration)
	assert.Equal(t, uint32(32768), cfg.Curve()(32768))
	assert.Equal(t, SourceScript, cfg.Sensor.Source)
	assert.Equal(t, []int{-100, -600, -600, -100}, cfg.Sensor.Script)
	assert.False(t, cfg.Sensor.Loop)
	assert.True(t, cfg.Audio.Enabled)
	assert.Equal(t, 0.8, cfg.Audio.Volume)
	// Untouched sections keep defaults
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "[trigger]\nforward = -500\n")
	t.Setenv("TIWE_TRIGGER_FORWARD", "-550")
	t.Setenv("TIWE_SERVER_ADDR", "127.0.0.1:9000")

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, -550, cfg.Trigger.Forward)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	path := writeConfig(t, "[animation]\ncurve = \"ease-in\"\n")
	t.Setenv("TIWE_ANIMATION_CURVE", "ease-in-out")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--curve=linear", "--debug", "--volume=0.1"}))

	cfg, err := Load(path, fs)
	require.NoError(t, err)

	assert.Equal(t, animation.CurveLinear, cfg.Animation.Curve)
	assert.True(t, cfg.Log.Enabled)
	assert.Equal(t, 0.1, cfg.Audio.Volume)
}

func TestLoad_UnchangedFlagsKeepFileValues(t *testing.T) {
	path := writeConfig(t, "[trigger]\nforward = -520\n")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(nil))

	cfg, err := Load(path, fs)
	require.NoError(t, err)
	assert.Equal(t, -520, cfg.Trigger.Forward)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/tiwe.toml", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_InvalidValues(t *testing.T) {
	path := writeConfig(t, "[trigger]\nforward = -300\nbackward = -450\n")

	_, err := Load(path, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, false},
		{"collapsed band", func(c *Config) { c.Trigger.Backward = c.Trigger.Forward }, false},
		{"inverted band", func(c *Config) { c.Trigger.Forward, c.Trigger.Backward = -300, -450 }, false},
		{"zero duration", func(c *Config) { c.Animation.Duration = 0 }, false},
		{"zero frame", func(c *Config) { c.Animation.Frame = 0 }, false},
		{"unknown curve", func(c *Config) { c.Animation.Curve = "bounce" }, false},
		{"zero rate", func(c *Config) { c.Sensor.Rate = 0 }, false},
		{"unknown source", func(c *Config) { c.Sensor.Source = "gyro" }, false},
		{"script without samples", func(c *Config) { c.Sensor.Source = SourceScript }, false},
		{"script with samples", func(c *Config) {
			c.Sensor.Source = SourceScript
			c.Sensor.Script = []int{-500}
		}, true},
		{"remote", func(c *Config) { c.Sensor.Source = SourceRemote }, true},
		{"negative jitter", func(c *Config) { c.Sensor.Jitter = -1 }, false},
		{"loud volume", func(c *Config) { c.Audio.Volume = 1.5 }, false},
		{"muted volume", func(c *Config) { c.Audio.Volume = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalid)
			}
		})
	}
}
