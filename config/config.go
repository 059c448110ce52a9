// Package config loads tiwe settings from defaults, an optional TOML file, TIWE_ environment
// variables and command line flags, in increasing precedence
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lixenwraith/tiwe/animation"
	"github.com/lixenwraith/tiwe/face"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

// Sensor sources
const (
	SourceKeyboard = "keyboard"
	SourceScript   = "script"
	SourceRemote   = "remote"
)

const (
	envPrefix  = "TIWE"
	configName = "tiwe"
)

type LogConfig struct {
	Level   string `mapstructure:"level"`
	Dir     string `mapstructure:"dir"`
	Enabled bool   `mapstructure:"enabled"`
}

type TriggerConfig struct {
	Forward  int `mapstructure:"forward"`
	Backward int `mapstructure:"backward"`
}

type AnimationConfig struct {
	Duration time.Duration `mapstructure:"duration"`
	Curve    string        `mapstructure:"curve"`
	Frame    time.Duration `mapstructure:"frame"`
}

type SensorConfig struct {
	Source string        `mapstructure:"source"`
	Rate   time.Duration `mapstructure:"rate"`
	Jitter int           `mapstructure:"jitter"`
	Script []int         `mapstructure:"script"`
	Loop   bool          `mapstructure:"loop"`
}

type AudioConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	Volume  float64 `mapstructure:"volume"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type TelemetryConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Config is the full application configuration
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Trigger   TriggerConfig   `mapstructure:"trigger"`
	Animation AnimationConfig `mapstructure:"animation"`
	Sensor    SensorConfig    `mapstructure:"sensor"`
	Audio     AudioConfig     `mapstructure:"audio"`
	Server    ServerConfig    `mapstructure:"server"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Log: LogConfig{
			Level: "info",
			Dir:   "logs",
		},
		Trigger: TriggerConfig{
			Forward:  face.DefaultForwardThreshold,
			Backward: face.DefaultBackwardThreshold,
		},
		Animation: AnimationConfig{
			Duration: animation.DefaultDuration,
			Curve:    animation.CurveEaseOut,
			Frame:    33 * time.Millisecond,
		},
		Sensor: SensorConfig{
			Source: SourceKeyboard,
			Rate:   100 * time.Millisecond,
			Jitter: 15,
			Loop:   true,
		},
		Audio: AudioConfig{
			Volume: 0.4,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Telemetry: TelemetryConfig{
			Enabled: true,
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.dir", d.Log.Dir)
	v.SetDefault("log.enabled", d.Log.Enabled)

	v.SetDefault("trigger.forward", d.Trigger.Forward)
	v.SetDefault("trigger.backward", d.Trigger.Backward)

	v.SetDefault("animation.duration", d.Animation.Duration)
	v.SetDefault("animation.curve", d.Animation.Curve)
	v.SetDefault("animation.frame", d.Animation.Frame)

	v.SetDefault("sensor.source", d.Sensor.Source)
	v.SetDefault("sensor.rate", d.Sensor.Rate)
	v.SetDefault("sensor.jitter", d.Sensor.Jitter)
	v.SetDefault("sensor.script", []int{})
	v.SetDefault("sensor.loop", d.Sensor.Loop)

	v.SetDefault("audio.enabled", d.Audio.Enabled)
	v.SetDefault("audio.volume", d.Audio.Volume)

	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("telemetry.enabled", d.Telemetry.Enabled)
}

// flagKeys maps command line flag names to config keys
var flagKeys = map[string]string{
	"log-level": "log.level",
	"log-dir":   "log.dir",
	"debug":     "log.enabled",
	"forward":   "trigger.forward",
	"backward":  "trigger.backward",
	"duration":  "animation.duration",
	"curve":     "animation.curve",
	"source":    "sensor.source",
	"rate":      "sensor.rate",
	"audio":     "audio.enabled",
	"volume":    "audio.volume",
	"addr":      "server.addr",
}

// RegisterFlags adds the overridable settings to fs
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String("log-level", d.Log.Level, "log level (debug, info, warn, error)")
	fs.String("log-dir", d.Log.Dir, "directory for log files")
	fs.Bool("debug", d.Log.Enabled, "write logs to file")
	fs.Int("forward", d.Trigger.Forward, "tilt below which the clock assembles")
	fs.Int("backward", d.Trigger.Backward, "tilt above which the clock scatters")
	fs.Duration("duration", d.Animation.Duration, "transition duration")
	fs.String("curve", d.Animation.Curve, "easing curve (linear, ease-in, ease-out, ease-in-out)")
	fs.String("source", d.Sensor.Source, "tilt source (keyboard, script, remote)")
	fs.Duration("rate", d.Sensor.Rate, "tilt sampling period")
	fs.Bool("audio", d.Audio.Enabled, "play transition chimes")
	fs.Float64("volume", d.Audio.Volume, "chime volume 0..1")
	fs.String("addr", d.Server.Addr, "listen address for serve")
}

// Load reads the config file at path, or searches for tiwe.toml when path is empty.
// A missing searched file is not an error; a missing explicit path is.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/tiwe")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first inconsistent setting wrapped in ErrInvalid
func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	if c.Trigger.Backward <= c.Trigger.Forward {
		return fmt.Errorf("%w: trigger.backward (%d) must be above trigger.forward (%d)",
			ErrInvalid, c.Trigger.Backward, c.Trigger.Forward)
	}
	if c.Animation.Duration <= 0 {
		return fmt.Errorf("%w: animation.duration must be positive", ErrInvalid)
	}
	if c.Animation.Frame <= 0 {
		return fmt.Errorf("%w: animation.frame must be positive", ErrInvalid)
	}
	if _, err := animation.ParseCurve(c.Animation.Curve); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Sensor.Rate <= 0 {
		return fmt.Errorf("%w: sensor.rate must be positive", ErrInvalid)
	}
	switch c.Sensor.Source {
	case SourceKeyboard, SourceRemote:
	case SourceScript:
		if len(c.Sensor.Script) == 0 {
			return fmt.Errorf("%w: sensor.script is empty", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown sensor.source %q", ErrInvalid, c.Sensor.Source)
	}
	if c.Sensor.Jitter < 0 {
		return fmt.Errorf("%w: sensor.jitter must not be negative", ErrInvalid)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: audio.volume %.2f outside [0,1]", ErrInvalid, c.Audio.Volume)
	}
	return nil
}

// Thresholds returns the trigger band for the face
func (c Config) Thresholds() face.Thresholds {
	return face.Thresholds{Forward: c.Trigger.Forward, Backward: c.Trigger.Backward}
}

// Curve resolves the configured easing curve
func (c Config) Curve() animation.Curve {
	curve, err := animation.ParseCurve(c.Animation.Curve)
	if err != nil {
		return animation.EaseOut
	}
	return curve
}
