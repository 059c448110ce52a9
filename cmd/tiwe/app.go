package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/tiwe/audio"
	"github.com/lixenwraith/tiwe/config"
	"github.com/lixenwraith/tiwe/engine"
	"github.com/lixenwraith/tiwe/face"
	"github.com/lixenwraith/tiwe/sensor"
	"github.com/lixenwraith/tiwe/telemetry"
	"github.com/lixenwraith/tiwe/vmath"
)

// app is the host plus the observers shared by every interactive mode
type app struct {
	host   *engine.Host
	rec    *telemetry.Recorder
	player *audio.Player
	log    zerolog.Logger
}

func newApp(cfg config.Config, log zerolog.Logger, samples <-chan int) (*app, error) {
	host := engine.NewHost(engine.HostOptions{
		Thresholds:    cfg.Thresholds(),
		Random:        vmath.NewFastRand(uint64(time.Now().UnixNano())),
		Duration:      cfg.Animation.Duration,
		Curve:         cfg.Curve(),
		FrameInterval: cfg.Animation.Frame,
		Samples:       samples,
		Logger:        log,
	})
	a := &app{host: host, log: log}

	if cfg.Telemetry.Enabled {
		rec, err := telemetry.New(nil)
		if err != nil {
			return nil, fmt.Errorf("telemetry: %w", err)
		}
		a.rec = rec
		host.Face().Observe(rec)
		host.OnMinute(func(time.Time) { rec.LayoutUpdated() })
		host.AddSink(rec)
		host.AddSink(engine.SinkFunc(func(face.Frame) error {
			rec.SetPercent(host.Face().Percent())
			return nil
		}))
	}

	a.player = audio.NewPlayer(audio.Config{Enabled: cfg.Audio.Enabled, Volume: cfg.Audio.Volume}, log)
	if err := a.player.Initialize(); err != nil {
		// Non-fatal, the face runs without sound
		log.Warn().Err(err).Msg("audio initialization failed")
	}
	host.Face().Observe(a.player)

	return a, nil
}

// run blocks until ctx is done
func (a *app) run(ctx context.Context) error {
	defer a.player.Close()
	return a.host.Run(ctx)
}

// newSource builds the configured tilt source; keyboard and remote sources are returned
// separately so the mode can drive them
func newSource(cfg config.Config) (sensor.Source, *sensor.Simulator, *sensor.Latest) {
	switch cfg.Sensor.Source {
	case config.SourceScript:
		return sensor.NewScript(cfg.Sensor.Script, cfg.Sensor.Loop), nil, nil
	case config.SourceRemote:
		latest := &sensor.Latest{}
		return latest, nil, latest
	default:
		sim := sensor.NewSimulator(cfg.Sensor.Jitter, uint64(time.Now().UnixNano()))
		return sim, sim, nil
	}
}

// statusLine summarizes the face for the terminal footer
func statusLine(f *face.Face, level func() (int, bool), rec *telemetry.Recorder) string {
	st := f.Scene().State
	state := "SCATTERED"
	if st.AtClock {
		state = "CLOCK"
	}
	if st.Running {
		state += " " + st.Direction.String()
	}

	line := fmt.Sprintf("%s %s %3d%%", time.Now().Format("15:04"), state, f.Percent())
	if v, ok := level(); ok {
		line += fmt.Sprintf("  tilt %5d", v)
	}
	if rec != nil {
		s := rec.Snapshot()
		line += fmt.Sprintf("  wakes %d  dropped %d", s.ToClock, s.Dropped)
	}
	return line + "  [r]aise [l]ower [space] [up/down] [q]uit"
}
