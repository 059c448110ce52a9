package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/tiwe/config"
	"github.com/lixenwraith/tiwe/engine"
	"github.com/lixenwraith/tiwe/logging"
	"github.com/lixenwraith/tiwe/render"
	"github.com/lixenwraith/tiwe/sensor"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Show the face in the terminal, driven by the keyboard or a script",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return runTerminal(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runTerminal(parent context.Context, cfg config.Config) error {
	if cfg.Sensor.Source == config.SourceRemote {
		return errors.New("remote sensor source needs the serve command")
	}

	log, closer, err := logging.Setup(logging.Config{
		Level:   cfg.Log.Level,
		Dir:     cfg.Log.Dir,
		Enabled: cfg.Log.Enabled,
	})
	if err != nil {
		return err
	}
	defer closer.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}

	// Restore the terminal even if the face crashes
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			log.Error().Interface("panic", r).Msg("crashed")
			fmt.Fprintf(os.Stderr, "\n\x1b[31mTIWE CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
		screen.Fini()
	}()

	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	src, sim, _ := newSource(cfg)
	samples := make(chan int)
	go sensor.Feed(ctx, src, cfg.Sensor.Rate, samples)

	a, err := newApp(cfg, log, samples)
	if err != nil {
		return err
	}

	level := func() (int, bool) { return 0, false }
	if sim != nil {
		level = func() (int, bool) { return sim.Level(), true }
	}

	tr := render.NewTerminalRenderer(screen, a.host.Face().Canvas())
	tr.SetStatus(func() string { return statusLine(a.host.Face(), level, a.rec) })
	a.host.AddSink(tr)

	go pollKeys(screen, sim, a.host, cancel)

	log.Info().Str("source", cfg.Sensor.Source).Msg("terminal face started")
	return a.run(ctx)
}

// pollKeys moves the simulated wrist until quit or the screen is finalized
func pollKeys(screen tcell.Screen, sim *sensor.Simulator, host *engine.Host, quit context.CancelFunc) {
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return

		case *tcell.EventResize:
			screen.Sync()
			host.Invalidate()

		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
				(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
				quit()
				return
			}
			if sim == nil {
				continue
			}

			// Raising the wrist drives the sample negative
			switch ev.Key() {
			case tcell.KeyUp:
				sim.Nudge(-sensor.NudgeStep)
			case tcell.KeyDown:
				sim.Nudge(sensor.NudgeStep)
			case tcell.KeyRune:
				switch ev.Rune() {
				case 'r':
					sim.Raise()
				case 'l':
					sim.Lower()
				case ' ':
					sim.Toggle()
				}
			}
			host.Invalidate()
		}
	}
}
