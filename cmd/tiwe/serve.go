package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/tiwe/config"
	"github.com/lixenwraith/tiwe/logging"
	"github.com/lixenwraith/tiwe/sensor"
	"github.com/lixenwraith/tiwe/stream"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the face headless, streaming frames and taking tilt over websocket",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return serve(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(parent context.Context, cfg config.Config) error {
	log, closer, err := logging.Setup(logging.Config{Level: cfg.Log.Level, Console: true})
	if err != nil {
		return err
	}
	defer closer.Close()

	// No keyboard without a terminal, clients push the tilt instead
	if cfg.Sensor.Source == config.SourceKeyboard {
		cfg.Sensor.Source = config.SourceRemote
	}

	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	src, _, latest := newSource(cfg)
	samples := make(chan int)
	go sensor.Feed(ctx, src, cfg.Sensor.Rate, samples)

	a, err := newApp(cfg, log, samples)
	if err != nil {
		return err
	}

	hub := stream.NewHub(latest, log)
	defer hub.Close()
	a.host.AddSink(hub)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           newMux(hub, a),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Str("source", cfg.Sensor.Source).Msg("serving face")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- fmt.Errorf("listen: %w", err)
		}
		close(serveErr)
	}()

	hostDone := make(chan error, 1)
	go func() { hostDone <- a.run(ctx) }()

	select {
	case <-ctx.Done():
	case err = <-serveErr:
		cancel()
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if sdErr := srv.Shutdown(shutdownCtx); sdErr != nil {
		log.Warn().Err(sdErr).Msg("http shutdown")
	}
	if hostErr := <-hostDone; err == nil {
		err = hostErr
	}
	return err
}

func newMux(hub *stream.Hub, a *app) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{
			"status":  "ok",
			"clients": hub.Clients(),
		}
		if a.rec != nil {
			body["telemetry"] = a.rec.Snapshot()
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(body); err != nil {
			a.log.Debug().Err(err).Msg("healthz encode failed")
		}
	})
	return mux
}
