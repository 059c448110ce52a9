package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/tiwe/config"
	"github.com/lixenwraith/tiwe/face"
	"github.com/lixenwraith/tiwe/stream"
	"github.com/lixenwraith/tiwe/telemetry"
)

func TestParseClock(t *testing.T) {
	now := time.Date(2025, 6, 1, 18, 45, 30, 0, time.UTC)

	got, err := parseClock("03:07", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 3, 7, 0, 0, time.UTC), got)

	got, err = parseClock("", now)
	require.NoError(t, err)
	assert.Equal(t, now, got)

	_, err = parseClock("3pm", now)
	assert.Error(t, err)
}

func TestRenderSnapshotAssembled(t *testing.T) {
	at := time.Date(2025, 1, 1, 3, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	require.NoError(t, renderSnapshot(&buf, at, 100, 1))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 144, img.Bounds().Dx())
	assert.Equal(t, 168, img.Bounds().Dy())

	// Second hour dot sits 15 px right of center at 03:00
	r, _, _, _ := img.At(87, 84).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	// Twelve o'clock background tick
	r, _, _, _ = img.At(72, 14).RGBA()
	assert.Equal(t, uint32(0xffff), r)
}

func TestRenderSnapshotDeterministic(t *testing.T) {
	at := time.Date(2025, 1, 1, 9, 41, 0, 0, time.UTC)

	var a, b bytes.Buffer
	require.NoError(t, renderSnapshot(&a, at, 0, 2))
	require.NoError(t, renderSnapshot(&b, at, 0, 2))
	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestSnapshotCommandWritesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	out := filepath.Join(t.TempDir(), "face.png")

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{"snapshot", "--time", "10:10", "--percent", "60", "--scale", "1", "--out", out})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.True(t, strings.Contains(stdout.String(), "10:10"), stdout.String())

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 144, cfg.Width)
}

func TestNewSourceByConfig(t *testing.T) {
	cfg := config.Default()

	src, sim, latest := newSource(cfg)
	assert.NotNil(t, sim)
	assert.Nil(t, latest)
	assert.Same(t, sim, src)

	cfg.Sensor.Source = config.SourceRemote
	src, sim, latest = newSource(cfg)
	assert.Nil(t, sim)
	require.NotNil(t, latest)
	_, ok := src.Sample()
	assert.False(t, ok)

	cfg.Sensor.Source = config.SourceScript
	cfg.Sensor.Script = []int{-600}
	cfg.Sensor.Loop = false
	src, _, _ = newSource(cfg)
	v, ok := src.Sample()
	assert.True(t, ok)
	assert.Equal(t, -600, v)
	_, ok = src.Sample()
	assert.False(t, ok)
}

func TestStatusLine(t *testing.T) {
	f := face.New(face.Options{})
	f.Init(time.Now())
	rec, err := telemetry.New(nil)
	require.NoError(t, err)
	rec.OnTrigger(face.ToScatter, false)

	line := statusLine(f, func() (int, bool) { return -120, true }, rec)
	assert.Contains(t, line, "SCATTERED")
	assert.Contains(t, line, "tilt  -120")
	assert.Contains(t, line, "dropped 1")
}

func TestHealthz(t *testing.T) {
	rec, err := telemetry.New(nil)
	require.NoError(t, err)
	hub := stream.NewHub(nil, zerolog.Nop())
	defer hub.Close()
	mux := newMux(hub, &app{rec: rec, log: zerolog.Nop()})

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(0), body["clients"])
	assert.Contains(t, body, "telemetry")
}

// brokenWriter accepts headers but fails every body write
type brokenWriter struct {
	header http.Header
}

func (w *brokenWriter) Header() http.Header       { return w.header }
func (w *brokenWriter) WriteHeader(int)           {}
func (w *brokenWriter) Write([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestHealthzLogsEncodeFailure(t *testing.T) {
	var logs bytes.Buffer
	log := zerolog.New(&logs).Level(zerolog.DebugLevel)
	hub := stream.NewHub(nil, zerolog.Nop())
	defer hub.Close()
	mux := newMux(hub, &app{log: log})

	mux.ServeHTTP(&brokenWriter{header: http.Header{}}, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Contains(t, logs.String(), "healthz encode failed")
	assert.Contains(t, logs.String(), "connection reset")
}
