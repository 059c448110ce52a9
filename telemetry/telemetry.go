// Package telemetry counts face activity through OpenTelemetry metrics
package telemetry

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/lixenwraith/tiwe/face"
)

const instrumentationName = "github.com/lixenwraith/tiwe/telemetry"

// Snapshot is a point-in-time copy of the local counters
type Snapshot struct {
	ToClock       uint64
	ToScatter     uint64
	Dropped       uint64
	LayoutUpdates uint64
	Frames        uint64
}

// Recorder observes triggers, minute ticks and drawn frames.
// Counts are exported through the meter and mirrored locally for status display.
type Recorder struct {
	triggers metric.Int64Counter
	layouts  metric.Int64Counter
	frames   metric.Int64Counter
	percent  metric.Int64ObservableGauge

	toClock   atomic.Uint64
	toScatter atomic.Uint64
	dropped   atomic.Uint64
	layoutN   atomic.Uint64
	frameN    atomic.Uint64
	lastPct   atomic.Int64
}

// New creates a recorder on m, or on the global meter when m is nil.
// The global meter is a no-op until a provider is installed.
func New(m metric.Meter) (*Recorder, error) {
	if m == nil {
		m = otel.Meter(instrumentationName)
	}

	r := &Recorder{}
	var err error

	r.triggers, err = m.Int64Counter(
		"face.triggers",
		metric.WithDescription("Trigger transitions by direction and whether an animation started"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating trigger counter: %w", err)
	}

	r.layouts, err = m.Int64Counter(
		"face.layout.updates",
		metric.WithDescription("Hand layout recomputations"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating layout counter: %w", err)
	}

	r.frames, err = m.Int64Counter(
		"face.frames",
		metric.WithDescription("Frames handed to sinks"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating frame counter: %w", err)
	}

	r.percent, err = m.Int64ObservableGauge(
		"face.percent",
		metric.WithDescription("Last applied blend percent, 0 scatter to 100 clock"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating percent gauge: %w", err)
	}

	_, err = m.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			o.ObserveInt64(r.percent, r.lastPct.Load())
			return nil
		},
		r.percent,
	)
	if err != nil {
		return nil, fmt.Errorf("registering percent callback: %w", err)
	}

	return r, nil
}

// OnTrigger implements face.Observer
func (r *Recorder) OnTrigger(dir face.Direction, started bool) {
	r.triggers.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("direction", dir.String()),
		attribute.Bool("started", started),
	))

	if !started {
		r.dropped.Add(1)
		return
	}
	switch dir {
	case face.ToClock:
		r.toClock.Add(1)
	case face.ToScatter:
		r.toScatter.Add(1)
	}
}

// LayoutUpdated records one minute-boundary layout pass
func (r *Recorder) LayoutUpdated() {
	r.layouts.Add(context.Background(), 1)
	r.layoutN.Add(1)
}

// Draw counts a frame, letting the recorder sit beside real sinks
func (r *Recorder) Draw(fr face.Frame) error {
	r.frames.Add(context.Background(), 1, metric.WithAttributes(attribute.Bool("running", fr.Running)))
	r.frameN.Add(1)
	return nil
}

// SetPercent publishes the blend percent for the gauge
func (r *Recorder) SetPercent(p int) {
	r.lastPct.Store(int64(p))
}

// Snapshot returns the local counters
func (r *Recorder) Snapshot() Snapshot {
	return Snapshot{
		ToClock:       r.toClock.Load(),
		ToScatter:     r.toScatter.Load(),
		Dropped:       r.dropped.Load(),
		LayoutUpdates: r.layoutN.Load(),
		Frames:        r.frameN.Load(),
	}
}
