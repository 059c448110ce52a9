package engine

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/tiwe/animation"
	"github.com/lixenwraith/tiwe/face"
)

// DefaultFrameInterval is the animation step cadence, about 30 fps
const DefaultFrameInterval = 33 * time.Millisecond

// Sink receives a frame after every batch of position changes
type Sink interface {
	Draw(fr face.Frame) error
}

// SinkFunc adapts a function to Sink
type SinkFunc func(fr face.Frame) error

// Draw calls f(fr)
func (f SinkFunc) Draw(fr face.Frame) error { return f(fr) }

// HostOptions configures a Host, zero values pick defaults
type HostOptions struct {
	Clock         TimeProvider
	Thresholds    face.Thresholds
	Random        face.RandomSource
	Duration      time.Duration
	Curve         animation.Curve
	FrameInterval time.Duration
	Samples       <-chan int
	Logger        zerolog.Logger
}

// Host is the cooperative event loop around one Face
// Minute ticks, tilt samples and animation frames are all handled on the Run goroutine,
// so the face and its scene need no locking
type Host struct {
	face  *face.Face
	anim  *animation.Animation
	clock TimeProvider

	samples       <-chan int
	frameInterval time.Duration
	sinks         []Sink
	minuteHooks   []func(time.Time)

	// Cross-goroutine redraw requests, coalesced
	invalidate chan struct{}
	dirty      bool

	log zerolog.Logger
}

// NewHost wires a face to an animation driver
func NewHost(opts HostOptions) *Host {
	h := &Host{
		clock:         opts.Clock,
		samples:       opts.Samples,
		frameInterval: opts.FrameInterval,
		invalidate:    make(chan struct{}, 1),
		log:           opts.Logger,
	}
	if h.clock == nil {
		h.clock = NewMonotonicTimeProvider()
	}
	if h.frameInterval <= 0 {
		h.frameInterval = DefaultFrameInterval
	}

	h.face = face.New(face.Options{
		Clock:      h.clock,
		Thresholds: opts.Thresholds,
		Random:     opts.Random,
		Animator:   h,
		Renderer:   h,
		Logger:     opts.Logger.With().Str("component", "face").Logger(),
	})

	h.anim = animation.New(opts.Duration, opts.Curve, h.face.OnAnimationProgress)
	h.anim.OnStopped(h.face.OnAnimationStopped)

	return h
}

// Face returns the hosted face
func (h *Host) Face() *face.Face {
	return h.face
}

// Animation returns the progress driver
func (h *Host) Animation() *animation.Animation {
	return h.anim
}

// AddSink registers a frame consumer, must be called before Run
func (h *Host) AddSink(s Sink) {
	h.sinks = append(h.sinks, s)
}

// OnMinute registers a hook called after every minute tick, must be called before Run
func (h *Host) OnMinute(fn func(time.Time)) {
	h.minuteHooks = append(h.minuteHooks, fn)
}

// Start implements face.Animator
func (h *Host) Start(dir face.Direction) {
	if h.anim.Schedule(h.clock.Now()) {
		h.log.Debug().Stringer("direction", dir).Dur("duration", h.anim.Duration()).Msg("animation scheduled")
	}
}

// Running implements face.Animator
func (h *Host) Running() bool {
	return h.anim.IsScheduled()
}

// RequestRedraw implements face.Renderer, only called from the Run goroutine
func (h *Host) RequestRedraw() {
	h.dirty = true
}

// Invalidate asks for a redraw from any goroutine, e.g. after a terminal resize
func (h *Host) Invalidate() {
	select {
	case h.invalidate <- struct{}{}:
	default:
	}
}

// Run initializes the face and dispatches events until ctx is done
func (h *Host) Run(ctx context.Context) error {
	start := h.clock.Now()
	h.face.Init(start)
	h.flush()

	// Minutes follow the injected clock, not wall time
	lastMinute := start.Truncate(time.Minute)

	frameTicker := time.NewTicker(h.frameInterval)
	defer frameTicker.Stop()

	samples := h.samples

	for {
		select {
		case <-ctx.Done():
			h.log.Debug().Msg("host stopped")
			return nil

		case sample, ok := <-samples:
			if !ok {
				// Feed ended, keep animating and ticking without a sensor
				samples = nil
				h.log.Info().Msg("tilt feed closed")
				continue
			}
			h.face.OnTiltSample(sample)

		case <-frameTicker.C:
			now := h.clock.Now()
			lastMinute = h.checkMinute(now, lastMinute)
			h.anim.Step(now)

		case <-h.invalidate:
			h.dirty = true
		}

		h.flush()
	}
}

// checkMinute dispatches one minute tick when now has entered a later minute than last.
// It returns the minute now belongs to.
func (h *Host) checkMinute(now, last time.Time) time.Time {
	minute := now.Truncate(time.Minute)
	if !minute.After(last) {
		return last
	}
	h.face.OnMinuteTick(now)
	for _, fn := range h.minuteHooks {
		fn(now)
	}
	return minute
}

// flush hands the current frame to every sink if anything changed
func (h *Host) flush() {
	if !h.dirty {
		return
	}
	h.dirty = false

	fr := h.face.Frame()
	for _, s := range h.sinks {
		if err := s.Draw(fr); err != nil {
			h.log.Warn().Err(err).Msg("sink draw failed")
		}
	}
}
