package face

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/tiwe/vmath"
)

// Renderer is told when display positions changed
type Renderer interface {
	RequestRedraw()
}

// Animator runs the progress driver, Start is only called while Running is false
type Animator interface {
	Start(dir Direction)
	Running() bool
}

// Observer is notified for every trigger transition
// started is false when the transition was latched but an animation was already in flight
type Observer interface {
	OnTrigger(dir Direction, started bool)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(dir Direction, started bool)

// OnTrigger calls f(dir, started)
func (f ObserverFunc) OnTrigger(dir Direction, started bool) { f(dir, started) }

// Clock supplies wall-clock time for scatter reseeding
type Clock interface {
	Now() time.Time
}

// Options configures a Face, zero values pick defaults
type Options struct {
	Clock      Clock
	Canvas     Canvas
	Thresholds Thresholds
	Random     RandomSource
	Animator   Animator
	Renderer   Renderer
	Logger     zerolog.Logger
}

// Face owns the scene and dispatches host events to the layout, tween and trigger logic
type Face struct {
	scene      Scene
	clock      Clock
	canvas     Canvas
	thresholds Thresholds
	rng        RandomSource
	animator   Animator
	renderer   Renderer
	observers  []Observer
	log        zerolog.Logger

	// Last percent applied to the display, re-applied when the clock layout moves
	percent int
}

// New creates a face, call Init before dispatching events
func New(opts Options) *Face {
	f := &Face{
		clock:      opts.Clock,
		canvas:     opts.Canvas,
		thresholds: opts.Thresholds,
		rng:        opts.Random,
		animator:   opts.Animator,
		renderer:   opts.Renderer,
		log:        opts.Logger,
	}
	if f.clock == nil {
		f.clock = wallClock{}
	}
	if f.canvas.Width == 0 || f.canvas.Height == 0 {
		f.canvas = DefaultCanvas()
	}
	if f.thresholds == (Thresholds{}) {
		f.thresholds = DefaultThresholds()
	}
	if f.rng == nil {
		f.rng = vmath.NewFastRand(1)
	}
	if f.animator == nil {
		f.animator = idleAnimator{}
	}
	if f.renderer == nil {
		f.renderer = nopRenderer{}
	}
	return f
}

// Observe registers an observer for trigger transitions
func (f *Face) Observe(o Observer) {
	f.observers = append(f.observers, o)
}

// Init scatters the markers, shows them at their scatter positions and lays out the dial
// The hands are laid out from now so an early wake has a target
func (f *Face) Init(now time.Time) {
	f.generateScatter(now)
	f.scene.ResetDisplay()
	f.percent = 0
	LayoutBackground(&f.scene, f.canvas)
	UpdateHourAngleLayout(&f.scene, f.canvas, now.Hour(), now.Minute())

	f.log.Debug().
		Time("time", now).
		Int("forward", f.thresholds.Forward).
		Int("backward", f.thresholds.Backward).
		Msg("face initialized")
	f.renderer.RequestRedraw()
}

// OnMinuteTick recomputes the hand layout for t
// The display is re-blended at the last applied percent so a shown face follows the time
func (f *Face) OnMinuteTick(t time.Time) {
	UpdateHourAngleLayout(&f.scene, f.canvas, t.Hour(), t.Minute())
	ApplyPercent(&f.scene, f.percent)

	f.log.Debug().Int("hour", t.Hour()).Int("minute", t.Minute()).Msg("hand layout updated")
	f.renderer.RequestRedraw()
}

// OnTiltSample feeds one sample to the trigger machine
func (f *Face) OnTiltSample(sample int) {
	st := &f.scene.State

	switch f.thresholds.Evaluate(st.AtClock, sample) {
	case TransitionToClock:
		st.Direction = ToClock
		st.AtClock = true
		f.start(ToClock, sample)

	case TransitionToScatter:
		f.generateScatter(f.clock.Now())
		st.Direction = ToScatter
		st.AtClock = false
		f.start(ToScatter, sample)
	}
}

// OnAnimationProgress blends the display for one progress update
func (f *Face) OnAnimationProgress(progress uint32) {
	f.percent = Advance(&f.scene, progress, f.scene.State.Direction)
	f.renderer.RequestRedraw()
}

// OnAnimationStopped clears the in-flight flag after the driver finished a run
func (f *Face) OnAnimationStopped() {
	f.scene.State.Running = false
	f.log.Debug().Stringer("direction", f.scene.State.Direction).Int("percent", f.percent).Msg("animation finished")
}

// Scene exposes the scene for renderers and tests, callers must not retain it across events
func (f *Face) Scene() *Scene {
	return &f.scene
}

// Canvas returns the canvas the face lays out on
func (f *Face) Canvas() Canvas {
	return f.canvas
}

// Thresholds returns the active trigger band
func (f *Face) Thresholds() Thresholds {
	return f.thresholds
}

// Percent returns the last percent applied to the display
func (f *Face) Percent() int {
	return f.percent
}

// Frame snapshots the display for rendering
func (f *Face) Frame() Frame {
	return NewFrame(&f.scene)
}

func (f *Face) start(dir Direction, sample int) {
	started := false
	if !f.animator.Running() {
		f.animator.Start(dir)
		f.scene.State.Running = true
		started = true
	}

	f.log.Info().
		Stringer("direction", dir).
		Int("sample", sample).
		Bool("started", started).
		Msg("trigger")

	for _, o := range f.observers {
		o.OnTrigger(dir, started)
	}
}

// generateScatter reseeds from wall-clock seconds
func (f *Face) generateScatter(now time.Time) {
	GenerateScatter(&f.scene, f.canvas, f.rng, uint64(now.Unix()))
}

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

type idleAnimator struct{}

func (idleAnimator) Start(Direction) {}
func (idleAnimator) Running() bool   { return false }

type nopRenderer struct{}

func (nopRenderer) RequestRedraw() {}
