package face

import (
	"time"

	"github.com/lixenwraith/tiwe/vmath"
)

type fakeAnimator struct {
	running bool
	starts  []Direction
}

func (a *fakeAnimator) Start(dir Direction) {
	a.starts = append(a.starts, dir)
	a.running = true
}

func (a *fakeAnimator) Running() bool { return a.running }

type countingRenderer struct {
	redraws int
}

func (r *countingRenderer) RequestRedraw() { r.redraws++ }

// recordingRand wraps FastRand and records every reseed
type recordingRand struct {
	*vmath.FastRand
	seeds []uint64
}

func newRecordingRand() *recordingRand {
	return &recordingRand{FastRand: vmath.NewFastRand(1)}
}

func (r *recordingRand) Seed(seed uint64) {
	r.seeds = append(r.seeds, seed)
	r.FastRand.Seed(seed)
}

type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time { return c.now }

func (c *stepClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type harness struct {
	face     *Face
	animator *fakeAnimator
	renderer *countingRenderer
	rng      *recordingRand
	clock    *stepClock
}

func newHarness(start time.Time) *harness {
	h := &harness{
		animator: &fakeAnimator{},
		renderer: &countingRenderer{},
		rng:      newRecordingRand(),
		clock:    &stepClock{now: start},
	}
	h.face = New(Options{
		Clock:    h.clock,
		Random:   h.rng,
		Animator: h.animator,
		Renderer: h.renderer,
	})
	h.face.Init(start)
	return h
}

func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 14, hour, minute, 0, 0, time.UTC)
}
