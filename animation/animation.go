// Package animation drives a fixed-duration progress value through an easing curve
// It is cooperative: the owner calls Step from its event loop, nothing runs in the background
package animation

import "time"

// DefaultDuration is the length of one scatter/clock transition
const DefaultDuration = 500 * time.Millisecond

// UpdateFunc receives eased progress in [0, NormalizedMax]
type UpdateFunc func(progress uint32)

// Animation is a single reusable run, at most one in flight
type Animation struct {
	duration time.Duration
	curve    Curve
	update   UpdateFunc
	stopped  func()

	scheduled bool
	start     time.Time
	runs      uint64
}

// New creates an animation, nil curve defaults to EaseOut
func New(duration time.Duration, curve Curve, update UpdateFunc) *Animation {
	if duration <= 0 {
		duration = DefaultDuration
	}
	if curve == nil {
		curve = EaseOut
	}
	return &Animation{
		duration: duration,
		curve:    curve,
		update:   update,
	}
}

// OnStopped registers a hook called once after the final update of each run
func (a *Animation) OnStopped(fn func()) {
	a.stopped = fn
}

// Schedule starts a run at now, returns false if one is already in flight
func (a *Animation) Schedule(now time.Time) bool {
	if a.scheduled {
		return false
	}
	a.scheduled = true
	a.start = now
	a.runs++
	return true
}

// IsScheduled reports whether a run is in flight
func (a *Animation) IsScheduled() bool {
	return a.scheduled
}

// Duration returns the configured run length
func (a *Animation) Duration() time.Duration {
	return a.duration
}

// Runs returns the number of runs scheduled so far
func (a *Animation) Runs() uint64 {
	return a.runs
}

// Step delivers eased progress for now, finishing the run once the duration elapsed
// Returns true when this call completed the run
func (a *Animation) Step(now time.Time) bool {
	if !a.scheduled {
		return false
	}

	elapsed := now.Sub(a.start)
	if elapsed >= a.duration {
		a.scheduled = false
		if a.update != nil {
			a.update(a.curve(NormalizedMax))
		}
		if a.stopped != nil {
			a.stopped()
		}
		return true
	}

	if a.update != nil {
		a.update(a.curve(normalize(elapsed, a.duration)))
	}
	return false
}

// normalize maps elapsed onto [0, NormalizedMax] linearly
func normalize(elapsed, duration time.Duration) uint32 {
	if elapsed <= 0 {
		return 0
	}
	if elapsed >= duration {
		return NormalizedMax
	}
	return uint32(int64(elapsed) * NormalizedMax / int64(duration))
}
