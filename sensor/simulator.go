package sensor

import (
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/tiwe/vmath"
)

// NudgeStep is the level change for one arrow key press
const NudgeStep = 50

// Simulator is a keyboard-driven wrist: a target level plus uniform jitter
// Level changes may come from any goroutine
type Simulator struct {
	level  atomic.Int64
	jitter int

	mu  sync.Mutex
	rng *vmath.FastRand
}

// NewSimulator starts at RestLevel, jitter is the half-width of the noise band
func NewSimulator(jitter int, seed uint64) *Simulator {
	s := &Simulator{
		jitter: max(jitter, 0),
		rng:    vmath.NewFastRand(seed),
	}
	s.level.Store(RestLevel)
	return s
}

// Set moves the wrist to level
func (s *Simulator) Set(level int) {
	s.level.Store(int64(level))
}

// Nudge shifts the level by delta
func (s *Simulator) Nudge(delta int) {
	s.level.Add(int64(delta))
}

// Raise moves the wrist into viewing position
func (s *Simulator) Raise() {
	s.Set(RaisedLevel)
}

// Lower drops the wrist back to rest
func (s *Simulator) Lower() {
	s.Set(RestLevel)
}

// Toggle flips between raised and rest depending on which side of the midpoint the level is
func (s *Simulator) Toggle() {
	if s.Level() < (RestLevel+RaisedLevel)/2 {
		s.Lower()
	} else {
		s.Raise()
	}
}

// Level returns the noiseless target level
func (s *Simulator) Level() int {
	return int(s.level.Load())
}

// Sample implements Source
func (s *Simulator) Sample() (int, bool) {
	v := s.Level()
	if s.jitter > 0 {
		s.mu.Lock()
		v += s.rng.Intn(2*s.jitter+1) - s.jitter
		s.mu.Unlock()
	}
	return v, true
}
