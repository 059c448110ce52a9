package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/tiwe/face"
)

// Chime note timing
const (
	ChimeNote1Duration = 90 * time.Millisecond
	ChimeNote2Duration = 160 * time.Millisecond
	ChimeAttack        = 5 * time.Millisecond
	ChimeNote1Release  = 40 * time.Millisecond
	ChimeNote2Release  = 120 * time.Millisecond
)

// Chime pitches, E5 and B5
const (
	chimeLow  = 659.25
	chimeHigh = 987.77
)

// Partial weights of a chime note, the octave keeps the sum below full scale
const (
	fundamentalGain = 0.75
	octaveGain      = 0.2
)

// tone is one chime note: a sine with a soft octave partial under a linear attack and release
type tone struct {
	step    float64 // cycles per sample
	phase   float64
	pos     int
	total   int
	attack  int
	release int
}

func newTone(freq float64, duration, release time.Duration, rate beep.SampleRate) *tone {
	return &tone{
		step:    freq / float64(rate),
		total:   rate.N(duration),
		attack:  rate.N(ChimeAttack),
		release: rate.N(release),
	}
}

// gain is the envelope level at sample pos
func (t *tone) gain(pos int) float64 {
	g := 1.0
	if t.attack > 0 && pos < t.attack {
		g = float64(pos) / float64(t.attack)
	}
	if left := t.total - pos; t.release > 0 && left < t.release {
		g = math.Min(g, math.Max(0, float64(left)/float64(t.release)))
	}
	return g
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, false
		}

		w := 2 * math.Pi * t.phase
		v := t.gain(t.pos) * (fundamentalGain*math.Sin(w) + octaveGain*math.Sin(2*w))
		samples[i] = [2]float64{v, v}

		t.phase += t.step
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// math.Log2(0) is -Inf, zero volume maps to a silent stream
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// ChimeLength is the sample count of a full chime at rate
func ChimeLength(rate beep.SampleRate) int {
	return rate.N(ChimeNote1Duration) + rate.N(ChimeNote2Duration)
}

// CreateChime returns the two-note transition chime for dir.
// Assembling the clock rises a fifth, dispersing falls back.
func CreateChime(dir face.Direction, volume float64, rate beep.SampleRate) beep.Streamer {
	first, second := chimeLow, chimeHigh
	if dir == face.ToScatter {
		first, second = chimeHigh, chimeLow
	}

	seq := beep.Seq(
		newTone(first, ChimeNote1Duration, ChimeNote1Release, rate),
		newTone(second, ChimeNote2Duration, ChimeNote2Release, rate),
	)
	return newVolume(seq, volume)
}
