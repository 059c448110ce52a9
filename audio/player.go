package audio

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/tiwe/face"
)

const (
	sampleRate = beep.SampleRate(48000)
)

// Config controls the transition chimes
type Config struct {
	Enabled bool
	Volume  float64
}

// DefaultConfig returns audio off at a moderate volume
func DefaultConfig() Config {
	return Config{Enabled: false, Volume: 0.4}
}

// Player plays a chime whenever the face starts a transition.
// All operations are safe without an audio device; sounds are then dropped.
type Player struct {
	mu          sync.Mutex
	cfg         Config
	mixer       *beep.Mixer
	initialized bool
	played      atomic.Uint64
	log         zerolog.Logger
}

// NewPlayer creates a player; call Initialize to attach the speaker
func NewPlayer(cfg Config, log zerolog.Logger) *Player {
	return &Player{
		cfg:   cfg,
		mixer: &beep.Mixer{},
		log:   log.With().Str("component", "audio").Logger(),
	}
}

// Initialize opens the speaker. Disabled players stay silent and return nil.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized || !p.cfg.Enabled {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(p.mixer)
	p.initialized = true
	p.log.Debug().Float64("volume", p.cfg.Volume).Msg("speaker ready")
	return nil
}

// OnTrigger queues the chime for dir when an animation actually started
func (p *Player) OnTrigger(dir face.Direction, started bool) {
	if !started {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	// Mixer is read by the speaker goroutine
	speaker.Lock()
	p.mixer.Add(CreateChime(dir, p.cfg.Volume, sampleRate))
	speaker.Unlock()
	p.played.Add(1)
}

// Played returns the number of chimes handed to the speaker
func (p *Player) Played() uint64 {
	return p.played.Load()
}

// Active reports whether the speaker is attached
func (p *Player) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// Close clears pending sounds and detaches from the speaker
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return nil
	}

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()

	// The speaker stays open, only queued chimes are dropped
	p.initialized = false
	return nil
}
