package face

// Default tilt thresholds, the gap between them is the hysteresis band
const (
	DefaultForwardThreshold  = -450
	DefaultBackwardThreshold = -300
)

// Thresholds configures the trigger machine
// A sample below Forward wakes the face, one above Backward scatters it
type Thresholds struct {
	Forward  int
	Backward int
}

// DefaultThresholds returns the -450 / -300 band
func DefaultThresholds() Thresholds {
	return Thresholds{
		Forward:  DefaultForwardThreshold,
		Backward: DefaultBackwardThreshold,
	}
}

// Transition is the trigger machine decision for one sample
type Transition uint8

const (
	TransitionNone Transition = iota
	TransitionToClock
	TransitionToScatter
)

func (t Transition) String() string {
	switch t {
	case TransitionToClock:
		return "to-clock"
	case TransitionToScatter:
		return "to-scatter"
	default:
		return "none"
	}
}

// Evaluate decides the transition for a sample given the latched state
// Samples inside the band, or past the threshold of the current state, are ignored
func (th Thresholds) Evaluate(atClock bool, sample int) Transition {
	switch {
	case !atClock && sample < th.Forward:
		return TransitionToClock
	case atClock && sample > th.Backward:
		return TransitionToScatter
	default:
		return TransitionNone
	}
}
