package face

// Marker counts per group
const (
	BackgroundCount = 12
	HourCount       = 4
	MinuteCount     = 6
	MarkerCount     = BackgroundCount + HourCount + MinuteCount
)

// Group identifies which set a marker belongs to
type Group uint8

const (
	GroupBackground Group = iota
	GroupHour
	GroupMinute
)

func (g Group) String() string {
	switch g {
	case GroupBackground:
		return "background"
	case GroupHour:
		return "hour"
	case GroupMinute:
		return "minute"
	default:
		return "unknown"
	}
}

// MarshalText encodes the group by name
func (g Group) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// Radii returns the outer and inner disc radii used to draw the group
func (g Group) Radii() (outer, inner int) {
	switch g {
	case GroupMinute:
		return 4, 3
	default:
		return 6, 5
	}
}

// Direction of the current or last animation run
type Direction uint8

const (
	ToClock Direction = iota
	ToScatter
)

func (d Direction) String() string {
	if d == ToScatter {
		return "to-scatter"
	}
	return "to-clock"
}

// MarshalText encodes the direction by name
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Marker is one animated dot
type Marker struct {
	Clock   Point // resolved clock layout position
	Scatter Point // random resting position
	Display Point // currently drawn position
}

// AnimationState is the trigger machine state plus the in-flight flag
type AnimationState struct {
	Direction Direction
	AtClock   bool
	Running   bool
}

// Scene is the full set of markers and the animation state
type Scene struct {
	Background [BackgroundCount]Marker
	Hours      [HourCount]Marker
	Minutes    [MinuteCount]Marker
	State      AnimationState
}

// Each visits every marker in draw order: background, hours, minutes
func (s *Scene) Each(fn func(g Group, i int, m *Marker)) {
	for i := range s.Background {
		fn(GroupBackground, i, &s.Background[i])
	}
	for i := range s.Hours {
		fn(GroupHour, i, &s.Hours[i])
	}
	for i := range s.Minutes {
		fn(GroupMinute, i, &s.Minutes[i])
	}
}

// ResetDisplay snaps every display position onto its scatter position
func (s *Scene) ResetDisplay() {
	s.Each(func(_ Group, _ int, m *Marker) {
		m.Display = m.Scatter
	})
}
