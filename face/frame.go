package face

// Dot is one marker as a renderer sees it
type Dot struct {
	Group Group `json:"group"`
	X     int   `json:"x"`
	Y     int   `json:"y"`
	Outer int   `json:"outer"`
	Inner int   `json:"inner"`
}

// Frame is a copy of the display positions in draw order
type Frame struct {
	Dots      []Dot     `json:"dots"`
	AtClock   bool      `json:"atClock"`
	Direction Direction `json:"direction"`
	Running   bool      `json:"running"`
}

// NewFrame copies the scene display into a frame
func NewFrame(s *Scene) Frame {
	fr := Frame{
		Dots:      make([]Dot, 0, MarkerCount),
		AtClock:   s.State.AtClock,
		Direction: s.State.Direction,
		Running:   s.State.Running,
	}
	s.Each(func(g Group, _ int, m *Marker) {
		outer, inner := g.Radii()
		fr.Dots = append(fr.Dots, Dot{
			Group: g,
			X:     m.Display.X,
			Y:     m.Display.Y,
			Outer: outer,
			Inner: inner,
		})
	})
	return fr
}
