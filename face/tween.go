package face

import "github.com/lixenwraith/tiwe/animation"

// Percent maps normalized progress onto [0, 100] and applies the direction
// ToScatter runs the blend backwards so 0 progress shows the clock layout
func Percent(progress uint32, dir Direction) int {
	p := int(uint64(progress) * 100 / animation.NormalizedMax)
	if p > 100 {
		p = 100
	}
	if dir == ToScatter {
		p = 100 - p
	}
	return p
}

// Lerp blends from toward to by percent per axis
// Division truncates toward zero, keeping the result between the endpoints
func Lerp(from, to Point, percent int) Point {
	return Point{
		X: from.X + (to.X-from.X)*percent/100,
		Y: from.Y + (to.Y-from.Y)*percent/100,
	}
}

// ApplyPercent sets every display position to the scatter/clock blend at percent
func ApplyPercent(s *Scene, percent int) {
	s.Each(func(_ Group, _ int, m *Marker) {
		m.Display = Lerp(m.Scatter, m.Clock, percent)
	})
}

// Advance applies one animation progress update and returns the percent used
func Advance(s *Scene, progress uint32, dir Direction) int {
	p := Percent(progress, dir)
	ApplyPercent(s, p)
	return p
}
