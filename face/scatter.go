package face

// RandomSource is the injectable generator behind scatter positions
type RandomSource interface {
	Seed(seed uint64)
	// Intn returns a value in [0, n)
	Intn(n int) int
}

// GenerateScatter reseeds rng and draws a new scatter position for every marker
// Draw order is hours, minutes, then background, y before x, so a given seed
// always yields the same scene
func GenerateScatter(s *Scene, c Canvas, rng RandomSource, seed uint64) {
	rng.Seed(seed)

	draw := func(m *Marker) {
		m.Scatter.Y = rng.Intn(c.Height)
		m.Scatter.X = rng.Intn(c.Width)
	}
	for i := range s.Hours {
		draw(&s.Hours[i])
	}
	for i := range s.Minutes {
		draw(&s.Minutes[i])
	}
	for i := range s.Background {
		draw(&s.Background[i])
	}
}
