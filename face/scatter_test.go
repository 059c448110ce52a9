package face

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingRand returns 0, 1, 2, ... so each draw is identifiable
type countingRand struct {
	seed  uint64
	next  int
	bound []int
}

func (r *countingRand) Seed(seed uint64) {
	r.seed = seed
	r.next = 0
}

func (r *countingRand) Intn(n int) int {
	r.bound = append(r.bound, n)
	v := r.next
	r.next++
	return v % n
}

func TestGenerateScatterDrawOrder(t *testing.T) {
	var s Scene
	rng := &countingRand{}

	GenerateScatter(&s, DefaultCanvas(), rng, 42)

	assert.Equal(t, uint64(42), rng.seed)
	require.Len(t, rng.bound, 2*MarkerCount)
	for i := 0; i < len(rng.bound); i += 2 {
		assert.Equal(t, 168, rng.bound[i], "draw %d is y", i)
		assert.Equal(t, 144, rng.bound[i+1], "draw %d is x", i+1)
	}

	// Hours first, then minutes, then background
	assert.Equal(t, Point{X: 1, Y: 0}, s.Hours[0].Scatter)
	assert.Equal(t, Point{X: 7, Y: 6}, s.Hours[3].Scatter)
	assert.Equal(t, Point{X: 9, Y: 8}, s.Minutes[0].Scatter)
	assert.Equal(t, Point{X: 19, Y: 18}, s.Minutes[5].Scatter)
	assert.Equal(t, Point{X: 21, Y: 20}, s.Background[0].Scatter)
	assert.Equal(t, Point{X: 43, Y: 42}, s.Background[11].Scatter)
}

func TestGenerateScatterInsideCanvas(t *testing.T) {
	var s Scene
	c := DefaultCanvas()
	rng := newRecordingRand()

	for seed := uint64(0); seed < 50; seed++ {
		GenerateScatter(&s, c, rng, seed)
		s.Each(func(g Group, i int, m *Marker) {
			assert.True(t, c.Contains(m.Scatter), "%s[%d] at %+v", g, i, m.Scatter)
		})
	}
}
