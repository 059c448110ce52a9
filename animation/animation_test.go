package animation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurveEndpoints(t *testing.T) {
	for _, name := range []string{CurveLinear, CurveEaseIn, CurveEaseOut, CurveEaseInOut} {
		curve, err := ParseCurve(name)
		require.NoError(t, err, name)
		assert.Equal(t, uint32(0), curve(0), name)
		assert.Equal(t, uint32(NormalizedMax), curve(NormalizedMax), name)
		assert.Equal(t, uint32(NormalizedMax), curve(NormalizedMax+100), name)
	}
}

func TestCurvesMonotonic(t *testing.T) {
	for _, curve := range []Curve{Linear, EaseIn, EaseOut, EaseInOut} {
		prev := uint32(0)
		for x := uint32(0); x <= NormalizedMax; x += 257 {
			v := curve(x)
			require.GreaterOrEqual(t, v, prev)
			prev = v
		}
	}
}

func TestEaseOutLeadsLinear(t *testing.T) {
	mid := uint32(NormalizedMax / 2)
	assert.Greater(t, EaseOut(mid), Linear(mid))
	assert.Less(t, EaseIn(mid), Linear(mid))
}

func TestParseCurveUnknown(t *testing.T) {
	_, err := ParseCurve("bounce")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bounce")
}

func TestScheduleGuard(t *testing.T) {
	start := time.Date(2025, 1, 1, 3, 0, 0, 0, time.UTC)
	a := New(500*time.Millisecond, Linear, nil)

	require.True(t, a.Schedule(start))
	assert.True(t, a.IsScheduled())
	assert.False(t, a.Schedule(start.Add(100*time.Millisecond)), "second schedule must be refused while running")
	assert.Equal(t, uint64(1), a.Runs())
}

func TestStepDeliversProgressAndStops(t *testing.T) {
	start := time.Date(2025, 1, 1, 3, 0, 0, 0, time.UTC)
	var got []uint32
	stopped := 0

	a := New(500*time.Millisecond, Linear, func(p uint32) { got = append(got, p) })
	a.OnStopped(func() { stopped++ })

	assert.False(t, a.Step(start), "step before schedule is a no-op")
	require.Empty(t, got)

	a.Schedule(start)
	assert.False(t, a.Step(start))
	assert.False(t, a.Step(start.Add(250*time.Millisecond)))
	assert.True(t, a.Step(start.Add(600*time.Millisecond)))
	assert.False(t, a.IsScheduled())
	assert.False(t, a.Step(start.Add(700*time.Millisecond)))

	require.Len(t, got, 3)
	assert.Equal(t, uint32(0), got[0])
	assert.Equal(t, uint32(NormalizedMax/2), got[1])
	assert.Equal(t, uint32(NormalizedMax), got[2])
	assert.Equal(t, 1, stopped)

	// Reusable after completion
	assert.True(t, a.Schedule(start.Add(time.Second)))
	assert.Equal(t, uint64(2), a.Runs())
}

func TestNewDefaults(t *testing.T) {
	a := New(0, nil, nil)
	assert.Equal(t, DefaultDuration, a.Duration())

	start := time.Now()
	a.Schedule(start)
	a.Step(start.Add(DefaultDuration))
	assert.False(t, a.IsScheduled())
}
