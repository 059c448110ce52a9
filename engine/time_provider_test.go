package engine

import (
	"testing"
	"time"
)

func TestMonotonicTimeProvider(t *testing.T) {
	provider := NewMonotonicTimeProvider()

	t1 := provider.Now()
	time.Sleep(10 * time.Millisecond)
	t2 := provider.Now()

	if !t2.After(t1) {
		t.Errorf("Expected t2 to be after t1, but got t1=%v, t2=%v", t1, t2)
	}

	diff := t2.Sub(t1)
	if diff < 10*time.Millisecond {
		t.Errorf("Expected at least 10ms difference, got %v", diff)
	}
}

func TestManualClock(t *testing.T) {
	startTime := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewManualClock(startTime)

	if now := clock.Now(); !now.Equal(startTime) {
		t.Errorf("Expected initial time to be %v, got %v", startTime, now)
	}

	newTime := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	clock.Set(newTime)
	if now := clock.Now(); !now.Equal(newTime) {
		t.Errorf("Expected time to be %v after Set, got %v", newTime, now)
	}

	clock.Advance(1 * time.Hour)
	clock.Advance(30*time.Minute + 20*time.Second)
	expected := newTime.Add(90*time.Minute + 20*time.Second)
	if now := clock.Now(); !now.Equal(expected) {
		t.Errorf("Expected time to be %v after advances, got %v", expected, now)
	}

	boundary := clock.AdvanceToNextMinute()
	want := newTime.Add(91 * time.Minute)
	if !boundary.Equal(want) || !clock.Now().Equal(want) {
		t.Errorf("Expected next minute %v, got %v", want, boundary)
	}
}

func TestUntilNextMinute(t *testing.T) {
	tests := []struct {
		now  time.Time
		want time.Duration
	}{
		{time.Date(2025, 1, 1, 3, 0, 0, 0, time.UTC), time.Minute},
		{time.Date(2025, 1, 1, 3, 0, 15, 0, time.UTC), 45 * time.Second},
		{time.Date(2025, 1, 1, 3, 59, 59, 500e6, time.UTC), 500 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := untilNextMinute(tt.now); got != tt.want {
			t.Errorf("untilNextMinute(%v): expected %v, got %v", tt.now, tt.want, got)
		}
	}
}
