// Package sensor produces one-axis tilt samples at a fixed rate
// Sources are polled by Feed on its own goroutine and samples are delivered over a channel,
// so the consumer keeps handling them on its event loop
package sensor

import (
	"context"
	"time"
)

// DefaultRate is the sampling period, 10 Hz
const DefaultRate = 100 * time.Millisecond

// Tilt levels in milli-g for the simulated wrist
const (
	RestLevel   = -100
	RaisedLevel = -700
)

// Source yields the current tilt sample, ok is false when none is available
type Source interface {
	Sample() (sample int, ok bool)
}

// Feed polls src every rate and sends available samples to out until ctx is done
// out is never closed by Feed
func Feed(ctx context.Context, src Source, rate time.Duration, out chan<- int) {
	if rate <= 0 {
		rate = DefaultRate
	}
	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sample, ok := src.Sample()
			if !ok {
				continue
			}
			select {
			case out <- sample:
			case <-ctx.Done():
				return
			}
		}
	}
}
