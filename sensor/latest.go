package sensor

import "sync/atomic"

// Latest holds the most recent sample pushed by a remote device
type Latest struct {
	value atomic.Int64
	set   atomic.Bool
}

// Store records a sample, safe from any goroutine
func (l *Latest) Store(sample int) {
	l.value.Store(int64(sample))
	l.set.Store(true)
}

// Sample implements Source, reporting false until the first Store
func (l *Latest) Sample() (int, bool) {
	if !l.set.Load() {
		return 0, false
	}
	return int(l.value.Load()), true
}
