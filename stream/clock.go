package stream

import "time"

// Clock creates the tickers that drive playback. It exists so tests can
// deliver ticks by hand.
type Clock interface {
	NewTicker(d time.Duration) Ticker
}

// Ticker is a repeating clock. Stop must be safe to call more than once.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// SystemClock is a Clock backed by time.Ticker.
type SystemClock struct{}

// NewTicker starts a time.Ticker with period d.
func (SystemClock) NewTicker(d time.Duration) Ticker {
	return systemTicker{time.NewTicker(d)}
}

type systemTicker struct {
	t *time.Ticker
}

func (s systemTicker) C() <-chan time.Time { return s.t.C }
func (s systemTicker) Stop()               { s.t.Stop() }
