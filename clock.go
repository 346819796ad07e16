package gradient

import (
	"sync"
	"time"
)

// TimeProvider supplies wall-clock readings to a Clock.
type TimeProvider interface {
	Now() time.Time
}

type systemTime struct{}

func (systemTime) Now() time.Time { return time.Now() }

// Clock is the animation time source. It measures elapsed wall-clock time
// since creation (or the last Reset), minus any time spent paused.
type Clock struct {
	mu       sync.Mutex
	provider TimeProvider

	start       time.Time
	paused      bool
	pauseStart  time.Time
	totalPaused time.Duration
}

// NewClock returns a running clock. A nil provider uses the system clock.
func NewClock(provider TimeProvider) *Clock {
	if provider == nil {
		provider = systemTime{}
	}
	return &Clock{provider: provider, start: provider.Now()}
}

// Elapsed returns the unpaused seconds since the clock started.
func (c *Clock) Elapsed() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.provider.Now()
	if c.paused {
		now = c.pauseStart
	}
	return (now.Sub(c.start) - c.totalPaused).Seconds()
}

// Time returns the time uniform for a frame: the frozen time when a is
// frozen, otherwise elapsed×speed while animating, otherwise zero.
func (c *Clock) Time(a Animation) float64 {
	if t, ok := a.Frozen.Get(); ok {
		return t
	}
	if !a.Animate {
		return 0
	}
	return c.Elapsed() * a.Speed
}

// Pause stops elapsed time from advancing. Pausing a paused clock is a
// no-op.
func (c *Clock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.paused {
		c.paused = true
		c.pauseStart = c.provider.Now()
	}
}

// Resume continues a paused clock from where it stopped.
func (c *Clock) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused {
		c.totalPaused += c.provider.Now().Sub(c.pauseStart)
		c.paused = false
		c.pauseStart = time.Time{}
	}
}

// Paused reports whether the clock is paused.
func (c *Clock) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// Reset restarts elapsed time at zero, keeping the pause state.
func (c *Clock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.provider.Now()
	c.start = now
	c.totalPaused = 0
	if c.paused {
		c.pauseStart = now
	}
}

// ManualTime is a TimeProvider that only moves when told to. It drives
// tests and frame-accurate export.
type ManualTime struct {
	mu  sync.RWMutex
	now time.Time
}

// NewManualTime returns a provider reading start.
func NewManualTime(start time.Time) *ManualTime {
	return &ManualTime{now: start}
}

// Now returns the current manual time.
func (m *ManualTime) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Set moves the manual time to t.
func (m *ManualTime) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// Advance moves the manual time forward by d.
func (m *ManualTime) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}
