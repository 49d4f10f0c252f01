package memo

import (
	"sync"
	"time"
)

// windowDepth bounds the number of timestamps kept per identifier.
const windowDepth = 10

// VelocityTracker records attempt timestamps per identifier and reports how
// many landed within a trailing window. Only the most recent attempts are
// kept, matching the bounded window of the registration flow.
type VelocityTracker struct {
	mu      sync.Mutex
	windows map[string][]time.Time
	now     func() time.Time
}

// NewVelocityTracker creates an empty tracker.
func NewVelocityTracker() *VelocityTracker {
	return &VelocityTracker{
		windows: make(map[string][]time.Time),
		now:     time.Now,
	}
}

// Record appends the current attempt for identifier and returns the number
// of earlier attempts that fall within the trailing window. The current
// attempt is not counted, so a first attempt always reports 0.
func (t *VelocityTracker) Record(identifier string, window time.Duration) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	attempts := t.windows[identifier]

	recent := 0
	for _, at := range attempts {
		if now.Sub(at) < window {
			recent++
		}
	}

	attempts = append(attempts, now)
	if len(attempts) > windowDepth {
		attempts = attempts[len(attempts)-windowDepth:]
	}
	t.windows[identifier] = attempts

	return recent
}
