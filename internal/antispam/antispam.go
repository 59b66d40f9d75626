// Package antispam throttles how fast one connection may send commands.
package antispam

import (
	"sync"
	"time"
)

// Config holds throttle configuration.
type Config struct {
	MaxCommands int           // commands allowed per window; 0 disables the throttle
	Window      time.Duration // sliding window length
}

// DefaultConfig allows 20 commands every 5 seconds.
func DefaultConfig() Config {
	return Config{
		MaxCommands: 20,
		Window:      5 * time.Second,
	}
}

// Enabled reports whether the config throttles anything.
func (c Config) Enabled() bool {
	return c.MaxCommands > 0 && c.Window > 0
}

// Result is the outcome of one Check.
type Result struct {
	Allowed     bool
	Reason      string
	WaitSeconds int // how long until the next command is accepted
}

// Tracker keeps the recent command times of one connection.
type Tracker struct {
	mu     sync.Mutex
	config Config
	times  []time.Time
	now    func() time.Time
}

// NewTracker creates a tracker for one connection.
func NewTracker(config Config) *Tracker {
	return &Tracker{
		config: config,
		times:  make([]time.Time, 0, max(config.MaxCommands, 0)),
		now:    time.Now,
	}
}

// Check records a command and reports whether it may run. Rejected commands
// are not recorded.
func (t *Tracker) Check() Result {
	if !t.config.Enabled() {
		return Result{Allowed: true}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	cutoff := now.Add(-t.config.Window)
	kept := t.times[:0]
	for _, ts := range t.times {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	t.times = kept

	if len(t.times) >= t.config.MaxCommands {
		remaining := t.times[0].Add(t.config.Window).Sub(now)
		return Result{
			Allowed:     false,
			Reason:      "You're sending commands too quickly. Please slow down.",
			WaitSeconds: int(remaining.Seconds()) + 1,
		}
	}

	t.times = append(t.times, now)
	return Result{Allowed: true}
}

// Reset forgets all recorded commands.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.times = t.times[:0]
}
