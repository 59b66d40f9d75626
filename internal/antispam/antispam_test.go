package antispam

import (
	"testing"
	"time"
)

// fakeClock lets tests move time without sleeping.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestTracker(cfg Config) (*Tracker, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	tr := NewTracker(cfg)
	tr.now = clock.now
	return tr, clock
}

func TestRateLimit(t *testing.T) {
	tracker, clock := newTestTracker(Config{MaxCommands: 3, Window: 2 * time.Second})

	for i := 0; i < 3; i++ {
		if !tracker.Check().Allowed {
			t.Fatalf("command %d should be allowed", i+1)
		}
		clock.advance(100 * time.Millisecond)
	}

	result := tracker.Check()
	if result.Allowed {
		t.Fatal("4th command should be throttled")
	}
	if result.Reason != "You're sending commands too quickly. Please slow down." {
		t.Errorf("unexpected reason: %s", result.Reason)
	}
	if result.WaitSeconds < 1 || result.WaitSeconds > 2 {
		t.Errorf("unexpected wait: %d", result.WaitSeconds)
	}
}

func TestWindowSlides(t *testing.T) {
	tracker, clock := newTestTracker(Config{MaxCommands: 2, Window: time.Second})

	tracker.Check()
	clock.advance(600 * time.Millisecond)
	tracker.Check()
	if tracker.Check().Allowed {
		t.Fatal("third command inside the window should be throttled")
	}

	// The first command leaves the window, freeing one slot.
	clock.advance(500 * time.Millisecond)
	if !tracker.Check().Allowed {
		t.Error("command should be allowed once the oldest expires")
	}
	if tracker.Check().Allowed {
		t.Error("only one slot should have been freed")
	}
}

func TestRejectedCommandsAreNotRecorded(t *testing.T) {
	tracker, clock := newTestTracker(Config{MaxCommands: 1, Window: time.Second})

	tracker.Check()
	for i := 0; i < 5; i++ {
		clock.advance(100 * time.Millisecond)
		tracker.Check()
	}
	clock.advance(600 * time.Millisecond)
	if !tracker.Check().Allowed {
		t.Error("rejected commands must not extend the window")
	}
}

func TestDisabled(t *testing.T) {
	for _, cfg := range []Config{{}, {MaxCommands: 5}, {Window: time.Second}} {
		tracker := NewTracker(cfg)
		for i := 0; i < 100; i++ {
			if !tracker.Check().Allowed {
				t.Fatalf("config %+v should not throttle", cfg)
			}
		}
	}
}

func TestReset(t *testing.T) {
	tracker, _ := newTestTracker(Config{MaxCommands: 1, Window: time.Minute})

	tracker.Check()
	if tracker.Check().Allowed {
		t.Fatal("second command should be throttled")
	}
	tracker.Reset()
	if !tracker.Check().Allowed {
		t.Error("command should be allowed after reset")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.Enabled() || cfg.MaxCommands != 20 || cfg.Window != 5*time.Second {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}
