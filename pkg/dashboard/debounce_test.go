package dashboard

import (
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/dashgrid/pkg/grid"
)

// envCollector records debouncer callbacks.
type envCollector struct {
	mu   sync.Mutex
	envs []grid.Environment
}

func (c *envCollector) record(env grid.Environment) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.envs = append(c.envs, env)
}

func (c *envCollector) snapshot() []grid.Environment {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]grid.Environment, len(c.envs))
	copy(out, c.envs)
	return out
}

func TestEnvDebouncerCoalesces(t *testing.T) {
	var c envCollector
	d := NewEnvDebouncer(20*time.Millisecond, c.record)
	defer d.Stop()

	// A burst of resize events should collapse to one callback with the
	// latest environment.
	d.Notify(grid.Environment{WindowWidthPx: 800})
	d.Notify(grid.Environment{WindowWidthPx: 900})
	d.Notify(grid.Environment{WindowWidthPx: 1000})

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if len(c.snapshot()) > 0 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	got := c.snapshot()
	if len(got) != 1 {
		t.Fatalf("fired %d times, want 1", len(got))
	}
	if got[0].WindowWidthPx != 1000 {
		t.Errorf("fired with width %d, want latest (1000)", got[0].WindowWidthPx)
	}
}

func TestEnvDebouncerStop(t *testing.T) {
	var c envCollector
	d := NewEnvDebouncer(20*time.Millisecond, c.record)

	d.Notify(grid.Environment{WindowWidthPx: 800})
	d.Stop()

	time.Sleep(60 * time.Millisecond)
	if len(c.snapshot()) != 0 {
		t.Error("Stop should cancel the pending callback")
	}
}

func TestEnvDebouncerFlush(t *testing.T) {
	var c envCollector
	d := NewEnvDebouncer(time.Hour, c.record)
	defer d.Stop()

	d.Notify(grid.Environment{WindowWidthPx: 800})
	d.Flush()

	got := c.snapshot()
	if len(got) != 1 {
		t.Fatalf("Flush should fire immediately, fired %d times", len(got))
	}
	if got[0].WindowWidthPx != 800 {
		t.Errorf("flushed width = %d, want 800", got[0].WindowWidthPx)
	}

	// Flush with nothing pending is a no-op.
	d.Flush()
	if len(c.snapshot()) != 1 {
		t.Error("Flush without pending change should not fire")
	}
}

func TestEnvDebouncerDefaultDelay(t *testing.T) {
	d := NewEnvDebouncer(0, func(grid.Environment) {})
	defer d.Stop()
	if d.delay != DefaultDebounceDelay {
		t.Errorf("delay = %v, want %v", d.delay, DefaultDebounceDelay)
	}
}
