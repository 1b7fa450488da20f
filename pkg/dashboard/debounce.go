package dashboard

import (
	"sync"
	"time"

	"github.com/matzehuels/dashgrid/pkg/grid"
)

// DefaultDebounceDelay is how long the debouncer waits after the last
// environment change before firing. Window resizes arrive as bursts of
// events; only the settled size should trigger recovery.
const DefaultDebounceDelay = 150 * time.Millisecond

// EnvDebouncer coalesces bursts of environment changes into a single
// callback with the latest environment. Safe for concurrent use.
type EnvDebouncer struct {
	mu     sync.Mutex
	delay  time.Duration
	timer  *time.Timer
	latest grid.Environment
	fn     func(grid.Environment)
}

// NewEnvDebouncer creates a debouncer that calls fn with the most recent
// environment once changes stop for the given delay. A non-positive
// delay falls back to DefaultDebounceDelay.
func NewEnvDebouncer(delay time.Duration, fn func(grid.Environment)) *EnvDebouncer {
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}
	return &EnvDebouncer{delay: delay, fn: fn}
}

// Notify records an environment change and (re)starts the delay timer.
func (d *EnvDebouncer) Notify(env grid.Environment) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.latest = env
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

func (d *EnvDebouncer) fire() {
	d.mu.Lock()
	env := d.latest
	d.timer = nil
	d.mu.Unlock()

	d.fn(env)
}

// Flush fires immediately if a change is pending.
func (d *EnvDebouncer) Flush() {
	d.mu.Lock()
	pending := d.timer != nil && d.timer.Stop()
	env := d.latest
	d.timer = nil
	d.mu.Unlock()

	if pending {
		d.fn(env)
	}
}

// Stop cancels any pending callback.
func (d *EnvDebouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
