package debounce

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Debouncer runs only the trailing call after a quiet period: each
// Trigger revokes the previously scheduled call and schedules a new
// one. The clock is injectable so behavior is testable by advancing a
// simulated clock.
type Debouncer struct {
	clock clock.Clock
	quiet time.Duration

	mu      sync.Mutex
	timer   *clock.Timer
	stopped bool
}

func New(clk clock.Clock, quiet time.Duration) *Debouncer {
	if clk == nil {
		clk = clock.New()
	}
	return &Debouncer{clock: clk, quiet: quiet}
}

// Trigger schedules fn to run after the quiet period, cancelling any
// pending call. A stopped debouncer ignores triggers.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = d.clock.AfterFunc(d.quiet, fn)
}

// Stop revokes any pending call and rejects further triggers. Safe to
// call more than once; used on unmount so no timers leak.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
