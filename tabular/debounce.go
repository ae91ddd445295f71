package tabular

import (
	"sync"
	"sync/atomic"
	"time"
)

// DefaultSearchDelay matches the dashboard's search input rate limit.
const DefaultSearchDelay = 300 * time.Millisecond

// Debouncer coalesces bursts of triggers into a single trailing call: the
// function runs once, after triggering has quiesced for the configured
// delay. A new trigger replaces any pending one (cancel-and-replace, not a
// queue).
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer returns a debouncer with the given quiesce delay; a
// non-positive delay falls back to DefaultSearchDelay.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultSearchDelay
	}
	return &Debouncer{delay: delay}
}

// Trigger schedules fn to run after the delay, discarding any previously
// pending function.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// ReloadGuard hands out monotonically increasing generation numbers for
// record reloads and accepts only results carrying the newest one, so a
// slow, stale reload can never overwrite a fresher collection.
type ReloadGuard struct {
	latest atomic.Uint64
}

// Next registers a new reload and returns its generation number.
func (g *ReloadGuard) Next() uint64 {
	return g.latest.Add(1)
}

// Accept reports whether a reload with the given generation is still the
// newest one issued.
func (g *ReloadGuard) Accept(gen uint64) bool {
	return g.latest.Load() == gen
}
