package inventory

import (
	"sync"
	"time"
)

// DefaultSearchDebounce is the quiet period after the last keystroke.
const DefaultSearchDebounce = 300 * time.Millisecond

// Scheduler holds at most one pending call. Scheduling replaces whatever
// was pending; only the call that survives its quiet period runs.
type Scheduler interface {
	Debounce(fn func())
	Cancel()
}

// Debouncer is a Scheduler backed by a single time.AfterFunc handle.
type Debouncer struct {
	mu       sync.Mutex
	timer    *time.Timer
	duration time.Duration
}

func NewDebouncer(duration time.Duration) *Debouncer {
	if duration <= 0 {
		duration = DefaultSearchDebounce
	}
	return &Debouncer{duration: duration}
}

// Debounce runs fn once duration has elapsed without another call.
func (d *Debouncer) Debounce(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, fn)
}

// Cancel drops the pending call, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
