// Package debounce delays work per key until a quiet period has passed.
package debounce

import (
	"sync"
	"time"
)

// Debouncer runs the last function triggered for a key once no further
// trigger for that key has arrived within the wait period.
type Debouncer struct {
	wait    time.Duration
	mu      sync.Mutex
	pending map[string]*entry
	stopped bool
}

type entry struct {
	timer *time.Timer
	fn    func()
}

// New creates a Debouncer with the given quiet period.
func New(wait time.Duration) *Debouncer {
	return &Debouncer{
		wait:    wait,
		pending: make(map[string]*entry),
	}
}

// Trigger schedules fn for key, replacing any pending call for the same key.
// The returned function cancels this particular scheduling; it is a no-op
// once fn has run or a later trigger has replaced it.
func (d *Debouncer) Trigger(key string, fn func()) (cancel func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return func() {}
	}

	if prev, ok := d.pending[key]; ok {
		prev.timer.Stop()
	}

	e := &entry{fn: fn}
	e.timer = time.AfterFunc(d.wait, func() {
		d.mu.Lock()
		cur, ok := d.pending[key]
		if !ok || cur != e {
			d.mu.Unlock()
			return
		}
		delete(d.pending, key)
		d.mu.Unlock()
		fn()
	})
	d.pending[key] = e

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if cur, ok := d.pending[key]; ok && cur == e {
			cur.timer.Stop()
			delete(d.pending, key)
		}
	}
}

// Cancel drops the pending call for key, if any.
func (d *Debouncer) Cancel(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if e, ok := d.pending[key]; ok {
		e.timer.Stop()
		delete(d.pending, key)
	}
}

// Flush runs the pending call for key immediately and reports whether one
// was pending.
func (d *Debouncer) Flush(key string) bool {
	d.mu.Lock()
	e, ok := d.pending[key]
	if ok {
		e.timer.Stop()
		delete(d.pending, key)
	}
	d.mu.Unlock()
	if ok {
		e.fn()
	}
	return ok
}

// Pending reports the number of keys with a scheduled call.
func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// Stop cancels every pending call and rejects further triggers.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	for k, e := range d.pending {
		e.timer.Stop()
		delete(d.pending, k)
	}
}
