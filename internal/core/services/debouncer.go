package services

import (
	"sync"
	"time"
)

// Debouncer delays a rapidly changing value until it has been stable for
// the configured delay. Only the last value of a burst is emitted.
//
// emit runs on the timer goroutine. Hosts with a single event loop route it
// back (e.g. via a channel or program.Send) before touching state.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	emit    func(value string)
	timer   *time.Timer
	seq     uint64
	stopped bool
}

// NewDebouncer creates a debouncer. A negative delay is treated as zero.
func NewDebouncer(delay time.Duration, emit func(value string)) *Debouncer {
	if delay < 0 {
		delay = 0
	}
	return &Debouncer{
		delay: delay,
		emit:  emit,
	}
}

// Push schedules value for emission, discarding any pending value.
func (d *Debouncer) Push(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}

	d.seq++
	seq := d.seq
	d.timer = time.AfterFunc(d.delay, func() {
		d.fire(seq, value)
	})
}

// fire emits value if no newer push, cancel or stop happened since it was scheduled.
func (d *Debouncer) fire(seq uint64, value string) {
	d.mu.Lock()
	if d.stopped || seq != d.seq {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	emit := d.emit
	d.mu.Unlock()

	if emit != nil {
		emit(value)
	}
}

// Pending returns true if an emission is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Cancel drops the pending emission, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Stop cancels any pending emission and rejects further pushes.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Delay returns the configured delay.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}
