// Package scheduler drives the fixed-period redraw tick.
//
// A Scheduler holds no goroutine or timer. A host event loop calls Poll on
// every callback; a blocking loop waits for Remaining and then polls.
package scheduler

import (
	"time"
)

// Interval is the redraw period
const Interval = 250 * time.Millisecond

// Due reports whether a tick should fire. A zero last time is always due.
func Due(last, now time.Time, interval time.Duration) bool {
	return last.IsZero() || now.Sub(last) >= interval
}

// Scheduler tracks the last fire time. Not safe for concurrent use; it
// belongs to the loop that owns rendering.
type Scheduler struct {
	interval time.Duration
	last     time.Time
	fired    uint64
}

// New creates a scheduler; non-positive intervals fall back to Interval
func New(interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = Interval
	}
	return &Scheduler{interval: interval}
}

// Interval returns the configured period
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Poll fires when due. The last fire time only moves once a full interval
// has elapsed, never on a poll that returns false.
func (s *Scheduler) Poll(now time.Time) bool {
	if !Due(s.last, now, s.interval) {
		return false
	}
	s.last = now
	s.fired++
	return true
}

// Remaining is the wait budget until the next tick, zero when already due
func (s *Scheduler) Remaining(now time.Time) time.Duration {
	if s.last.IsZero() {
		return 0
	}
	if d := s.interval - now.Sub(s.last); d > 0 {
		return d
	}
	return 0
}

// Fired returns the number of ticks so far
func (s *Scheduler) Fired() uint64 {
	return s.fired
}
