package scheduler

import (
	"testing"
	"time"
)

func TestDue(t *testing.T) {
	base := time.Date(2024, 11, 3, 14, 5, 0, 0, time.Local)

	tests := []struct {
		name string
		last time.Time
		now  time.Time
		want bool
	}{
		{"never fired", time.Time{}, base, true},
		{"just fired", base, base, false},
		{"short", base, base.Add(249 * time.Millisecond), false},
		{"exact", base, base.Add(250 * time.Millisecond), true},
		{"late", base, base.Add(time.Second), true},
		{"clock went back", base, base.Add(-time.Second), false},
	}

	for _, tt := range tests {
		if got := Due(tt.last, tt.now, Interval); got != tt.want {
			t.Errorf("%s: Due = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestPoll_ResetsOnlyWhenDue(t *testing.T) {
	s := New(Interval)
	t0 := time.Date(2024, 11, 3, 14, 5, 0, 0, time.Local)

	if !s.Poll(t0) {
		t.Fatal("first poll must fire")
	}
	// Polls inside the interval leave the reference point alone
	for _, ms := range []int{10, 100, 200, 249} {
		if s.Poll(t0.Add(time.Duration(ms) * time.Millisecond)) {
			t.Fatalf("fired early at +%dms", ms)
		}
	}
	if !s.last.Equal(t0) {
		t.Errorf("last moved on an idle poll: %v", s.last)
	}
	if !s.Poll(t0.Add(250 * time.Millisecond)) {
		t.Error("expected tick after a full interval")
	}
	if s.Fired() != 2 {
		t.Errorf("fired = %d, want 2", s.Fired())
	}
}

func TestRemaining(t *testing.T) {
	s := New(Interval)
	t0 := time.Date(2024, 11, 3, 14, 5, 0, 0, time.Local)

	if d := s.Remaining(t0); d != 0 {
		t.Errorf("unfired scheduler should be due now, got %v", d)
	}
	s.Poll(t0)
	if d := s.Remaining(t0.Add(100 * time.Millisecond)); d != 150*time.Millisecond {
		t.Errorf("remaining = %v, want 150ms", d)
	}
	if d := s.Remaining(t0.Add(time.Second)); d != 0 {
		t.Errorf("overdue remaining = %v, want 0", d)
	}
}

func TestNew_DefaultInterval(t *testing.T) {
	if s := New(0); s.Interval() != Interval {
		t.Errorf("interval = %v", s.Interval())
	}
}

// A blocking loop that sleeps for Remaining and wakes early on input still
// ticks exactly once per interval
func TestRemaining_DrivesBlockingLoop(t *testing.T) {
	s := New(Interval)
	now := time.Date(2024, 11, 3, 14, 5, 0, 0, time.Local)

	var ticks []time.Time
	for len(ticks) < 5 {
		if s.Poll(now) {
			ticks = append(ticks, now)
		}
		wait := s.Remaining(now)
		// Simulated key press cuts every other wait short
		if len(ticks)%2 == 0 && wait > 100*time.Millisecond {
			wait = 100 * time.Millisecond
		}
		now = now.Add(wait)
	}

	for i := 1; i < len(ticks); i++ {
		if gap := ticks[i].Sub(ticks[i-1]); gap != Interval {
			t.Errorf("gap %d = %v, want %v", i, gap, Interval)
		}
	}
	if s.Fired() != 5 {
		t.Errorf("fired = %d, want 5", s.Fired())
	}
}
