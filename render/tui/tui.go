// Package tui presents the clock in a terminal through tcell.
package tui

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/clockdate/clock"
	"github.com/lixenwraith/clockdate/color"
	"github.com/lixenwraith/clockdate/scheduler"
)

// Buffered so a burst of resizes never blocks the poller
const eventBuffer = 16

// Terminal paints frames on a tcell screen it does not own
type Terminal struct {
	screen tcell.Screen
}

// NewTerminal wraps an initialized screen
func NewTerminal(s tcell.Screen) *Terminal {
	return &Terminal{screen: s}
}

// Style maps a resolved color to a foreground style. Named colors use the
// terminal palette so user themes apply; hex colors are sent as RGB.
func Style(c color.Color) tcell.Style {
	if idx, ok := c.ANSI(); ok {
		return tcell.StyleDefault.Foreground(tcell.PaletteColor(idx))
	}
	rgb := c.RGB()
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(rgb.R), int32(rgb.G), int32(rgb.B)))
}

// Present clears the screen and paints every non-space cell of each block.
// Cells outside the screen are dropped.
func (t *Terminal) Present(f clock.Frame) error {
	t.screen.Clear()
	w, h := t.screen.Size()

	for _, p := range f {
		style := Style(p.Color)
		for i, row := range p.Block.Rows {
			y := p.Y + i
			if y < 0 || y >= h {
				continue
			}
			x := p.X
			for _, r := range row {
				if r != ' ' && x >= 0 && x < w {
					t.screen.SetContent(x, y, r, nil, style)
				}
				x += runewidth.RuneWidth(r)
			}
		}
	}
	t.screen.Show()
	return nil
}

// quitKey reports whether a key press ends the program
func quitKey(k tcell.Key, r rune) bool {
	switch k {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return r == 'q' || r == 'Q'
	}
	return false
}

// Run drives the clock until a quit key or ctx is done. Key events and the
// tick budget share one wait, so input never delays a due redraw.
func (t *Terminal) Run(ctx context.Context, c *clock.Clock, sched *scheduler.Scheduler) error {
	events := make(chan tcell.Event, eventBuffer)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			ev := t.screen.PollEvent()
			// nil after Fini
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	defer func() {
		log.Printf("tui: stopped after %d ticks", sched.Fired())
	}()

	present := func() {
		w, h := t.screen.Size()
		if err := t.Present(c.SplitFrame(w, h)); err != nil {
			log.Printf("tui: present: %v", err)
		}
	}

	now := time.Now()
	sched.Poll(now)
	c.Tick(now)
	present()

	timer := time.NewTimer(sched.Remaining(now))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if quitKey(ev.Key(), ev.Rune()) {
					return nil
				}
			case *tcell.EventResize:
				t.screen.Sync()
				c.Tick(time.Now())
				present()
			}

		case <-timer.C:
		}

		now := time.Now()
		// Unchanged blocks keep the last painted screen
		if sched.Poll(now) && c.Tick(now) {
			present()
		}
		timer.Reset(sched.Remaining(now))
	}
}

// Run acquires the terminal, drives the clock and restores the terminal on
// every exit path, panics included
func Run(ctx context.Context, c *clock.Clock) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer s.Fini()

	s.HideCursor()
	s.SetStyle(tcell.StyleDefault)
	return NewTerminal(s).Run(ctx, c, scheduler.New(scheduler.Interval))
}
