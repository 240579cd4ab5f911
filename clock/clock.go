// Package clock owns the render state of the time and date display and
// turns it into frames of positioned, colored glyph blocks.
package clock

import (
	"time"

	"github.com/lixenwraith/clockdate/color"
	"github.com/lixenwraith/clockdate/config"
	"github.com/lixenwraith/clockdate/glyph"
	"github.com/lixenwraith/clockdate/layout"
)

// Display formats
const (
	TimeLayout = "15:04"
	DateLayout = "02.01.2006"
)

// TimeRegionPercent is the share of terminal rows above the date region
const TimeRegionPercent = 50

// Role identifies a block within a frame
type Role uint8

const (
	RoleTime Role = iota
	RoleDate
)

func (r Role) String() string {
	if r == RoleTime {
		return "time"
	}
	return "date"
}

// Placement is one glyph block at a canvas position
type Placement struct {
	Role  Role
	Block glyph.Block
	X, Y  int
	Color color.Color
	// Size is the configured font size in points, used by pixel presenters
	Size int
}

// Frame is everything a presenter draws for one redraw
type Frame []Placement

// Presenter paints frames onto a surface
type Presenter interface {
	Present(f Frame) error
}

// Measurer reports the drawn extent of a block at a font size
type Measurer interface {
	Measure(b glyph.Block, size int) (w, h int)
}

// GridMeasurer measures blocks in character cells
type GridMeasurer struct{}

// Measure returns columns and rows
func (GridMeasurer) Measure(b glyph.Block, _ int) (int, int) {
	return b.Width(), b.Height()
}

// Option configures a Clock
type Option func(*Clock)

// OnHour registers fn to run on the tick that enters a new hour
func OnHour(fn func(now time.Time)) Option {
	return func(c *Clock) {
		c.onHour = fn
	}
}

// Clock holds the latest rendered blocks. Tick and the frame methods are
// meant to run on the same loop; the blocks stay valid until the next Tick.
type Clock struct {
	cfg       *config.Config
	timeFont  *glyph.Font
	dateFont  *glyph.Font
	timeColor color.Color
	dateColor color.Color

	timeText  string
	dateText  string
	timeBlock glyph.Block
	dateBlock glyph.Block
	lastTick  time.Time

	onHour func(now time.Time)
}

// New creates a clock; colors are resolved once here
func New(cfg *config.Config, timeFont, dateFont *glyph.Font, opts ...Option) *Clock {
	c := &Clock{
		cfg:       cfg,
		timeFont:  timeFont,
		dateFont:  dateFont,
		timeColor: color.Parse(cfg.Colors.Time),
		dateColor: color.Parse(cfg.Colors.Date),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Tick samples now and re-renders both blocks. It reports whether either
// block differs from the previous tick.
func (c *Clock) Tick(now time.Time) bool {
	c.timeText = now.Format(TimeLayout)
	c.dateText = now.Format(DateLayout)
	timeBlock := glyph.Render(c.timeFont, c.timeText)
	dateBlock := glyph.Render(c.dateFont, c.dateText)
	changed := !timeBlock.Equal(c.timeBlock) || !dateBlock.Equal(c.dateBlock)
	c.timeBlock, c.dateBlock = timeBlock, dateBlock

	if c.onHour != nil && !c.lastTick.IsZero() && hourChanged(c.lastTick, now) {
		c.onHour(now)
	}
	c.lastTick = now
	return changed
}

// hourChanged compares wall-clock hours so half-hour zone offsets still
// strike on the local hour
func hourChanged(prev, now time.Time) bool {
	if !now.After(prev) {
		return false
	}
	py, pm, pd := prev.Date()
	ny, nm, nd := now.Date()
	return prev.Hour() != now.Hour() || py != ny || pm != nm || pd != nd
}

// Text returns the strings rendered by the last tick
func (c *Clock) Text() (timeText, dateText string) {
	return c.timeText, c.dateText
}

// Blocks returns the blocks rendered by the last tick
func (c *Clock) Blocks() (timeBlock, dateBlock glyph.Block) {
	return c.timeBlock, c.dateBlock
}

// Colors returns the resolved time and date colors
func (c *Clock) Colors() (timeColor, dateColor color.Color) {
	return c.timeColor, c.dateColor
}

// Frame stacks the time block over the date block on a canvas of the given
// width, measuring with m
func (c *Clock) Frame(canvasWidth int, m Measurer) Frame {
	tw, th := m.Measure(c.timeBlock, c.cfg.Fonts.TimeSize)
	dw, dh := m.Measure(c.dateBlock, c.cfg.Fonts.DateSize)

	timePos, datePos := layout.Stack(
		layout.Size{W: tw, H: th},
		layout.Size{W: dw, H: dh},
		canvasWidth,
		c.cfg.Window.DateOffset,
	)
	return c.frame(c.timeBlock, c.dateBlock, timePos, datePos)
}

// SplitFrame lays blocks out on a character grid split into a time region
// above a date region. The time block sits on the bottom of its region and
// the date block on the top of its own, both centered horizontally. Blank
// font rows are trimmed so the regions alone set the gap.
func (c *Clock) SplitFrame(width, height int) Frame {
	regions := layout.Split(height, TimeRegionPercent, 100-TimeRegionPercent)
	timeBlock, dateBlock := c.timeBlock.Trim(), c.dateBlock.Trim()

	timePos := layout.Point{
		X: layout.Center(width, timeBlock.Width()),
		Y: regions[0].End() - timeBlock.Height(),
	}
	datePos := layout.Point{
		X: layout.Center(width, dateBlock.Width()),
		Y: regions[1].Start,
	}
	return c.frame(timeBlock, dateBlock, timePos, datePos)
}

func (c *Clock) frame(timeBlock, dateBlock glyph.Block, timePos, datePos layout.Point) Frame {
	return Frame{
		{
			Role:  RoleTime,
			Block: timeBlock,
			X:     timePos.X,
			Y:     timePos.Y,
			Color: c.timeColor,
			Size:  c.cfg.Fonts.TimeSize,
		},
		{
			Role:  RoleDate,
			Block: dateBlock,
			X:     datePos.X,
			Y:     datePos.Y,
			Color: c.dateColor,
			Size:  c.cfg.Fonts.DateSize,
		},
	}
}
