// Package layout positions glyph blocks on a canvas.
// Positions are plain integer arithmetic: nothing is clamped or wrapped, so
// blocks wider than the canvas overflow both edges and negative offsets are
// kept as is.
package layout

// Size is a measured block extent
type Size struct {
	W, H int
}

// Point is a top-left position on the canvas
type Point struct {
	X, Y int
}

// Span is a run of rows (or columns) starting at Start
type Span struct {
	Start, Size int
}

// End returns the first position past the span
func (s Span) End() int {
	return s.Start + s.Size
}

// Center returns the offset that centers width w inside canvas
func Center(canvas, w int) int {
	return (canvas - w) / 2
}

// Stack places the time block at the top and the date block below it.
// offset is added to the time height and is usually negative to cancel the
// blank rows a font carries below its glyphs.
func Stack(timeSize, dateSize Size, canvasWidth, offset int) (timePos, datePos Point) {
	timePos = Point{X: Center(canvasWidth, timeSize.W), Y: 0}
	datePos = Point{
		X: Center(canvasWidth, dateSize.W),
		Y: timePos.Y + timeSize.H + offset,
	}
	return timePos, datePos
}

// Split divides total into consecutive spans by percentage.
// Each span gets total*p/100 rounded down; the last span absorbs the rest.
func Split(total int, percents ...int) []Span {
	spans := make([]Span, len(percents))
	start := 0
	for i, p := range percents {
		size := total * p / 100
		if i == len(percents)-1 {
			size = total - start
		}
		if size < 0 {
			size = 0
		}
		spans[i] = Span{Start: start, Size: size}
		start += size
	}
	return spans
}
