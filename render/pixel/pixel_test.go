package pixel

import (
	"image"
	"testing"
	"time"

	"github.com/lixenwraith/clockdate/asset"
	"github.com/lixenwraith/clockdate/clock"
	"github.com/lixenwraith/clockdate/color"
	"github.com/lixenwraith/clockdate/config"
	"github.com/lixenwraith/clockdate/glyph"
)

func newRasterizer(t *testing.T) *Rasterizer {
	t.Helper()
	r, err := NewRasterizer()
	if err != nil {
		t.Fatalf("NewRasterizer: %v", err)
	}
	return r
}

func TestInk_Blank(t *testing.T) {
	r := newRasterizer(t)

	for _, b := range []glyph.Block{
		{},
		{Rows: []string{"   ", "   "}},
	} {
		if ink := r.Ink(b, 12); !ink.Empty() {
			t.Errorf("blank block %q has ink %v", b.String(), ink)
		}
		if w, h := r.Measure(b, 12); w != 0 || h != 0 {
			t.Errorf("blank block measured %dx%d", w, h)
		}
	}
}

func TestInk_TightBox(t *testing.T) {
	r := newRasterizer(t)
	ascent, lh := r.metrics(12)
	if ascent <= 0 || lh <= 0 {
		t.Fatalf("metrics: ascent %d, line height %d", ascent, lh)
	}

	one := r.Ink(glyph.Block{Rows: []string{"█"}}, 12)
	if one.Empty() {
		t.Fatal("full block has no ink")
	}

	// A leading blank row shifts the ink down by one line
	shifted := r.Ink(glyph.Block{Rows: []string{" ", "█"}}, 12)
	if shifted.Min.Y != one.Min.Y+lh {
		t.Errorf("shifted top = %d, want %d", shifted.Min.Y, one.Min.Y+lh)
	}
	if shifted.Dx() != one.Dx() {
		t.Errorf("shifted width %d, want %d", shifted.Dx(), one.Dx())
	}

	// Leading spaces move the box right without widening it
	indented := r.Ink(glyph.Block{Rows: []string{"  █"}}, 12)
	if indented.Min.X <= one.Min.X || indented.Dx() != one.Dx() {
		t.Errorf("indented ink %v vs %v", indented, one)
	}
}

func TestMeasure_ScalesWithSize(t *testing.T) {
	r := newRasterizer(t)
	b := glyph.Block{Rows: []string{"██ ██", "█████"}}

	w12, h12 := r.Measure(b, 12)
	w24, h24 := r.Measure(b, 24)
	if w24 <= w12 || h24 <= h12 {
		t.Errorf("size 24 (%dx%d) not larger than size 12 (%dx%d)", w24, h24, w12, h12)
	}
}

func TestCanvas_Present(t *testing.T) {
	r := newRasterizer(t)
	c := NewCanvas(100, 60, r)

	block := glyph.Block{Rows: []string{"██", "██"}}
	frame := clock.Frame{{
		Role:  clock.RoleTime,
		Block: block,
		X:     10,
		Y:     5,
		Color: color.FromNamed(color.Red),
		Size:  12,
	}}
	if err := c.Present(frame); err != nil {
		t.Fatalf("Present: %v", err)
	}

	ink := r.Ink(block, 12).Add(image.Pt(10, 5))
	center := image.Pt((ink.Min.X+ink.Max.X)/2, (ink.Min.Y+ink.Max.Y)/2)
	px := c.Image().RGBAAt(center.X, center.Y)
	if px.R != 255 || px.G != 0 || px.B != 0 || px.A != 255 {
		t.Errorf("pixel at %v = %v, want opaque red", center, px)
	}
	if a := c.Image().RGBAAt(99, 59).A; a != 0 {
		t.Errorf("corner alpha = %d, want transparent", a)
	}

	// A second present with nothing to draw clears the canvas
	if err := c.Present(nil); err != nil {
		t.Fatalf("Present: %v", err)
	}
	if a := c.Image().RGBAAt(center.X, center.Y).A; a != 0 {
		t.Errorf("canvas not cleared, alpha %d", a)
	}
}

// Full pipeline: clock frame measured by ink extents and drawn centered
func TestCanvas_ClockFrame(t *testing.T) {
	tf, df, err := asset.LoadFonts()
	if err != nil {
		t.Fatalf("LoadFonts: %v", err)
	}
	cfg := config.Default()

	ck := clock.New(cfg, tf, df)
	ck.Tick(time.Date(2024, time.November, 3, 14, 5, 0, 0, time.UTC))

	r := newRasterizer(t)
	frame := ck.Frame(cfg.Window.Width, r)

	timeBlock, _ := ck.Blocks()
	w, _ := r.Measure(timeBlock, cfg.Fonts.TimeSize)
	if w == 0 {
		t.Fatal("time block has no ink")
	}
	if frame[0].X != (cfg.Window.Width-w)/2 {
		t.Errorf("time x = %d, want %d", frame[0].X, (cfg.Window.Width-w)/2)
	}

	c := NewCanvas(cfg.Window.Width, cfg.Window.Height, r)
	if err := c.Present(frame); err != nil {
		t.Fatalf("Present: %v", err)
	}
	if alphaBounds(c.Image()).Empty() {
		t.Error("nothing drawn")
	}
}

// With the default sizes and offset the date ink sits wholly below the time
// ink and both stay on the canvas
func TestCanvas_DefaultFrameSeparatesTimeAndDate(t *testing.T) {
	tf, df, err := asset.LoadFonts()
	if err != nil {
		t.Fatalf("LoadFonts: %v", err)
	}
	cfg := config.Default()
	ck := clock.New(cfg, tf, df)
	ck.Tick(time.Date(2024, time.November, 3, 14, 5, 0, 0, time.UTC))

	r := newRasterizer(t)
	frame := ck.Frame(cfg.Window.Width, r)
	c := NewCanvas(cfg.Window.Width, cfg.Window.Height, r)

	// Paint each placement alone and read its ink back off the canvas
	var drawn [2]image.Rectangle
	for i, p := range frame {
		if err := c.Present(clock.Frame{p}); err != nil {
			t.Fatalf("Present %v: %v", p.Role, err)
		}
		drawn[i] = alphaBounds(c.Image())
		if drawn[i].Empty() {
			t.Fatalf("%v drew nothing", p.Role)
		}
		// Clipping would shrink the drawn box below the full ink box
		if want := r.Ink(p.Block, p.Size).Add(image.Pt(p.X, p.Y)); drawn[i] != want {
			t.Errorf("%v ink %v clipped to %v on a %v canvas", p.Role, want, drawn[i], c.Bounds())
		}
	}

	timeInk, dateInk := drawn[0], drawn[1]
	if timeInk.Overlaps(dateInk) {
		t.Errorf("time ink %v overlaps date ink %v", timeInk, dateInk)
	}
	if dateInk.Min.Y < timeInk.Max.Y {
		t.Errorf("date ink starts at y=%d above time ink end y=%d", dateInk.Min.Y, timeInk.Max.Y)
	}
}

func TestAnchor(t *testing.T) {
	got := Anchor(1920, 400, 10, 10)
	if got != image.Pt(1510, 10) {
		t.Errorf("Anchor = %v, want (1510,10)", got)
	}
}
