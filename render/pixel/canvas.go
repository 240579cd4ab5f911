package pixel

import (
	"image"

	"github.com/fogleman/gg"

	"github.com/lixenwraith/clockdate/clock"
)

// Canvas is a fixed-size transparent RGBA surface
type Canvas struct {
	img *image.RGBA
	dc  *gg.Context
	r   *Rasterizer
}

// NewCanvas allocates a w x h canvas drawn with r
func NewCanvas(w, h int, r *Rasterizer) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	return &Canvas{
		img: img,
		dc:  gg.NewContextForRGBA(img),
		r:   r,
	}
}

// Image exposes the backing pixels; valid until the next Present
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Bounds returns the canvas rectangle
func (c *Canvas) Bounds() image.Rectangle {
	return c.img.Bounds()
}

// Present clears the canvas and draws every placement. Rows land at
// y + ascent + i*lineHeight; anything outside the canvas is clipped.
func (c *Canvas) Present(f clock.Frame) error {
	reset(c.img)

	c.r.mu.Lock()
	defer c.r.mu.Unlock()
	for _, p := range f {
		if p.Block.Empty() {
			continue
		}
		rgb := p.Color.RGB()
		c.dc.SetRGB255(int(rgb.R), int(rgb.G), int(rgb.B))
		c.r.drawBlock(c.dc, p.Block, p.Size, p.X, p.Y)
	}
	return nil
}

// Anchor returns the top-left screen position of a surface of the given
// width pinned to the top-right corner of a screen screenW pixels wide
func Anchor(screenW, width, marginTop, marginRight int) image.Point {
	return image.Pt(screenW-width-marginRight, marginTop)
}
