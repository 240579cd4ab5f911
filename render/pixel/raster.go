// Package pixel rasterizes glyph blocks onto an RGBA canvas with a
// monospace TrueType face.
package pixel

import (
	"fmt"
	"image"
	"image/draw"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/lixenwraith/clockdate/glyph"
)

// DPI used for point to pixel conversion
const DPI = 96

// Rasterizer draws block rows with Go Mono. Faces are created per point
// size on first use; font.Face is not safe for concurrent use, so every
// draw holds the lock.
type Rasterizer struct {
	mu    sync.Mutex
	font  *truetype.Font
	faces map[int]font.Face
}

// NewRasterizer parses the embedded Go Mono face
func NewRasterizer() (*Rasterizer, error) {
	f, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse gomono: %w", err)
	}
	return &Rasterizer{
		font:  f,
		faces: make(map[int]font.Face),
	}, nil
}

func (r *Rasterizer) face(size int) font.Face {
	if f, ok := r.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(r.font, &truetype.Options{
		Size:    float64(size),
		DPI:     DPI,
		Hinting: font.HintingFull,
	})
	r.faces[size] = f
	return f
}

// metrics returns ascent and line height in pixels
func (r *Rasterizer) metrics(size int) (ascent, lineHeight int) {
	m := r.face(size).Metrics()
	return m.Ascent.Ceil(), m.Height.Ceil()
}

// layoutBox is the logical extent of a block: widest row advance by
// row count times line height
func (r *Rasterizer) layoutBox(b glyph.Block, size int) image.Rectangle {
	face := r.face(size)
	w := 0
	for _, row := range b.Rows {
		if rw := font.MeasureString(face, row).Ceil(); rw > w {
			w = rw
		}
	}
	_, lh := r.metrics(size)
	return image.Rect(0, 0, w, lh*b.Height())
}

// drawBlock draws b with its layout origin at (x, y)
func (r *Rasterizer) drawBlock(dc *gg.Context, b glyph.Block, size, x, y int) {
	ascent, lh := r.metrics(size)
	dc.SetFontFace(r.face(size))
	for i, row := range b.Rows {
		dc.DrawString(row, float64(x), float64(y+ascent+i*lh))
	}
}

// Ink returns the tight bounding box of painted pixels relative to the
// block's layout origin. An all-blank block yields an empty rectangle.
func (r *Rasterizer) Ink(b glyph.Block, size int) image.Rectangle {
	r.mu.Lock()
	defer r.mu.Unlock()

	box := r.layoutBox(b, size)
	if box.Empty() {
		return image.Rectangle{}
	}
	// Glyphs can overhang the logical box
	pad := size
	scratch := image.NewRGBA(image.Rect(0, 0, box.Dx()+2*pad, box.Dy()+2*pad))
	dc := gg.NewContextForRGBA(scratch)
	dc.SetRGB255(255, 255, 255)
	r.drawBlock(dc, b, size, pad, pad)

	ink := alphaBounds(scratch)
	if ink.Empty() {
		return image.Rectangle{}
	}
	return ink.Sub(image.Pt(pad, pad))
}

// Measure reports the ink extent, satisfying clock.Measurer
func (r *Rasterizer) Measure(b glyph.Block, size int) (int, int) {
	ink := r.Ink(b, size)
	return ink.Dx(), ink.Dy()
}

// alphaBounds scans for the smallest rectangle holding every pixel with
// non-zero alpha, in image coordinates
func alphaBounds(img *image.RGBA) image.Rectangle {
	b := img.Bounds()
	minX, minY, maxX, maxY := b.Max.X, b.Max.Y, b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y).A == 0 {
				continue
			}
			minX = min(minX, x)
			minY = min(minY, y)
			maxX = max(maxX, x)
			maxY = max(maxY, y)
		}
	}
	if maxX < minX {
		return image.Rectangle{}
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// reset sets every pixel to transparent
func reset(img *image.RGBA) {
	draw.Draw(img, img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}
