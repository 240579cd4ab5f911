package glyph

import (
	"errors"
	"fmt"
	"strings"
)

// Fallback is rendered in place of text the font cannot represent
const Fallback = "ERR"

var ErrEmptyText = errors.New("empty text")

// Convert renders text by concatenating each character's cell row by row
func (f *Font) Convert(text string) (Block, error) {
	if text == "" {
		return Block{}, ErrEmptyText
	}

	rows := make([]strings.Builder, f.header.Height)
	for _, r := range text {
		cell, ok := f.cells[r]
		if !ok {
			return Block{}, fmt.Errorf("%w: %q", ErrMissingGlyph, r)
		}
		for i := range rows {
			rows[i].WriteString(cell.Rows[i])
		}
	}

	b := Block{Rows: make([]string, len(rows))}
	for i := range rows {
		b.Rows[i] = rows[i].String()
	}
	return b, nil
}

// Render always yields a block: text it cannot convert is replaced by
// Fallback. A font that cannot render Fallback is corrupt and panics.
func Render(f *Font, text string) Block {
	b, err := f.Convert(text)
	if err == nil {
		return b
	}
	b, err = f.Convert(Fallback)
	if err != nil {
		panic(fmt.Sprintf("glyph: font cannot render fallback %q: %v", Fallback, err))
	}
	return b
}
