package glyph

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Block is a rendered string: one row per font row
type Block struct {
	Rows []string
}

// Width is the widest row in terminal columns
func (b Block) Width() int {
	w := 0
	for _, row := range b.Rows {
		if rw := runewidth.StringWidth(row); rw > w {
			w = rw
		}
	}
	return w
}

// Height is the row count
func (b Block) Height() int {
	return len(b.Rows)
}

// Empty reports whether the block has nothing to draw
func (b Block) Empty() bool {
	return b.Width() == 0
}

// String joins rows with newlines
func (b Block) String() string {
	return strings.Join(b.Rows, "\n")
}

// Equal compares row content
func (b Block) Equal(other Block) bool {
	if len(b.Rows) != len(other.Rows) {
		return false
	}
	for i := range b.Rows {
		if b.Rows[i] != other.Rows[i] {
			return false
		}
	}
	return true
}

// Trim drops blank rows above and below the ink
func (b Block) Trim() Block {
	lo, hi := 0, len(b.Rows)
	for lo < hi && strings.TrimSpace(b.Rows[lo]) == "" {
		lo++
	}
	for hi > lo && strings.TrimSpace(b.Rows[hi-1]) == "" {
		hi--
	}
	return Block{Rows: b.Rows[lo:hi]}
}
