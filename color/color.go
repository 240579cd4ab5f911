// Package color resolves configuration color tokens to concrete RGB values.
// Resolution is total: unknown tokens map to Blue instead of failing.
package color

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB represents a 24-bit color
type RGB struct {
	R, G, B uint8
}

// Equal returns true if colors match
func (c RGB) Equal(other RGB) bool {
	return c.R == other.R && c.G == other.G && c.B == other.B
}

// Hex formats the color as #rrggbb
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Named is one entry of the fixed symbolic palette
type Named uint8

const (
	Black Named = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	Gray
	DarkGray
	LightRed
	LightGreen
	LightYellow
	LightBlue
	LightMagenta
	LightCyan
	White
	Purple
	namedCount
)

type namedEntry struct {
	name string
	rgb  RGB
	ansi int // -1 when the color has no palette slot
}

// Order matches the Named constants; the first 16 share their ANSI palette index
var palette = [namedCount]namedEntry{
	Black:        {"Black", RGB{0, 0, 0}, 0},
	Red:          {"Red", RGB{255, 0, 0}, 1},
	Green:        {"Green", RGB{0, 255, 0}, 2},
	Yellow:       {"Yellow", RGB{255, 255, 0}, 3},
	Blue:         {"Blue", RGB{0, 0, 255}, 4},
	Magenta:      {"Magenta", RGB{255, 0, 255}, 5},
	Cyan:         {"Cyan", RGB{0, 255, 255}, 6},
	Gray:         {"Gray", RGB{128, 128, 128}, 7},
	DarkGray:     {"DarkGray", RGB{64, 64, 64}, 8},
	LightRed:     {"LightRed", RGB{255, 128, 128}, 9},
	LightGreen:   {"LightGreen", RGB{128, 255, 128}, 10},
	LightYellow:  {"LightYellow", RGB{255, 255, 128}, 11},
	LightBlue:    {"LightBlue", RGB{128, 128, 255}, 12},
	LightMagenta: {"LightMagenta", RGB{255, 128, 255}, 13},
	LightCyan:    {"LightCyan", RGB{128, 255, 255}, 14},
	White:        {"White", RGB{255, 255, 255}, 15},
	Purple:       {"Purple", RGB{160, 32, 240}, -1},
}

var byName = func() map[string]Named {
	m := make(map[string]Named, namedCount)
	for i := Named(0); i < namedCount; i++ {
		m[palette[i].name] = i
	}
	return m
}()

// Default is used for every token that does not resolve
const Default = Blue

// String returns the palette name
func (n Named) String() string {
	if n >= namedCount {
		return fmt.Sprintf("Named(%d)", uint8(n))
	}
	return palette[n].name
}

// RGB returns the fixed triple for the palette entry
func (n Named) RGB() RGB {
	if n >= namedCount {
		return palette[Default].rgb
	}
	return palette[n].rgb
}

// Color is either a palette entry or an explicit hex triple
type Color struct {
	named Named
	hex   bool
	rgb   RGB
}

// FromNamed wraps a palette entry
func FromNamed(n Named) Color {
	if n >= namedCount {
		n = Default
	}
	return Color{named: n, rgb: palette[n].rgb}
}

// FromRGB wraps an explicit triple
func FromRGB(rgb RGB) Color {
	return Color{hex: true, rgb: rgb}
}

// Parse maps a token to a Color; it never fails
// Hex form is #RRGGBB with either letter case, names are case sensitive
func Parse(token string) Color {
	if isHexToken(token) {
		if c, err := colorful.Hex(token); err == nil {
			r, g, b := c.RGB255()
			return FromRGB(RGB{r, g, b})
		}
	}
	if n, ok := byName[token]; ok {
		return FromNamed(n)
	}
	return FromNamed(Default)
}

// Resolve maps a token straight to its RGB triple
func Resolve(token string) RGB {
	return Parse(token).RGB()
}

// isHexToken matches ^#[0-9A-Fa-f]{6}$
func isHexToken(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	return strings.IndexFunc(s[1:], func(r rune) bool {
		return !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f' || r >= 'A' && r <= 'F')
	}) < 0
}

// RGB returns the concrete triple
func (c Color) RGB() RGB {
	return c.rgb
}

// ANSI reports the terminal palette index for named colors that have one
func (c Color) ANSI() (int, bool) {
	if c.hex {
		return 0, false
	}
	idx := palette[c.named].ansi
	return idx, idx >= 0
}

func (c Color) String() string {
	if c.hex {
		return c.rgb.Hex()
	}
	return c.named.String()
}
