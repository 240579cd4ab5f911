package asset

import (
	_ "embed"
	"fmt"
	"log"
	"strings"

	"github.com/lixenwraith/clockdate/glyph"
)

//go:embed fonts/time.flf
var timeFont []byte

//go:embed fonts/date.flf
var dateFont []byte

// RequiredRunes must be present in both fonts: everything the clock formats
// plus the renderer's fallback label
const RequiredRunes = "0123456789:." + glyph.Fallback

// LoadFonts parses the embedded time and date fonts
func LoadFonts() (timeFace, dateFace *glyph.Font, err error) {
	if timeFace, err = loadFont("time", timeFont); err != nil {
		return nil, nil, err
	}
	if dateFace, err = loadFont("date", dateFont); err != nil {
		return nil, nil, err
	}
	return timeFace, dateFace, nil
}

func loadFont(name string, data []byte) (*glyph.Font, error) {
	f, err := glyph.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load font_%s: %w", name, err)
	}
	if err := f.Require(RequiredRunes); err != nil {
		return nil, fmt.Errorf("failed to load font_%s: %w", name, err)
	}

	h := f.Header()
	title, _, _ := strings.Cut(f.Comment(), "\n")
	log.Printf("font_%s: height %d, baseline %d, %d glyphs (%s)", name, h.Height, h.Baseline, len(f.Runes()), title)
	return f, nil
}
