// Package config holds the clock's tunable parameters.
// A Config is built once at startup and treated as read-only afterwards.
package config

import (
	"fmt"

	"github.com/lixenwraith/clockdate/toml"
)

// Config is the resolved, fully defaulted configuration
type Config struct {
	Colors Colors `toml:"colors,required"`
	Window Window `toml:"window"`
	Fonts  Fonts  `toml:"fonts"`
	Chime  Chime  `toml:"chime"`
}

// Colors holds color tokens, see package color for the accepted forms
type Colors struct {
	Time string `toml:"time,required"`
	Date string `toml:"date,required"`
}

// Window describes the overlay surface geometry
type Window struct {
	MarginTop   int    `toml:"margin_top"`
	MarginRight int    `toml:"margin_right"`
	Width       int    `toml:"width"`
	Height      int    `toml:"height"`
	Monitor     string `toml:"monitor"`
	// DateOffset is added to the time block height to place the date block.
	// Negative values pull the date up over the time font's blank trailing rows.
	DateOffset int `toml:"date_offset"`
}

// Fonts holds pixel-canvas font sizes in points
type Fonts struct {
	TimeSize int `toml:"time_size"`
	DateSize int `toml:"date_size"`
}

// Chime configures the optional hourly strike
type Chime struct {
	Enabled    bool    `toml:"enabled"`
	Frequency  float64 `toml:"frequency"`
	DurationMs int     `toml:"duration_ms"`
	// Volume is a base-2 exponent: 0 is unchanged, -1 is half amplitude
	Volume float64 `toml:"volume"`
}

// Default values
const (
	DefaultTimeColor   = "Blue"
	DefaultDateColor   = "DarkGray"
	DefaultMarginTop   = 10
	DefaultMarginRight = 10
	DefaultWidth       = 400
	DefaultHeight      = 180
	DefaultMonitor     = "DP-1"
	DefaultDateOffset  = -65
	DefaultTimeSize    = 12
	DefaultDateSize    = 10

	DefaultChimeFrequency  = 880
	DefaultChimeDurationMs = 120
)

// DefaultWindow returns the window section defaults
func DefaultWindow() Window {
	return Window{
		MarginTop:   DefaultMarginTop,
		MarginRight: DefaultMarginRight,
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Monitor:     DefaultMonitor,
		DateOffset:  DefaultDateOffset,
	}
}

// DefaultFonts returns the fonts section defaults
func DefaultFonts() Fonts {
	return Fonts{
		TimeSize: DefaultTimeSize,
		DateSize: DefaultDateSize,
	}
}

// DefaultChime returns the chime section defaults
func DefaultChime() Chime {
	return Chime{
		Frequency:  DefaultChimeFrequency,
		DurationMs: DefaultChimeDurationMs,
	}
}

// Default returns a configuration built entirely from defaults
func Default() *Config {
	return &Config{
		Colors: Colors{
			Time: DefaultTimeColor,
			Date: DefaultDateColor,
		},
		Window: DefaultWindow(),
		Fonts:  DefaultFonts(),
		Chime:  DefaultChime(),
	}
}

// Parse decodes a TOML document. Absent optional fields keep their defaults,
// the [colors] section and both of its keys are required.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{
		Window: DefaultWindow(),
		Fonts:  DefaultFonts(),
		Chime:  DefaultChime(),
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config parse: %w", err)
	}
	return cfg, nil
}
