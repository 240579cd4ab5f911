// Package chime strikes the hour on the default audio device.
package chime

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/clockdate/config"
)

const (
	sampleRate = beep.SampleRate(48000)
	// Speaker buffer; latency is irrelevant for a strike
	bufferDuration = 100 * time.Millisecond
)

var ErrInvalidConfig = errors.New("invalid chime config")

// Strikes returns the 12-hour strike count for a 24-hour clock hour
func Strikes(hour int) int {
	h := hour % 12
	if h < 0 {
		h += 12
	}
	if h == 0 {
		return 12
	}
	return h
}

// Sequence returns n tones of length d separated by silences of d/2.
// n <= 0 yields an empty stream.
func Sequence(rate beep.SampleRate, freq float64, d time.Duration, n int) beep.Streamer {
	if n <= 0 {
		return beep.Silence(0)
	}
	parts := make([]beep.Streamer, 0, 2*n-1)
	for i := 0; i < n; i++ {
		if i > 0 {
			parts = append(parts, beep.Silence(rate.N(d/2)))
		}
		parts = append(parts, Tone(rate, freq, d))
	}
	return beep.Seq(parts...)
}

// Player owns the speaker for the life of the process
type Player struct {
	mu     sync.Mutex
	cfg    config.Chime
	mixer  *beep.Mixer
	closed bool
}

// Validate checks the parameters a player needs
func Validate(cfg config.Chime) error {
	if cfg.Frequency <= 0 {
		return fmt.Errorf("%w: frequency %v", ErrInvalidConfig, cfg.Frequency)
	}
	if cfg.DurationMs <= 0 {
		return fmt.Errorf("%w: duration_ms %d", ErrInvalidConfig, cfg.DurationMs)
	}
	return nil
}

// Open initializes the speaker and starts an idle mixer
func Open(cfg config.Chime) (*Player, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	if err := speaker.Init(sampleRate, sampleRate.N(bufferDuration)); err != nil {
		return nil, fmt.Errorf("speaker init: %w", err)
	}

	p := &Player{
		cfg:   cfg,
		mixer: &beep.Mixer{},
	}
	speaker.Play(p.mixer)
	return p, nil
}

// Ring queues the strikes for now's hour. A nil player is silent.
func (p *Player) Ring(now time.Time) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}

	n := Strikes(now.Hour())
	seq := Sequence(sampleRate, p.cfg.Frequency, time.Duration(p.cfg.DurationMs)*time.Millisecond, n)
	vol := &effects.Volume{Streamer: seq, Base: 2, Volume: p.cfg.Volume}

	speaker.Lock()
	p.mixer.Add(vol)
	speaker.Unlock()
	log.Printf("chime: %d strikes at %s", n, now.Format("15:04"))
}

// Close stops playback and releases the audio device
func (p *Player) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	speaker.Clear()
	speaker.Close()
}
