package chime

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Fraction of a tone spent fading in and out; hard edges click
const (
	attackFraction  = 0.05
	releaseFraction = 0.6
)

// tone is a sine at a fixed frequency with a linear attack and release
type tone struct {
	freq     float64
	rate     beep.SampleRate
	phase    float64
	position int
	total    int
	attack   int
	release  int
}

// Tone returns a sine streamer of the given length. The amplitude ramps up
// over the first 5% and decays over the last 60%, starting and ending at 0.
func Tone(rate beep.SampleRate, freq float64, d time.Duration) beep.Streamer {
	total := rate.N(d)
	return &tone{
		freq:    freq,
		rate:    rate,
		total:   total,
		attack:  int(float64(total) * attackFraction),
		release: int(float64(total) * releaseFraction),
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.total {
			return i, i > 0
		}

		val := math.Sin(2*math.Pi*t.phase) * t.gain()
		samples[i][0] = val
		samples[i][1] = val

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) gain() float64 {
	if t.attack > 0 && t.position < t.attack {
		return float64(t.position) / float64(t.attack)
	}
	if start := t.total - t.release; t.release > 0 && t.position >= start {
		return float64(t.total-t.position) / float64(t.release)
	}
	return 1
}

func (t *tone) Err() error { return nil }
